package ports

import (
	"context"

	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// WorkflowStore defines the interface for persisting workflow definitions.
// Implementations must be safe for concurrent use.
type WorkflowStore interface {
	// Save creates or replaces the definition stored under def.ID.
	Save(ctx context.Context, def *domain.Definition) error

	// Load retrieves the definition for a given id.
	// Returns domain.ErrWorkflowNotFound if the workflow does not exist.
	Load(ctx context.Context, id string) (*domain.Definition, error)

	// Delete removes the definition. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored workflows.
	List(ctx context.Context) ([]string, error)
}
