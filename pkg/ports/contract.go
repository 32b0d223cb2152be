package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunWorkflowStoreContract runs a suite of tests to verify that a WorkflowStore
// implementation adheres to the defined interface contract.
func RunWorkflowStoreContract(t *testing.T, store WorkflowStore) {
	ctx := context.Background()
	workflowID := "contract-test-" + time.Now().Format("20060102150405")

	sample := func(id string) *domain.Definition {
		return &domain.Definition{
			ID:          id,
			Name:        "Blog post",
			Description: "Drafts a post about a topic",
			Credits:     3,
			Nodes: []domain.Node{
				domain.NewInput("1", domain.InputData{Label: "Topic", Variable: "topic", Required: true}),
				domain.NewAction("2", domain.ActionData{Prompt: "Write about {topic}", Model: "mistral", Temperature: 0.7, MaxTokens: 256}),
				domain.NewOutput("3", domain.OutputData{Label: "Post", DisplayFormat: "markdown"}),
			},
			Edges: []domain.Edge{
				{ID: "e1", Source: "1", Target: "2"},
				{ID: "e2", Source: "2", Target: "3"},
			},
			CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		def := sample(workflowID)

		err := store.Save(ctx, def)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, workflowID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, def.Name, loaded.Name)
		assert.Equal(t, def.Credits, loaded.Credits)
		assert.True(t, def.CreatedAt.Equal(loaded.CreatedAt))
		require.Len(t, loaded.Nodes, 3)
		assert.Equal(t, domain.KindAction, loaded.Nodes[1].Kind())

		action, ok := loaded.Nodes[1].Action()
		require.True(t, ok)
		assert.Equal(t, "mistral", action.Model)
		assert.Equal(t, 256, action.MaxTokens)
		assert.Equal(t, def.Edges, loaded.Edges)
	})

	t.Run("Load Isolation", func(t *testing.T) {
		loaded, err := store.Load(ctx, workflowID)
		require.NoError(t, err)
		loaded.Name = "mutated"
		loaded.Nodes = nil

		again, err := store.Load(ctx, workflowID)
		require.NoError(t, err)
		assert.Equal(t, "Blog post", again.Name, "stored definition must not alias caller memory")
		assert.Len(t, again.Nodes, 3)
	})

	t.Run("Overwrite", func(t *testing.T) {
		def := sample(workflowID)
		def.Name = "Renamed"
		require.NoError(t, store.Save(ctx, def))

		loaded, err := store.Load(ctx, workflowID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", loaded.Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+workflowID)
		assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sample(workflowID)))

		err := store.Delete(ctx, workflowID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, workflowID)
		assert.ErrorIs(t, err, domain.ErrWorkflowNotFound, "Load after Delete should return ErrWorkflowNotFound")

		assert.NoError(t, store.Delete(ctx, workflowID), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := workflowID + "-1"
		id2 := workflowID + "-2"
		require.NoError(t, store.Save(ctx, sample(id1)))
		require.NoError(t, store.Save(ctx, sample(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.NotContains(t, ids, workflowID)
	})
}
