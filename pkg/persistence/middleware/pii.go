package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stevie1mat/flowdsl/pkg/ports"
)

// Mask replaces redacted default values.
const Mask = "***"

type piiMiddleware struct {
	next     ports.WorkflowStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the default value of every input
// whose variable name matches one of the patterns. The caller's definition is not modified.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.WorkflowStore) ports.WorkflowStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, def *domain.Definition) error {
	cloned := def.Clone()
	for i, n := range cloned.Nodes {
		in, ok := n.Input()
		if !ok || in.DefaultValue == "" || !m.sensitive(in.Variable, n.ID) {
			continue
		}
		in.DefaultValue = Mask
		cloned.Nodes[i].Data = in
	}
	return m.next.Save(ctx, &cloned)
}

func (m *piiMiddleware) sensitive(names ...string) bool {
	for _, name := range names {
		if name == "" {
			continue
		}
		for _, p := range m.patterns {
			if p.MatchString(name) {
				return true
			}
		}
	}
	return false
}

func (m *piiMiddleware) Load(ctx context.Context, id string) (*domain.Definition, error) {
	return m.next.Load(ctx, id)
}

func (m *piiMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
