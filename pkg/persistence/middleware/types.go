// Package middleware provides decorators for ports.WorkflowStore: encryption at rest and
// masking of sensitive input defaults.
package middleware

import "github.com/stevie1mat/flowdsl/pkg/ports"

// Middleware allows wrapping a WorkflowStore to add behavior.
type Middleware func(ports.WorkflowStore) ports.WorkflowStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.WorkflowStore, mws ...Middleware) ports.WorkflowStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
