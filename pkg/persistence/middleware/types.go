// Package middleware decorates a ports.CommandStore with extra behavior.
package middleware

import "github.com/aretw0/argot/pkg/ports"

// Middleware allows wrapping a CommandStore to add behavior.
type Middleware func(ports.CommandStore) ports.CommandStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.CommandStore, mws ...Middleware) ports.CommandStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
