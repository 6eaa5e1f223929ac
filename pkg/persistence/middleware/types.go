package middleware

import "github.com/aretw0/kvsession/pkg/ports"

// Middleware allows wrapping a SessionStore to add behavior.
// Middleware must not change results, only observe them.
type Middleware func(ports.SessionStore) ports.SessionStore

// Chain applies mws so that the first one is the outermost.
func Chain(store ports.SessionStore, mws ...Middleware) ports.SessionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

const (
	opGet     = "get"
	opSet     = "set"
	opDestroy = "destroy"
	opTouch   = "touch"
)
