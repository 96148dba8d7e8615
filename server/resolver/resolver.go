package resolver

import (
	"github.com/Luismorlan/chirper/auth"
	"github.com/Luismorlan/chirper/store"
)

// Resolver is the root of the graph surface. It serves as dependency
// injection for the resolvers; every field resolver hangs off the same
// store so both API surfaces share one set of semantics.
type Resolver struct {
	Store *store.Store
	Auth  *auth.Provider
}
