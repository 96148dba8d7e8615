// Package server wires the HTTP surface: the GraphQL endpoint here, the
// REST handlers under rest/ and the shared middlewares.
package server

import (
	"github.com/Luismorlan/chirper/auth"
	gqlschema "github.com/Luismorlan/chirper/server/graphql"
	"github.com/Luismorlan/chirper/server/resolver"
	"github.com/Luismorlan/chirper/store"
	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

// GraphqlHandler is the universal handler for all GraphQL queries issued
// from client, by default it binds to a POST method.
func GraphqlHandler(s *store.Store, authProvider *auth.Provider) gin.HandlerFunc {
	schemaString := gqlschema.GetGQLSchema()
	h := &relay.Handler{
		Schema: graphql.MustParseSchema(schemaString, &resolver.Resolver{
			Store: s,
			Auth:  authProvider,
		}),
	}

	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
