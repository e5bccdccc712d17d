// Package graphqlserver wires the schema to graphql-go and exposes the
// relay-format HTTP handler.
package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"storefront.GO/graphql"
	"storefront.GO/graphql/registry"
	"storefront.GO/graphql/resolvers"
)

// RootResolver is the root for graphql-go. The Query resolver comes from the
// registered factory so tests can swap in mocks.
type RootResolver struct {
	DB *gorm.DB
}

// Query returns the query resolver.
func (r *RootResolver) Query() *resolvers.QueryResolver {
	return registry.GetQueryResolver(r.DB).(*resolvers.QueryResolver)
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
