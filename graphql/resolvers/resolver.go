package resolvers

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	gqlregistry "storefront.GO/graphql/registry"
	catalogService "storefront.GO/service/catalog"
)

func init() {
	gqlregistry.RegisterQueryResolverFactory(func(db interface{}) interface{} {
		return NewQueryResolver(db.(*gorm.DB))
	})
}

// QueryResolver is the single resolver for all Query fields.
// Catalog methods live in catalog.go, mapping helpers in mapper.go.
// New Query fields: use RegisterSchemaExtension + add method on QueryResolver,
// or use _extension for fully dynamic resolvers.
type QueryResolver struct {
	db *gorm.DB
}

func NewQueryResolver(db *gorm.DB) *QueryResolver {
	return &QueryResolver{db: db}
}

func (r *QueryResolver) catalog() *catalogService.Service {
	return catalogService.GetService(r.db)
}

// Extension dispatches to registered custom resolvers.
func (r *QueryResolver) Extension(ctx context.Context, args struct {
	Name string
	Args *string
}) (*string, error) {
	m := make(map[string]interface{})
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, _ := json.Marshal(out)
	s := string(b)
	return &s, nil
}
