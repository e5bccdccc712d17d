package resolvers

import (
	"context"
	"strconv"

	gqlmodels "storefront.GO/graphql/models"
	catalogService "storefront.GO/service/catalog"
)

// ProductFilterInput mirrors the ProductFilter schema input.
type ProductFilterInput struct {
	CategoryID  *string
	Search      *string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly *bool
}

// ProductsArgs matches the products query arguments (defaults in schema:
// pageSize=12, currentPage=1).
type ProductsArgs struct {
	Filter      *ProductFilterInput
	Sort        *string
	PageSize    int32
	CurrentPage int32
}

func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) (*gqlmodels.ProductList, error) {
	spec := catalogService.FilterSpec{MatchRule: catalogService.MatchListing}
	if args.Sort != nil {
		spec.Sort = catalogService.ParseSortKey(*args.Sort)
	} else {
		spec.Sort = catalogService.ParseSortKey("")
	}
	if f := args.Filter; f != nil {
		if f.CategoryID != nil {
			if id, err := strconv.ParseUint(*f.CategoryID, 10, 32); err == nil {
				cat := uint(id)
				spec.CategoryID = &cat
			}
		}
		if f.Search != nil && *f.Search != "" {
			spec.Search = f.Search
			spec.MatchRule = catalogService.MatchSearchBar
		}
		spec.MinPrice = f.MinPrice
		spec.MaxPrice = f.MaxPrice
		spec.InStockOnly = f.InStockOnly != nil && *f.InStockOnly
	}

	ps, cp := int(args.PageSize), int(args.CurrentPage)
	res := r.catalog().Query(spec, cp, ps)
	return toProductList(res), nil
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	ID   *string
	Slug *string
}

func (r *QueryResolver) Product(ctx context.Context, args ProductArgs) (*gqlmodels.Product, error) {
	svc := r.catalog()
	if args.ID != nil {
		id, err := strconv.ParseUint(*args.ID, 10, 32)
		if err != nil {
			return nil, nil
		}
		if p, ok := svc.ProductByID(uint(id)); ok {
			return toProduct(p), nil
		}
		return nil, nil
	}
	if args.Slug != nil {
		if p, ok := svc.ProductBySlug(*args.Slug); ok {
			return toProduct(p), nil
		}
	}
	return nil, nil
}

func (r *QueryResolver) Categories(ctx context.Context) ([]*gqlmodels.Category, error) {
	cats := r.catalog().Categories()
	out := make([]*gqlmodels.Category, len(cats))
	for i, c := range cats {
		out[i] = toCategory(c)
	}
	return out, nil
}

// SuggestArgs matches the suggest query arguments.
type SuggestArgs struct {
	Query string
	Scope *string
}

func (r *QueryResolver) Suggest(ctx context.Context, args SuggestArgs) ([]*gqlmodels.Product, error) {
	scope := catalogService.SuggestHeader
	if args.Scope != nil {
		scope = catalogService.ParseSuggestScope(*args.Scope)
	}
	items := r.catalog().Suggest(args.Query, scope)
	out := make([]*gqlmodels.Product, len(items))
	for i, p := range items {
		out[i] = toProduct(p)
	}
	return out, nil
}
