package resolvers

import (
	"sort"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"

	gqlmodels "storefront.GO/graphql/models"
	catalogService "storefront.GO/service/catalog"
)

func toID(id uint) gql.ID {
	return gql.ID(strconv.FormatUint(uint64(id), 10))
}

func toInt32Ptr(n *int) *int32 {
	if n == nil {
		return nil
	}
	v := int32(*n)
	return &v
}

func toProduct(p catalogService.Product) *gqlmodels.Product {
	out := &gqlmodels.Product{
		ID:               toID(p.ID),
		Slug:             p.Slug,
		SKU:              p.SKU,
		Name:             p.Name,
		Category:         p.Category,
		CategoryID:       toID(p.CategoryID),
		Price:            p.Price,
		OriginalPrice:    p.OriginalPrice,
		InStock:          p.InStock,
		StockQty:         toInt32Ptr(p.StockQty),
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Features:         p.Features,
		Image:            p.Image,
		Rating:           p.Rating,
		ReviewCount:      toInt32Ptr(p.ReviewCount),
	}
	if out.Features == nil {
		out.Features = []string{}
	}
	// Sorted for a stable wire order; map iteration would shuffle it.
	out.Specifications = make([]gqlmodels.SpecEntry, 0, len(p.Specs))
	keys := make([]string, 0, len(p.Specs))
	for k := range p.Specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Specifications = append(out.Specifications, gqlmodels.SpecEntry{Key: k, Value: p.Specs[k]})
	}
	return out
}

func toCategory(c catalogService.Category) *gqlmodels.Category {
	return &gqlmodels.Category{
		ID:           toID(c.ID),
		Slug:         c.Slug,
		Name:         c.Name,
		Description:  c.Description,
		ProductCount: int32(c.ProductCount),
	}
}

func toProductList(res catalogService.Result) *gqlmodels.ProductList {
	items := make([]*gqlmodels.Product, len(res.Items))
	for i, p := range res.Items {
		items[i] = toProduct(p)
	}
	nums := catalogService.PageNumbers(res.PageInfo.CurrentPage, res.PageInfo.TotalPages)
	pageNumbers := make([]int32, len(nums))
	for i, n := range nums {
		pageNumbers[i] = int32(n)
	}
	return &gqlmodels.ProductList{
		Items: items,
		PageInfo: &gqlmodels.PageInfo{
			CurrentPage: int32(res.PageInfo.CurrentPage),
			PageSize:    int32(res.PageInfo.PageSize),
			TotalPages:  int32(res.PageInfo.TotalPages),
			TotalCount:  int32(res.PageInfo.TotalCount),
		},
		PageNumbers: pageNumbers,
	}
}
