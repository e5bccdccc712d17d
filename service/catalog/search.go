package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns singleton SearchService.
func GetSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService()
	})
	return searchServiceInstance
}

// SearchService runs full-text product search against Elasticsearch when
// ELASTICSEARCH_HOST is set; otherwise Search falls back to the in-memory
// engine so the storefront works without any search infrastructure.
type SearchService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchService() *SearchService {
	host := os.Getenv("ELASTICSEARCH_HOST")
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "storefront_catalog_product"
	}
	if host == "" {
		return &SearchService{index: index}
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return &SearchService{index: index}
	}
	return &SearchService{client: client, index: index}
}

// Enabled reports whether an Elasticsearch client is configured.
func (s *SearchService) Enabled() bool {
	return s.client != nil
}

// Search queries the product index and hydrates hits from the snapshot.
// Falls back to the in-memory filter engine when ES is not configured.
func (s *SearchService) Search(ctx context.Context, svc *Service, query string, currentPage, pageSize int) (Result, error) {
	if s.client == nil {
		spec := FilterSpec{Search: &query, MatchRule: MatchSearchBar, Sort: SortNameAsc}
		return svc.Query(spec, currentPage, pageSize), nil
	}

	if pageSize <= 0 {
		pageSize = 12
	}
	if currentPage <= 0 {
		currentPage = 1
	}
	from := (currentPage - 1) * pageSize

	body := map[string]interface{}{
		"from": from,
		"size": pageSize,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "sku^2", "category", "description", "short_description"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return Result{}, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return Result{}, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID uint `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return Result{}, err
	}

	items := make([]Product, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		if p, ok := svc.ProductByID(hit.Source.ID); ok {
			items = append(items, p)
		}
	}

	total := esResp.Hits.Total.Value
	totalPages := (total + pageSize - 1) / pageSize
	return Result{
		Items: items,
		PageInfo: PageInfo{
			CurrentPage: currentPage,
			PageSize:    pageSize,
			TotalPages:  totalPages,
			TotalCount:  total,
		},
	}, nil
}
