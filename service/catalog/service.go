package catalog

import (
	"fmt"
	"log"
	"sync"

	"gorm.io/gorm"

	"storefront.GO/core/cache"
	catalogRepo "storefront.GO/model/repository/catalog"
)

// cacheTag groups all cached catalog views for tag-based invalidation.
const cacheTag = "catalog"

// queryCacheTTL is the cache lifetime (seconds) of a filtered view.
const queryCacheTTL = int64(300)

// Service owns the immutable in-memory catalog snapshot. The snapshot is
// loaded once at startup and only replaced wholesale by Reload (admin
// endpoint or the catalogreload cron job after a reimport).
type Service struct {
	db   *gorm.DB
	mu   sync.RWMutex
	snap *snapshot
}

type snapshot struct {
	products   []Product
	categories []Category
	byID       map[uint]int
	bySlug     map[string]int
	catByID    map[uint]int
	catBySlug  map[string]int
}

var (
	serviceInstance *Service
	serviceOnce     sync.Once
)

// GetService returns the singleton catalog service for the given DB.
func GetService(db *gorm.DB) *Service {
	serviceOnce.Do(func() {
		serviceInstance = NewService(db)
	})
	return serviceInstance
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, snap: &snapshot{
		byID:      map[uint]int{},
		bySlug:    map[string]int{},
		catByID:   map[uint]int{},
		catBySlug: map[string]int{},
	}}
}

// Reload rebuilds the snapshot from the database and drops cached views.
func (s *Service) Reload() error {
	categories, err := catalogRepo.GetCategoryRepository(s.db).FetchAll()
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	products, err := catalogRepo.GetProductRepository(s.db).FetchAll()
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}

	snap := &snapshot{
		products:   make([]Product, 0, len(products)),
		categories: make([]Category, 0, len(categories)),
		byID:       make(map[uint]int, len(products)),
		bySlug:     make(map[string]int, len(products)),
		catByID:    make(map[uint]int, len(categories)),
		catBySlug:  make(map[string]int, len(categories)),
	}
	catNames := make(map[uint]string, len(categories))
	for i := range categories {
		c := categoryFromEntity(&categories[i])
		snap.catByID[c.ID] = len(snap.categories)
		snap.catBySlug[c.Slug] = len(snap.categories)
		snap.categories = append(snap.categories, c)
		catNames[c.ID] = c.Name
	}
	for i := range products {
		p := productFromEntity(&products[i], catNames[products[i].CategoryID])
		if _, dup := snap.byID[p.ID]; dup {
			log.Printf("catalog: duplicate product id %d (slug %s), skipping", p.ID, p.Slug)
			continue
		}
		if _, dup := snap.bySlug[p.Slug]; dup {
			log.Printf("catalog: duplicate product slug %q, skipping", p.Slug)
			continue
		}
		snap.byID[p.ID] = len(snap.products)
		snap.bySlug[p.Slug] = len(snap.products)
		snap.products = append(snap.products, p)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	cache.GetInstance().DeleteByTag(cacheTag)
	log.Printf("catalog: snapshot loaded (%d products, %d categories)", len(snap.products), len(snap.categories))
	return nil
}

func (s *Service) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Products returns the snapshot product list. Read-only shared data; callers
// must not mutate it.
func (s *Service) Products() []Product {
	return s.snapshot().products
}

func (s *Service) Categories() []Category {
	return s.snapshot().categories
}

func (s *Service) ProductByID(id uint) (Product, bool) {
	snap := s.snapshot()
	if i, ok := snap.byID[id]; ok {
		return snap.products[i], true
	}
	return Product{}, false
}

func (s *Service) ProductBySlug(slug string) (Product, bool) {
	snap := s.snapshot()
	if i, ok := snap.bySlug[slug]; ok {
		return snap.products[i], true
	}
	return Product{}, false
}

func (s *Service) CategoryByID(id uint) (Category, bool) {
	snap := s.snapshot()
	if i, ok := snap.catByID[id]; ok {
		return snap.categories[i], true
	}
	return Category{}, false
}

func (s *Service) CategoryBySlug(slug string) (Category, bool) {
	snap := s.snapshot()
	if i, ok := snap.catBySlug[slug]; ok {
		return snap.categories[i], true
	}
	return Category{}, false
}

// Query runs the filter/sort/paginate engine over the snapshot. Views are
// cached briefly, tagged for invalidation on Reload. Searches are not cached
// (too many distinct keys for too little reuse).
func (s *Service) Query(spec FilterSpec, currentPage, pageSize int) Result {
	cacheable := spec.Search == nil
	var key []interface{}
	if cacheable {
		key = cacheKey(spec, currentPage, pageSize)
		if v, ok := cache.GetInstance().GetN(key...); ok {
			if res, isResult := v.(Result); isResult {
				return res
			}
		}
	}

	filtered := Filter(s.Products(), spec)
	res := Paginate(filtered, currentPage, pageSize)

	if cacheable {
		cache.GetInstance().SetN(key, res, queryCacheTTL, []string{cacheTag})
	}
	return res
}

func cacheKey(spec FilterSpec, currentPage, pageSize int) []interface{} {
	cat := uint(0)
	if spec.CategoryID != nil {
		cat = *spec.CategoryID
	}
	min, max := "", ""
	if spec.MinPrice != nil {
		min = fmt.Sprintf("%g", *spec.MinPrice)
	}
	if spec.MaxPrice != nil {
		max = fmt.Sprintf("%g", *spec.MaxPrice)
	}
	return []interface{}{"catalog:query", cat, min, max, spec.InStockOnly, string(spec.Sort), currentPage, pageSize}
}

// Suggest runs the suggestion engine over the snapshot.
func (s *Service) Suggest(query string, scope SuggestScope) []Product {
	return Suggest(s.Products(), query, scope)
}
