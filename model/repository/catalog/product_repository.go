package catalog

import (
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "storefront.GO/model/entity/catalog"
)

type ProductRepository struct {
	db *gorm.DB
}

var (
	productRepoInstance *ProductRepository
	productRepoOnce     sync.Once
)

// GetProductRepository returns a singleton repository for the given DB.
func GetProductRepository(db *gorm.DB) *ProductRepository {
	productRepoOnce.Do(func() {
		productRepoInstance = NewProductRepository(db)
	})
	return productRepoInstance
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *catalogEntity.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) FindByID(id uint) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindBySlug(slug string) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindBySKU(sku string) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.Where("sku = ?", sku).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchAll returns the whole catalog ordered by entity ID. The catalog
// service snapshots this once at startup.
func (r *ProductRepository) FetchAll() ([]catalogEntity.Product, error) {
	var products []catalogEntity.Product
	err := r.db.Order("entity_id").Find(&products).Error
	return products, err
}

func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&catalogEntity.Product{}).Count(&n).Error
	return n, err
}

// UpsertBatch inserts or updates products by slug in batches. Used by the
// fixture import.
func (r *ProductRepository) UpsertBatch(products []catalogEntity.Product, batchSize int) error {
	if len(products) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sku", "name", "category_id", "price", "original_price",
			"in_stock", "stock_qty", "short_description", "description",
			"features", "specs", "image", "rating", "review_count", "updated_at",
		}),
	}).CreateInBatches(products, batchSize).Error
}

// StockBySKU returns (in stock, quantity) for a SKU without loading the full row.
func (r *ProductRepository) StockBySKU(sku string) (bool, int, error) {
	var row struct {
		InStock  bool
		StockQty *int
	}
	err := r.db.Model(&catalogEntity.Product{}).
		Select("in_stock", "stock_qty").
		Where("sku = ?", sku).
		Take(&row).Error
	if err != nil {
		return false, 0, err
	}
	qty := 0
	if row.StockQty != nil {
		qty = *row.StockQty
	}
	return row.InStock, qty, nil
}
