package catalog

import (
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "storefront.GO/model/entity/catalog"
)

type CategoryRepository struct {
	db *gorm.DB
}

var (
	categoryRepoInstance *CategoryRepository
	categoryRepoOnce     sync.Once
)

// GetCategoryRepository returns a singleton repository for the given DB.
func GetCategoryRepository(db *gorm.DB) *CategoryRepository {
	categoryRepoOnce.Do(func() {
		categoryRepoInstance = NewCategoryRepository(db)
	})
	return categoryRepoInstance
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(c *catalogEntity.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) FindByID(id uint) (*catalogEntity.Category, error) {
	var c catalogEntity.Category
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) FindBySlug(slug string) (*catalogEntity.Category, error) {
	var c catalogEntity.Category
	if err := r.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) FetchAll() ([]catalogEntity.Category, error) {
	var categories []catalogEntity.Category
	err := r.db.Order("entity_id").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) UpsertBatch(categories []catalogEntity.Category, batchSize int) error {
	if len(categories) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "product_count", "updated_at",
		}),
	}).CreateInBatches(categories, batchSize).Error
}

// RecountProducts refreshes product_count from the product table.
func (r *CategoryRepository) RecountProducts() error {
	return r.db.Exec(`
		UPDATE catalog_category SET product_count = (
			SELECT COUNT(*) FROM catalog_product
			WHERE catalog_product.category_id = catalog_category.entity_id
		)`).Error
}
