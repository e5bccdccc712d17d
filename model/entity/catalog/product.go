package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Product is the catalog row. Feature lists and the specification map are
// stored as JSON columns; the catalog service decodes them into its view model
// when the snapshot is built.
type Product struct {
	EntityID         uint           `gorm:"column:entity_id;primaryKey;autoIncrement" json:"id"`
	Slug             string         `gorm:"column:slug;type:varchar(255);not null;uniqueIndex" json:"slug"`
	SKU              string         `gorm:"column:sku;type:varchar(64);not null;uniqueIndex" json:"sku"`
	Name             string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	CategoryID       uint           `gorm:"column:category_id;index" json:"category_id"`
	Price            float64        `gorm:"column:price;not null" json:"price"`
	OriginalPrice    *float64       `gorm:"column:original_price" json:"original_price,omitempty"`
	InStock          bool           `gorm:"column:in_stock;not null;default:true" json:"in_stock"`
	StockQty         *int           `gorm:"column:stock_qty" json:"stock_qty,omitempty"`
	ShortDescription string         `gorm:"column:short_description;type:text" json:"short_description"`
	Description      string         `gorm:"column:description;type:text" json:"description"`
	Features         datatypes.JSON `gorm:"column:features" json:"features,omitempty"`
	Specs            datatypes.JSON `gorm:"column:specs" json:"specs,omitempty"`
	Image            string         `gorm:"column:image;type:varchar(255)" json:"image"`
	Rating           *float64       `gorm:"column:rating" json:"rating,omitempty"`
	ReviewCount      *int           `gorm:"column:review_count" json:"review_count,omitempty"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "catalog_product"
}

// HasDiscount reports whether the discount badge applies (original > current).
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}
