package models

import "time"

// AssetWithCategory is an asset row left-joined with its category name.
// CategoryName is nil when the category row is gone.
type AssetWithCategory struct {
	ID             int        `gorm:"column:id"`
	Name           string     `gorm:"column:name"`
	CategoryID     int        `gorm:"column:category_id"`
	Department     string     `gorm:"column:department"`
	Status         string     `gorm:"column:status"`
	PurchaseDate   time.Time  `gorm:"column:purchase_date"`
	WarrantyExpiry *time.Time `gorm:"column:warranty_expiry"`
	Value          float64    `gorm:"column:value"`
	UsageType      string     `gorm:"column:usage_type"`
	CategoryName   *string    `gorm:"column:category_name"`
}
