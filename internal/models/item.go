package models

import (
	"time"

	"gorm.io/gorm"
)

// Item represents a catalog entry.
type Item struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Description string         `json:"description" gorm:"type:varchar(255)"`
	CostPrice   float64        `json:"cost_price"`
	SellPrice   float64        `json:"sell_price"`
	Stock       *Stock         `json:"stock,omitempty" gorm:"foreignKey:ItemID"`
	Images      []ItemImage    `json:"images,omitempty" gorm:"foreignKey:ItemID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// Stock is the on-hand quantity of an item.
type Stock struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ItemID   string `json:"item_id" gorm:"uniqueIndex;type:varchar(36)"`
	Quantity int    `json:"quantity"`
}

// ItemImage is a stored image path for an item.
type ItemImage struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ItemID    string         `json:"item_id" gorm:"index;type:varchar(36)"`
	ImagePath string         `json:"image_path"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// StockView is a stock row joined with its item description.
type StockView struct {
	StockID     string `json:"stock_id"`
	ItemID      string `json:"item_id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}
