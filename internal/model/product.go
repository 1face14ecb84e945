package model

import "github.com/google/uuid"

type ProductType string

const (
	ProductRaw          ProductType = "raw"
	ProductSemiFinished ProductType = "semi_finished"
	ProductFinished     ProductType = "finished"
)

// Product is an inventory item. Current stock and status are never stored on
// the row; they are recomputed from the transaction ledger on every read.
type Product struct {
	BaseModel
	SKU      string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name     string      `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string      `gorm:"type:varchar(100)" json:"category"`
	Type     ProductType `gorm:"type:varchar(20);default:'raw'" json:"type" validate:"omitempty,oneof=raw semi_finished finished"`

	UnitID *uuid.UUID         `gorm:"type:uuid" json:"unit_id,omitempty"`
	Unit   *UnitOfMeasurement `gorm:"foreignKey:UnitID" json:"unit,omitempty"`

	// Below this threshold the derived status drops to Low Stock.
	MinStock float64 `gorm:"not null;default:0" json:"min_stock"`

	BranchID uuid.UUID `gorm:"type:uuid;index" json:"branch_id"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`

	Transactions []InventoryTransaction `gorm:"foreignKey:ProductID" json:"transactions,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
