package model

import "github.com/google/uuid"

type ProductionMode string

const (
	ModeManual    ProductionMode = "manual"
	ModeAutomatic ProductionMode = "automatic"
)

type BOMKind string

const (
	BOMKindProduction BOMKind = "production"
	BOMKindMenu       BOMKind = "menu"
)

type BOMItemType string

const (
	BOMItemInput  BOMItemType = "input"
	BOMItemOutput BOMItemType = "output"
)

// BillOfMaterials defines how a product is manufactured: a set of input and
// output component rows plus a yield per batch. Older rows use the single
// finished-product shorthand instead of explicit output items; both forms
// stay readable.
type BillOfMaterials struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`

	// Yield per batch for the legacy finished-product shorthand. Multi-output
	// BOMs carry the per-batch yield on their output item rows instead.
	OutputQuantity float64 `gorm:"not null;default:0" json:"output_quantity"`

	IsActive bool           `gorm:"default:true" json:"is_active"`
	Mode     ProductionMode `gorm:"type:varchar(20);default:'manual'" json:"mode" validate:"omitempty,oneof=manual automatic"`
	Kind     BOMKind        `gorm:"type:varchar(20);default:'production'" json:"kind" validate:"omitempty,oneof=production menu"`

	FinishedProductID *uuid.UUID `gorm:"type:uuid" json:"finished_product_id,omitempty"`
	FinishedProduct   *Product   `gorm:"foreignKey:FinishedProductID" json:"finished_product,omitempty"`

	BranchID uuid.UUID `gorm:"type:uuid;index" json:"branch_id"`

	Items []BOMItem `gorm:"foreignKey:BOMID" json:"items,omitempty"`

	// Menu-kind BOMs attach to the dishes made from this recipe.
	MenuItems []MenuItem `gorm:"many2many:bom_menu_items;" json:"menu_items,omitempty"`
}

func (BillOfMaterials) TableName() string {
	return "bills_of_materials"
}

// Inputs returns the input component rows.
func (b *BillOfMaterials) Inputs() []BOMItem {
	return b.itemsOfType(BOMItemInput)
}

// Outputs returns the explicit output component rows. Empty for legacy BOMs
// that only carry the finished-product shorthand.
func (b *BillOfMaterials) Outputs() []BOMItem {
	return b.itemsOfType(BOMItemOutput)
}

// OutputFor returns the output row producing the given product, or nil.
func (b *BillOfMaterials) OutputFor(productID uuid.UUID) *BOMItem {
	for i := range b.Items {
		if b.Items[i].ItemType == BOMItemOutput && b.Items[i].ProductID == productID {
			return &b.Items[i]
		}
	}
	return nil
}

func (b *BillOfMaterials) itemsOfType(t BOMItemType) []BOMItem {
	var items []BOMItem
	for _, item := range b.Items {
		if item.ItemType == t {
			items = append(items, item)
		}
	}
	return items
}

// BOMItem is one component row of a BOM, tagged input or output, with a
// per-batch quantity in the row's own unit.
type BOMItem struct {
	BaseModel
	BOMID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"bom_id"`
	ItemType BOMItemType `gorm:"type:varchar(10);not null" json:"item_type" validate:"required,oneof=input output"`

	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	UnitID *uuid.UUID         `gorm:"type:uuid" json:"unit_id,omitempty"`
	Unit   *UnitOfMeasurement `gorm:"foreignKey:UnitID" json:"unit,omitempty"`

	Quantity float64 `gorm:"not null" json:"quantity" validate:"required,gt=0"`
}

func (BOMItem) TableName() string {
	return "bom_items"
}

// MenuItem is a sellable dish. Pricing, ordering and KOT flows live outside
// this service; the row exists here to carry the recipe attachment.
type MenuItem struct {
	BaseModel
	Name     string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string    `gorm:"type:varchar(100)" json:"category"`
	Price    int64     `gorm:"default:0" json:"price"`
	BranchID uuid.UUID `gorm:"type:uuid;index" json:"branch_id"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
