package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxIn            TransactionType = "IN"
	TxOut           TransactionType = "OUT"
	TxAdjustment    TransactionType = "Adjustment"
	TxProductionIn  TransactionType = "Production_IN"
	TxProductionOut TransactionType = "Production_OUT"

	// Legacy aliases still present in ledgers migrated from older builds.
	TxAdd    TransactionType = "Add"
	TxRemove TransactionType = "Remove"
)

// InventoryTransaction is one row of the append-only stock ledger. Rows are
// never updated or deleted; the only legal way to change derived stock is to
// append another row.
type InventoryTransaction struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product        `json:"product,omitempty" validate:"-"`
	Type      TransactionType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=IN OUT Adjustment Production_IN Production_OUT Add Remove"`

	// Unsigned for every type except Adjustment, whose quantity is stored
	// signed and folded into stock as-is.
	Quantity float64 `gorm:"not null" json:"quantity"`

	// Origin of the movement: purchase bill, sale, or production number.
	ReferenceNumber string     `gorm:"type:varchar(100)" json:"reference_number"`
	ReferenceID     *uuid.UUID `gorm:"type:uuid" json:"reference_id,omitempty"`

	BranchID  uuid.UUID  `gorm:"type:uuid;index" json:"branch_id"`
	SessionID *uuid.UUID `gorm:"type:uuid" json:"session_id,omitempty"` // operational session, if any

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}

func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// StockDelta returns this row's signed contribution to derived stock.
func (t *InventoryTransaction) StockDelta() float64 {
	switch t.Type {
	case TxIn, TxAdd, TxProductionIn:
		return t.Quantity
	case TxOut, TxRemove, TxProductionOut:
		return -t.Quantity
	case TxAdjustment:
		return t.Quantity
	default:
		return 0
	}
}
