package model

import (
	"time"

	"github.com/google/uuid"
)

type ProductionStatus string

const (
	ProductionPending   ProductionStatus = "Pending"
	ProductionCompleted ProductionStatus = "Completed"
)

// BatchProduction records one production run of a BOM. Rows are created only
// by the production recorder and are immutable once Completed.
type BatchProduction struct {
	BaseModel
	// Unique, date-scoped, human readable: AUTO-YYYYMMDD-####.
	ProductionNumber string `gorm:"type:varchar(30);uniqueIndex;not null" json:"production_number"`

	BOMID uuid.UUID        `gorm:"type:uuid;not null;index" json:"bom_id"`
	BOM   *BillOfMaterials `gorm:"foreignKey:BOMID" json:"bom,omitempty"`

	// Batches run; fractional values are legal (2.5 batches).
	Quantity float64 `gorm:"not null" json:"quantity"`

	Status ProductionStatus `gorm:"type:varchar(20);default:'Pending'" json:"status"`

	FinishedProductID *uuid.UUID `gorm:"type:uuid" json:"finished_product_id,omitempty"`
	FinishedProduct   *Product   `gorm:"foreignKey:FinishedProductID" json:"finished_product,omitempty"`

	BranchID    uuid.UUID  `gorm:"type:uuid;index" json:"branch_id"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (BatchProduction) TableName() string {
	return "batch_productions"
}
