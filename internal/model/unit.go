package model

import "github.com/google/uuid"

// UnitOfMeasurement defines a unit and its multiplicative factor relative to
// a base unit. Conversion graphs are flat: a unit references at most one base
// unit and chains are never resolved beyond that single hop. Base units carry
// a factor of 1 relative to themselves.
//
// Editing a unit does not re-convert historical ledger rows, so in practice a
// unit is immutable once transactions reference it.
type UnitOfMeasurement struct {
	BaseModel
	Name         string             `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Abbreviation string             `gorm:"type:varchar(20);not null" json:"abbreviation" validate:"required"`
	BaseUnitID   *uuid.UUID         `gorm:"type:uuid" json:"base_unit_id,omitempty"`
	BaseUnit     *UnitOfMeasurement `gorm:"foreignKey:BaseUnitID" json:"base_unit,omitempty"`

	// Multiplicative, relative to the base unit (1000 for kg over g).
	ConversionFactor float64 `gorm:"not null;default:1" json:"conversion_factor"`

	BranchID uuid.UUID `gorm:"type:uuid;index" json:"branch_id"`
}

func (UnitOfMeasurement) TableName() string {
	return "units_of_measurement"
}

// IsBase reports whether this unit is its own base.
func (u *UnitOfMeasurement) IsBase() bool {
	return u.BaseUnitID == nil || *u.BaseUnitID == u.ID
}
