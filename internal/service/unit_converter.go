package service

import (
	"github.com/sujan-mishra001/Hoteru-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnitConverter converts quantities between units of measure that share a
// base unit, via each unit's linear factor.
type UnitConverter interface {
	Convert(tx *gorm.DB, quantity float64, fromUnitID, toUnitID *uuid.UUID) float64
}

type unitConverter struct {
	unitRepo repository.UnitRepository
}

func NewUnitConverter(unitRepo repository.UnitRepository) UnitConverter {
	return &unitConverter{unitRepo: unitRepo}
}

// Convert returns quantity * fromFactor / toFactor. Unset or equal unit IDs
// are an identity conversion. A unit that cannot be looked up falls back to
// the unconverted quantity: upstream stock flows must not be blocked by a
// missing unit definition, even at the cost of cross-unit drift.
func (c *unitConverter) Convert(tx *gorm.DB, quantity float64, fromUnitID, toUnitID *uuid.UUID) float64 {
	if fromUnitID == nil || toUnitID == nil || *fromUnitID == *toUnitID {
		return quantity
	}

	fromUnit, err := c.unitRepo.FindByID(tx, *fromUnitID)
	if err != nil {
		return quantity
	}
	toUnit, err := c.unitRepo.FindByID(tx, *toUnitID)
	if err != nil {
		return quantity
	}
	if toUnit.ConversionFactor == 0 {
		return quantity
	}

	return quantity * fromUnit.ConversionFactor / toUnit.ConversionFactor
}
