package service

import (
	"errors"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/repository"
	"github.com/sujan-mishra001/Hoteru-sub000/pkg/validator"

	"github.com/google/uuid"
)

type UnitService interface {
	CreateUnit(req *model.UnitOfMeasurement, userID string) error
	GetAllUnits(branchID uuid.UUID) ([]model.UnitOfMeasurement, error)
}

type unitService struct {
	unitRepo repository.UnitRepository
}

func NewUnitService(unitRepo repository.UnitRepository) UnitService {
	return &unitService{unitRepo: unitRepo}
}

func (s *unitService) CreateUnit(req *model.UnitOfMeasurement, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if req.ConversionFactor <= 0 {
		return errors.New("conversion factor must be positive")
	}

	// Conversion graphs stay flat: the referenced base must itself be a base
	// unit, chains are never resolved beyond one hop.
	if req.BaseUnitID != nil {
		base, err := s.unitRepo.FindByID(nil, *req.BaseUnitID)
		if err != nil {
			return errors.New("base unit not found")
		}
		if !base.IsBase() {
			return errors.New("base unit must not itself reference a base unit")
		}
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.unitRepo.Create(req)
}

func (s *unitService) GetAllUnits(branchID uuid.UUID) ([]model.UnitOfMeasurement, error) {
	return s.unitRepo.FindAll(branchID)
}
