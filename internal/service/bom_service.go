package service

import (
	"errors"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/repository"
	"github.com/sujan-mishra001/Hoteru-sub000/pkg/validator"

	"github.com/google/uuid"
)

// BOMService manages recipe definitions. Production runs never go through
// here; they belong to ProductionService.
type BOMService interface {
	CreateBOM(req *model.BillOfMaterials, userID string) error
	GetAllBOMs(branchID uuid.UUID) ([]model.BillOfMaterials, error)
	SetActive(id uuid.UUID, active bool, userID string) (*model.BillOfMaterials, error)
	AttachMenuItems(bomID uuid.UUID, menuItemIDs []uuid.UUID) error
}

type bomService struct {
	bomRepo     repository.BOMRepository
	productRepo repository.ProductRepository
}

func NewBOMService(bomRepo repository.BOMRepository, productRepo repository.ProductRepository) BOMService {
	return &bomService{bomRepo: bomRepo, productRepo: productRepo}
}

func (s *bomService) CreateBOM(req *model.BillOfMaterials, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	hasOutput := req.FinishedProductID != nil
	for _, item := range req.Items {
		if item.ItemType == model.BOMItemOutput {
			hasOutput = true
		}
	}
	if !hasOutput {
		return errors.New("BOM needs an output item or a finished product")
	}
	if req.FinishedProductID != nil && len(req.Outputs()) == 0 && req.OutputQuantity <= 0 {
		return errors.New("finished-product BOM needs a positive output quantity")
	}

	// Referenced products must exist; a dangling recipe row would silently
	// break resolution later.
	for _, item := range req.Items {
		if _, err := s.productRepo.FindByID(nil, item.ProductID); err != nil {
			return errors.New("BOM item references unknown product")
		}
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.bomRepo.Create(req)
}

func (s *bomService) GetAllBOMs(branchID uuid.UUID) ([]model.BillOfMaterials, error) {
	return s.bomRepo.FindAll(branchID)
}

func (s *bomService) SetActive(id uuid.UUID, active bool, userID string) (*model.BillOfMaterials, error) {
	bom, err := s.bomRepo.FindByID(nil, id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, errors.New("BOM not found")
	}

	bom.IsActive = active
	bom.UpdatedBy = userID
	if err := s.bomRepo.Update(bom); err != nil {
		return nil, err
	}
	return bom, nil
}

func (s *bomService) AttachMenuItems(bomID uuid.UUID, menuItemIDs []uuid.UUID) error {
	return s.bomRepo.AttachMenuItems(bomID, menuItemIDs)
}
