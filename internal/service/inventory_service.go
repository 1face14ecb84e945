package service

import (
	"errors"
	"fmt"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/repository"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/ws"
	"github.com/sujan-mishra001/Hoteru-sub000/pkg/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned by DeductForSale only when the
// negative-stock sale policy is disabled and the deficit cannot be produced.
var ErrInsufficientStock = errors.New("insufficient stock")

// PurchaseReceiptRequest records incoming goods from a purchase bill line
type PurchaseReceiptRequest struct {
	ProductID       uuid.UUID  `json:"product_id" validate:"uuid_required"`
	Quantity        float64    `json:"quantity" validate:"required,gt=0"`
	UnitID          *uuid.UUID `json:"unit_id,omitempty"`
	ReferenceNumber string     `json:"reference_number"`
	ReferenceID     *uuid.UUID `json:"reference_id,omitempty"`
	BranchID        uuid.UUID  `json:"branch_id" validate:"uuid_required"`
}

// SaleDeductionRequest deducts stock consumed by order fulfillment
type SaleDeductionRequest struct {
	ProductID       uuid.UUID  `json:"product_id" validate:"uuid_required"`
	Quantity        float64    `json:"quantity" validate:"required,gt=0"`
	UnitID          *uuid.UUID `json:"unit_id,omitempty"`
	ReferenceNumber string     `json:"reference_number"`
	ReferenceID     *uuid.UUID `json:"reference_id,omitempty"`
	SessionID       *uuid.UUID `json:"session_id,omitempty"`
	BranchID        uuid.UUID  `json:"branch_id" validate:"uuid_required"`
}

// InventoryService is the entry surface the order-fulfillment and
// purchase-receiving flows call into.
type InventoryService interface {
	// RecordPurchaseReceipt appends an IN row, then lets the forward cascade
	// un-block automatic chains that were waiting for this material.
	RecordPurchaseReceipt(req *PurchaseReceiptRequest, userID, userName, userEmail string) (*model.InventoryTransaction, error)

	// DeductForSale ensures availability first (triggering production where
	// an automatic BOM exists), then appends the OUT row. Under the default
	// policy an unresolvable deficit does not block the sale: stock simply
	// goes negative and surfaces as Out of Stock.
	DeductForSale(req *SaleDeductionRequest, userID, userName, userEmail string) (*model.InventoryTransaction, error)

	GetStockSnapshot(productID uuid.UUID) (*StockSnapshot, error)

	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	GetAllProducts(branchID uuid.UUID) ([]ProductWithStock, error)
}

// ProductWithStock decorates a product row with its live projection
type ProductWithStock struct {
	model.Product
	CurrentStock float64     `json:"current_stock"`
	StockStatus  StockStatus `json:"stock_status"`
}

type inventoryService struct {
	db                TxRunner
	productRepo       repository.ProductRepository
	txRepo            repository.TransactionRepository
	stock             StockService
	production        ProductionService
	converter         UnitConverter
	hub               *ws.Hub
	allowNegativeSale bool
}

func NewInventoryService(
	db TxRunner,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	stock StockService,
	production ProductionService,
	converter UnitConverter,
	hub *ws.Hub,
	allowNegativeSale bool,
) InventoryService {
	return &inventoryService{
		db:                db,
		productRepo:       productRepo,
		txRepo:            txRepo,
		stock:             stock,
		production:        production,
		converter:         converter,
		hub:               hub,
		allowNegativeSale: allowNegativeSale,
	}
}

func validationError(errs []*validator.ErrorResponse) error {
	firstErr := errs[0]
	return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
}

func (s *inventoryService) RecordPurchaseReceipt(req *PurchaseReceiptRequest, userID, userName, userEmail string) (*model.InventoryTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var entry *model.InventoryTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.LockForUpdate(tx, req.ProductID)
		if err != nil {
			return errors.New("product not found")
		}

		qty := s.converter.Convert(tx, req.Quantity, req.UnitID, product.UnitID)
		entry = &model.InventoryTransaction{
			ProductID:       product.ID,
			Type:            model.TxIn,
			Quantity:        qty,
			ReferenceNumber: req.ReferenceNumber,
			ReferenceID:     req.ReferenceID,
			BranchID:        req.BranchID,
		}
		entry.CreatedBy = userID
		entry.CreatedByUserID = &userID
		if err := s.txRepo.Append(tx, entry); err != nil {
			return err
		}

		// New raw material may un-block downstream automatic chains.
		return s.production.CascadeFromSupply(tx, product.ID, req.BranchID, userID)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{
		Type:   "stock_update",
		Action: "purchase_received",
		Payload: map[string]interface{}{
			"product_id": req.ProductID,
			"quantity":   entry.Quantity,
			"reference":  req.ReferenceNumber,
		},
		Actor:   map[string]string{"id": userID, "name": userName, "email": userEmail},
		Message: fmt.Sprintf("%s received %g units (ref %s)", userName, entry.Quantity, req.ReferenceNumber),
	})

	return entry, nil
}

func (s *inventoryService) DeductForSale(req *SaleDeductionRequest, userID, userName, userEmail string) (*model.InventoryTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var (
		entry    *model.InventoryTransaction
		product  *model.Product
		qty      float64
		resolved bool
	)
	// Resolution and the sale's OUT row share one transaction: either the
	// cascade and the deduction both land, or neither does.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.productRepo.LockForUpdate(tx, req.ProductID)
		if err != nil {
			return errors.New("product not found")
		}
		qty = s.converter.Convert(tx, req.Quantity, req.UnitID, product.UnitID)

		resolved, err = s.production.EnsureAvailability(tx, product.ID, qty, req.BranchID, userID)
		if err != nil {
			return err
		}
		if !resolved {
			if !s.allowNegativeSale {
				return ErrInsufficientStock
			}
			log.Warn().
				Str("product_id", product.ID.String()).
				Float64("quantity", qty).
				Msg("sale proceeds on unresolved deficit, stock goes negative")
		}

		entry = &model.InventoryTransaction{
			ProductID:       product.ID,
			Type:            model.TxOut,
			Quantity:        qty,
			ReferenceNumber: req.ReferenceNumber,
			ReferenceID:     req.ReferenceID,
			SessionID:       req.SessionID,
			BranchID:        req.BranchID,
		}
		entry.CreatedBy = userID
		entry.CreatedByUserID = &userID
		return s.txRepo.Append(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{
		Type:   "stock_update",
		Action: "sale_deducted",
		Payload: map[string]interface{}{
			"product_id": product.ID,
			"sku":        product.SKU,
			"quantity":   qty,
			"resolved":   resolved,
		},
		Actor:   map[string]string{"id": userID, "name": userName, "email": userEmail},
		Message: fmt.Sprintf("%s deducted %g x '%s' for sale %s", userName, qty, product.Name, req.ReferenceNumber),
	})

	return entry, nil
}

func (s *inventoryService) GetStockSnapshot(productID uuid.UUID) (*StockSnapshot, error) {
	return s.stock.Snapshot(productID)
}

func (s *inventoryService) CreateProduct(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return errors.New("SKU already exists")
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	return s.productRepo.Create(req)
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(nil, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	existing.Name = req.Name
	existing.SKU = req.SKU
	existing.Category = req.Category
	existing.Type = req.Type
	existing.UnitID = req.UnitID
	existing.MinStock = req.MinStock
	existing.UpdatedBy = userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *inventoryService) GetAllProducts(branchID uuid.UUID) ([]ProductWithStock, error) {
	products, err := s.productRepo.FindAll(branchID)
	if err != nil {
		return nil, err
	}

	result := make([]ProductWithStock, 0, len(products))
	for i := range products {
		snapshot, err := s.stock.SnapshotFor(nil, &products[i])
		if err != nil {
			return nil, err
		}
		result = append(result, ProductWithStock{
			Product:      products[i],
			CurrentStock: snapshot.Quantity,
			StockStatus:  snapshot.Status,
		})
	}
	return result, nil
}
