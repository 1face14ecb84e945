package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/repository"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/ws"
	"github.com/sujan-mishra001/Hoteru-sub000/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockStatus string

const (
	StatusOutOfStock StockStatus = "Out of Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusInStock    StockStatus = "In Stock"
)

// StockSnapshot is the live projection of one product's ledger
type StockSnapshot struct {
	ProductID uuid.UUID   `json:"product_id"`
	Quantity  float64     `json:"quantity"`
	Status    StockStatus `json:"status"`
}

// LowStockProduct decorates a product with its derived snapshot for reports
type LowStockProduct struct {
	Product  model.Product `json:"product"`
	Quantity float64       `json:"quantity"`
	Status   StockStatus   `json:"status"`
}

// AdjustmentRequest posts a signed manual correction to the ledger
type AdjustmentRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  float64   `json:"quantity" validate:"required"` // signed, folded as stored
	Reason    string    `json:"reason"`
	BranchID  uuid.UUID `json:"branch_id" validate:"uuid_required"`
}

// StockService derives stock from the transaction ledger. There is no stored
// counter anywhere: every read folds the product's full history.
type StockService interface {
	CurrentStock(tx *gorm.DB, productID uuid.UUID) (float64, error)
	Snapshot(productID uuid.UUID) (*StockSnapshot, error)
	SnapshotFor(tx *gorm.DB, product *model.Product) (*StockSnapshot, error)
	RecordAdjustment(req *AdjustmentRequest, userID, userName string) (*model.InventoryTransaction, error)
	GetAllTransactions(branchID uuid.UUID, limit, offset int) ([]model.InventoryTransaction, error)
	GetTransactionByID(id uuid.UUID) (*model.InventoryTransaction, error)
	StockMovement(branchID uuid.UUID, startDate, endDate time.Time) ([]repository.StockMovementData, error)
	LowStock(branchID uuid.UUID) ([]LowStockProduct, error)
}

type stockService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	hub         *ws.Hub
}

func NewStockService(productRepo repository.ProductRepository, txRepo repository.TransactionRepository, hub *ws.Hub) StockService {
	return &stockService{
		productRepo: productRepo,
		txRepo:      txRepo,
		hub:         hub,
	}
}

// CurrentStock folds the product's entire ledger. The result may be negative
// when history is internally inconsistent; the projection never clamps.
func (s *stockService) CurrentStock(tx *gorm.DB, productID uuid.UUID) (float64, error) {
	entries, err := s.txRepo.FindByProduct(tx, productID)
	if err != nil {
		return 0, err
	}

	var total float64
	for i := range entries {
		total += entries[i].StockDelta()
	}
	return total, nil
}

func (s *stockService) Snapshot(productID uuid.UUID) (*StockSnapshot, error) {
	product, err := s.productRepo.FindByID(nil, productID)
	if err != nil {
		return nil, errors.New("product not found")
	}
	return s.SnapshotFor(nil, product)
}

func (s *stockService) SnapshotFor(tx *gorm.DB, product *model.Product) (*StockSnapshot, error) {
	quantity, err := s.CurrentStock(tx, product.ID)
	if err != nil {
		return nil, err
	}
	return &StockSnapshot{
		ProductID: product.ID,
		Quantity:  quantity,
		Status:    statusFor(quantity, product.MinStock),
	}, nil
}

func statusFor(quantity, minStock float64) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= minStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

func (s *stockService) RecordAdjustment(req *AdjustmentRequest, userID, userName string) (*model.InventoryTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByID(nil, req.ProductID)
	if err != nil {
		return nil, errors.New("product not found")
	}

	entry := &model.InventoryTransaction{
		ProductID:       product.ID,
		Type:            model.TxAdjustment,
		Quantity:        req.Quantity,
		ReferenceNumber: req.Reason,
		BranchID:        req.BranchID,
	}
	entry.CreatedBy = userID
	entry.CreatedByUserID = &userID

	if err := s.txRepo.Append(nil, entry); err != nil {
		return nil, err
	}

	s.hub.Publish(ws.Event{
		Type:   "stock_update",
		Action: "adjustment",
		Payload: map[string]interface{}{
			"product_id": product.ID,
			"sku":        product.SKU,
			"quantity":   req.Quantity,
		},
		Actor:   map[string]string{"id": userID, "name": userName},
		Message: fmt.Sprintf("%s adjusted '%s' by %+g", userName, product.Name, req.Quantity),
	})

	return entry, nil
}

func (s *stockService) GetAllTransactions(branchID uuid.UUID, limit, offset int) ([]model.InventoryTransaction, error) {
	return s.txRepo.FindAll(branchID, limit, offset)
}

func (s *stockService) GetTransactionByID(id uuid.UUID) (*model.InventoryTransaction, error) {
	return s.txRepo.FindByID(id)
}

func (s *stockService) StockMovement(branchID uuid.UUID, startDate, endDate time.Time) ([]repository.StockMovementData, error) {
	return s.txRepo.GetStockMovement(branchID, startDate, endDate)
}

// LowStock lists every product of the branch whose derived status is not
// In Stock. O(products x ledger rows) per call, accepted for report reads.
func (s *stockService) LowStock(branchID uuid.UUID) ([]LowStockProduct, error) {
	products, err := s.productRepo.FindAll(branchID)
	if err != nil {
		return nil, err
	}

	var result []LowStockProduct
	for i := range products {
		quantity, err := s.CurrentStock(nil, products[i].ID)
		if err != nil {
			return nil, err
		}
		status := statusFor(quantity, products[i].MinStock)
		if status == StatusInStock {
			continue
		}
		result = append(result, LowStockProduct{
			Product:  products[i],
			Quantity: quantity,
			Status:   status,
		})
	}
	return result, nil
}
