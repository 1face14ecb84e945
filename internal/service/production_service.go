package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/repository"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// errResolutionFailed aborts the surrounding transaction so that every ledger
// row of a failed cascade rolls back together. It never escapes the service.
var errResolutionFailed = errors.New("resolution failed")

const maxNumberAttempts = 50

// ProductionService resolves product deficits against the BOM graph and
// commits production runs onto the ledger.
type ProductionService interface {
	// EnsureAvailability makes at least requiredQty of the product available,
	// recursively producing it and its inputs through automatic-mode BOMs.
	// Joins the caller's transaction when tx is non-nil, opening a savepoint
	// so the triggering write and the cascade commit as one unit of work.
	// Returns false when the deficit cannot be covered; in that case no
	// ledger row of the attempted cascade survives.
	EnsureAvailability(tx *gorm.DB, productID uuid.UUID, requiredQty float64, branchID uuid.UUID, actorID string) (bool, error)

	// CascadeFromSupply reacts to new stock of a product: automatic BOMs
	// consuming it whose outputs are in backlog (negative derived stock) get
	// produced. Runs on the caller's transaction.
	CascadeFromSupply(tx *gorm.DB, productID, branchID uuid.UUID, actorID string) error

	// RunManualProduction executes a staff-triggered run of a manual-mode
	// BOM: inputs are ensured first, then the run is committed.
	RunManualProduction(bomID uuid.UUID, batches float64, branchID uuid.UUID, actorID, actorName string) (*model.BatchProduction, error)

	GetAllProductions(branchID uuid.UUID, startDate, endDate time.Time) ([]model.BatchProduction, error)
}

type productionService struct {
	db             TxRunner
	productRepo    repository.ProductRepository
	bomRepo        repository.BOMRepository
	txRepo         repository.TransactionRepository
	productionRepo repository.ProductionRepository
	converter      UnitConverter
	stock          StockService
	hub            *ws.Hub
}

func NewProductionService(
	db TxRunner,
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
	txRepo repository.TransactionRepository,
	productionRepo repository.ProductionRepository,
	converter UnitConverter,
	stock StockService,
	hub *ws.Hub,
) ProductionService {
	return &productionService{
		db:             db,
		productRepo:    productRepo,
		bomRepo:        bomRepo,
		txRepo:         txRepo,
		productionRepo: productionRepo,
		converter:      converter,
		stock:          stock,
		hub:            hub,
	}
}

func (s *productionService) EnsureAvailability(tx *gorm.DB, productID uuid.UUID, requiredQty float64, branchID uuid.UUID, actorID string) (bool, error) {
	resolved := false
	err := s.branch(tx, func(btx *gorm.DB) error {
		ok, err := s.ensure(btx, productID, requiredQty, branchID, actorID, map[uuid.UUID]bool{})
		if err != nil {
			return err
		}
		resolved = ok
		if !ok {
			// Roll back rows committed for sibling branches of the failed tree.
			return errResolutionFailed
		}
		return nil
	})
	if errors.Is(err, errResolutionFailed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return resolved, nil
}

// branch runs fc on a savepoint of the caller's transaction, or on a fresh
// transaction when there is none, so a failed resolution tree rolls back
// without taking the surrounding work with it.
func (s *productionService) branch(tx *gorm.DB, fc func(tx *gorm.DB) error) error {
	if tx != nil {
		return tx.Transaction(fc)
	}
	return s.db.Transaction(fc)
}

// ensure is the recursive resolver. visited holds the product IDs of the
// in-progress call chain; a product reappearing means the BOM graph cycles
// and that branch fails instead of recursing forever.
func (s *productionService) ensure(tx *gorm.DB, productID uuid.UUID, requiredQty float64, branchID uuid.UUID, actorID string, visited map[uuid.UUID]bool) (bool, error) {
	if visited[productID] {
		log.Warn().Str("product_id", productID.String()).Msg("cyclic BOM graph, failing branch")
		return false, nil
	}
	visited[productID] = true
	defer delete(visited, productID)

	// Row lock serializes concurrent read-decide-write sequences per product.
	product, err := s.productRepo.LockForUpdate(tx, productID)
	if err != nil {
		return false, err
	}

	stock, err := s.stock.CurrentStock(tx, productID)
	if err != nil {
		return false, err
	}
	if stock >= requiredQty {
		return true, nil
	}
	deficit := requiredQty - stock

	bom, err := s.bomRepo.FindAutomaticProducing(tx, productID, branchID)
	if err != nil {
		return false, err
	}
	if bom == nil {
		return false, nil
	}
	if len(bom.Inputs()) == 0 {
		// Degenerate recipe, cannot legally be auto-produced.
		return false, nil
	}

	yield := s.yieldPerBatch(tx, bom, product)
	if yield <= 0 {
		return false, nil
	}
	batches := deficit / yield // fractional batches are fine

	for _, item := range bom.Inputs() {
		input, err := s.productRepo.FindByID(tx, item.ProductID)
		if err != nil {
			return false, err
		}
		need := s.converter.Convert(tx, item.Quantity*batches, item.UnitID, input.UnitID)
		ok, err := s.ensure(tx, item.ProductID, need, branchID, actorID, visited)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	if _, err := s.commitProduction(tx, bom, batches, branchID, actorID, visited); err != nil {
		return false, err
	}
	return true, nil
}

// yieldPerBatch returns how much of the product one batch yields, in the
// product's own unit. Multi-output BOMs carry it on the matching output row,
// legacy BOMs on output_quantity.
func (s *productionService) yieldPerBatch(tx *gorm.DB, bom *model.BillOfMaterials, product *model.Product) float64 {
	if out := bom.OutputFor(product.ID); out != nil {
		return s.converter.Convert(tx, out.Quantity, out.UnitID, product.UnitID)
	}
	return bom.OutputQuantity
}

// commitProduction writes one production run: the BatchProduction row,
// Production_IN rows per output, Production_OUT rows per input, then the
// forward cascade per output. Inputs are assumed already ensured.
func (s *productionService) commitProduction(tx *gorm.DB, bom *model.BillOfMaterials, batches float64, branchID uuid.UUID, actorID string, visited map[uuid.UUID]bool) (*model.BatchProduction, error) {
	number, err := s.nextProductionNumber(tx, branchID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	run := &model.BatchProduction{
		ProductionNumber:  number,
		BOMID:             bom.ID,
		Quantity:          batches,
		Status:            model.ProductionCompleted,
		FinishedProductID: bom.FinishedProductID,
		BranchID:          branchID,
		CompletedAt:       &now,
	}
	run.CreatedBy = actorID
	run.UpdatedBy = actorID
	if err := s.productionRepo.Create(tx, run); err != nil {
		return nil, err
	}

	outputs := bom.Outputs()
	if len(outputs) == 0 && bom.FinishedProductID != nil {
		// Legacy shorthand: single finished product, yield on the BOM itself.
		outputs = []model.BOMItem{{ProductID: *bom.FinishedProductID, Quantity: bom.OutputQuantity}}
	}

	for _, out := range outputs {
		product, err := s.productRepo.FindByID(tx, out.ProductID)
		if err != nil {
			return nil, err
		}
		qty := s.converter.Convert(tx, out.Quantity*batches, out.UnitID, product.UnitID)
		if err := s.appendLedger(tx, out.ProductID, model.TxProductionIn, qty, number, &run.ID, branchID, actorID); err != nil {
			return nil, err
		}
	}

	for _, in := range bom.Inputs() {
		product, err := s.productRepo.FindByID(tx, in.ProductID)
		if err != nil {
			return nil, err
		}
		qty := s.converter.Convert(tx, in.Quantity*batches, in.UnitID, product.UnitID)
		if err := s.appendLedger(tx, in.ProductID, model.TxProductionOut, qty, number, &run.ID, branchID, actorID); err != nil {
			return nil, err
		}
	}

	// Forward cascade: each output may itself feed another automatic chain
	// that was blocked waiting for it. Runs after the input OUT rows so the
	// cascade folds a consistent ledger.
	for _, out := range outputs {
		if err := s.cascade(tx, out.ProductID, branchID, actorID, visited); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("production_number", number).
		Str("bom", bom.Name).
		Float64("batches", batches).
		Msg("production run committed")

	s.hub.Publish(ws.Event{
		Type:   "production_completed",
		Action: "production_run",
		Payload: map[string]interface{}{
			"production_number": number,
			"bom_id":            bom.ID,
			"batches":           batches,
		},
		Actor:   map[string]string{"id": actorID},
		Message: fmt.Sprintf("Production %s completed (%g batches of %s)", number, batches, bom.Name),
	})

	return run, nil
}

func (s *productionService) appendLedger(tx *gorm.DB, productID uuid.UUID, txType model.TransactionType, qty float64, reference string, referenceID *uuid.UUID, branchID uuid.UUID, actorID string) error {
	entry := &model.InventoryTransaction{
		ProductID:       productID,
		Type:            txType,
		Quantity:        qty,
		ReferenceNumber: reference,
		ReferenceID:     referenceID,
		BranchID:        branchID,
	}
	entry.CreatedBy = actorID
	if actorID != "" {
		entry.CreatedByUserID = &actorID
	}
	return s.txRepo.Append(tx, entry)
}

func (s *productionService) CascadeFromSupply(tx *gorm.DB, productID, branchID uuid.UUID, actorID string) error {
	return s.cascade(tx, productID, branchID, actorID, map[uuid.UUID]bool{})
}

// cascade finds automatic BOMs consuming the product and, for each of their
// outputs sitting in backlog (negative derived stock), produces up to zero.
// Each limb runs on its own savepoint: one that cannot resolve rolls back
// every row it wrote (intermediate productions included) and is skipped, not
// an error. The backlog simply stays until more supply arrives.
func (s *productionService) cascade(tx *gorm.DB, productID, branchID uuid.UUID, actorID string, visited map[uuid.UUID]bool) error {
	consumers, err := s.bomRepo.FindAutomaticConsuming(tx, productID, branchID)
	if err != nil {
		return err
	}

	for i := range consumers {
		bom := &consumers[i]

		outputIDs := make([]uuid.UUID, 0, 1)
		for _, out := range bom.Outputs() {
			outputIDs = append(outputIDs, out.ProductID)
		}
		if len(outputIDs) == 0 && bom.FinishedProductID != nil {
			outputIDs = append(outputIDs, *bom.FinishedProductID)
		}

		for _, outID := range outputIDs {
			if visited[outID] {
				continue
			}
			stock, err := s.stock.CurrentStock(tx, outID)
			if err != nil {
				return err
			}
			if stock >= 0 {
				continue
			}
			err = s.branch(tx, func(btx *gorm.DB) error {
				ok, err := s.ensure(btx, outID, 0, branchID, actorID, visited)
				if err != nil {
					return err
				}
				if !ok {
					return errResolutionFailed
				}
				return nil
			})
			if errors.Is(err, errResolutionFailed) {
				continue
			}
			if err != nil {
				return err
			}
			log.Info().
				Str("product_id", outID.String()).
				Str("trigger_product", productID.String()).
				Msg("forward cascade filled backlog")
		}
	}
	return nil
}

func (s *productionService) RunManualProduction(bomID uuid.UUID, batches float64, branchID uuid.UUID, actorID, actorName string) (*model.BatchProduction, error) {
	if batches <= 0 {
		return nil, errors.New("batch quantity must be positive")
	}

	var run *model.BatchProduction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		bom, err := s.bomRepo.FindByID(tx, bomID)
		if err != nil {
			return err
		}
		if bom == nil {
			return errors.New("BOM not found")
		}
		if !bom.IsActive {
			return errors.New("BOM is inactive")
		}
		if len(bom.Inputs()) == 0 {
			return errors.New("BOM has no input components")
		}

		visited := map[uuid.UUID]bool{}
		for _, item := range bom.Inputs() {
			input, err := s.productRepo.FindByID(tx, item.ProductID)
			if err != nil {
				return err
			}
			need := s.converter.Convert(tx, item.Quantity*batches, item.UnitID, input.UnitID)
			ok, err := s.ensure(tx, item.ProductID, need, branchID, actorID, visited)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("insufficient stock of input '%s'", input.Name)
			}
		}

		run, err = s.commitProduction(tx, bom, batches, branchID, actorID, visited)
		return err
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// nextProductionNumber allocates AUTO-YYYYMMDD-#### from the branch's count
// of runs today, re-querying on collision until a free slot is found.
func (s *productionService) nextProductionNumber(tx *gorm.DB, branchID uuid.UUID) (string, error) {
	day := time.Now()
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		count, err := s.productionRepo.CountForDay(tx, branchID, day)
		if err != nil {
			return "", err
		}
		number := fmt.Sprintf("AUTO-%s-%04d", day.Format("20060102"), count+1+int64(attempt))
		exists, err := s.productionRepo.NumberExists(tx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", errors.New("could not allocate a unique production number")
}

func (s *productionService) GetAllProductions(branchID uuid.UUID, startDate, endDate time.Time) ([]model.BatchProduction, error) {
	return s.productionRepo.FindAll(branchID, startDate, endDate)
}
