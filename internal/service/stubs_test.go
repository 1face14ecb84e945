package service

import (
	"database/sql"
	"time"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory stub store shared by the repository stubs ──────────────────────

type stubStore struct {
	products    map[uuid.UUID]*model.Product
	units       map[uuid.UUID]*model.UnitOfMeasurement
	boms        []*model.BillOfMaterials
	ledger      []model.InventoryTransaction
	productions []model.BatchProduction
}

func newStubStore() *stubStore {
	return &stubStore{
		products: make(map[uuid.UUID]*model.Product),
		units:    make(map[uuid.UUID]*model.UnitOfMeasurement),
	}
}

func (s *stubStore) addProduct(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.products[p.ID] = p
	return p
}

func (s *stubStore) addUnit(u *model.UnitOfMeasurement) *model.UnitOfMeasurement {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.units[u.ID] = u
	return u
}

func (s *stubStore) addBOM(b *model.BillOfMaterials) *model.BillOfMaterials {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.boms = append(s.boms, b)
	return b
}

func (s *stubStore) appendLedger(productID uuid.UUID, txType model.TransactionType, qty float64) {
	entry := model.InventoryTransaction{ProductID: productID, Type: txType, Quantity: qty}
	entry.ID = uuid.New()
	s.ledger = append(s.ledger, entry)
}

func (s *stubStore) ledgerFor(productID uuid.UUID) []model.InventoryTransaction {
	var entries []model.InventoryTransaction
	for _, e := range s.ledger {
		if e.ProductID == productID {
			entries = append(entries, e)
		}
	}
	return entries
}

// ── Transaction runner emulating commit/rollback over the stub store ─────────

// stubTxRunner snapshots the append-only slices around the callback and
// truncates them on error. Nested calls behave like savepoints: an inner
// rollback discards only rows written since its own snapshot. unitsOfWork
// counts outermost calls so tests can assert what commits together.
type stubTxRunner struct {
	store       *stubStore
	depth       int
	unitsOfWork int
}

func (r *stubTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	r.depth++
	if r.depth == 1 {
		r.unitsOfWork++
	}
	defer func() { r.depth-- }()

	ledgerLen := len(r.store.ledger)
	productionsLen := len(r.store.productions)

	if err := fc(nil); err != nil {
		r.store.ledger = r.store.ledger[:ledgerLen]
		r.store.productions = r.store.productions[:productionsLen]
		return err
	}
	return nil
}

// ── Repository stubs ─────────────────────────────────────────────────────────

type stubProductRepo struct{ store *stubStore }

func (r *stubProductRepo) Create(p *model.Product) error {
	r.store.addProduct(p)
	return nil
}

func (r *stubProductRepo) Update(p *model.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindAll(branchID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	for _, p := range r.store.products {
		if p.BranchID == branchID {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (r *stubProductRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(sku string) (*model.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) LockForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(tx, id)
}

type stubUnitRepo struct{ store *stubStore }

func (r *stubUnitRepo) Create(u *model.UnitOfMeasurement) error {
	r.store.addUnit(u)
	return nil
}

func (r *stubUnitRepo) FindAll(branchID uuid.UUID) ([]model.UnitOfMeasurement, error) {
	var units []model.UnitOfMeasurement
	for _, u := range r.store.units {
		if u.BranchID == branchID {
			units = append(units, *u)
		}
	}
	return units, nil
}

func (r *stubUnitRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*model.UnitOfMeasurement, error) {
	u, ok := r.store.units[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type stubTransactionRepo struct{ store *stubStore }

func (r *stubTransactionRepo) Append(_ *gorm.DB, entry *model.InventoryTransaction) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.store.ledger = append(r.store.ledger, *entry)
	return nil
}

func (r *stubTransactionRepo) FindByProduct(_ *gorm.DB, productID uuid.UUID) ([]model.InventoryTransaction, error) {
	return r.store.ledgerFor(productID), nil
}

func (r *stubTransactionRepo) FindAll(branchID uuid.UUID, limit, offset int) ([]model.InventoryTransaction, error) {
	return r.store.ledger, nil
}

func (r *stubTransactionRepo) FindByID(id uuid.UUID) (*model.InventoryTransaction, error) {
	for i := range r.store.ledger {
		if r.store.ledger[i].ID == id {
			return &r.store.ledger[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTransactionRepo) GetStockMovement(branchID uuid.UUID, startDate, endDate time.Time) ([]repository.StockMovementData, error) {
	return nil, nil
}

type stubBOMRepo struct{ store *stubStore }

func (r *stubBOMRepo) Create(b *model.BillOfMaterials) error {
	r.store.addBOM(b)
	return nil
}

func (r *stubBOMRepo) Update(b *model.BillOfMaterials) error { return nil }

func (r *stubBOMRepo) FindAll(branchID uuid.UUID) ([]model.BillOfMaterials, error) {
	var boms []model.BillOfMaterials
	for _, b := range r.store.boms {
		if b.BranchID == branchID {
			boms = append(boms, *b)
		}
	}
	return boms, nil
}

func (r *stubBOMRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*model.BillOfMaterials, error) {
	for _, b := range r.store.boms {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *stubBOMRepo) FindAutomaticProducing(_ *gorm.DB, productID, branchID uuid.UUID) (*model.BillOfMaterials, error) {
	// Explicit output rows win over the legacy shorthand
	for _, b := range r.store.boms {
		if b.Mode != model.ModeAutomatic || !b.IsActive || b.BranchID != branchID {
			continue
		}
		if b.OutputFor(productID) != nil {
			return b, nil
		}
	}
	for _, b := range r.store.boms {
		if b.Mode != model.ModeAutomatic || !b.IsActive || b.BranchID != branchID {
			continue
		}
		if b.FinishedProductID != nil && *b.FinishedProductID == productID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *stubBOMRepo) FindAutomaticConsuming(_ *gorm.DB, productID, branchID uuid.UUID) ([]model.BillOfMaterials, error) {
	var boms []model.BillOfMaterials
	for _, b := range r.store.boms {
		if b.Mode != model.ModeAutomatic || !b.IsActive || b.BranchID != branchID {
			continue
		}
		for _, item := range b.Inputs() {
			if item.ProductID == productID {
				boms = append(boms, *b)
				break
			}
		}
	}
	return boms, nil
}

func (r *stubBOMRepo) AttachMenuItems(bomID uuid.UUID, menuItemIDs []uuid.UUID) error { return nil }

type stubProductionRepo struct{ store *stubStore }

func (r *stubProductionRepo) Create(_ *gorm.DB, production *model.BatchProduction) error {
	if production.ID == uuid.Nil {
		production.ID = uuid.New()
	}
	if production.CreatedAt.IsZero() {
		production.CreatedAt = time.Now()
	}
	r.store.productions = append(r.store.productions, *production)
	return nil
}

func (r *stubProductionRepo) CountForDay(_ *gorm.DB, branchID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	for _, p := range r.store.productions {
		if p.BranchID == branchID && sameDay(p.CreatedAt, day) {
			count++
		}
	}
	return count, nil
}

func (r *stubProductionRepo) NumberExists(_ *gorm.DB, number string) (bool, error) {
	for _, p := range r.store.productions {
		if p.ProductionNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductionRepo) FindAll(branchID uuid.UUID, startDate, endDate time.Time) ([]model.BatchProduction, error) {
	return r.store.productions, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ── World builder used across the service tests ──────────────────────────────

type testWorld struct {
	store      *stubStore
	runner     *stubTxRunner
	units      *stubUnitRepo
	products   *stubProductRepo
	txs        *stubTransactionRepo
	boms       *stubBOMRepo
	prods      *stubProductionRepo
	converter  UnitConverter
	stock      StockService
	production ProductionService
	branchID   uuid.UUID
}

func newTestWorld() *testWorld {
	store := newStubStore()
	w := &testWorld{
		store:    store,
		runner:   &stubTxRunner{store: store},
		units:    &stubUnitRepo{store: store},
		products: &stubProductRepo{store: store},
		txs:      &stubTransactionRepo{store: store},
		boms:     &stubBOMRepo{store: store},
		prods:    &stubProductionRepo{store: store},
		branchID: uuid.New(),
	}
	w.converter = NewUnitConverter(w.units)
	w.stock = NewStockService(w.products, w.txs, nil)
	w.production = NewProductionService(w.runner, w.products, w.boms, w.txs, w.prods, w.converter, w.stock, nil)
	return w
}

func (w *testWorld) product(sku, name string, minStock float64) *model.Product {
	return w.store.addProduct(&model.Product{
		SKU:      sku,
		Name:     name,
		MinStock: minStock,
		BranchID: w.branchID,
	})
}

func (w *testWorld) unit(name, abbr string, baseID *uuid.UUID, factor float64) *model.UnitOfMeasurement {
	return w.store.addUnit(&model.UnitOfMeasurement{
		Name:             name,
		Abbreviation:     abbr,
		BaseUnitID:       baseID,
		ConversionFactor: factor,
		BranchID:         w.branchID,
	})
}

// automaticBOM registers an active automatic-mode BOM with explicit
// input/output item rows.
func (w *testWorld) automaticBOM(name string, items ...model.BOMItem) *model.BillOfMaterials {
	bom := &model.BillOfMaterials{
		Name:     name,
		IsActive: true,
		Mode:     model.ModeAutomatic,
		Kind:     model.BOMKindProduction,
		BranchID: w.branchID,
		Items:    items,
	}
	return w.store.addBOM(bom)
}

func output(productID uuid.UUID, qty float64) model.BOMItem {
	return model.BOMItem{ItemType: model.BOMItemOutput, ProductID: productID, Quantity: qty}
}

func input(productID uuid.UUID, qty float64) model.BOMItem {
	return model.BOMItem{ItemType: model.BOMItemInput, ProductID: productID, Quantity: qty}
}
