package repository

import (
	"time"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	// Append writes one ledger row. There is no Update or Delete: the ledger
	// is append-only and reversals are new rows.
	Append(tx *gorm.DB, entry *model.InventoryTransaction) error
	FindByProduct(tx *gorm.DB, productID uuid.UUID) ([]model.InventoryTransaction, error)
	FindAll(branchID uuid.UUID, limit, offset int) ([]model.InventoryTransaction, error)
	FindByID(id uuid.UUID) (*model.InventoryTransaction, error)
	GetStockMovement(branchID uuid.UUID, startDate, endDate time.Time) ([]StockMovementData, error)
}

// StockMovementData is one day of aggregated in/out volume for the chart
type StockMovementData struct {
	Date     string  `json:"date"`
	Inbound  float64 `json:"inbound"`
	Outbound float64 `json:"outbound"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *transactionRepo) Append(tx *gorm.DB, entry *model.InventoryTransaction) error {
	return r.conn(tx).Create(entry).Error
}

func (r *transactionRepo) FindByProduct(tx *gorm.DB, productID uuid.UUID) ([]model.InventoryTransaction, error) {
	var entries []model.InventoryTransaction
	err := r.conn(tx).Where("product_id = ?", productID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *transactionRepo) FindAll(branchID uuid.UUID, limit, offset int) ([]model.InventoryTransaction, error) {
	var entries []model.InventoryTransaction
	q := r.db.Preload("Product").Preload("CreatedByUser").
		Where("branch_id = ?", branchID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&entries).Error
	return entries, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.InventoryTransaction, error) {
	var entry model.InventoryTransaction
	err := r.db.Preload("Product").Preload("CreatedByUser").First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *transactionRepo) GetStockMovement(branchID uuid.UUID, startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.InventoryTransaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type IN ('IN','Add','Production_IN') THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type IN ('OUT','Remove','Production_OUT') THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("branch_id = ? AND created_at BETWEEN ? AND ?", branchID, startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
