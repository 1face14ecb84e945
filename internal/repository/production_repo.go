package repository

import (
	"errors"
	"time"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductionRepository interface {
	Create(tx *gorm.DB, production *model.BatchProduction) error
	// CountForDay counts production runs of the branch on the given calendar
	// day, used to allocate the next date-scoped sequence number.
	CountForDay(tx *gorm.DB, branchID uuid.UUID, day time.Time) (int64, error)
	NumberExists(tx *gorm.DB, number string) (bool, error)
	FindAll(branchID uuid.UUID, startDate, endDate time.Time) ([]model.BatchProduction, error)
}

type productionRepo struct {
	db *gorm.DB
}

func NewProductionRepo(db *gorm.DB) ProductionRepository {
	return &productionRepo{db}
}

func (r *productionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *productionRepo) Create(tx *gorm.DB, production *model.BatchProduction) error {
	return r.conn(tx).Create(production).Error
}

func (r *productionRepo) CountForDay(tx *gorm.DB, branchID uuid.UUID, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.conn(tx).Model(&model.BatchProduction{}).
		Where("branch_id = ? AND created_at >= ? AND created_at < ?", branchID, start, end).
		Count(&count).Error
	return count, err
}

func (r *productionRepo) NumberExists(tx *gorm.DB, number string) (bool, error) {
	var production model.BatchProduction
	err := r.conn(tx).Select("id").First(&production, "production_number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *productionRepo) FindAll(branchID uuid.UUID, startDate, endDate time.Time) ([]model.BatchProduction, error) {
	var productions []model.BatchProduction
	err := r.db.Preload("BOM").Preload("FinishedProduct").
		Where("branch_id = ? AND created_at BETWEEN ? AND ?", branchID, startDate, endDate).
		Order("created_at DESC").
		Find(&productions).Error
	return productions, err
}
