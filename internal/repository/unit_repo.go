package repository

import (
	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitRepository interface {
	Create(unit *model.UnitOfMeasurement) error
	FindAll(branchID uuid.UUID) ([]model.UnitOfMeasurement, error)
	// FindByID joins the caller's transaction when tx is non-nil.
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.UnitOfMeasurement, error)
}

type unitRepo struct {
	db *gorm.DB
}

func NewUnitRepo(db *gorm.DB) UnitRepository {
	return &unitRepo{db}
}

func (r *unitRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *unitRepo) Create(unit *model.UnitOfMeasurement) error {
	return r.db.Create(unit).Error
}

func (r *unitRepo) FindAll(branchID uuid.UUID) ([]model.UnitOfMeasurement, error) {
	var units []model.UnitOfMeasurement
	err := r.db.Preload("BaseUnit").Where("branch_id = ?", branchID).Order("name ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.UnitOfMeasurement, error) {
	var unit model.UnitOfMeasurement
	err := r.conn(tx).First(&unit, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}
