package repository

import (
	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	Update(product *model.Product) error
	FindAll(branchID uuid.UUID) ([]model.Product, error)
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	// LockForUpdate loads the product row under FOR UPDATE so that the
	// read-deficit-decide-write sequence serializes per product.
	LockForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) FindAll(branchID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Unit").Where("branch_id = ?", branchID).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.conn(tx).Preload("Unit").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) LockForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.conn(tx).Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
