package repository

import (
	"errors"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BOMRepository interface {
	Create(bom *model.BillOfMaterials) error
	Update(bom *model.BillOfMaterials) error
	FindAll(branchID uuid.UUID) ([]model.BillOfMaterials, error)
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.BillOfMaterials, error)
	// FindAutomaticProducing returns the automatic-mode active BOM producing
	// the product: an explicit output item row wins over the legacy
	// finished-product shorthand. Returns (nil, nil) when none exists.
	FindAutomaticProducing(tx *gorm.DB, productID, branchID uuid.UUID) (*model.BillOfMaterials, error)
	// FindAutomaticConsuming returns automatic-mode active BOMs that use the
	// product as an input. Used by the forward cascade after stock arrives.
	FindAutomaticConsuming(tx *gorm.DB, productID, branchID uuid.UUID) ([]model.BillOfMaterials, error)
	AttachMenuItems(bomID uuid.UUID, menuItemIDs []uuid.UUID) error
}

type bomRepo struct {
	db *gorm.DB
}

func NewBOMRepo(db *gorm.DB) BOMRepository {
	return &bomRepo{db}
}

func (r *bomRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *bomRepo) Create(bom *model.BillOfMaterials) error {
	return r.db.Create(bom).Error
}

func (r *bomRepo) Update(bom *model.BillOfMaterials) error {
	return r.db.Save(bom).Error
}

func (r *bomRepo) FindAll(branchID uuid.UUID) ([]model.BillOfMaterials, error) {
	var boms []model.BillOfMaterials
	err := r.db.Preload("Items").Preload("Items.Product").Preload("FinishedProduct").
		Where("branch_id = ?", branchID).
		Order("name ASC").
		Find(&boms).Error
	return boms, err
}

func (r *bomRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.BillOfMaterials, error) {
	var bom model.BillOfMaterials
	err := r.conn(tx).Preload("Items").Preload("FinishedProduct").First(&bom, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bom, nil
}

func (r *bomRepo) FindAutomaticProducing(tx *gorm.DB, productID, branchID uuid.UUID) (*model.BillOfMaterials, error) {
	db := r.conn(tx)

	var bom model.BillOfMaterials
	err := db.Preload("Items").
		Joins("JOIN bom_items ON bom_items.bom_id = bills_of_materials.id AND bom_items.deleted_at IS NULL").
		Where("bom_items.item_type = ? AND bom_items.product_id = ?", model.BOMItemOutput, productID).
		Where("bills_of_materials.mode = ? AND bills_of_materials.is_active = ?", model.ModeAutomatic, true).
		Where("bills_of_materials.branch_id = ?", branchID).
		First(&bom).Error
	if err == nil {
		return &bom, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Legacy shorthand fallback
	err = db.Preload("Items").
		Where("finished_product_id = ? AND mode = ? AND is_active = ? AND branch_id = ?",
			productID, model.ModeAutomatic, true, branchID).
		First(&bom).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bom, nil
}

func (r *bomRepo) FindAutomaticConsuming(tx *gorm.DB, productID, branchID uuid.UUID) ([]model.BillOfMaterials, error) {
	var boms []model.BillOfMaterials
	err := r.conn(tx).Preload("Items").
		Joins("JOIN bom_items ON bom_items.bom_id = bills_of_materials.id AND bom_items.deleted_at IS NULL").
		Where("bom_items.item_type = ? AND bom_items.product_id = ?", model.BOMItemInput, productID).
		Where("bills_of_materials.mode = ? AND bills_of_materials.is_active = ?", model.ModeAutomatic, true).
		Where("bills_of_materials.branch_id = ?", branchID).
		Distinct("bills_of_materials.*").
		Find(&boms).Error
	return boms, err
}

func (r *bomRepo) AttachMenuItems(bomID uuid.UUID, menuItemIDs []uuid.UUID) error {
	var bom model.BillOfMaterials
	if err := r.db.First(&bom, "id = ?", bomID).Error; err != nil {
		return err
	}
	if bom.Kind != model.BOMKindMenu {
		return errors.New("only menu-kind BOMs can be attached to menu items")
	}

	var items []model.MenuItem
	if err := r.db.Find(&items, "id IN ?", menuItemIDs).Error; err != nil {
		return err
	}
	return r.db.Model(&bom).Association("MenuItems").Replace(items)
}
