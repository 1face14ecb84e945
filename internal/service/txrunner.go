package service

import (
	"database/sql"

	"gorm.io/gorm"
)

// TxRunner opens the database transaction that spans one full resolution
// tree. *gorm.DB satisfies it; tests substitute a pass-through.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
