package model

// Branch is the single partition unit for all stock data. Units, products,
// BOMs and ledger rows are all scoped to exactly one branch.
type Branch struct {
	BaseModel
	Name    string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
}

func (Branch) TableName() string {
	return "branches"
}
