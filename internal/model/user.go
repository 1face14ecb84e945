package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Privilege codes gating the operational surface
const (
	PrivInventoryView  = "inventory:view"
	PrivInventoryWrite = "inventory:write"
	PrivBOMManage      = "bom:manage"
	PrivProductionRun  = "production:run"
	PrivReportView     = "report:view"
)

// Role codes as constants
const (
	RoleMasterAdmin = "MASTER_ADMIN"
	RoleStaff       = "STAFF"
)

var rolePrivileges = map[string][]string{
	RoleMasterAdmin: {
		PrivInventoryView, PrivInventoryWrite,
		PrivBOMManage, PrivProductionRun, PrivReportView,
	},
	// Staff record stock movements and run productions but do not edit recipes.
	RoleStaff: {
		PrivInventoryView, PrivInventoryWrite, PrivProductionRun,
	},
}

// User represents a staff account. Kept minimal: the ledger needs actors and
// the routes need privilege gates; account administration lives elsewhere.
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName string `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	Role     string `gorm:"type:varchar(30);default:'STAFF'" json:"role"`

	BranchID *uuid.UUID `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	IsActive bool       `gorm:"default:true" json:"is_active"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// PrivilegeCodes returns the privilege codes granted by the user's role
func (u *User) PrivilegeCodes() []string {
	return rolePrivileges[u.Role]
}

// HasPrivilege checks if the user's role grants a specific privilege
func (u *User) HasPrivilege(code string) bool {
	for _, p := range u.PrivilegeCodes() {
		if p == code {
			return true
		}
	}
	return false
}
