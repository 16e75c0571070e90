package entity

import "time"

// Bootstrap role names. These three rows are seeded at startup and every
// policy check resolves one of them by name.
const (
	RoleSuperAdmin = "superAdmin"
	RoleAdmin      = "admin"
	RoleEndUser    = "endUser"
)

// BootstrapRoles lists the roles that must exist before the service accepts
// traffic.
var BootstrapRoles = []string{RoleSuperAdmin, RoleAdmin, RoleEndUser}

// IsBootstrapRole reports whether name is one of the seeded roles.
func IsBootstrapRole(name string) bool {
	switch name {
	case RoleSuperAdmin, RoleAdmin, RoleEndUser:
		return true
	default:
		return false
	}
}

// DbRole represents a persisted role row.
type DbRole struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides default pluralised name.
func (DbRole) TableName() string {
	return "roles"
}

type RoleCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

type RoleUpdateRequest struct {
	Name string `json:"name" binding:"required"`
}

// RoleSummary is the role description returned to clients.
type RoleSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
