package entities

import "time"

// Base roles, ordered by rank. Manager and above bypass field-level
// permission checks.
const (
	RoleOperational = "operational"
	RoleFinancial   = "financial"
	RoleManager     = "manager"
	RoleOwner       = "owner"
	RoleSystemAdmin = "system_admin"
)

var roleRank = map[string]int{
	RoleOperational: 0,
	RoleFinancial:   1,
	RoleManager:     2,
	RoleOwner:       3,
	RoleSystemAdmin: 4,
}

// RoleAtLeast reports whether role ranks at or above min. Unknown roles
// rank below everything.
func RoleAtLeast(role, min string) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	return r >= roleRank[min]
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120" json:"name"`
	Email     string    `gorm:"size:120;uniqueIndex" json:"email"`
	Role      string    `gorm:"size:20" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
