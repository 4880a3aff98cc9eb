package entities

import "time"

// Module keys used in permission grants.
const ModuleTruckLoading = "truck_loading"

// Capabilities grantable per module. manage_weight and manage_quality are
// the fine-grained flags for scale and lab operators; they do not imply
// update and update does not imply them.
const (
	CapRead          = "read"
	CapCreate        = "create"
	CapUpdate        = "update"
	CapDelete        = "delete"
	CapManageWeight  = "manage_weight"
	CapManageQuality = "manage_quality"
)

// Grants maps a module key to its granted capabilities.
type Grants map[string][]string

func (g Grants) Has(module, cap string) bool {
	for _, c := range g[module] {
		if c == cap {
			return true
		}
	}
	return false
}

// FarmPermission is the per (user, farm) capability grant. Absence of a
// row means zero capabilities for operational-rank users.
type FarmPermission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_user_farm,unique" json:"user_id"`
	FarmID    uint      `gorm:"index:idx_user_farm,unique" json:"farm_id"`
	Grants    Grants    `gorm:"serializer:json" json:"grants"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
