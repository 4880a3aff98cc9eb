package entities

import "time"

// Warehouse is a recipient destination. It may be a fiscally registered
// business (CNPJ set) or one of the farm's own silos (OwnSilo).
type Warehouse struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:160" json:"name"`
	CNPJ    string `gorm:"size:20;index" json:"cnpj,omitempty"`
	StateIE string `gorm:"size:20" json:"state_ie,omitempty"` // inscricao estadual, "ISENTO" for exempt
	Email   string `gorm:"size:120" json:"email,omitempty"`
	Phone   string `gorm:"size:20" json:"phone,omitempty"`

	Street   string `gorm:"size:200" json:"street,omitempty"`
	Number   string `gorm:"size:20" json:"number,omitempty"`
	District string `gorm:"size:100" json:"district,omitempty"`
	City     string `gorm:"size:100" json:"city,omitempty"`
	UF       string `gorm:"size:2" json:"uf,omitempty"`
	CEP      string `gorm:"size:10" json:"cep,omitempty"`

	// Default tolerance policy applied to the warehouse-side settlement
	// when the load carries no override.
	StdMoisturePct float64 `gorm:"default:14" json:"std_moisture_pct"`
	MoistureFactor float64 `gorm:"default:1.5" json:"moisture_factor"`
	StdImpurityPct float64 `gorm:"default:1" json:"std_impurity_pct"`

	OwnSilo   bool      `json:"own_silo"`
	CreatedAt time.Time `json:"created_at"`
}
