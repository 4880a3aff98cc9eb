package entities

import "time"

// Tax regime codes carried on the fiscal document.
const (
	RegimeSimples        = "1"
	RegimeSimplesExcesso = "2"
	RegimeNormal         = "3"
)

// Farm is the issuing entity of outbound fiscal documents.
type Farm struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:160" json:"name"`
	TradeName string `gorm:"size:160" json:"trade_name,omitempty"`
	CNPJ      string `gorm:"size:20" json:"cnpj,omitempty"`
	StateIE   string `gorm:"size:20" json:"state_ie,omitempty"`
	CityIM    string `gorm:"size:20" json:"city_im,omitempty"`
	CNAE      string `gorm:"size:10" json:"cnae,omitempty"`
	TaxRegime string `gorm:"size:1;default:3" json:"tax_regime"`

	Street   string `gorm:"size:200" json:"street,omitempty"`
	Number   string `gorm:"size:20" json:"number,omitempty"`
	District string `gorm:"size:100" json:"district,omitempty"`
	City     string `gorm:"size:100" json:"city,omitempty"`
	UF       string `gorm:"size:2" json:"uf,omitempty"`
	CEP      string `gorm:"size:10" json:"cep,omitempty"`

	// Defaults used by the fiscal document builder when the load carries
	// no override.
	DefaultNature      string `gorm:"size:120" json:"default_nature,omitempty"`
	DefaultCFOP        string `gorm:"size:4" json:"default_cfop,omitempty"`
	DefaultFreightCode string `gorm:"size:1" json:"default_freight_code,omitempty"`

	// Farm-side tolerance policy snapshotted onto new loads.
	StdMoisturePct float64 `gorm:"default:14" json:"std_moisture_pct"`
	MoistureFactor float64 `gorm:"default:1.5" json:"moisture_factor"`
	StdImpurityPct float64 `gorm:"default:1" json:"std_impurity_pct"`

	CreatedAt time.Time `json:"created_at"`
}
