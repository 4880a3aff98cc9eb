package entities

import "time"

// Operation types for a truck load.
const (
	OpInternal    = "internal"    // movement inside the farm, no fiscal document
	OpConsignment = "consignment" // remessa para armazenagem e secagem
	OpSale        = "sale"        // venda de producao
)

// Fiscal statuses stored on a load.
const (
	NFeStatusNone       = "none"
	NFeStatusPending    = "pending"
	NFeStatusProcessing = "processing"
	NFeStatusAuthorized = "authorized"
	NFeStatusError      = "error"
	NFeStatusCancelled  = "cancelled"
)

type Load struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FarmID      uint      `gorm:"index" json:"farm_id"`
	Truck       string    `gorm:"size:10" json:"truck"`
	Driver      string    `gorm:"size:120" json:"driver"`
	DriverDoc   string    `gorm:"size:20" json:"driver_doc,omitempty"`
	FarmName    string    `gorm:"size:160" json:"farm"`
	Field       string    `gorm:"size:120" json:"field"`
	Product     string    `gorm:"size:80" json:"product"`
	Variety     string    `gorm:"size:80" json:"variety,omitempty"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `gorm:"size:10" json:"unit"`
	Destination string    `gorm:"size:160" json:"destination"`
	Operation   string    `gorm:"size:20;index" json:"operation"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Weighing (kg)
	EstimatedKg *float64 `json:"estimated_kg,omitempty"`
	GrossKg     *float64 `json:"gross_kg,omitempty"`
	TareKg      *float64 `json:"tare_kg,omitempty"`
	NetKg       *float64 `json:"net_kg,omitempty"`

	// Quality readings plus the tolerance policy snapshotted at creation.
	MoisturePct    *float64 `json:"moisture_pct,omitempty"`
	ImpurityPct    *float64 `json:"impurity_pct,omitempty"`
	StdMoisturePct float64  `json:"std_moisture_pct"`
	MoistureFactor float64  `json:"moisture_factor"`
	StdImpurityPct float64  `json:"std_impurity_pct"`

	// Settlements under the farm and warehouse policies. Kept side by side,
	// never reconciled automatically; FinalSettledKg is the externally
	// confirmed figure entered later.
	FarmSettledKg      *float64 `json:"farm_settled_kg,omitempty"`
	WarehouseSettledKg *float64 `json:"warehouse_settled_kg,omitempty"`
	FinalSettledKg     *float64 `json:"final_settled_kg,omitempty"`

	WarehouseID *uint      `gorm:"index" json:"warehouse_id,omitempty"`
	Warehouse   *Warehouse `json:"warehouse,omitempty"`

	// Fiscal overrides
	NatureOverride       string   `gorm:"size:120" json:"nature_override,omitempty"`
	CFOPOverride         string   `gorm:"size:4" json:"cfop_override,omitempty"`
	NCMOverride          string   `gorm:"size:12" json:"ncm_override,omitempty"`
	UnitPrice            *float64 `json:"unit_price,omitempty"`
	FreightCode          string   `gorm:"size:1" json:"freight_code,omitempty"`
	SeparateTransportDoc bool     `json:"separate_transport_doc"`

	// Fiscal submission
	NFeRef      string `gorm:"size:255" json:"nfe_ref,omitempty"`
	NFeStatus   string `gorm:"size:50" json:"nfe_status,omitempty"`
	NFeProtocol string `gorm:"size:255" json:"nfe_protocol,omitempty"`
	NFeKey      string `gorm:"size:44" json:"nfe_key,omitempty"`
	NFeXMLURL   string `gorm:"size:500" json:"nfe_xml_url,omitempty"`
	NFeDANFEURL string `gorm:"size:500" json:"nfe_danfe_url,omitempty"`
}

// Outbound reports whether the load leaves the farm and needs a fiscal document.
func (l *Load) Outbound() bool {
	return l.Operation == OpConsignment || l.Operation == OpSale
}
