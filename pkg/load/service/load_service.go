package service

import (
	"context"

	"integrarural/entities"
)

// Actor is the authenticated caller as resolved by the auth middleware.
type Actor struct {
	UserID uint
	Role   string
}

// LoadForm is the creation input. Quantity and ScheduledAt arrive as
// strings from the client and are validated here, not at the transport.
type LoadForm struct {
	ScheduledAt string `json:"scheduledAt"`
	Truck       string `json:"truck"`
	Driver      string `json:"driver"`
	DriverDoc   string `json:"driver_doc"`
	FarmID      uint   `json:"farm_id"`
	Farm        string `json:"farm"`
	Field       string `json:"field"`
	Product     string `json:"product"`
	Variety     string `json:"variety"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	Destination string `json:"destination"`
	Operation   string `json:"operation"`

	WarehouseID *uint `json:"warehouse_id"`

	EstimatedKg *float64 `json:"estimated_kg"`
	GrossKg     *float64 `json:"gross_kg"`
	TareKg      *float64 `json:"tare_kg"`
	MoisturePct *float64 `json:"moisture_pct"`
	ImpurityPct *float64 `json:"impurity_pct"`

	// Optional tolerance-policy override; farm defaults apply otherwise.
	StdMoisturePct *float64 `json:"std_moisture_pct"`
	MoistureFactor *float64 `json:"moisture_factor"`
	StdImpurityPct *float64 `json:"std_impurity_pct"`

	NatureOverride       string   `json:"nature_override"`
	CFOPOverride         string   `json:"cfop_override"`
	NCMOverride          string   `json:"ncm_override"`
	UnitPrice            *float64 `json:"unit_price"`
	FreightCode          string   `json:"freight_code"`
	SeparateTransportDoc bool     `json:"separate_transport_doc"`
}

// LoadPatch is the partial-update input; only non-nil fields are applied,
// and application is all-or-nothing under the permission gate.
type LoadPatch struct {
	ScheduledAt *string `json:"scheduledAt"`
	Truck       *string `json:"truck"`
	Driver      *string `json:"driver"`
	DriverDoc   *string `json:"driver_doc"`
	Field       *string `json:"field"`
	Product     *string `json:"product"`
	Variety     *string `json:"variety"`
	Quantity    *string `json:"quantity"`
	Unit        *string `json:"unit"`
	Destination *string `json:"destination"`

	GrossKg     *float64 `json:"gross_kg"`
	TareKg      *float64 `json:"tare_kg"`
	MoisturePct *float64 `json:"moisture_pct"`
	ImpurityPct *float64 `json:"impurity_pct"`

	StdMoisturePct *float64 `json:"std_moisture_pct"`
	MoistureFactor *float64 `json:"moisture_factor"`
	StdImpurityPct *float64 `json:"std_impurity_pct"`

	FinalSettledKg *float64 `json:"final_settled_kg"`

	WarehouseID *uint `json:"warehouse_id"`
	// Recipient identification without an explicit link triggers
	// match-by-CNPJ-or-create.
	RecipientCNPJ     *string `json:"recipient_cnpj"`
	RecipientName     *string `json:"recipient_name"`
	RecipientIE       *string `json:"recipient_ie"`
	RecipientStreet   *string `json:"recipient_street"`
	RecipientNumber   *string `json:"recipient_number"`
	RecipientDistrict *string `json:"recipient_district"`
	RecipientCity     *string `json:"recipient_city"`
	RecipientUF       *string `json:"recipient_uf"`
	RecipientCEP      *string `json:"recipient_cep"`

	NatureOverride       *string  `json:"nature_override"`
	CFOPOverride         *string  `json:"cfop_override"`
	NCMOverride          *string  `json:"ncm_override"`
	UnitPrice            *float64 `json:"unit_price"`
	FreightCode          *string  `json:"freight_code"`
	SeparateTransportDoc *bool    `json:"separate_transport_doc"`
}

type LoadService interface {
	Create(ctx context.Context, form LoadForm) (*entities.Load, error)
	Update(ctx context.Context, id uint, actor Actor, patch LoadPatch) (*entities.Load, error)
	Get(id uint) (*entities.Load, error)
	List() ([]entities.Load, error)
	DistinctValues(column string) ([]string, error)
	SyncStatus(ctx context.Context, id uint) (*entities.Load, error)
	Resubmit(ctx context.Context, id uint) (*entities.Load, error)
}
