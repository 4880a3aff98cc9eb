package serviceImp

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"integrarural/entities"
	"integrarural/pkg/apperr"
	"integrarural/pkg/fiscal"
	"integrarural/pkg/load/repository"
	loadRepoImp "integrarural/pkg/load/repositoryImp"
	"integrarural/pkg/load/service"
	"integrarural/pkg/permission"
	"integrarural/pkg/settlement"
	whRepo "integrarural/pkg/warehouse/repository"
	whRepoImp "integrarural/pkg/warehouse/repositoryImp"
)

type loadSvc struct {
	db        *gorm.DB
	farms     repository.FarmRepository
	perms     permission.Lookup
	builder   *fiscal.Builder
	submitter fiscal.Submitter
	env       string
}

func New(db *gorm.DB, farms repository.FarmRepository, perms permission.Lookup, builder *fiscal.Builder, submitter fiscal.Submitter, env string) service.LoadService {
	return &loadSvc{db: db, farms: farms, perms: perms, builder: builder, submitter: submitter, env: env}
}

var validOperations = map[string]bool{
	entities.OpInternal:    true,
	entities.OpConsignment: true,
	entities.OpSale:        true,
}

func (s *loadSvc) Create(ctx context.Context, form service.LoadForm) (*entities.Load, error) {
	scheduledAt, err := parseSchedule(form.ScheduledAt)
	if err != nil {
		return nil, err
	}
	quantity, err := parseQuantity(form.Quantity)
	if err != nil {
		return nil, err
	}
	if !validOperations[form.Operation] {
		return nil, &apperr.ValidationError{Field: "operation", Reason: "must be internal, consignment or sale"}
	}
	if form.FarmID == 0 {
		return nil, &apperr.ValidationError{Field: "farm_id", Reason: "required"}
	}
	farm, err := s.farms.Get(form.FarmID)
	if err != nil {
		return nil, err
	}

	load := &entities.Load{
		FarmID:      farm.ID,
		Truck:       form.Truck,
		Driver:      form.Driver,
		DriverDoc:   form.DriverDoc,
		FarmName:    form.Farm,
		Field:       form.Field,
		Product:     form.Product,
		Variety:     form.Variety,
		Quantity:    quantity,
		Unit:        form.Unit,
		Destination: form.Destination,
		Operation:   form.Operation,
		ScheduledAt: scheduledAt,
		EstimatedKg: form.EstimatedKg,
		GrossKg:     form.GrossKg,
		TareKg:      form.TareKg,
		MoisturePct: form.MoisturePct,
		ImpurityPct: form.ImpurityPct,

		NatureOverride:       form.NatureOverride,
		CFOPOverride:         form.CFOPOverride,
		NCMOverride:          form.NCMOverride,
		UnitPrice:            form.UnitPrice,
		FreightCode:          form.FreightCode,
		SeparateTransportDoc: form.SeparateTransportDoc,
	}
	if load.FarmName == "" {
		load.FarmName = farm.Name
	}

	// Snapshot the tolerance policy: explicit override, else farm policy.
	load.StdMoisturePct = pick(form.StdMoisturePct, farm.StdMoisturePct)
	load.MoistureFactor = pick(form.MoistureFactor, farm.MoistureFactor)
	load.StdImpurityPct = pick(form.StdImpurityPct, farm.StdImpurityPct)

	if form.WarehouseID != nil {
		w, err := whRepoImp.New(s.db).Get(*form.WarehouseID)
		if err != nil {
			return nil, err
		}
		load.WarehouseID = &w.ID
		load.Warehouse = w
	}

	s.recompute(load)

	if !load.Outbound() {
		// Internal movement: no fiscal process, plain commit.
		load.NFeStatus = entities.NFeStatusNone
		if err := loadRepoImp.New(s.db).Create(load); err != nil {
			return nil, err
		}
		return load, nil
	}

	load.NFeStatus = entities.NFeStatusPending
	err = s.db.Transaction(func(tx *gorm.DB) error {
		loads := loadRepoImp.New(tx)
		if err := loads.Create(load); err != nil {
			return err
		}
		// Reference is assigned exactly once per load.
		load.NFeRef = fiscal.NewReference(s.env)
		return s.submit(ctx, loads, load, farm)
	})
	if err != nil {
		return nil, err
	}
	return load, nil
}

// submit builds, validates and sends the fiscal document, then maps the
// authority's response onto the load. Any error propagates so the
// surrounding transaction rolls the flushed row back.
func (s *loadSvc) submit(ctx context.Context, loads repository.LoadRepository, load *entities.Load, farm *entities.Farm) error {
	payload, err := s.builder.Build(load, farm, load.Warehouse, load.NFeRef, time.Now())
	if err != nil {
		return err
	}
	load.NFeStatus = entities.NFeStatusProcessing
	if err := loads.Save(load); err != nil {
		return err
	}
	res, err := s.submitter.Submit(ctx, load.NFeRef, payload)
	if err != nil {
		return err
	}
	applyResult(load, res)
	return loads.Save(load)
}

func (s *loadSvc) Update(ctx context.Context, id uint, actor service.Actor, patch service.LoadPatch) (*entities.Load, error) {
	load, err := loadRepoImp.New(s.db).Get(id)
	if err != nil {
		return nil, err
	}

	if !entities.RoleAtLeast(actor.Role, entities.RoleManager) {
		grant, err := s.perms.Get(actor.UserID, load.FarmID)
		if err != nil {
			return nil, err
		}
		if err := permission.Authorize(actor.Role, grant, changedFields(patch)); err != nil {
			return nil, err
		}
	}

	// Parse scalar inputs before touching anything so a ValidationError
	// never leaves partial state.
	var newSchedule *time.Time
	if patch.ScheduledAt != nil {
		t, err := parseSchedule(*patch.ScheduledAt)
		if err != nil {
			return nil, err
		}
		newSchedule = &t
	}
	var newQuantity *float64
	if patch.Quantity != nil {
		q, err := parseQuantity(*patch.Quantity)
		if err != nil {
			return nil, err
		}
		newQuantity = &q
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		loads := loadRepoImp.New(tx)
		warehouses := whRepoImp.New(tx)

		if patch.WarehouseID != nil {
			w, err := warehouses.Get(*patch.WarehouseID)
			if err != nil {
				return err
			}
			load.WarehouseID = &w.ID
			load.Warehouse = w
		} else if patch.RecipientCNPJ != nil {
			w, err := s.linkWarehouse(warehouses, load, patch)
			if err != nil {
				return err
			}
			load.WarehouseID = &w.ID
			load.Warehouse = w
		}

		if newSchedule != nil {
			load.ScheduledAt = *newSchedule
		}
		if newQuantity != nil {
			load.Quantity = *newQuantity
		}
		applyPatch(load, patch)

		if touchesSettlement(patch) || newQuantity != nil {
			s.recompute(load)
		}
		// Updates never re-trigger fiscal submission; resubmission is a
		// distinct explicit operation.
		return loads.Save(load)
	})
	if err != nil {
		return nil, err
	}
	return load, nil
}

// linkWarehouse resolves recipient identification supplied without an
// explicit link: match by CNPJ, else create. An already linked load is
// re-pointed at the resolved warehouse.
func (s *loadSvc) linkWarehouse(warehouses whRepo.WarehouseRepository, load *entities.Load, patch service.LoadPatch) (*entities.Warehouse, error) {
	cnpj := digits(*patch.RecipientCNPJ)
	if w, err := warehouses.FindByCNPJ(cnpj); err != nil {
		return nil, err
	} else if w != nil {
		return w, nil
	}
	w := &entities.Warehouse{
		Name:           deref(patch.RecipientName),
		CNPJ:           cnpj,
		StateIE:        deref(patch.RecipientIE),
		Street:         deref(patch.RecipientStreet),
		Number:         deref(patch.RecipientNumber),
		District:       deref(patch.RecipientDistrict),
		City:           deref(patch.RecipientCity),
		UF:             deref(patch.RecipientUF),
		CEP:            deref(patch.RecipientCEP),
		StdMoisturePct: 14,
		MoistureFactor: 1.5,
		StdImpurityPct: 1,
	}
	if w.Name == "" {
		w.Name = load.Destination
	}
	if err := warehouses.Create(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *loadSvc) Get(id uint) (*entities.Load, error) {
	return loadRepoImp.New(s.db).Get(id)
}

func (s *loadSvc) List() ([]entities.Load, error) {
	return loadRepoImp.New(s.db).List()
}

func (s *loadSvc) DistinctValues(column string) ([]string, error) {
	return loadRepoImp.New(s.db).DistinctValues(column)
}

// SyncStatus re-queries the authority by stored reference. Idempotent:
// an unchanged upstream status produces an identical record.
func (s *loadSvc) SyncStatus(ctx context.Context, id uint) (*entities.Load, error) {
	repo := loadRepoImp.New(s.db)
	load, err := repo.Get(id)
	if err != nil {
		return nil, err
	}
	if load.NFeRef == "" {
		return nil, &apperr.ValidationError{Field: "nfe_ref", Reason: "load has no fiscal reference"}
	}
	res, err := s.submitter.Query(ctx, load.NFeRef)
	if err != nil {
		return nil, err
	}
	applyResult(load, res)
	if err := repo.Save(load); err != nil {
		return nil, err
	}
	return load, nil
}

// Resubmit rebuilds and resends the document for a load whose earlier
// submission errored. The original reference is reused.
func (s *loadSvc) Resubmit(ctx context.Context, id uint) (*entities.Load, error) {
	repo := loadRepoImp.New(s.db)
	load, err := repo.Get(id)
	if err != nil {
		return nil, err
	}
	if !load.Outbound() {
		return nil, &apperr.ValidationError{Field: "operation", Reason: "internal loads have no fiscal document"}
	}
	farm, err := s.farms.Get(load.FarmID)
	if err != nil {
		return nil, err
	}
	if load.NFeRef == "" {
		load.NFeRef = fiscal.NewReference(s.env)
	}
	payload, err := s.builder.Build(load, farm, load.Warehouse, load.NFeRef, time.Now())
	if err != nil {
		return nil, err
	}
	res, err := s.submitter.Submit(ctx, load.NFeRef, payload)
	if err != nil {
		// Nothing was persisted; the load keeps its previous status.
		return nil, err
	}
	applyResult(load, res)
	if err := repo.Save(load); err != nil {
		return nil, err
	}
	return load, nil
}

func applyResult(load *entities.Load, res *fiscal.SubmissionResult) {
	load.NFeStatus = fiscal.MapStatus(res.Status)
	if res.Protocol != "" {
		load.NFeProtocol = res.Protocol
	}
	if res.DocumentKey != "" {
		load.NFeKey = fiscal.StripKeyPrefix(res.DocumentKey)
	}
	if res.XMLURL != "" {
		load.NFeXMLURL = res.XMLURL
	}
	if res.DANFEURL != "" {
		load.NFeDANFEURL = res.DANFEURL
	}
}

// recompute refreshes net weight and both settlement figures. The farm
// and warehouse settlements stay side by side; they are never averaged.
func (s *loadSvc) recompute(load *entities.Load) {
	if load.GrossKg != nil && load.TareKg != nil {
		net := *load.GrossKg - *load.TareKg
		if net < 0 {
			net = 0
		}
		load.NetKg = &net
	}
	base := fiscal.WeightKg(load.Quantity, load.Unit)
	if load.NetKg != nil && *load.NetKg > 0 {
		base = *load.NetKg
	}
	moisture := deref64(load.MoisturePct)
	impurity := deref64(load.ImpurityPct)

	farmRes := settlement.Compute(base, moisture, impurity, settlement.Policy{
		StdMoisturePct: load.StdMoisturePct,
		MoistureFactor: load.MoistureFactor,
		StdImpurityPct: load.StdImpurityPct,
	})
	load.FarmSettledKg = &farmRes.SettledKg

	if load.Warehouse != nil {
		whRes := settlement.Compute(base, moisture, impurity, settlement.Policy{
			StdMoisturePct: load.Warehouse.StdMoisturePct,
			MoistureFactor: load.Warehouse.MoistureFactor,
			StdImpurityPct: load.Warehouse.StdImpurityPct,
		})
		load.WarehouseSettledKg = &whRes.SettledKg
	}
}

// changedFields lists the business fields a patch proposes to change, in
// the vocabulary the permission gate understands. The scheduled timestamp
// is translated, not gated.
func changedFields(p service.LoadPatch) []string {
	var out []string
	add := func(name string, set bool) {
		if set {
			out = append(out, name)
		}
	}
	add("truck", p.Truck != nil)
	add("driver", p.Driver != nil)
	add("driver_doc", p.DriverDoc != nil)
	add("field", p.Field != nil)
	add("product", p.Product != nil)
	add("variety", p.Variety != nil)
	add("quantity", p.Quantity != nil)
	add("unit", p.Unit != nil)
	add("destination", p.Destination != nil)
	add("gross_kg", p.GrossKg != nil)
	add("tare_kg", p.TareKg != nil)
	add("moisture_pct", p.MoisturePct != nil)
	add("impurity_pct", p.ImpurityPct != nil)
	add("std_moisture_pct", p.StdMoisturePct != nil)
	add("moisture_factor", p.MoistureFactor != nil)
	add("std_impurity_pct", p.StdImpurityPct != nil)
	add("final_settled_kg", p.FinalSettledKg != nil)
	add("warehouse_id", p.WarehouseID != nil || p.RecipientCNPJ != nil)
	add("nature_override", p.NatureOverride != nil)
	add("cfop_override", p.CFOPOverride != nil)
	add("ncm_override", p.NCMOverride != nil)
	add("unit_price", p.UnitPrice != nil)
	add("freight_code", p.FreightCode != nil)
	add("separate_transport_doc", p.SeparateTransportDoc != nil)
	return out
}

func applyPatch(load *entities.Load, p service.LoadPatch) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&load.Truck, p.Truck)
	setStr(&load.Driver, p.Driver)
	setStr(&load.DriverDoc, p.DriverDoc)
	setStr(&load.Field, p.Field)
	setStr(&load.Product, p.Product)
	setStr(&load.Variety, p.Variety)
	setStr(&load.Unit, p.Unit)
	setStr(&load.Destination, p.Destination)
	setStr(&load.NatureOverride, p.NatureOverride)
	setStr(&load.CFOPOverride, p.CFOPOverride)
	setStr(&load.NCMOverride, p.NCMOverride)
	setStr(&load.FreightCode, p.FreightCode)

	if p.GrossKg != nil {
		load.GrossKg = p.GrossKg
	}
	if p.TareKg != nil {
		load.TareKg = p.TareKg
	}
	if p.MoisturePct != nil {
		load.MoisturePct = p.MoisturePct
	}
	if p.ImpurityPct != nil {
		load.ImpurityPct = p.ImpurityPct
	}
	if p.StdMoisturePct != nil {
		load.StdMoisturePct = *p.StdMoisturePct
	}
	if p.MoistureFactor != nil {
		load.MoistureFactor = *p.MoistureFactor
	}
	if p.StdImpurityPct != nil {
		load.StdImpurityPct = *p.StdImpurityPct
	}
	if p.FinalSettledKg != nil {
		load.FinalSettledKg = p.FinalSettledKg
	}
	if p.UnitPrice != nil {
		load.UnitPrice = p.UnitPrice
	}
	if p.SeparateTransportDoc != nil {
		load.SeparateTransportDoc = *p.SeparateTransportDoc
	}
}

func touchesSettlement(p service.LoadPatch) bool {
	return p.GrossKg != nil || p.TareKg != nil ||
		p.MoisturePct != nil || p.ImpurityPct != nil ||
		p.StdMoisturePct != nil || p.MoistureFactor != nil || p.StdImpurityPct != nil ||
		p.Unit != nil || p.WarehouseID != nil || p.RecipientCNPJ != nil
}

// parseSchedule accepts RFC3339 and the datetime-local format the form
// widget produces.
func parseSchedule(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &apperr.ValidationError{Field: "scheduledAt", Reason: "unparsable timestamp " + strconv.Quote(raw)}
}

func parseQuantity(raw string) (float64, error) {
	q, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || q < 0 {
		return 0, &apperr.ValidationError{Field: "quantity", Reason: "unparsable quantity " + strconv.Quote(raw)}
	}
	return q, nil
}

func pick(override *float64, def float64) float64 {
	if override != nil {
		return *override
	}
	return def
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func deref64(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
