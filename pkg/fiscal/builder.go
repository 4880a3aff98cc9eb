package fiscal

import (
	"fmt"
	"strings"
	"time"

	"integrarural/config"
	"integrarural/entities"
	"integrarural/pkg/apperr"
)

const defaultUnitPrice = 100.00

// Builder assembles outbound NFe payloads. Sandbox mode substitutes the
// authority's synthetic homologação identifiers and is selected once from
// configuration; a production builder never emits synthetic data.
type Builder struct {
	sandbox bool
}

func NewBuilder(env string) *Builder {
	return &Builder{sandbox: env != config.EnvProduction}
}

func (b *Builder) Sandbox() bool { return b.sandbox }

// Build assembles the full payload for an outbound load and validates it.
// warehouse may be nil when the recipient has no formal registration.
func (b *Builder) Build(load *entities.Load, farm *entities.Farm, warehouse *entities.Warehouse, ref string, now time.Time) (*Payload, error) {
	p := &Payload{Ref: ref}

	b.fillHeader(p, load, farm, now)
	b.fillIssuer(p, load, farm)
	b.fillRecipient(p, load, warehouse)
	b.fillItem(p, load, farm)
	b.fillTransport(p, load)
	b.fillVolumes(p, load)
	b.fillPayment(p, load)

	// local_destino depends on both ends being resolved.
	p.Destination = "1"
	if p.RecipientUF != "" && p.RecipientUF != p.IssuerUF {
		p.Destination = "2"
	}

	if !b.sandbox {
		if missing := missingMandatory(p); len(missing) > 0 {
			return nil, &apperr.FiscalDataError{Missing: missing}
		}
	}
	if err := Validate(p, load.Operation); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *Builder) fillHeader(p *Payload, load *entities.Load, farm *entities.Farm, now time.Time) {
	p.EmissionDate = now.Format("2006-01-02")
	p.EntryExitDate = load.ScheduledAt.Format("2006-01-02")
	p.DocumentType = "1" // saída
	p.Purpose = "1"      // normal
	p.FinalConsumer = "0"
	p.BuyerPresence = "1"

	p.FreightCode = load.FreightCode
	if p.FreightCode == "" {
		p.FreightCode = farm.DefaultFreightCode
	}
	if p.FreightCode == "" {
		p.FreightCode = FreightIssuer
	}

	switch {
	case load.Operation == entities.OpConsignment:
		p.Nature = NatureConsignment
	case load.NatureOverride != "":
		p.Nature = load.NatureOverride
	case farm.DefaultNature != "":
		p.Nature = farm.DefaultNature
	default:
		p.Nature = NatureFallback
	}
}

func (b *Builder) fillIssuer(p *Payload, load *entities.Load, farm *entities.Farm) {
	name := load.FarmName
	if name == "" {
		name = farm.Name
	}
	trade := farm.TradeName
	if trade == "" {
		trade = name
	}

	p.IssuerCNPJ = digits(farm.CNPJ)
	p.IssuerName = name
	p.IssuerTradeName = trade
	p.IssuerStreet = farm.Street
	p.IssuerNumber = farm.Number
	p.IssuerDistrict = farm.District
	p.IssuerCity = farm.City
	p.IssuerUF = farm.UF
	p.IssuerCEP = digits(farm.CEP)
	p.IssuerIE = farm.StateIE
	p.IssuerIM = farm.CityIM
	p.IssuerCNAE = farm.CNAE
	p.IssuerTaxRegime = farm.TaxRegime
	if p.IssuerTaxRegime == "" {
		p.IssuerTaxRegime = entities.RegimeNormal
	}

	if b.sandbox {
		p.IssuerCNPJ = SandboxIssuerCNPJ
		p.IssuerName = SandboxName
		p.IssuerTradeName = SandboxName
		p.IssuerIE = IEExempt
	}
}

func (b *Builder) fillRecipient(p *Payload, load *entities.Load, warehouse *entities.Warehouse) {
	if warehouse != nil {
		p.RecipientName = warehouse.Name
		p.RecipientCNPJ = digits(warehouse.CNPJ)
		p.RecipientIE = warehouse.StateIE
		p.RecipientStreet = warehouse.Street
		p.RecipientNumber = warehouse.Number
		p.RecipientDistrict = warehouse.District
		p.RecipientCity = warehouse.City
		p.RecipientUF = warehouse.UF
		p.RecipientCEP = digits(warehouse.CEP)
	} else {
		// No formal registration: free-text destination as a last resort.
		p.RecipientName = load.Destination
	}

	if p.RecipientCNPJ != "" {
		if p.RecipientIE != "" && !strings.EqualFold(p.RecipientIE, IEExempt) {
			p.RecipientIEIndicator = "1" // registered contributor
		} else {
			p.RecipientIEIndicator = "9" // informal / non-contributor
			p.RecipientIE = ""
		}
	} else {
		p.RecipientIEIndicator = "9"
	}
	// Authority rejects non-contributor recipients unless the document is
	// flagged final-consumer.
	if p.RecipientIEIndicator == "9" {
		p.FinalConsumer = "1"
	}

	if b.sandbox {
		p.RecipientCNPJ = SandboxRecipientCNPJ
		p.RecipientName = SandboxName
		p.RecipientIEIndicator = "9"
		p.RecipientIE = ""
		p.FinalConsumer = "1"
		if p.RecipientCity == "" {
			p.RecipientStreet = "RUA EXEMPLO"
			p.RecipientNumber = "S/N"
			p.RecipientDistrict = "CENTRO"
			p.RecipientCity = "SAO PAULO"
			p.RecipientUF = "SP"
			p.RecipientCEP = "01000000"
		}
	}
}

func (b *Builder) fillItem(p *Payload, load *entities.Load, farm *entities.Farm) {
	unit := unitCode(load.Unit)
	price := defaultUnitPrice
	if load.UnitPrice != nil && *load.UnitPrice > 0 {
		price = *load.UnitPrice
	}

	ncm := load.NCMOverride
	if ncm == "" {
		ncm = ncmFor(load.Product)
	}

	desc := strings.ToUpper(load.Product)
	if load.Field != "" {
		desc += " - " + load.Field
	}
	if b.sandbox {
		desc = SandboxItemText
	}

	tax := taxDefault
	if load.Operation == entities.OpConsignment {
		tax = taxConsignment
	}

	p.Items = []Item{{
		Number:        "1",
		ProductCode:   strings.ToUpper(load.Product),
		Description:   desc,
		CFOP:          b.selectCFOP(load, farm, p),
		TradeUnit:     unit,
		TradeQty:      formatQty(load.Quantity),
		TradeUnitVal:  fmt.Sprintf("%.2f", price),
		TaxUnit:       unit,
		TaxQty:        formatQty(load.Quantity),
		TaxUnitVal:    fmt.Sprintf("%.2f", price),
		NCM:           ncm,
		Total:         fmt.Sprintf("%.2f", load.Quantity*price),
		ICMSSituation: tax.ICMS,
		ICMSOrigin:    "0",
		PISSituation:  tax.PIS,
		COFINSSit:     tax.COFINS,
	}}
}

// selectCFOP is the crux the validator later re-checks: consignment picks
// strictly by jurisdiction, other outbound types honor overrides.
func (b *Builder) selectCFOP(load *entities.Load, farm *entities.Farm, p *Payload) string {
	if load.Operation == entities.OpConsignment {
		if p.RecipientUF != "" && p.RecipientUF != p.IssuerUF {
			return CFOPConsignmentInter
		}
		return CFOPConsignmentIntra
	}
	if load.CFOPOverride != "" {
		return load.CFOPOverride
	}
	if farm.DefaultCFOP != "" {
		return farm.DefaultCFOP
	}
	return CFOPSaleFallback
}

func (b *Builder) fillTransport(p *Payload, load *entities.Load) {
	if p.FreightCode == FreightNone || load.SeparateTransportDoc {
		// Populating transport here is an authority rejection trigger.
		return
	}
	p.TransporterName = load.Driver
	p.VehiclePlate = cleanPlate(load.Truck)
	p.VehicleUF = p.IssuerUF
}

func (b *Builder) fillVolumes(p *Payload, load *entities.Load) {
	if p.FreightCode == FreightNone || load.SeparateTransportDoc {
		return
	}
	kg := WeightKg(load.Quantity, load.Unit)
	w := fmt.Sprintf("%.2f", kg)
	p.GrossWeight = w
	p.NetWeight = w
	p.Volumes = []Volume{{
		Quantity:    "1",
		Kind:        "GRANEL",
		GrossWeight: w,
		NetWeight:   w,
	}}
}

func (b *Builder) fillPayment(p *Payload, load *entities.Load) {
	code := PaymentOther
	if load.Operation == entities.OpConsignment {
		code = PaymentNone
	}
	p.Payments = []PaymentEntry{{Code: code}}
}

func missingMandatory(p *Payload) []string {
	var missing []string
	req := []struct{ name, val string }{
		{"cnpj_emitente", p.IssuerCNPJ},
		{"inscricao_estadual_emitente", p.IssuerIE},
		{"municipio_emitente", p.IssuerCity},
		{"uf_emitente", p.IssuerUF},
		{"cep_emitente", p.IssuerCEP},
		{"nome_destinatario", p.RecipientName},
		{"municipio_destinatario", p.RecipientCity},
		{"uf_destinatario", p.RecipientUF},
	}
	for _, r := range req {
		if r.val == "" {
			missing = append(missing, r.name)
		}
	}
	if p.RecipientCNPJ == "" && p.RecipientCPF == "" {
		missing = append(missing, "cnpj_destinatario")
	}
	return missing
}

func formatQty(q float64) string {
	return fmt.Sprintf("%.4f", q)
}
