package fiscal

import "strings"

// CFOP shipment codes. Consignment loads pick between the two
// armazenagem/secagem codes by jurisdiction; everything else falls back to
// the sale-of-own-production code when no override or farm default exists.
const (
	CFOPConsignmentIntra = "5934"
	CFOPConsignmentInter = "6934"
	CFOPSaleFallback     = "5101"
)

// Freight responsibility codes (modalidade_frete).
const (
	FreightIssuer     = "0"
	FreightRecipient  = "1"
	FreightThirdParty = "2"
	FreightNone       = "9"
)

// Operation nature texts.
const (
	NatureConsignment = "REMESSA PARA ARMAZENAGEM E SECAGEM DE GRAOS"
	NatureFallback    = "VENDA DE PRODUCAO DO ESTABELECIMENTO"
)

// Payment codes (forma_pagamento).
const (
	PaymentNone  = "90"
	PaymentOther = "99"
)

// State tax registration marker for exempt registrants.
const IEExempt = "ISENTO"

// Sandbox ("homologação") synthetic identifiers required by the fiscal
// authority's test environment.
const (
	SandboxIssuerCNPJ    = "11111111000111"
	SandboxRecipientCNPJ = "99999999000191"
	SandboxName          = "NF-E EMITIDA EM AMBIENTE DE HOMOLOGACAO - SEM VALOR FISCAL"
	SandboxItemText      = "NOTA FISCAL EMITIDA EM AMBIENTE DE HOMOLOGACAO - SEM VALOR FISCAL"
)

// Tax situation placeholder sets. Coarse on purpose: keyed only on
// operation type, no tax amounts are computed here.
type taxSituation struct {
	ICMS, PIS, COFINS string
}

var (
	taxConsignment = taxSituation{ICMS: "41", PIS: "08", COFINS: "08"}
	taxDefault     = taxSituation{ICMS: "40", PIS: "07", COFINS: "07"}
)

// NCM commodity classification by keyword. Any-substring match over the
// lowercased commodity name; unmatched commodities get the generic grain
// code.
var ncmByProduct = map[string]string{
	"soja":   "1201.90.00",
	"milho":  "1005.90.10",
	"cana":   "1212.99.90",
	"trigo":  "1001.99.00",
	"arroz":  "1006.30.21",
	"feijao": "0713.32.00",
}

const ncmFallback = "1005.90.90"

func ncmFor(product string) string {
	p := strings.ToLower(product)
	for key, ncm := range ncmByProduct {
		if strings.Contains(p, key) {
			return ncm
		}
	}
	return ncmFallback
}

// unitCode maps the load's free-text unit to the document unit code.
func unitCode(unit string) string {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "ton", "t":
		return "TON"
	case "kg":
		return "KG"
	case "sc", "saca", "sacas":
		return "SAC"
	default:
		return "UN"
	}
}

// WeightKg converts a quantity in the load's unit to kilograms. Sacks are
// the standard 60 kg grain sack. Used for the volumes block and as the
// settlement fallback weight when no scale reading exists.
func WeightKg(quantity float64, unit string) float64 {
	switch unitCode(unit) {
	case "TON":
		return quantity * 1000
	case "SAC":
		return quantity * 60
	default:
		return quantity
	}
}

// cleanPlate uppercases a vehicle plate and strips everything that is not
// alphanumeric, capped at 8 characters.
func cleanPlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(plate) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 8 {
				break
			}
		}
	}
	return b.String()
}

// digits strips CNPJ/CPF/CEP punctuation.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
