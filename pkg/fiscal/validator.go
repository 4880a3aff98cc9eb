package fiscal

import (
	"integrarural/entities"
	"integrarural/pkg/apperr"
)

// Validate enforces operation-type invariants over an assembled payload.
// Consignment is the only type with legally narrow tolerances; other types
// pass through. A violation means the caller must not submit and the
// load's fiscal status must stay where it is.
func Validate(p *Payload, operation string) error {
	if operation != entities.OpConsignment {
		return nil
	}
	if p.FreightCode == FreightNone {
		return &apperr.FiscalComplianceError{
			Field:    "modalidade_frete",
			Got:      p.FreightCode,
			Expected: []string{FreightIssuer, FreightRecipient, FreightThirdParty},
		}
	}
	for _, item := range p.Items {
		if item.CFOP != CFOPConsignmentIntra && item.CFOP != CFOPConsignmentInter {
			return &apperr.FiscalComplianceError{
				Field:    "cfop",
				Got:      item.CFOP,
				Expected: []string{CFOPConsignmentIntra, CFOPConsignmentInter},
			}
		}
	}
	return nil
}
