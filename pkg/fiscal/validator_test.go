package fiscal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integrarural/entities"
	"integrarural/pkg/apperr"
)

func TestValidateConsignmentRejectsNoFreight(t *testing.T) {
	p := &Payload{
		FreightCode: FreightNone,
		Items:       []Item{{CFOP: CFOPConsignmentIntra}},
	}
	err := Validate(p, entities.OpConsignment)
	var fce *apperr.FiscalComplianceError
	require.ErrorAs(t, err, &fce)
	assert.Equal(t, "modalidade_frete", fce.Field)
	assert.Equal(t, FreightNone, fce.Got)
}

func TestValidateConsignmentRejectsForeignCFOP(t *testing.T) {
	p := &Payload{
		FreightCode: FreightIssuer,
		Items:       []Item{{CFOP: "5101"}},
	}
	err := Validate(p, entities.OpConsignment)
	var fce *apperr.FiscalComplianceError
	require.ErrorAs(t, err, &fce)
	assert.Equal(t, "cfop", fce.Field)
	assert.Contains(t, fce.Expected, CFOPConsignmentIntra)
	assert.Contains(t, fce.Expected, CFOPConsignmentInter)
}

func TestValidateConsignmentAcceptsBothJurisdictions(t *testing.T) {
	for _, cfop := range []string{CFOPConsignmentIntra, CFOPConsignmentInter} {
		p := &Payload{
			FreightCode: FreightThirdParty,
			Items:       []Item{{CFOP: cfop}},
		}
		assert.NoError(t, Validate(p, entities.OpConsignment), cfop)
	}
}

func TestValidateOtherOperationsPassThrough(t *testing.T) {
	p := &Payload{
		FreightCode: FreightNone,
		Items:       []Item{{CFOP: "5101"}},
	}
	assert.NoError(t, Validate(p, entities.OpSale))
	assert.NoError(t, Validate(p, entities.OpInternal))
}
