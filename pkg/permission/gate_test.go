package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integrarural/entities"
	"integrarural/pkg/apperr"
)

func grantWith(caps ...string) *entities.FarmPermission {
	return &entities.FarmPermission{
		UserID: 10,
		FarmID: 1,
		Grants: entities.Grants{entities.ModuleTruckLoading: caps},
	}
}

func TestAuthorizeManagerBypass(t *testing.T) {
	changed := []string{"gross_kg", "moisture_pct", "std_moisture_pct", "driver"}
	for _, role := range []string{entities.RoleManager, entities.RoleOwner, entities.RoleSystemAdmin} {
		assert.NoError(t, Authorize(role, nil, changed), role)
	}
}

func TestAuthorizeWeightCapabilityOnly(t *testing.T) {
	grant := grantWith(entities.CapManageWeight)

	assert.NoError(t, Authorize(entities.RoleOperational, grant, []string{"gross_kg", "tare_kg"}))

	// manage_weight does not imply update: touching the driver too fails,
	// and the whole request is denied.
	err := Authorize(entities.RoleOperational, grant, []string{"gross_kg", "driver"})
	var pe *apperr.PermissionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, entities.CapUpdate, pe.Capability)
	assert.Equal(t, "driver", pe.Field)
}

func TestAuthorizeQualityCapability(t *testing.T) {
	grant := grantWith(entities.CapManageQuality)

	assert.NoError(t, Authorize(entities.RoleOperational, grant, []string{"moisture_pct", "impurity_pct"}))

	err := Authorize(entities.RoleOperational, grant, []string{"gross_kg"})
	var pe *apperr.PermissionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, entities.CapManageWeight, pe.Capability)
}

func TestAuthorizeUpdateDoesNotImplyWeightOrQuality(t *testing.T) {
	grant := grantWith(entities.CapUpdate)

	assert.NoError(t, Authorize(entities.RoleOperational, grant, []string{"driver", "truck", "destination"}))

	var pe *apperr.PermissionError
	require.ErrorAs(t, Authorize(entities.RoleOperational, grant, []string{"gross_kg"}), &pe)
	assert.Equal(t, entities.CapManageWeight, pe.Capability)

	require.ErrorAs(t, Authorize(entities.RoleOperational, grant, []string{"moisture_pct"}), &pe)
	assert.Equal(t, entities.CapManageQuality, pe.Capability)
}

func TestAuthorizePolicyFieldsManagerOnly(t *testing.T) {
	grant := grantWith(entities.CapUpdate, entities.CapManageWeight, entities.CapManageQuality)

	for _, f := range []string{"std_moisture_pct", "moisture_factor", "std_impurity_pct"} {
		err := Authorize(entities.RoleFinancial, grant, []string{f})
		var pe *apperr.PermissionError
		require.ErrorAs(t, err, &pe, f)
		assert.Equal(t, "tolerance_policy", pe.Capability)
	}
}

func TestAuthorizeNilGrantFailsClosed(t *testing.T) {
	var pe *apperr.PermissionError
	require.ErrorAs(t, Authorize(entities.RoleOperational, nil, []string{"driver"}), &pe)
	require.ErrorAs(t, Authorize(entities.RoleFinancial, nil, []string{"gross_kg"}), &pe)
	assert.NoError(t, Authorize(entities.RoleOperational, nil, nil))
}

func TestAuthorizeUnknownRoleNeverBypasses(t *testing.T) {
	var pe *apperr.PermissionError
	require.ErrorAs(t, Authorize("superuser", nil, []string{"driver"}), &pe)
}
