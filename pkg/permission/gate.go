// Package permission evaluates field-change requests against per-farm
// capability grants.
package permission

import (
	"integrarural/entities"
	"integrarural/pkg/apperr"
)

// Field categories checked independently. Holding one capability never
// implies another: a scale operator with only manage_weight is denied an
// update that also touches the driver name.
var (
	policyFields  = fieldSet("std_moisture_pct", "moisture_factor", "std_impurity_pct")
	weightFields  = fieldSet("gross_kg", "tare_kg")
	qualityFields = fieldSet("moisture_pct", "impurity_pct")
)

func fieldSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Authorize checks every changed field against the actor's grant.
// Manager rank and above bypass all checks. A nil grant is zero
// capabilities. The scheduling-timestamp translation is not a business
// field and must not be passed in changed.
func Authorize(role string, grant *entities.FarmPermission, changed []string) error {
	if entities.RoleAtLeast(role, entities.RoleManager) {
		return nil
	}
	for _, f := range changed {
		switch {
		case policyFields[f]:
			// Tolerance policy is manager-only regardless of grants.
			return &apperr.PermissionError{Capability: "tolerance_policy", Field: f}
		case weightFields[f]:
			if !has(grant, entities.CapManageWeight) {
				return &apperr.PermissionError{Capability: entities.CapManageWeight, Field: f}
			}
		case qualityFields[f]:
			if !has(grant, entities.CapManageQuality) {
				return &apperr.PermissionError{Capability: entities.CapManageQuality, Field: f}
			}
		default:
			if !has(grant, entities.CapUpdate) {
				return &apperr.PermissionError{Capability: entities.CapUpdate, Field: f}
			}
		}
	}
	return nil
}

func has(grant *entities.FarmPermission, cap string) bool {
	if grant == nil {
		return false
	}
	return grant.Grants.Has(entities.ModuleTruckLoading, cap)
}
