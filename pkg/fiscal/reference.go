package fiscal

import (
	"encoding/hex"

	"github.com/google/uuid"

	"integrarural/config"
)

// NewReference generates the unique reference sent to the fiscal
// authority: hml_xxxxxxxx in sandbox, prod_xxxxxxxx in production. A load
// gets exactly one reference for its lifetime; retries reuse it.
func NewReference(env string) string {
	prefix := "hml"
	if env == config.EnvProduction {
		prefix = "prod"
	}
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:])[:8]
}
