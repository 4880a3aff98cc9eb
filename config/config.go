package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Fiscal authority environments. Sandbox synthetic data only ever applies
// under EnvSandbox; production submissions never receive it.
const (
	EnvSandbox    = "homologacao"
	EnvProduction = "producao"
)

type AppConfig struct {
	Port          string
	DBPath        string
	JWTSecret     string
	DevLogin      bool
	FocusEnv      string
	FocusToken    string
	FocusBaseURL  string // optional override, used by tests
	CNPJLookupURL string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		DBPath:        get("DB_PATH", "integrarural.db"),
		JWTSecret:     get("JWT_SECRET", "dev-secret"),
		DevLogin:      get("DEV_LOGIN", "false") == "true",
		FocusEnv:      get("FOCUS_NFE_AMBIENTE", EnvSandbox),
		FocusToken:    get("FOCUS_NFE_TOKEN", ""),
		FocusBaseURL:  get("FOCUS_NFE_BASE_URL", ""),
		CNPJLookupURL: get("CNPJ_LOOKUP_URL", "https://brasilapi.com.br/api/cnpj/v1"),
	}
	log.Printf("[cfg] port=%s db=%s focus=%s devlogin=%v", cfg.Port, cfg.DBPath, cfg.FocusEnv, cfg.DevLogin)
	return cfg
}
