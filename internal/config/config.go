package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration. Policy (shifts, rules,
// reconciliation boundaries) lives in a YAML file instead: it is reviewed
// HR configuration, not deployment wiring.
type Config struct {
	Files struct {
		Day1 string // attendance export for the first calendar day
		Day2 string // attendance export for the second calendar day
	}
	Policy struct {
		Path string // optional YAML policy file; defaults apply when empty
	}
	MySQL struct {
		DSN string // e.g., user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
	}
	ERPNext struct {
		BaseURL string
		Token   string // api_key:api_secret
		Company string
		ForDate string // YYYY-MM-DD the posted timesheets are attributed to
	}
}

// Load reads configuration from the environment, after merging in a .env
// file when one is present next to the binary.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.Files.Day1 = os.Getenv("ATTENDANCE_DAY1_FILE")
	cfg.Files.Day2 = os.Getenv("ATTENDANCE_DAY2_FILE")
	cfg.Policy.Path = os.Getenv("POLICY_FILE")
	cfg.MySQL.DSN = os.Getenv("MYSQL_DSN")
	cfg.ERPNext.BaseURL = os.Getenv("ERPNEXT_BASE_URL")
	cfg.ERPNext.Token = os.Getenv("ERPNEXT_TOKEN")
	cfg.ERPNext.Company = os.Getenv("ERPNEXT_COMPANY")
	cfg.ERPNext.ForDate = os.Getenv("ERPNEXT_FOR_DATE")

	if cfg.ERPNext.BaseURL != "" && cfg.ERPNext.Token == "" {
		return cfg, errors.New("ERPNEXT_TOKEN is required when ERPNEXT_BASE_URL is set")
	}
	return cfg, nil
}
