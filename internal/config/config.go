package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath           string
	OutputDir        string
	AssetsConfigPath string

	SupabaseURL     string
	SupabaseKey     string
	SupabaseTable   string
	SupabaseTimeout int
	SupabaseRateRPS int
	BatchSize       int
	BatchDelayMs    int

	AssemblyURLs  []string
	SenateCSVURL  string
	MayorsCSVURL  string
	GovernmentURL string

	FetchTimeoutMs int
	FetchRateRPS   int

	SyncIntervalHrs int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:           getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir:        getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		AssetsConfigPath: getEnv("ASSETS_CONFIG_PATH", filepath.Join(cwd, "data", "assets-config.json")),

		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseKey:     getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseTable:   getEnv("SUPABASE_TABLE", "politicians"),
		SupabaseTimeout: getEnvInt("SUPABASE_TIMEOUT_MS", 30000),
		SupabaseRateRPS: getEnvInt("SUPABASE_RATE_LIMIT_RPS", 10),
		BatchSize:       getEnvInt("INSERT_BATCH_SIZE", 50),
		BatchDelayMs:    getEnvInt("INSERT_BATCH_DELAY_MS", 500),

		AssemblyURLs: getEnvList("ASSEMBLY_URLS", []string{
			"https://data.assemblee-nationale.fr/static/openData/repository/17/amo/deputes/AMO30_deputes_actifs_mandats_actifs_organes_divises.json",
			"https://data.assemblee-nationale.fr/static/openData/repository/16/amo/deputes/AMO30_deputes_actifs_mandats_actifs_organes_divises.json",
			"https://www.assemblee-nationale.fr/dyn/opendata/legislature/17/json/acteurs",
		}),
		SenateCSVURL:  getEnv("SENATE_CSV_URL", "https://data.senat.fr/data/senateurs/ODSEN_GENERAL.csv"),
		MayorsCSVURL:  getEnv("MAYORS_CSV_URL", "https://www.data.gouv.fr/fr/datasets/r/d5f400de-ae3f-4966-8cb6-a85c70c6c24a"),
		GovernmentURL: getEnv("GOVERNMENT_URL", ""),

		FetchTimeoutMs: getEnvInt("FETCH_TIMEOUT_MS", 30000),
		FetchRateRPS:   getEnvInt("FETCH_RATE_LIMIT_RPS", 5),

		SyncIntervalHrs: getEnvInt("SYNC_INTERVAL_HOURS", 24),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

// RequireStore checks persistence credentials up front. This is the only
// failure that aborts a populate run before any fetching starts.
func (c Config) RequireStore() error {
	if err := c.Require("SUPABASE_URL", c.SupabaseURL); err != nil {
		return err
	}
	return c.Require("SUPABASE_ANON_KEY", c.SupabaseKey)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := getEnv(key, "")
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
