// Package config loads the fol configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/scoring"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	LedgerFile     string
	PricesFile     string
	AttributesFile string
	DatabasePath   string // SQLite store, used instead of the files when set
	Currency       string // reporting and default transaction currency

	Special   []string // instruments valued by net cashflow
	Oversell  folio.OversellPolicy
	TechTable scoring.ThresholdTable
	Growth    *Growth

	Port     int
	Refresh  string // cron spec of the server refresh job
	CacheTTL time.Duration

	LogLevel  string
	LogPretty bool
}

// Growth configures the growth curve of one special instrument.
type Growth struct {
	Instrument string
	Curve      folio.GrowthCurve
}

// Load reads configuration from environment variables, after loading a
// .env file if there is one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LedgerFile:     getEnv("FOLIO_LEDGER_FILE", "transactions.jsonl"),
		PricesFile:     getEnv("FOLIO_PRICES_FILE", "prices.json"),
		AttributesFile: getEnv("FOLIO_ATTRIBUTES_FILE", "attributes.json"),
		DatabasePath:   getEnv("FOLIO_DB", ""),
		Currency:       strings.ToUpper(getEnv("FOLIO_CURRENCY", "EUR")),
		Special:        getEnvAsList("FOLIO_SPECIAL"),
		Port:           getEnvAsInt("FOLIO_PORT", 8080),
		Refresh:        getEnv("FOLIO_REFRESH", "0 */15 * * * *"),
		CacheTTL:       getEnvAsDuration("FOLIO_CACHE_TTL", 5*time.Minute),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("LOG_PRETTY", false),
	}

	var err error
	if cfg.Oversell, err = folio.ParseOversellPolicy(getEnv("FOLIO_OVERSELL", "tolerant")); err != nil {
		return nil, fmt.Errorf("FOLIO_OVERSELL: %w", err)
	}
	if cfg.TechTable, err = scoring.ParseThresholdTable(getEnv("FOLIO_TECH_RATING", "")); err != nil {
		return nil, fmt.Errorf("FOLIO_TECH_RATING: %w", err)
	}
	if cfg.Growth, err = loadGrowth(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadGrowth reads the optional growth curve, nil when not configured.
func loadGrowth() (*Growth, error) {
	instrument := getEnv("FOLIO_GROWTH_INSTRUMENT", "")
	if instrument == "" {
		return nil, nil
	}
	anchor, err := date.Parse(getEnv("FOLIO_GROWTH_ANCHOR_DATE", ""))
	if err != nil {
		return nil, fmt.Errorf("FOLIO_GROWTH_ANCHOR_DATE: %w", err)
	}
	value, err := strconv.ParseFloat(getEnv("FOLIO_GROWTH_ANCHOR_VALUE", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("FOLIO_GROWTH_ANCHOR_VALUE: %w", err)
	}
	rate, err := strconv.ParseFloat(getEnv("FOLIO_GROWTH_RATE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("FOLIO_GROWTH_RATE: %w", err)
	}
	return &Growth{
		Instrument: instrument,
		Curve: folio.GrowthCurve{
			AnchorDate:  anchor,
			AnchorValue: folio.M(value, strings.ToUpper(getEnv("FOLIO_CURRENCY", "EUR"))),
			AnnualRate:  rate,
		},
	}, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.LedgerFile == "" && c.DatabasePath == "" {
		return fmt.Errorf("FOLIO_LEDGER_FILE or FOLIO_DB is required")
	}
	if c.Currency == "" {
		return fmt.Errorf("FOLIO_CURRENCY is required")
	}
	if c.Growth != nil && !folio.NewInstrumentSet(c.Special...).Contains(c.Growth.Instrument) {
		return fmt.Errorf("growth instrument %q must be listed in FOLIO_SPECIAL", c.Growth.Instrument)
	}
	return nil
}

// SpecialSet returns the special instruments as a set.
func (c *Config) SpecialSet() folio.InstrumentSet { return folio.NewInstrumentSet(c.Special...) }

// Options returns the reconstruction options the configuration implies.
// The clock of the growth curve is the caller's.
func (c *Config) Options(clock folio.Clock) []folio.Option {
	opts := []folio.Option{
		folio.WithOversellPolicy(c.Oversell),
		folio.WithCurrency(c.Currency),
		folio.WithClock(clock),
	}
	if c.Growth != nil {
		opts = append(opts, folio.WithGrowthCurve(c.Growth.Instrument, c.Growth.Curve))
	}
	return opts
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var res []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}
