package config

import (
	"testing"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "transactions.jsonl", cfg.LedgerFile)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, folio.Tolerant, cfg.Oversell)
	assert.Equal(t, "five-band", cfg.TechTable.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Nil(t, cfg.Growth)
	assert.Empty(t, cfg.Special)
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FOLIO_CURRENCY", "usd")
	t.Setenv("FOLIO_SPECIAL", "LIVRET, FX-USD ,")
	t.Setenv("FOLIO_OVERSELL", "strict")
	t.Setenv("FOLIO_TECH_RATING", "four-band")
	t.Setenv("FOLIO_PORT", "9000")
	t.Setenv("FOLIO_CACHE_TTL", "30s")
	t.Setenv("FOLIO_GROWTH_INSTRUMENT", "LIVRET")
	t.Setenv("FOLIO_GROWTH_ANCHOR_DATE", "2024-01-01")
	t.Setenv("FOLIO_GROWTH_ANCHOR_VALUE", "1000")
	t.Setenv("FOLIO_GROWTH_RATE", "0.03")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, []string{"LIVRET", "FX-USD"}, cfg.Special)
	assert.True(t, cfg.SpecialSet().Contains("FX-USD"))
	assert.Equal(t, folio.Strict, cfg.Oversell)
	assert.Equal(t, "four-band", cfg.TechTable.Name)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	require.NotNil(t, cfg.Growth)
	assert.Equal(t, date.New(2024, 1, 1), cfg.Growth.Curve.AnchorDate)
	assert.Equal(t, "USD", cfg.Growth.Curve.AnchorValue.Currency())
	assert.Len(t, cfg.Options(nil), 4)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("FOLIO_OVERSELL", "sometimes")
	_, err := Load()
	assert.ErrorContains(t, err, "FOLIO_OVERSELL")

	t.Setenv("FOLIO_OVERSELL", "")
	t.Setenv("FOLIO_GROWTH_INSTRUMENT", "LIVRET")
	t.Setenv("FOLIO_GROWTH_ANCHOR_DATE", "2024-01-01")
	t.Setenv("FOLIO_GROWTH_ANCHOR_VALUE", "1000")
	_, err = Load()
	assert.ErrorContains(t, err, "FOLIO_SPECIAL")
}
