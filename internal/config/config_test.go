package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.CacheDuration)
	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 21.05, cfg.League.QOAmount)
	assert.Equal(t, 2025, cfg.League.Season)
	assert.Equal(t, 2*time.Minute, cfg.TradeCheckInterval)
	assert.Equal(t, "286507798", cfg.Sheets.Assets)
	assert.Empty(t, cfg.FantraxLeagueID)
	assert.Empty(t, cfg.Owners)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("QO_AMOUNT", "20.325")
	t.Setenv("CACHE_DURATION_MINUTES", "15")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SEASON", "2026")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, 20.325, cfg.League.QOAmount)
	assert.Equal(t, 15*time.Minute, cfg.CacheDuration)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2026, cfg.League.Season)
}

func TestLoadRejectsBadQOAmount(t *testing.T) {
	t.Setenv("QO_AMOUNT", "0")
	_, err := Load()
	assert.ErrorContains(t, err, "QO_AMOUNT")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontoffice.yaml")
	content := `
qo_amount: 22.5
trade_channel: trade-desk
team_owners:
  Havana Bananas:
    - bmoney831
    - notthe1.eth
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TRADE_CHANNEL", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 22.5, cfg.League.QOAmount)
	assert.Equal(t, "from-env", cfg.TradeChannel)
	assert.True(t, cfg.Owners.IsTeamOwner("Havana Bananas", "bmoney831"))
	assert.False(t, cfg.Owners.IsTeamOwner("Havana Bananas", "someone"))
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
