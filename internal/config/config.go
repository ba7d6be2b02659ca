package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

type Config struct {
	DiscordToken   string
	GoogleSheetsID string
	CacheDuration  time.Duration
	CommandPrefix  string
	LogLevel       string
	LogFormat      string
	DataDir        string

	FantraxLeagueID    string
	TradeChannel       string
	TradeCheckInterval time.Duration

	League League
	Sheets SheetGIDs
	Owners models.TeamOwners
}

// League holds the league-wide settings the workflows are parameterized with.
type League struct {
	QOAmount float64 // Qualifying offer, millions
	Season   int
}

// SheetGIDs are the tabs of the front-office spreadsheet.
type SheetGIDs struct {
	Assets       string
	Arbitration  string
	Qualifying   string
	Negotiations string
}

// Load reads configuration from the environment and, when CONFIG_FILE is set,
// from that YAML file. Environment values win.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		DiscordToken:       v.GetString("DISCORD_TOKEN"),
		GoogleSheetsID:     v.GetString("GOOGLE_SHEETS_ID"),
		CacheDuration:      time.Duration(v.GetInt("CACHE_DURATION_MINUTES")) * time.Minute,
		CommandPrefix:      v.GetString("COMMAND_PREFIX"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:          strings.ToLower(v.GetString("LOG_FORMAT")),
		DataDir:            v.GetString("DATA_DIR"),
		FantraxLeagueID:    v.GetString("FANTRAX_LEAGUE_ID"),
		TradeChannel:       v.GetString("TRADE_CHANNEL"),
		TradeCheckInterval: time.Duration(v.GetInt("TRADE_CHECK_MINUTES")) * time.Minute,
		League: League{
			QOAmount: v.GetFloat64("QO_AMOUNT"),
			Season:   v.GetInt("SEASON"),
		},
		Sheets: SheetGIDs{
			Assets:       v.GetString("ASSETS_GID"),
			Arbitration:  v.GetString("ARBITRATION_GID"),
			Qualifying:   v.GetString("QO_GID"),
			Negotiations: v.GetString("NEGOTIATIONS_GID"),
		},
		Owners: models.TeamOwners(v.GetStringMapStringSlice("TEAM_OWNERS")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("CACHE_DURATION_MINUTES", 5)
	v.SetDefault("COMMAND_PREFIX", "!")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("TRADE_CHANNEL", "trades")
	v.SetDefault("TRADE_CHECK_MINUTES", 2)
	v.SetDefault("QO_AMOUNT", 21.05)
	v.SetDefault("SEASON", 2025)
	v.SetDefault("ASSETS_GID", "286507798")
	v.SetDefault("ARBITRATION_GID", "1669990835")
	v.SetDefault("QO_GID", "396888711")
	v.SetDefault("NEGOTIATIONS_GID", "36423663")
}

func (c *Config) validate() error {
	if c.CacheDuration <= 0 {
		return fmt.Errorf("CACHE_DURATION_MINUTES must be positive")
	}
	if c.TradeCheckInterval <= 0 {
		return fmt.Errorf("TRADE_CHECK_MINUTES must be positive")
	}
	if c.League.QOAmount <= 0 {
		return fmt.Errorf("QO_AMOUNT must be positive, got %v", c.League.QOAmount)
	}
	if c.CommandPrefix == "" {
		return fmt.Errorf("COMMAND_PREFIX must not be empty")
	}
	return nil
}
