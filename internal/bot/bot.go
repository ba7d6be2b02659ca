package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-frontoffice/internal/cache"
	"github.com/pmurley/ulb-frontoffice/internal/config"
	"github.com/pmurley/ulb-frontoffice/internal/discord"
	"github.com/pmurley/ulb-frontoffice/internal/fantrax"
	"github.com/pmurley/ulb-frontoffice/internal/qualifying"
	"github.com/pmurley/ulb-frontoffice/internal/sheets"
	"github.com/pmurley/ulb-frontoffice/internal/spotrac"
	"github.com/pmurley/ulb-frontoffice/internal/storage"
	"github.com/pmurley/ulb-frontoffice/pkg/logger"
)

type Bot struct {
	session      *discordgo.Session
	config       *config.Config
	logger       *logger.Logger
	dataCache    *cache.Cache
	sheetsClient *sheets.Client
	qoHistory    *storage.QOHistoryStorage
	qoWorkflow   *qualifying.Workflow
	handlers     *discord.HandlerManager
	stopChan     chan struct{}
}

func New(cfg *config.Config, log *logger.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	sheetsClient, err := sheets.NewClient(cfg.GoogleSheetsID, cfg.Sheets)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	qoHistory, err := storage.NewQOHistoryStorage(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open qualifying offer history: %w", err)
	}

	qoWorkflow, err := qualifying.New(cfg.League.QOAmount)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		session:      session,
		config:       cfg,
		logger:       log,
		dataCache:    cache.New(cfg.CacheDuration),
		sheetsClient: sheetsClient,
		qoHistory:    qoHistory,
		qoWorkflow:   qoWorkflow,
		stopChan:     make(chan struct{}),
	}

	b.handlers = discord.NewHandlerManager(discord.Deps{
		Session:   b.session,
		Config:    cfg,
		Logger:    log,
		Cache:     b.dataCache,
		Loader:    b,
		History:   qoHistory,
		Workflow:  qoWorkflow,
		Contracts: spotrac.NewClient(),
	})

	return b, nil
}

// Reload refetches every sheet into the cache, keeping workflow progress.
func (b *Bot) Reload() error {
	return b.sheetsClient.LoadInitialData(b.dataCache, b.qoWorkflow, b.qoHistory, b.config.League.Season)
}

// ReloadAssets refetches only the asset pool.
func (b *Bot) ReloadAssets() error {
	return b.sheetsClient.RefreshAssets(b.dataCache)
}

func (b *Bot) Start() error {
	b.handlers.RegisterHandlers()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if err := b.Reload(); err != nil {
		b.logger.Error("Failed to load initial data from sheets:", err)
	}

	if b.config.FantraxLeagueID == "" {
		b.logger.Info("FANTRAX_LEAGUE_ID not set, trade monitor disabled")
		return nil
	}

	tm, err := b.newTradeMonitor()
	if err != nil {
		b.logger.Error("Failed to start trade monitor:", err)
		return nil
	}
	b.startTradeMonitor(tm)

	return nil
}

func (b *Bot) newTradeMonitor() (*tradeMonitor, error) {
	source, err := fantrax.NewFantraxClient(b.config.FantraxLeagueID, false)
	if err != nil {
		return nil, err
	}
	trades, err := storage.NewTradeStorage(b.config.DataDir)
	if err != nil {
		return nil, err
	}
	return &tradeMonitor{
		source:  source,
		storage: trades,
		assets:  b.handlers.Assets,
		logger:  b.logger.With("component", "trade_monitor"),
	}, nil
}

func (b *Bot) Stop() error {
	close(b.stopChan)
	return b.session.Close()
}
