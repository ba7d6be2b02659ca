package bot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	fantraxmodels "github.com/pmurley/go-fantrax/models"

	"github.com/pmurley/ulb-frontoffice/internal/models"
	"github.com/pmurley/ulb-frontoffice/internal/storage"
	"github.com/pmurley/ulb-frontoffice/internal/valuation"
	"github.com/pmurley/ulb-frontoffice/pkg/logger"
)

// TradeSource supplies executed league trades.
type TradeSource interface {
	GetTrades() ([]fantraxmodels.Transaction, error)
}

// TradeValuation is a league trade scored from the first team's side.
type TradeValuation struct {
	GroupID       string
	ProcessedDate time.Time
	Period        int
	FromTeam      string
	ToTeam        string
	Sent          []string // Player names FromTeam gave up
	Received      []string
	Unknown       []string // Players missing from the asset pool
	Package       *valuation.TradePackage
}

// Valued reports whether both sides could be found in the asset pool.
func (tv TradeValuation) Valued() bool {
	return tv.Package != nil
}

func (tv TradeValuation) record() storage.TradeRecord {
	rec := storage.TradeRecord{
		TradeGroupID:  tv.GroupID,
		ProcessedDate: tv.ProcessedDate,
		FromTeam:      tv.FromTeam,
		ToTeam:        tv.ToTeam,
		Balance:       "unvalued",
	}
	if tv.Package != nil {
		rec.FromValue = tv.Package.SendingValue
		rec.ToValue = tv.Package.ReceivingValue
		rec.Balance = string(tv.Package.Balance)
		rec.Diff = tv.Package.BalanceDiff
	}
	return rec
}

// ValueTradeGroup scores one Fantrax trade group against the asset pool.
// Each leg is matched by exact name and the club that sent the player.
func ValueTradeGroup(groupID string, legs []fantraxmodels.Transaction, pool models.AssetList) (TradeValuation, error) {
	if len(legs) == 0 {
		return TradeValuation{}, fmt.Errorf("trade group %s has no transactions", groupID)
	}

	tv := TradeValuation{
		GroupID:       groupID,
		ProcessedDate: legs[0].ProcessedDate,
		Period:        legs[0].Period,
		FromTeam:      legs[0].FromTeamName,
		ToTeam:        legs[0].ToTeamName,
	}

	var sent, received []models.Asset
	for _, leg := range legs {
		asset, ok := matchLeg(pool, leg)
		switch {
		case leg.FromTeamName == tv.FromTeam:
			tv.Sent = append(tv.Sent, leg.PlayerName)
			if ok {
				sent = append(sent, asset)
			}
		case leg.ToTeamName == tv.FromTeam:
			tv.Received = append(tv.Received, leg.PlayerName)
			if ok {
				received = append(received, asset)
			}
		default:
			// Third club in a multi-team deal
			continue
		}
		if !ok {
			tv.Unknown = append(tv.Unknown, leg.PlayerName)
		}
	}

	if len(sent) == 0 || len(received) == 0 {
		return tv, nil
	}
	pkg, err := valuation.Analyze(sent, received)
	if err != nil {
		return tv, fmt.Errorf("valuing trade group %s: %w", groupID, err)
	}
	tv.Package = pkg
	return tv, nil
}

func matchLeg(pool models.AssetList, leg fantraxmodels.Transaction) (models.Asset, bool) {
	exact := pool.FindByExactName(leg.PlayerName)
	if len(exact) == 1 {
		return exact[0], true
	}
	if mine := exact.FilterByTeam(leg.FromTeamName); len(mine) == 1 {
		return mine[0], true
	}
	return models.Asset{}, false
}

// tradeMonitor finds trades not yet recorded, values and stores them.
type tradeMonitor struct {
	source  TradeSource
	storage *storage.TradeStorage
	assets  func() (models.AssetList, error)
	logger  *logger.Logger
}

// check returns the newly seen trades, oldest first. The first run seeds
// storage with the league's history and returns nothing.
func (tm *tradeMonitor) check() ([]TradeValuation, error) {
	known, err := tm.storage.GetTradeGroupIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing trade group IDs: %w", err)
	}
	firstRun := len(known) == 0

	legs, err := tm.source.GetTrades()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trades: %w", err)
	}

	groups := storage.GroupTransactionsByTradeGroup(legs)
	if len(groups) == 0 {
		return nil, nil
	}

	pool, err := tm.assets()
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	var fresh []TradeValuation
	for groupID, group := range groups {
		if known[groupID] {
			continue
		}
		tv, err := ValueTradeGroup(groupID, group, pool)
		if err != nil {
			tm.logger.Warn("Skipping trade group", groupID+":", err)
			continue
		}
		fresh = append(fresh, tv)
	}
	sort.Slice(fresh, func(i, j int) bool {
		return fresh[i].ProcessedDate.Before(fresh[j].ProcessedDate)
	})

	records := make([]storage.TradeRecord, 0, len(fresh))
	for _, tv := range fresh {
		records = append(records, tv.record())
	}
	if err := tm.storage.AddTrades(records); err != nil {
		return nil, fmt.Errorf("failed to store trades: %w", err)
	}

	if firstRun {
		tm.logger.Info("Trade storage initialized with", len(fresh), "historical trades")
		return nil, nil
	}
	return fresh, nil
}

// startTradeMonitor starts the background trade monitoring process
func (b *Bot) startTradeMonitor(tm *tradeMonitor) {
	go b.tradeMonitorLoop(tm)
}

func (b *Bot) tradeMonitorLoop(tm *tradeMonitor) {
	b.logger.Info("Starting trade monitor")

	b.checkNewTrades(tm)

	ticker := time.NewTicker(b.config.TradeCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.checkNewTrades(tm)
		case <-b.stopChan:
			b.logger.Info("Stopping trade monitor")
			return
		}
	}
}

func (b *Bot) checkNewTrades(tm *tradeMonitor) {
	trades, err := tm.check()
	if err != nil {
		b.logger.Error("Trade check failed:", err)
		return
	}
	if len(trades) == 0 {
		return
	}

	channelID := b.findChannelByName(b.config.TradeChannel)
	if channelID == "" {
		b.logger.Error("Could not find channel:", b.config.TradeChannel)
		return
	}
	for _, tv := range trades {
		if _, err := b.session.ChannelMessageSendEmbed(channelID, buildLeagueTradeEmbed(tv)); err != nil {
			b.logger.Error("Failed to send trade message to Discord:", err)
		}
	}
	b.logger.Info("Posted", len(trades), "new trades")
}

// buildLeagueTradeEmbed renders a valued league trade
func buildLeagueTradeEmbed(tv TradeValuation) *discordgo.MessageEmbed {
	var description strings.Builder
	description.WriteString(fmt.Sprintf("**%s** traded:\n", tv.FromTeam))
	for _, name := range tv.Sent {
		description.WriteString("• " + name + "\n")
	}
	description.WriteString(fmt.Sprintf("\n**%s** traded:\n", tv.ToTeam))
	for _, name := range tv.Received {
		description.WriteString("• " + name + "\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🔄 Trade Executed",
		Description: description.String(),
		Color:       0xffa500, // Orange
		Timestamp:   tv.ProcessedDate.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Period %d • %d players involved", tv.Period, len(tv.Sent)+len(tv.Received)),
		},
	}

	if tv.Valued() {
		pkg := tv.Package
		embed.Color = balanceColor(pkg.Balance)
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: tv.FromTeam + " sent", Value: fmt.Sprintf("%d", pkg.SendingValue), Inline: true},
			&discordgo.MessageEmbedField{Name: tv.FromTeam + " got", Value: fmt.Sprintf("%d", pkg.ReceivingValue), Inline: true},
			&discordgo.MessageEmbedField{Name: "Verdict for " + tv.FromTeam, Value: pkg.Balance.Label()},
		)
	}
	if len(tv.Unknown) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Not in asset pool",
			Value: strings.Join(tv.Unknown, ", "),
		})
	}
	return embed
}

func balanceColor(b valuation.Balance) int {
	switch b {
	case valuation.HeavilyFavorYou, valuation.FavorYou:
		return 0x00ff00 // Green
	case valuation.Fair:
		return 0x0099ff // Blue
	default:
		return 0xff0000 // Red
	}
}

// findChannelByName finds a channel ID by name
func (b *Bot) findChannelByName(channelName string) string {
	for _, guild := range b.session.State.Guilds {
		channels, err := b.session.GuildChannels(guild.ID)
		if err != nil {
			continue
		}
		for _, channel := range channels {
			if channel.Name == channelName && channel.Type == discordgo.ChannelTypeGuildText {
				return channel.ID
			}
		}
	}
	return ""
}
