package discord

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-frontoffice/internal/cache"
	"github.com/pmurley/ulb-frontoffice/internal/config"
	"github.com/pmurley/ulb-frontoffice/internal/models"
	"github.com/pmurley/ulb-frontoffice/internal/qualifying"
	"github.com/pmurley/ulb-frontoffice/internal/spotrac"
	"github.com/pmurley/ulb-frontoffice/pkg/logger"
)

// DataLoader refills the cache from the sheets. Reload merges every
// collection; ReloadAssets refreshes only the asset pool.
type DataLoader interface {
	Reload() error
	ReloadAssets() error
}

// HistoryStore is the career qualifying-offer record.
type HistoryStore interface {
	History(playerName string) (models.CareerHistory, error)
	Record(history models.CareerHistory) error
}

// ContractSource looks up real-world contracts.
type ContractSource interface {
	Search(query string) (*spotrac.SearchResult, error)
	GetPlayerContract(playerURL string) (*spotrac.ContractInfo, error)
}

type Deps struct {
	Session   *discordgo.Session
	Config    *config.Config
	Logger    *logger.Logger
	Cache     *cache.Cache
	Loader    DataLoader
	History   HistoryStore
	Workflow  *qualifying.Workflow
	Contracts ContractSource
}

type HandlerManager struct {
	session   *discordgo.Session
	config    *config.Config
	logger    *logger.Logger
	cache     *cache.Cache
	loader    DataLoader
	history   HistoryStore
	qo        *qualifying.Workflow
	contracts ContractSource
	commands  map[string]CommandHandler
}

type CommandHandler func(s *discordgo.Session, m *discordgo.MessageCreate, args []string)

// reply is what a command sends back: text, an embed, or both.
type reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

func text(format string, a ...interface{}) reply {
	return reply{Content: fmt.Sprintf(format, a...)}
}

func embedReply(e *discordgo.MessageEmbed) reply {
	return reply{Embed: e}
}

func NewHandlerManager(d Deps) *HandlerManager {
	hm := &HandlerManager{
		session:   d.Session,
		config:    d.Config,
		logger:    d.Logger,
		cache:     d.Cache,
		loader:    d.Loader,
		history:   d.History,
		qo:        d.Workflow,
		contracts: d.Contracts,
		commands:  make(map[string]CommandHandler),
	}

	hm.registerCommands()

	return hm
}

func (hm *HandlerManager) RegisterHandlers() {
	hm.session.AddHandler(hm.messageCreate)
}

func (hm *HandlerManager) registerCommands() {
	hm.commands["help"] = hm.respond(hm.runHelp)
	hm.commands["reload"] = hm.respond(hm.runReload)
	hm.commands["value"] = hm.respond(hm.runValue)
	hm.commands["trade"] = hm.respond(hm.runTrade)
	hm.commands["arb"] = hm.respond(hm.runArb)
	hm.commands["qo"] = hm.respond(hm.runQO)
	hm.commands["negotiate"] = hm.respond(hm.runNegotiate)
	hm.commands["contract"] = hm.respond(hm.runContract)
}

// respond adapts a command that builds a reply into a Discord handler.
func (hm *HandlerManager) respond(run func(user string, args []string) reply) CommandHandler {
	return func(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
		r := run(m.Author.Username, args)
		if r.Content != "" {
			if _, err := s.ChannelMessageSend(m.ChannelID, r.Content); err != nil {
				hm.logger.Error("Failed to send message:", err)
			}
		}
		if r.Embed != nil {
			if _, err := s.ChannelMessageSendEmbed(m.ChannelID, r.Embed); err != nil {
				hm.logger.Error("Failed to send embed:", err)
			}
		}
	}
}

func (hm *HandlerManager) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	if !strings.HasPrefix(m.Content, hm.config.CommandPrefix) {
		return
	}

	content := strings.TrimPrefix(m.Content, hm.config.CommandPrefix)
	parts := strings.Fields(content)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	if handler, exists := hm.commands[command]; exists {
		hm.logger.Debug("Command", command, "from", m.Author.Username)
		handler(s, m, args)
	}
}

func (hm *HandlerManager) runHelp(user string, args []string) reply {
	helpMessage := `**Front Office Bot Commands:**
` + "```" + `
!help                 - Show this help message
!reload               - Reload Google Sheets, keeping workflow progress
!value <name>         - Trade value breakdown for an asset
!trade <assets> for <assets> - Evaluate a trade
    !trade Bellinger (retain 25%) for Greene, Keith
!arb list | range <name> | settle <name> | escalate <name>
!arb hearing <name> team|player
!qo list | offer <name> | resolve <name>
!negotiate show <name> | accept <name> | reject <name>
!negotiate offer <name> team|player <years> <total> [optout] [notrade]
!contract <name>      - Refresh an asset's contract from Spotrac
` + "```"

	clubs := hm.config.Owners.TeamsForOwner(user)
	if len(clubs) > 0 {
		sort.Strings(clubs)
		helpMessage += fmt.Sprintf("You act for: %s", strings.Join(clubs, ", "))
	}
	return reply{Content: helpMessage}
}

func (hm *HandlerManager) runReload(user string, args []string) reply {
	hm.cache.InvalidateAssets()
	if err := hm.loader.Reload(); err != nil {
		hm.logger.Error("Reload failed:", err)
		return text("Failed to reload data: %v", err)
	}
	return text("Data reloaded successfully!")
}

// Assets returns the asset pool, reloading the sheets if the cache expired.
func (hm *HandlerManager) Assets() (models.AssetList, error) {
	assets, found := hm.cache.GetAssets()
	if !found {
		hm.logger.Info("Cache expired, auto-reloading asset data...")
		if err := hm.loader.ReloadAssets(); err != nil {
			return nil, err
		}
		assets, found = hm.cache.GetAssets()
		if !found {
			return nil, fmt.Errorf("failed to load asset data after reload")
		}
	}
	return assets, nil
}

// authorize returns a refusal when user may not act for team.
func (hm *HandlerManager) authorize(user, team string) (reply, bool) {
	if hm.config.Owners.CanAct(team, user) {
		return reply{}, true
	}
	return text("Only owners of **%s** can do that.", team), false
}

// failure explains why a workflow refused an action.
func failure(name string, err error) reply {
	var te *models.TransitionError
	switch {
	case errors.As(err, &te):
		return text("Cannot %s for **%s** while %s.", te.Action, name, strings.ReplaceAll(te.From, "_", " "))
	case errors.Is(err, models.ErrPermanentlyIneligible):
		return text("**%s** has already received a qualifying offer and can never get another.", name)
	case errors.Is(err, models.ErrOutOfTurn):
		return text("It is the other side's turn to respond to **%s**'s last offer.", name)
	case errors.Is(err, models.ErrNegotiationClosed):
		return text("The negotiation with **%s** is closed.", name)
	case errors.Is(err, models.ErrNoPendingOffer):
		return text("There is no pending offer for **%s**.", name)
	case models.IsValidationError(err):
		return text("Invalid input: %v", err)
	}
	return text("Failed: %v", err)
}

// splitTail separates a trailing keyword argument from a multi-word name.
func splitTail(args []string) (string, string) {
	if len(args) < 2 {
		return strings.Join(args, " "), ""
	}
	return strings.Join(args[:len(args)-1], " "), strings.ToLower(args[len(args)-1])
}

// truncateName cuts name to at most n characters for fixed-width tables.
func truncateName(name string, n int) string {
	r := []rune(name)
	if len(r) <= n {
		return name
	}
	return string(r[:n])
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
