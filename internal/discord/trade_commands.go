package discord

import (
	"fmt"
	"math"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-frontoffice/internal/models"
	"github.com/pmurley/ulb-frontoffice/internal/valuation"
)

// runTrade evaluates a proposed trade from the first side's point of view
func (hm *HandlerManager) runTrade(user string, args []string) reply {
	if len(args) == 0 {
		return text("Usage: `!trade <your assets> for <their assets>`\n" +
			"Example: `!trade Cody Bellinger, Pete Crow-Armstrong for Riley Greene`\n" +
			"With retention: `!trade Bellinger (retain 25%) for Greene`")
	}

	sendingNames, receivingNames, ok := splitTrade(strings.Join(args, " "))
	if !ok {
		return text("Invalid format. Use: `!trade <assets> for <assets>`")
	}

	side1Info := parseAssetList(sendingNames)
	side2Info := parseAssetList(receivingNames)
	if len(side1Info) == 0 || len(side2Info) == 0 {
		return text("Please specify at least one asset on each side of the trade.")
	}

	assets, err := hm.Assets()
	if err != nil {
		return text("Failed to load asset data: %v", err)
	}

	side1, side1NotFound := findAssetsWithRetention(assets, side1Info)
	side2, side2NotFound := findAssetsWithRetention(assets, side2Info)

	if len(side1NotFound) > 0 || len(side2NotFound) > 0 {
		msg := "**Assets not found:**\n"
		if len(side1NotFound) > 0 {
			msg += fmt.Sprintf("Side 1: %s\n", strings.Join(side1NotFound, "; "))
		}
		if len(side2NotFound) > 0 {
			msg += fmt.Sprintf("Side 2: %s\n", strings.Join(side2NotFound, "; "))
		}
		return reply{Content: msg}
	}

	pkg, err := valuation.Analyze(receivedAssets(side1), receivedAssets(side2))
	if err != nil {
		return text("Cannot evaluate trade: %v", err)
	}

	return embedReply(buildTradeEmbed(pkg, side1, side2))
}

// splitTrade splits "<assets> for <assets>" keeping the original case.
func splitTrade(input string) (string, string, bool) {
	idx := strings.Index(strings.ToLower(input), " for ")
	if idx == -1 {
		return "", "", false
	}
	rest := input[idx+len(" for "):]
	if strings.Contains(strings.ToLower(rest), " for ") {
		return "", "", false
	}
	return input[:idx], rest, true
}

// AssetWithRetention is an asset name with optional retention percentage
type AssetWithRetention struct {
	Name             string
	RetentionPercent float64
}

// parseAssetList splits a comma-separated list of names with optional
// "(retain X%)" suffixes
func parseAssetList(input string) []AssetWithRetention {
	var result []AssetWithRetention

	for _, entry := range strings.Split(input, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		awr := AssetWithRetention{Name: entry}
		if retainIdx := strings.Index(strings.ToLower(entry), "(retain"); retainIdx != -1 {
			awr.Name = strings.TrimSpace(entry[:retainIdx])

			var percent float64
			n, _ := fmt.Sscanf(strings.ToLower(entry[retainIdx:]), "(retain %f%%)", &percent)
			if n == 1 && percent > 0 && percent <= 100 {
				awr.RetentionPercent = percent
			}
		}
		if awr.Name != "" {
			result = append(result, awr)
		}
	}
	return result
}

// findAssetsWithRetention resolves names against the pool
func findAssetsWithRetention(pool models.AssetList, info []AssetWithRetention) ([]models.TradedAsset, []string) {
	var found []models.TradedAsset
	var notFound []string

	for _, awr := range info {
		asset, err := pool.Resolve(awr.Name)
		if err != nil {
			notFound = append(notFound, err.Error())
			continue
		}
		found = append(found, models.TradedAsset{Asset: asset, RetentionPercent: awr.RetentionPercent})
	}

	return found, notFound
}

func receivedAssets(side []models.TradedAsset) []models.Asset {
	out := make([]models.Asset, 0, len(side))
	for _, ta := range side {
		out = append(out, ta.Received())
	}
	return out
}

// buildTradeEmbed creates an embed for the trade evaluation
func buildTradeEmbed(pkg *valuation.TradePackage, side1, side2 []models.TradedAsset) *discordgo.MessageEmbed {
	side1Team := sideTeam(side1)
	side2Team := sideTeam(side2)

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Trade Evaluation: %s", pkg.Balance.Label()),
		Description: pkg.Analysis,
		Color:       balanceColor(pkg.Balance),
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   fmt.Sprintf("%s sends (%d asset%s)", side1Team, len(side1), pluralize(len(side1))),
			Value:  describeSide(side1, pkg.Sending),
			Inline: true,
		},
		{
			Name:   "⇄",
			Value:  "for",
			Inline: true,
		},
		{
			Name:   fmt.Sprintf("%s sends (%d asset%s)", side2Team, len(side2), pluralize(len(side2))),
			Value:  describeSide(side2, pkg.Receiving),
			Inline: true,
		},
		{
			Name: "Value",
			Value: fmt.Sprintf("Sending: %d\nReceiving: %d\nDifference: %+d (%+.0f%%)",
				pkg.SendingValue, pkg.ReceivingValue, pkg.BalanceDiff, pkg.Pct*100),
			Inline: false,
		},
		{
			Name:   fmt.Sprintf("%s Payroll Impact", side1Team),
			Value:  payrollImpact(side1, side2),
			Inline: false,
		},
	}

	return embed
}

func describeSide(side []models.TradedAsset, scored []valuation.ScoredAsset) string {
	var lines []string
	for i, ta := range side {
		a := ta.Asset
		line := fmt.Sprintf("• **%s** (%s) - %d\n  %s", a.Name, a.Position, scored[i].Value, contractLine(a))
		if ta.RetentionPercent > 0 {
			line += fmt.Sprintf("\n  retain %.0f%% = %s kept", ta.RetentionPercent, models.FormatMillions(ta.RetainedSalary()))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// payrollImpact is the first side's annual salary change
func payrollImpact(side1, side2 []models.TradedAsset) string {
	var out, in float64
	for _, ta := range side1 {
		out += ta.TradedSalary()
	}
	for _, ta := range side2 {
		in += ta.TradedSalary()
	}

	net := in - out
	sign := "+"
	if net < 0 {
		sign = "-"
	}
	return fmt.Sprintf("Out: %s | In: %s | Net: %s%s",
		models.FormatMillions(out), models.FormatMillions(in), sign, models.FormatMillions(math.Abs(net)))
}

func sideTeam(side []models.TradedAsset) string {
	if len(side) == 0 || side[0].Asset.Team == "" {
		return "Unowned"
	}
	return side[0].Asset.Team
}

func balanceColor(b valuation.Balance) int {
	switch b {
	case valuation.HeavilyFavorYou, valuation.FavorYou:
		return 0x00ff00 // Green
	case valuation.Fair:
		return 0x3498db // Blue
	case valuation.FavorThem:
		return 0xffa500 // Orange
	default:
		return 0xff0000 // Red
	}
}
