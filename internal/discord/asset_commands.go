package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-frontoffice/internal/models"
	"github.com/pmurley/ulb-frontoffice/internal/valuation"
)

// runValue shows how an asset's trade value is built up
func (hm *HandlerManager) runValue(user string, args []string) reply {
	if len(args) == 0 {
		return text("Usage: `!value <name>`")
	}
	name := strings.Join(args, " ")

	assets, err := hm.Assets()
	if err != nil {
		return text("Failed to load asset data: %v", err)
	}

	asset, err := assets.Resolve(name)
	if err != nil {
		return text("%s", err.Error())
	}

	breakdown, err := valuation.Explain(asset)
	if err != nil {
		return failure(asset.Name, err)
	}

	return embedReply(buildValueEmbed(asset, breakdown))
}

// buildValueEmbed creates a rich embed for an asset's value breakdown
func buildValueEmbed(a models.Asset, b valuation.Breakdown) *discordgo.MessageEmbed {
	team := a.Team
	if team == "" {
		team = "Unowned"
	}
	kind := "MLB"
	if a.IsProspect {
		kind = "Prospect"
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s - Trade Value %d", a.Name, b.Total),
		Description: fmt.Sprintf("%s | %s | Age %d | %s", a.Position, team, a.Age, kind),
		Color:       valueColor(b.Total),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Ratings",
				Value:  fmt.Sprintf("OVR %d / POT %d", a.Overall, a.Potential),
				Inline: true,
			},
			{
				Name:   "Contract",
				Value:  contractLine(a),
				Inline: true,
			},
			{
				Name: "Breakdown",
				Value: fmt.Sprintf("```\nSkill     %6.1f\nAge       %6.1f\nUpside    %6.1f\nContract  %6.1f\n----------------\nTotal     %6d\n```",
					b.Skill, b.Age, b.Upside, b.Contract, b.Total),
				Inline: false,
			},
		},
	}

	return embed
}

func contractLine(a models.Asset) string {
	if a.YearsRemaining <= 0 {
		return fmt.Sprintf("%s, expiring", models.FormatMillions(a.Salary))
	}
	return fmt.Sprintf("%s x %d yr%s", models.FormatMillions(a.Salary), a.YearsRemaining, pluralize(a.YearsRemaining))
}

func valueColor(total int) int {
	switch {
	case total >= 70:
		return 0x00ff00 // Green
	case total >= 40:
		return 0x3498db // Blue
	default:
		return 0x95a5a6 // Grey
	}
}
