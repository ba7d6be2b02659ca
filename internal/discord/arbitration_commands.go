package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-frontoffice/internal/arbitration"
	"github.com/pmurley/ulb-frontoffice/internal/models"
)

const arbUsage = "Usage: `!arb list | range <name> | settle <name> | escalate <name> | hearing <name> team|player`"

func (hm *HandlerManager) runArb(user string, args []string) reply {
	if len(args) == 0 {
		return text(arbUsage)
	}
	sub, rest := strings.ToLower(args[0]), args[1:]

	if sub == "list" {
		return embedReply(buildArbListEmbed(hm.cache.ArbitrationCases()))
	}
	if len(rest) == 0 {
		return text(arbUsage)
	}

	switch sub {
	case "range":
		ac, err := hm.cache.FindArbitrationCase(strings.Join(rest, " "))
		if err != nil {
			return text("%s", err.Error())
		}
		return embedReply(buildArbCaseEmbed(ac))

	case "settle":
		return hm.arbTransition(user, strings.Join(rest, " "), arbitration.Settle)

	case "escalate":
		return hm.arbTransition(user, strings.Join(rest, " "), arbitration.Escalate)

	case "hearing":
		name, side := splitTail(rest)
		winner, ok := models.ParseParty(side)
		if !ok || name == "" {
			return text("Usage: `!arb hearing <name> team|player`")
		}
		return hm.arbTransition(user, name, func(c models.ArbitrationCase) (models.ArbitrationCase, error) {
			return arbitration.HearingResult(c, winner == models.PartyTeam)
		})
	}

	return text(arbUsage)
}

// arbTransition runs one workflow step and stores the resulting case.
func (hm *HandlerManager) arbTransition(user, name string, step func(models.ArbitrationCase) (models.ArbitrationCase, error)) reply {
	ac, err := hm.cache.FindArbitrationCase(name)
	if err != nil {
		return text("%s", err.Error())
	}
	if refusal, ok := hm.authorize(user, ac.Team); !ok {
		return refusal
	}

	next, err := step(ac)
	if err != nil {
		return failure(ac.PlayerName, err)
	}
	if err := hm.cache.PutArbitrationCase(next); err != nil {
		hm.logger.Error("Failed to store arbitration case:", err)
		return text("Failed to save case: %v", err)
	}

	hm.logger.Info("Arbitration", ac.PlayerName, string(ac.Status), "->", string(next.Status), "by", user)
	return embedReply(buildArbCaseEmbed(next))
}

func buildArbListEmbed(cases []models.ArbitrationCase) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Salary Arbitration",
		Color: 0x3498db,
	}
	if len(cases) == 0 {
		embed.Description = "No arbitration cases loaded."
		return embed
	}

	var b strings.Builder
	b.WriteString("```\n")
	b.WriteString(fmt.Sprintf("%-20s %-5s %7s %7s  %s\n", "Player", "Arb", "Ask", "Offer", "Status"))
	for _, c := range cases {
		name := truncateName(c.PlayerName, 20)
		b.WriteString(fmt.Sprintf("%-20s %-5s %7s %7s  %s\n",
			name, fmt.Sprintf("Y%d", c.ArbYear), models.FormatMillions(c.PlayerAsk), models.FormatMillions(c.TeamOffer), c.Status))
	}
	b.WriteString("```")

	embed.Description = b.String()
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d case%s", len(cases), pluralize(len(cases))),
	}
	return embed
}

func buildArbCaseEmbed(c models.ArbitrationCase) *discordgo.MessageEmbed {
	r := arbitration.SettlementRange(c)

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s - Arbitration (%s)", c.PlayerName, strings.ReplaceAll(string(c.Status), "_", " ")),
		Description: fmt.Sprintf("%s | %s | %.1f years service | Arb year %d", c.Position, c.Team, c.ServiceYears, c.ArbYear),
		Color:       arbColor(c.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Player Ask", Value: models.FormatMillions(c.PlayerAsk), Inline: true},
			{Name: "Team Offer", Value: models.FormatMillions(c.TeamOffer), Inline: true},
			{Name: "Gap", Value: fmt.Sprintf("%d%%", arbitration.GapPct(c)), Inline: true},
			{Name: "Settlement Range", Value: fmt.Sprintf("%s - %s (midpoint %s)",
				models.FormatMillions(r.Low), models.FormatMillions(r.High), models.FormatMillions(r.Midpoint)), Inline: false},
		},
	}

	if c.Status.Terminal() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Salary",
			Value: models.FormatMillions(c.CurrentSalary),
		})
		return embed
	}

	outcome := arbitration.LikelyOutcome(c)
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "Projected Value", Value: models.FormatMillions(c.ProjectedValue), Inline: true},
		&discordgo.MessageEmbedField{Name: "Likely Hearing Winner", Value: fmt.Sprintf("%s (%d%%)", outcome.Winner, outcome.Confidence), Inline: true},
	)
	return embed
}

func arbColor(s models.ArbStatus) int {
	switch s {
	case models.ArbSettled:
		return 0x00ff00 // Green
	case models.ArbTeamWins, models.ArbPlayerWins:
		return 0x9932cc // Purple
	case models.ArbHearing:
		return 0xffa500 // Orange
	default:
		return 0x3498db // Blue
	}
}
