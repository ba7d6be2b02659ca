package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-frontoffice/internal/models"
	"github.com/pmurley/ulb-frontoffice/internal/qualifying"
)

const qoUsage = "Usage: `!qo list | offer <name> | resolve <name>`"

func (hm *HandlerManager) runQO(user string, args []string) reply {
	if len(args) == 0 {
		return text(qoUsage)
	}
	sub, name := strings.ToLower(args[0]), strings.Join(args[1:], " ")

	switch {
	case sub == "list":
		return embedReply(buildQOListEmbed(hm.cache.QOCandidates(), hm.qo.Amount()))
	case name == "":
		return text(qoUsage)
	case sub == "offer":
		return hm.offerQO(user, name)
	case sub == "resolve":
		return hm.resolveQO(user, name)
	}
	return text(qoUsage)
}

// offerQO extends the offer and writes it into the player's career history
// before the candidate is updated.
func (hm *HandlerManager) offerQO(user, name string) reply {
	c, err := hm.cache.FindQOCandidate(name)
	if err != nil {
		return text("%s", err.Error())
	}
	if refusal, ok := hm.authorize(user, c.Team); !ok {
		return refusal
	}

	offered, err := qualifying.MakeOffer(c)
	if err != nil {
		return failure(c.PlayerName, err)
	}

	history, err := hm.history.History(c.PlayerName)
	if err != nil {
		hm.logger.Error("Failed to read qualifying offer history:", err)
		return text("Failed to read qualifying offer history: %v", err)
	}
	history, err = qualifying.RecordOffer(history, hm.config.League.Season, c.Team)
	if err != nil {
		return failure(c.PlayerName, err)
	}
	if err := hm.history.Record(history); err != nil {
		return failure(c.PlayerName, err)
	}

	if err := hm.cache.PutQOCandidate(offered); err != nil {
		hm.logger.Error("Failed to store qualifying offer candidate:", err)
		return text("Failed to save candidate: %v", err)
	}

	hm.logger.Info("Qualifying offer extended to", c.PlayerName, "by", user)
	return embedReply(buildQOCandidateEmbed(offered))
}

func (hm *HandlerManager) resolveQO(user, name string) reply {
	c, err := hm.cache.FindQOCandidate(name)
	if err != nil {
		return text("%s", err.Error())
	}
	if refusal, ok := hm.authorize(user, c.Team); !ok {
		return refusal
	}

	resolved, err := qualifying.ResolveOffer(c)
	if err != nil {
		return failure(c.PlayerName, err)
	}
	if err := hm.cache.PutQOCandidate(resolved); err != nil {
		hm.logger.Error("Failed to store qualifying offer candidate:", err)
		return text("Failed to save candidate: %v", err)
	}

	hm.logger.Info("Qualifying offer for", c.PlayerName, "resolved:", string(resolved.Status))
	return embedReply(buildQOCandidateEmbed(resolved))
}

func buildQOListEmbed(candidates []models.QOCandidate, amount float64) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Qualifying Offers (%s)", models.FormatMillions(amount)),
		Color: 0x3498db,
	}
	if len(candidates) == 0 {
		embed.Description = "No qualifying offer candidates loaded."
		return embed
	}

	var b strings.Builder
	b.WriteString("```\n")
	b.WriteString(fmt.Sprintf("%-20s %3s %7s %6s  %s\n", "Player", "OVR", "Market", "Accept", "Status"))
	for _, c := range candidates {
		name := truncateName(c.PlayerName, 20)
		b.WriteString(fmt.Sprintf("%-20s %3d %7s %5d%%  %s\n",
			name, c.Overall, models.FormatMillions(c.ProjectedMarket), c.AcceptChance, c.Status))
	}
	b.WriteString("```")
	embed.Description = b.String()
	return embed
}

func buildQOCandidateEmbed(c models.QOCandidate) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s - Qualifying Offer (%s)", c.PlayerName, strings.ReplaceAll(string(c.Status), "_", " ")),
		Description: fmt.Sprintf("%s | %s | Age %d | OVR %d", c.Position, c.Team, c.Age, c.Overall),
		Color:       qoColor(c.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Offer", Value: models.FormatMillions(c.QOAmount), Inline: true},
			{Name: "Projected Market", Value: models.FormatMillions(c.ProjectedMarket), Inline: true},
			{Name: "Accept Chance", Value: fmt.Sprintf("%d%%", c.AcceptChance), Inline: true},
		},
	}

	switch c.Status {
	case models.QORejected, models.QOEligible:
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Compensation If He Leaves",
			Value: qualifying.CompPickValue(c.Overall),
		})
	case models.QONotEligible:
		if c.PreviousQO {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: "Already received a qualifying offer in his career"}
		}
	}
	return embed
}

func qoColor(s models.QOStatus) int {
	switch s {
	case models.QOAccepted:
		return 0x00ff00 // Green
	case models.QORejected:
		return 0xff0000 // Red
	case models.QOOffered, models.QOPending:
		return 0xffa500 // Orange
	case models.QONotEligible:
		return 0x95a5a6 // Grey
	default:
		return 0x3498db // Blue
	}
}
