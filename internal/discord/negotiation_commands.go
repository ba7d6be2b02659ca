package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-frontoffice/internal/models"
	"github.com/pmurley/ulb-frontoffice/internal/negotiation"
)

const negotiateUsage = "Usage: `!negotiate show <name> | accept <name> | reject <name>`\n" +
	"`!negotiate offer <name> team|player <years> <total> [optout] [notrade]`"

func (hm *HandlerManager) runNegotiate(user string, args []string) reply {
	if len(args) < 2 {
		return text(negotiateUsage)
	}
	sub, rest := strings.ToLower(args[0]), args[1:]

	switch sub {
	case "show":
		np, err := hm.cache.FindNegotiation(strings.Join(rest, " "))
		if err != nil {
			return text("%s", err.Error())
		}
		return embedReply(buildNegotiationEmbed(np))

	case "offer":
		name, offer, err := parseOfferArgs(rest)
		if err != nil {
			return text("%v\n%s", err, negotiateUsage)
		}
		return hm.negotiationStep(user, name, func(p models.NegotiationPlayer) (models.NegotiationPlayer, error) {
			return negotiation.ProposeRound(p, offer)
		})

	case "accept":
		return hm.negotiationStep(user, strings.Join(rest, " "), negotiation.Accept)

	case "reject":
		return hm.negotiationStep(user, strings.Join(rest, " "), negotiation.Reject)
	}

	return text(negotiateUsage)
}

func (hm *HandlerManager) negotiationStep(user, name string, step func(models.NegotiationPlayer) (models.NegotiationPlayer, error)) reply {
	np, err := hm.cache.FindNegotiation(name)
	if err != nil {
		return text("%s", err.Error())
	}
	if refusal, ok := hm.authorize(user, np.Team); !ok {
		return refusal
	}

	next, err := step(np)
	if err != nil {
		return failure(np.Name, err)
	}
	if err := hm.cache.PutNegotiation(next); err != nil {
		hm.logger.Error("Failed to store negotiation:", err)
		return text("Failed to save negotiation: %v", err)
	}

	hm.logger.Info("Negotiation with", np.Name, "now at", len(next.Offers), "rounds, likelihood", next.Likelihood)
	return embedReply(buildNegotiationEmbed(next))
}

// parseOfferArgs reads "<name...> team|player <years> <total> [optout] [notrade]".
func parseOfferArgs(args []string) (string, models.NegotiationOffer, error) {
	var offer models.NegotiationOffer

	// Trailing clauses may come in any order
	for len(args) > 0 {
		clause := strings.ToLower(args[len(args)-1])
		if clause == "optout" || clause == "opt-out" {
			offer.OptOut = true
		} else if clause == "notrade" || clause == "no-trade" || clause == "ntc" {
			offer.NoTrade = true
		} else {
			break
		}
		args = args[:len(args)-1]
	}

	if len(args) < 4 {
		return "", offer, fmt.Errorf("missing offer terms")
	}
	n := len(args)

	total, ok := models.ParseMoney(args[n-1])
	if !ok {
		return "", offer, fmt.Errorf("invalid total value %q", args[n-1])
	}
	years, err := strconv.Atoi(args[n-2])
	if err != nil {
		return "", offer, fmt.Errorf("invalid years %q", args[n-2])
	}
	party, ok := models.ParseParty(args[n-3])
	if !ok {
		return "", offer, fmt.Errorf("offer must be made by team or player, not %q", args[n-3])
	}

	offer.OfferedBy = party
	offer.Years = years
	offer.TotalValue = total
	return strings.Join(args[:n-3], " "), offer, nil
}

func buildNegotiationEmbed(p models.NegotiationPlayer) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s - Extension Talks", p.Name),
		Description: fmt.Sprintf("%s | %s | Age %d | Relationship: %s", p.Position, p.Team, p.Age, p.Relationship),
		Color:       likelihoodColor(p.Likelihood),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Market AAV", Value: models.FormatMillions(p.MarketValue), Inline: true},
			{Name: "Agent Demand", Value: models.FormatMillions(p.AgentDemand), Inline: true},
			{Name: "Team Budget", Value: models.FormatMillions(p.TeamBudget), Inline: true},
			{Name: "Likelihood", Value: fmt.Sprintf("%d%%", p.Likelihood), Inline: false},
		},
	}

	if len(p.Offers) > 0 {
		var b strings.Builder
		for _, o := range p.Offers {
			b.WriteString(fmt.Sprintf("R%d %s: %d yr / %s (%s AAV)", o.Round, o.OfferedBy, o.Years,
				models.FormatMillions(o.TotalValue), models.FormatMillions(o.AAV)))
			if o.OptOut {
				b.WriteString(", opt-out")
			}
			if o.NoTrade {
				b.WriteString(", no-trade")
			}
			b.WriteString(" - " + string(o.Status) + "\n")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Offers",
			Value: b.String(),
		})
	}

	if latest, ok := p.Latest(); ok && latest.Status == models.OfferPending {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Waiting on the %s", latest.OfferedBy.Other()),
		}
	}
	return embed
}

func likelihoodColor(likelihood int) int {
	switch {
	case likelihood >= 75:
		return 0x00ff00 // Green
	case likelihood >= 50:
		return 0x3498db // Blue
	case likelihood >= 25:
		return 0xffa500 // Orange
	default:
		return 0xff0000 // Red
	}
}
