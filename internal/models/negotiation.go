package models

import (
	"strings"
)

// Party is one side of a negotiation or dispute
type Party string

const (
	PartyTeam   Party = "team"
	PartyPlayer Party = "player"
)

// Other returns the opposing party.
func (p Party) Other() Party {
	if p == PartyTeam {
		return PartyPlayer
	}
	return PartyTeam
}

// ParseParty accepts "team"/"player" and a few shorthands.
func ParseParty(s string) (Party, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "team", "club", "t":
		return PartyTeam, true
	case "player", "agent", "p":
		return PartyPlayer, true
	}
	return "", false
}

// OfferStatus is the state of one round in a negotiation ledger
type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferCountered OfferStatus = "countered"
	OfferAccepted  OfferStatus = "accepted"
	OfferRejected  OfferStatus = "rejected"
)

// Relationship is the qualitative state between club and agent
type Relationship string

const (
	RelationshipExcellent Relationship = "excellent"
	RelationshipGood      Relationship = "good"
	RelationshipNeutral   Relationship = "neutral"
	RelationshipStrained  Relationship = "strained"
	RelationshipHostile   Relationship = "hostile"
)

// NegotiationOffer is one round of an extension negotiation.
type NegotiationOffer struct {
	Round      int
	OfferedBy  Party
	Years      int
	TotalValue float64 // Millions
	AAV        float64 // TotalValue / Years
	OptOut     bool
	NoTrade    bool
	Status     OfferStatus
}

// NegotiationPlayer is a player in a multi-round extension negotiation.
// Offers is ordered by Round; only the last offer may be pending.
type NegotiationPlayer struct {
	ID           string
	Name         string
	Position     string
	Team         string
	Age          int
	MarketValue  float64 // Estimated AAV in millions
	AgentDemand  float64 // AAV the agent is asking for
	TeamBudget   float64 // AAV the club is prepared to spend
	Relationship Relationship
	Likelihood   int // 0-100
	Offers       []NegotiationOffer
}

// Latest returns the most recent offer.
func (p NegotiationPlayer) Latest() (NegotiationOffer, bool) {
	if len(p.Offers) == 0 {
		return NegotiationOffer{}, false
	}
	return p.Offers[len(p.Offers)-1], true
}

// LatestBy returns the most recent offer made by the given party.
func (p NegotiationPlayer) LatestBy(party Party) (NegotiationOffer, bool) {
	for i := len(p.Offers) - 1; i >= 0; i-- {
		if p.Offers[i].OfferedBy == party {
			return p.Offers[i], true
		}
	}
	return NegotiationOffer{}, false
}

// Closed reports whether the negotiation ended in acceptance or rejection.
func (p NegotiationPlayer) Closed() bool {
	latest, ok := p.Latest()
	return ok && (latest.Status == OfferAccepted || latest.Status == OfferRejected)
}

// Negotiation sheet columns
const (
	negColName = iota
	negColPosition
	negColTeam
	negColAge
	negColMarket
	negColDemand
	negColBudget
	negColRelationship
	negMinColumns = negColBudget + 1
)

// ParseNegotiationRow parses one row of the extension-targets sheet.
// The ledger starts empty.
func ParseNegotiationRow(row []string) (*NegotiationPlayer, error) {
	if len(row) < negMinColumns {
		return nil, nil
	}
	name := strings.TrimSpace(row[negColName])
	if name == "" {
		return nil, nil
	}

	p := &NegotiationPlayer{
		ID:           NameID("neg", name),
		Name:         name,
		Position:     strings.TrimSpace(row[negColPosition]),
		Team:         strings.TrimSpace(row[negColTeam]),
		Relationship: RelationshipNeutral,
	}

	var err error
	if p.Age, err = parseIntCell(row[negColAge]); err != nil {
		return nil, &ValidationError{Field: "age", Value: row[negColAge], Reason: "not a number"}
	}

	money := []struct {
		col   int
		field string
		dst   *float64
	}{
		{negColMarket, "market value", &p.MarketValue},
		{negColDemand, "agent demand", &p.AgentDemand},
		{negColBudget, "team budget", &p.TeamBudget},
	}
	for _, m := range money {
		v, ok := ParseMoney(row[m.col])
		if !ok {
			return nil, &ValidationError{Field: m.field, Value: row[m.col], Reason: "not an amount"}
		}
		*m.dst = v
	}

	if len(row) > negColRelationship {
		if rel := strings.ToLower(strings.TrimSpace(row[negColRelationship])); rel != "" {
			p.Relationship = Relationship(rel)
		}
	}

	return p, nil
}
