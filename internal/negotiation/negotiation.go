// Package negotiation keeps the round-by-round ledger of a contract extension
// negotiation and estimates how likely a deal is.
package negotiation

import (
	"fmt"
	"math"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

var relationshipModifier = map[models.Relationship]float64{
	models.RelationshipExcellent: 10,
	models.RelationshipGood:      5,
	models.RelationshipNeutral:   0,
	models.RelationshipStrained:  -10,
	models.RelationshipHostile:   -20,
}

// ProposeRound appends an offer to the ledger. Parties take turns; the
// previous pending offer becomes countered.
func ProposeRound(p models.NegotiationPlayer, offer models.NegotiationOffer) (models.NegotiationPlayer, error) {
	if p.Closed() {
		return p, models.ErrNegotiationClosed
	}
	if err := validateOffer(offer); err != nil {
		return p, err
	}

	offers := make([]models.NegotiationOffer, len(p.Offers), len(p.Offers)+1)
	copy(offers, p.Offers)

	offer.Round = 1
	if n := len(offers); n > 0 {
		last := &offers[n-1]
		if last.OfferedBy == offer.OfferedBy {
			return p, fmt.Errorf("%s already made round %d: %w", offer.OfferedBy, last.Round, models.ErrOutOfTurn)
		}
		if last.Status == models.OfferPending {
			last.Status = models.OfferCountered
		}
		offer.Round = last.Round + 1
	}

	offer.AAV = models.RoundTo(offer.TotalValue/float64(offer.Years), 2)
	offer.Status = models.OfferPending

	p.Offers = append(offers, offer)
	p.Likelihood = Likelihood(p)
	return p, nil
}

// Accept closes the negotiation by accepting the latest pending offer.
func Accept(p models.NegotiationPlayer) (models.NegotiationPlayer, error) {
	return closeLatest(p, models.OfferAccepted)
}

// Reject closes the negotiation by rejecting the latest pending offer.
func Reject(p models.NegotiationPlayer) (models.NegotiationPlayer, error) {
	return closeLatest(p, models.OfferRejected)
}

func closeLatest(p models.NegotiationPlayer, status models.OfferStatus) (models.NegotiationPlayer, error) {
	if p.Closed() {
		return p, models.ErrNegotiationClosed
	}
	latest, ok := p.Latest()
	if !ok || latest.Status != models.OfferPending {
		return p, models.ErrNoPendingOffer
	}

	offers := make([]models.NegotiationOffer, len(p.Offers))
	copy(offers, p.Offers)
	offers[len(offers)-1].Status = status

	p.Offers = offers
	p.Likelihood = Likelihood(p)
	return p, nil
}

// Likelihood estimates the chance (0-100) of reaching a deal.
//
// Each side's position is the AAV of its latest offer, or the club budget and
// agent demand before that side has made one. The unbridged gap, as a share of
// the agent demand, is taken off 100 and the relationship modifier is added.
func Likelihood(p models.NegotiationPlayer) int {
	if latest, ok := p.Latest(); ok {
		switch latest.Status {
		case models.OfferAccepted:
			return 100
		case models.OfferRejected:
			return 0
		}
	}

	teamPos := p.TeamBudget
	if o, ok := p.LatestBy(models.PartyTeam); ok {
		teamPos = o.AAV
	}
	playerPos := p.AgentDemand
	if o, ok := p.LatestBy(models.PartyPlayer); ok {
		playerPos = o.AAV
	}

	gap := math.Max(0, playerPos-teamPos)
	demand := p.AgentDemand
	if demand <= 0 {
		demand = playerPos
	}

	base := 100.0
	if gap > 0 {
		if demand <= 0 {
			base = 0
		} else {
			base = 100 * (1 - gap/demand)
		}
	}

	return int(math.Round(clamp(base+relationshipModifier[p.Relationship], 0, 100)))
}

func validateOffer(o models.NegotiationOffer) error {
	switch {
	case o.OfferedBy != models.PartyTeam && o.OfferedBy != models.PartyPlayer:
		return &models.ValidationError{Field: "offered by", Value: o.OfferedBy, Reason: "must be team or player"}
	case o.Years <= 0:
		return &models.ValidationError{Field: "years", Value: o.Years, Reason: "must be positive"}
	case o.TotalValue <= 0:
		return &models.ValidationError{Field: "total value", Value: o.TotalValue, Reason: "must be positive"}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
