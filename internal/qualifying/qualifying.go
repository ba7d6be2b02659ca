// Package qualifying decides qualifying offers for pending free agents.
package qualifying

import (
	"fmt"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

const workflowName = "qualifying offer"

// acceptSteps maps market/QO ratio floors to acceptance chance, highest first.
var acceptSteps = []struct {
	minRatio float64
	chance   int
}{
	{2.0, 5},
	{1.5, 15},
	{1.2, 30},
	{1.0, 50},
	{0.8, 70},
}

const floorChance = 85

// acceptThreshold is the chance at or above which a player takes the offer.
const acceptThreshold = 50

// Workflow runs qualifying-offer decisions for one league setting.
type Workflow struct {
	amount float64
}

// New returns a workflow using the league's qualifying-offer amount in millions.
func New(amount float64) (*Workflow, error) {
	if amount <= 0 {
		return nil, &models.ValidationError{Field: "qualifying offer amount", Value: amount, Reason: "must be positive"}
	}
	return &Workflow{amount: amount}, nil
}

// Amount is the league-wide qualifying-offer salary.
func (w *Workflow) Amount() float64 {
	return w.amount
}

// NewCandidate builds the season snapshot for a player from their career history.
// A player who received a qualifying offer in an earlier season is permanently
// not eligible. An offer already recorded for this season puts the candidate
// back at offered, so the decision can still be resolved.
func (w *Workflow) NewCandidate(c models.QOCandidate, history models.CareerHistory, season int) (models.QOCandidate, error) {
	if c.ProjectedMarket < 0 {
		return c, &models.ValidationError{Field: "projected market", Value: c.ProjectedMarket, Reason: "must not be negative"}
	}
	if c.Overall < 0 || c.Overall > 99 {
		return c, &models.ValidationError{Field: "overall", Value: c.Overall, Reason: "must be between 0 and 99"}
	}

	c.QOAmount = w.amount
	c.PreviousQO = history.ReceivedBefore(season)
	c.AcceptChance = CalcAcceptChance(c)

	_, offeredThisSeason := history.OfferIn(season)
	switch {
	case c.PreviousQO:
		c.Status = models.QONotEligible
	case offeredThisSeason && (c.Status == "" || c.Status == models.QOEligible):
		c.Status = models.QOOffered
	case c.Status == "":
		c.Status = models.QOEligible
	}
	return c, nil
}

// CalcAcceptChance is the percent chance the player accepts, stepped on how
// far the open market values them above the flat offer.
func CalcAcceptChance(c models.QOCandidate) int {
	if c.QOAmount <= 0 {
		return acceptSteps[0].chance
	}
	ratio := c.ProjectedMarket / c.QOAmount
	for _, step := range acceptSteps {
		if ratio >= step.minRatio {
			return step.chance
		}
	}
	return floorChance
}

// CompPickValue is the compensation pick a club gets if the player leaves.
func CompPickValue(overall int) string {
	switch {
	case overall >= 80:
		return "After Rd 1"
	case overall >= 75:
		return "End of Rd 1"
	case overall >= 70:
		return "After Rd 2"
	default:
		return "After Rd 4"
	}
}

// MakeOffer extends the qualifying offer to an eligible candidate.
func MakeOffer(c models.QOCandidate) (models.QOCandidate, error) {
	if c.PreviousQO || c.Status == models.QONotEligible {
		return c, fmt.Errorf("%s: %w", c.PlayerName, models.ErrPermanentlyIneligible)
	}
	if c.Status != models.QOEligible {
		return c, transitionError(c, "make an offer")
	}
	c.Status = models.QOOffered
	return c, nil
}

// ResolveOffer records the player's decision. The decision is deterministic:
// a chance of 50% or more is an acceptance.
func ResolveOffer(c models.QOCandidate) (models.QOCandidate, error) {
	if c.Status != models.QOOffered && c.Status != models.QOPending {
		return c, transitionError(c, "resolve the offer")
	}
	if c.AcceptChance >= acceptThreshold {
		c.Status = models.QOAccepted
	} else {
		c.Status = models.QORejected
	}
	return c, nil
}

// RecordOffer adds a qualifying offer to the player's career history.
// A career allows at most one.
func RecordOffer(history models.CareerHistory, season int, team string) (models.CareerHistory, error) {
	if history.HasReceivedQO() {
		return history, fmt.Errorf("%s: %w", history.PlayerName, models.ErrPermanentlyIneligible)
	}
	offers := make([]models.QORecord, 0, 1)
	history.Offers = append(offers, models.QORecord{Season: season, Team: team})
	return history, nil
}

func transitionError(c models.QOCandidate, action string) error {
	return &models.TransitionError{Workflow: workflowName, From: string(c.Status), Action: action}
}
