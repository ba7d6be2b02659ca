// Package arbitration resolves salary arbitration cases either by a midpoint
// settlement or by a hearing ruling for one side's number.
//
//	pending -> settled
//	pending -> hearing -> team_wins | player_wins
//	pending -> team_wins | player_wins
//
// Every function takes a case by value and returns a new one; inputs are
// never modified.
package arbitration

import (
	"math"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

const (
	workflowName = "arbitration"

	// A projection this far (in millions) past the midpoint counts as a lean.
	leanMargin        = 0.5
	baseConfidence    = 50
	confidencePerUnit = 10
	maxConfidence     = 85
)

// Range is the band a settlement can fall into.
type Range struct {
	Low      float64
	High     float64
	Midpoint float64
}

// Outcome is a predicted hearing result.
type Outcome struct {
	Winner     models.Party
	Confidence int // Percent
}

// SettlementRange returns the spread between the two filed numbers.
// The midpoint is rounded to the nearest $10K.
func SettlementRange(c models.ArbitrationCase) Range {
	low := math.Min(c.TeamOffer, c.PlayerAsk)
	high := math.Max(c.TeamOffer, c.PlayerAsk)
	return Range{
		Low:      low,
		High:     high,
		Midpoint: models.RoundTo((low+high)/2, 2),
	}
}

// GapPct is the distance between ask and offer as a percent of their average.
func GapPct(c models.ArbitrationCase) int {
	avg := (c.TeamOffer + c.PlayerAsk) / 2
	if avg == 0 {
		return 0
	}
	return int(math.Round((c.PlayerAsk - c.TeamOffer) / avg * 100))
}

// LikelyOutcome predicts the hearing winner from the market projection.
// Without a clear lean it falls back to whichever number is closer, at coin-flip
// confidence.
func LikelyOutcome(c models.ArbitrationCase) Outcome {
	mid := SettlementRange(c).Midpoint
	excess := c.ProjectedValue - mid

	switch {
	case excess > leanMargin:
		return Outcome{Winner: models.PartyPlayer, Confidence: leanConfidence(excess)}
	case excess < -leanMargin:
		return Outcome{Winner: models.PartyTeam, Confidence: leanConfidence(-excess)}
	}

	winner := models.PartyTeam
	if math.Abs(c.ProjectedValue-c.PlayerAsk) < math.Abs(c.ProjectedValue-c.TeamOffer) {
		winner = models.PartyPlayer
	}
	return Outcome{Winner: winner, Confidence: baseConfidence}
}

func leanConfidence(excess float64) int {
	return int(math.Min(maxConfidence, math.Round(baseConfidence+confidencePerUnit*excess)))
}

// Settle resolves a pending case at the midpoint of the two numbers.
func Settle(c models.ArbitrationCase) (models.ArbitrationCase, error) {
	if c.Status != models.ArbPending {
		return c, transitionError(c, "settle")
	}
	c.CurrentSalary = SettlementRange(c).Midpoint
	c.Status = models.ArbSettled
	return c, nil
}

// Escalate moves a pending case to a hearing.
func Escalate(c models.ArbitrationCase) (models.ArbitrationCase, error) {
	if c.Status != models.ArbPending {
		return c, transitionError(c, "escalate to a hearing")
	}
	c.Status = models.ArbHearing
	return c, nil
}

// HearingResult applies a ruling: the winning side's number becomes the salary.
func HearingResult(c models.ArbitrationCase, teamWins bool) (models.ArbitrationCase, error) {
	if c.Status != models.ArbPending && c.Status != models.ArbHearing {
		return c, transitionError(c, "record a hearing result")
	}
	if teamWins {
		c.Status = models.ArbTeamWins
		c.CurrentSalary = c.TeamOffer
	} else {
		c.Status = models.ArbPlayerWins
		c.CurrentSalary = c.PlayerAsk
	}
	return c, nil
}

func transitionError(c models.ArbitrationCase, action string) error {
	return &models.TransitionError{Workflow: workflowName, From: string(c.Status), Action: action}
}
