package valuation

import (
	"fmt"
	"math"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

// Balance classifies who a trade favors, from the sending club's point of view
type Balance string

const (
	HeavilyFavorYou  Balance = "heavily_favor_you"
	FavorYou         Balance = "favor_you"
	Fair             Balance = "fair"
	FavorThem        Balance = "favor_them"
	HeavilyFavorThem Balance = "heavily_favor_them"
)

const (
	heavyThreshold = 0.25
	leanThreshold  = 0.10
)

// Label is the human-readable name of the classification.
func (b Balance) Label() string {
	switch b {
	case HeavilyFavorYou:
		return "Heavily favors you"
	case FavorYou:
		return "Favors you"
	case Fair:
		return "Fair"
	case FavorThem:
		return "Favors them"
	case HeavilyFavorThem:
		return "Heavily favors them"
	}
	return string(b)
}

// Verdict is the classification of two side totals.
type Verdict struct {
	Balance Balance
	Diff    int     // receiving - sending
	Pct     float64 // Diff / sending
}

// Classify compares the value sent against the value received.
// Every band threshold is an inclusive lower bound checked from the top, so
// +10% is favor_you while -10% is still fair and -25% is favor_them. A zero
// sending total has no meaningful ratio and reads as fair.
func Classify(sendingValue, receivingValue int) Verdict {
	v := Verdict{Diff: receivingValue - sendingValue}
	if sendingValue != 0 {
		v.Pct = float64(v.Diff) / float64(sendingValue)
	}

	switch {
	case v.Pct >= heavyThreshold:
		v.Balance = HeavilyFavorYou
	case v.Pct >= leanThreshold:
		v.Balance = FavorYou
	case v.Pct >= -leanThreshold:
		v.Balance = Fair
	case v.Pct >= -heavyThreshold:
		v.Balance = FavorThem
	default:
		v.Balance = HeavilyFavorThem
	}
	return v
}

// ScoredAsset pairs an asset with its composite value at evaluation time.
type ScoredAsset struct {
	Asset models.Asset
	Value int
}

// TradePackage is an evaluation of two disjoint asset sets. It is derived
// entirely from its inputs and is rebuilt whenever either side changes.
type TradePackage struct {
	Sending        []ScoredAsset
	Receiving      []ScoredAsset
	SendingValue   int
	ReceivingValue int
	Balance        Balance
	BalanceDiff    int
	Pct            float64
	Analysis       string
}

// Analyze scores both sides of a trade and classifies the result.
func Analyze(sending, receiving []models.Asset) (*TradePackage, error) {
	if len(sending) == 0 || len(receiving) == 0 {
		return nil, models.ErrEmptySide
	}

	pkg := &TradePackage{}
	var err error
	if pkg.Sending, pkg.SendingValue, err = scoreSide(sending); err != nil {
		return nil, fmt.Errorf("scoring sending side: %w", err)
	}
	if pkg.Receiving, pkg.ReceivingValue, err = scoreSide(receiving); err != nil {
		return nil, fmt.Errorf("scoring receiving side: %w", err)
	}

	v := Classify(pkg.SendingValue, pkg.ReceivingValue)
	pkg.Balance = v.Balance
	pkg.BalanceDiff = v.Diff
	pkg.Pct = v.Pct
	pkg.Analysis = analysisText(v, pkg.Sending, pkg.Receiving)

	return pkg, nil
}

func scoreSide(assets []models.Asset) ([]ScoredAsset, int, error) {
	scored := make([]ScoredAsset, 0, len(assets))
	total := 0
	for _, a := range assets {
		value, err := Score(a)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", a.Name, err)
		}
		scored = append(scored, ScoredAsset{Asset: a, Value: value})
		total += value
	}
	return scored, total, nil
}

func analysisText(v Verdict, sending, receiving []ScoredAsset) string {
	gap := int(math.Abs(float64(v.Diff)))
	pct := math.Abs(v.Pct * 100)

	switch v.Balance {
	case HeavilyFavorYou:
		return fmt.Sprintf("You gain %d points of value (%.0f%%). %s is the prize of the deal; expect the other side to ask for more before agreeing.",
			gap, pct, topAsset(receiving))
	case FavorYou:
		return fmt.Sprintf("You come out %d points ahead (%.0f%%). A modest win that a motivated partner could still accept.",
			gap, pct)
	case FavorThem:
		return fmt.Sprintf("You give up %d more points than you get back (%.0f%%). Consider asking for a prospect or salary relief to close the gap.",
			gap, pct)
	case HeavilyFavorThem:
		return fmt.Sprintf("You give up %d more points than you get back (%.0f%%). Losing %s at this price is hard to justify.",
			gap, pct, topAsset(sending))
	default:
		return fmt.Sprintf("Values are within %.0f%% of each other. Both sides can justify this deal.", leanThreshold*100)
	}
}

func topAsset(side []ScoredAsset) string {
	best := side[0]
	for _, sa := range side[1:] {
		if sa.Value > best.Value {
			best = sa
		}
	}
	return best.Asset.Name
}
