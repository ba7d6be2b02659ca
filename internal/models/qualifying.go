package models

import (
	"strings"
)

// QOStatus is the state of a qualifying-offer decision
type QOStatus string

const (
	QOEligible    QOStatus = "eligible"
	QOOffered     QOStatus = "offered"
	QOPending     QOStatus = "pending" // offer made, player's decision window open
	QOAccepted    QOStatus = "accepted"
	QORejected    QOStatus = "rejected"
	QONotEligible QOStatus = "not_eligible"
)

// QOCandidate is one pending free agent's qualifying-offer snapshot for a season.
// PreviousQO and Status are derived by the qualifying workflow from career history.
type QOCandidate struct {
	ID              string
	PlayerName      string
	Position        string
	Team            string
	Age             int
	Overall         int
	ProjectedMarket float64 // Expected open-market AAV in millions
	QOAmount        float64
	PreviousQO      bool
	AcceptChance    int // Percent
	Status          QOStatus
}

// QORecord is a qualifying offer a player received in some season.
type QORecord struct {
	Season int
	Team   string
}

// CareerHistory is the long-lived qualifying-offer record of one player.
// It outlives the per-season candidate snapshots.
type CareerHistory struct {
	PlayerName string
	Offers     []QORecord
}

// HasReceivedQO reports whether the player was ever extended a qualifying offer.
func (h CareerHistory) HasReceivedQO() bool {
	return len(h.Offers) > 0
}

// ReceivedBefore reports whether the player got a qualifying offer in an
// earlier season than the given one.
func (h CareerHistory) ReceivedBefore(season int) bool {
	for _, o := range h.Offers {
		if o.Season < season {
			return true
		}
	}
	return false
}

// OfferIn returns the qualifying offer made in the given season, if any.
func (h CareerHistory) OfferIn(season int) (QORecord, bool) {
	for _, o := range h.Offers {
		if o.Season == season {
			return o, true
		}
	}
	return QORecord{}, false
}

// QO sheet columns
const (
	qoColName = iota
	qoColPosition
	qoColTeam
	qoColAge
	qoColOverall
	qoColMarket
	qoMinColumns = qoColMarket + 1
)

// ParseQORow parses one row of the free-agent sheet. The result carries no
// status; it must be passed through the qualifying workflow.
func ParseQORow(row []string) (*QOCandidate, error) {
	if len(row) < qoMinColumns {
		return nil, nil
	}
	name := strings.TrimSpace(row[qoColName])
	if name == "" {
		return nil, nil
	}

	c := &QOCandidate{
		ID:         NameID("qo", name),
		PlayerName: name,
		Position:   strings.TrimSpace(row[qoColPosition]),
		Team:       strings.TrimSpace(row[qoColTeam]),
	}

	var err error
	if c.Age, err = parseIntCell(row[qoColAge]); err != nil {
		return nil, &ValidationError{Field: "age", Value: row[qoColAge], Reason: "not a number"}
	}
	if c.Overall, err = parseIntCell(row[qoColOverall]); err != nil {
		return nil, &ValidationError{Field: "overall", Value: row[qoColOverall], Reason: "not a number"}
	}
	market, ok := ParseMoney(row[qoColMarket])
	if !ok {
		return nil, &ValidationError{Field: "projected market", Value: row[qoColMarket], Reason: "not an amount"}
	}
	c.ProjectedMarket = market

	return c, nil
}
