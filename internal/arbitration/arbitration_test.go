package arbitration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

func newCase() models.ArbitrationCase {
	return models.ArbitrationCase{
		ID:             "case-1",
		PlayerName:     "Kyle Tucker",
		ServiceYears:   4.1,
		ArbYear:        2,
		CurrentSalary:  3.1,
		PlayerAsk:      5.5,
		TeamOffer:      4.2,
		ProjectedValue: 5.0,
		Status:         models.ArbPending,
	}
}

func TestSettlementRange(t *testing.T) {
	r := SettlementRange(newCase())
	assert.Equal(t, 4.2, r.Low)
	assert.Equal(t, 5.5, r.High)
	assert.InDelta(t, 4.85, r.Midpoint, 1e-9)

	// Numbers filed the "wrong" way round still give an ordered range
	c := newCase()
	c.PlayerAsk, c.TeamOffer = 4.2, 5.5
	assert.Equal(t, r, SettlementRange(c))
}

func TestGapPct(t *testing.T) {
	assert.Equal(t, 27, GapPct(newCase()))

	c := newCase()
	c.PlayerAsk, c.TeamOffer = 0, 0
	assert.Equal(t, 0, GapPct(c))
}

func TestLikelyOutcome(t *testing.T) {
	tests := []struct {
		name      string
		projected float64
		want      Outcome
	}{
		{"market well above midpoint", 6.85, Outcome{models.PartyPlayer, 70}},
		{"confidence capped", 10, Outcome{models.PartyPlayer, 85}},
		{"market well below midpoint", 2.85, Outcome{models.PartyTeam, 70}},
		{"no lean, closer to ask", 5.0, Outcome{models.PartyPlayer, 50}},
		{"no lean, closer to offer", 4.6, Outcome{models.PartyTeam, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCase()
			c.ProjectedValue = tt.projected
			assert.Equal(t, tt.want, LikelyOutcome(c))
		})
	}
}

func TestReadHelpersArePure(t *testing.T) {
	c := newCase()
	assert.Equal(t, SettlementRange(c), SettlementRange(c))
	assert.Equal(t, GapPct(c), GapPct(c))
	assert.Equal(t, LikelyOutcome(c), LikelyOutcome(c))
	assert.Equal(t, newCase(), c)
}

func TestSettle(t *testing.T) {
	original := newCase()

	settled, err := Settle(original)
	require.NoError(t, err)
	assert.Equal(t, models.ArbSettled, settled.Status)
	assert.InDelta(t, 4.85, settled.CurrentSalary, 1e-9)
	assert.True(t, settled.Status.Terminal())

	// input untouched
	assert.Equal(t, models.ArbPending, original.Status)
	assert.Equal(t, 3.1, original.CurrentSalary)

	again, err := Settle(settled)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))
	assert.Equal(t, settled, again)
}

func TestSettleRejectsHearingCase(t *testing.T) {
	c, err := Escalate(newCase())
	require.NoError(t, err)
	assert.Equal(t, models.ArbHearing, c.Status)

	_, err = Settle(c)
	var te *models.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "hearing", te.From)
}

func TestHearingResult(t *testing.T) {
	teamWin, err := HearingResult(newCase(), true)
	require.NoError(t, err)
	assert.Equal(t, models.ArbTeamWins, teamWin.Status)
	assert.Equal(t, 4.2, teamWin.CurrentSalary)

	hearing, err := Escalate(newCase())
	require.NoError(t, err)
	playerWin, err := HearingResult(hearing, false)
	require.NoError(t, err)
	assert.Equal(t, models.ArbPlayerWins, playerWin.Status)
	assert.Equal(t, 5.5, playerWin.CurrentSalary)
}

func TestTerminalCasesRejectEverything(t *testing.T) {
	settled, err := Settle(newCase())
	require.NoError(t, err)
	ruled, err := HearingResult(newCase(), false)
	require.NoError(t, err)

	for _, c := range []models.ArbitrationCase{settled, ruled} {
		_, err := Settle(c)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)
		_, err = Escalate(c)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)
		_, err = HearingResult(c, true)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)
	}
}
