package valuation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		sending, receiving int
		want               Balance
	}{
		{100, 125, HeavilyFavorYou},
		{100, 124, FavorYou},
		{100, 110, FavorYou},
		{100, 109, Fair},
		{100, 100, Fair},
		{100, 90, Fair},
		{100, 89, FavorThem},
		{100, 75, FavorThem},
		{100, 74, HeavilyFavorThem},
		{40, 55, HeavilyFavorYou},
		// thresholds are lower bounds on both sides of fair
		{200, 180, Fair},
		{200, 150, FavorThem},
		{200, 149, HeavilyFavorThem},
	}

	for _, tt := range tests {
		got := Classify(tt.sending, tt.receiving)
		assert.Equal(t, tt.want, got.Balance, "classify(%d, %d)", tt.sending, tt.receiving)
		assert.Equal(t, tt.receiving-tt.sending, got.Diff)
	}
}

func TestClassifyEqualSidesIsFair(t *testing.T) {
	for v := 1; v <= 500; v += 13 {
		assert.Equal(t, Fair, Classify(v, v).Balance)
	}
}

func TestClassifyZeroSendingSide(t *testing.T) {
	v := Classify(0, 50)
	assert.Equal(t, Fair, v.Balance)
	assert.Equal(t, 50, v.Diff)
	assert.Zero(t, v.Pct)
}

func TestClassifyPct(t *testing.T) {
	v := Classify(40, 55)
	assert.Equal(t, 15, v.Diff)
	assert.InDelta(t, 0.375, v.Pct, 1e-9)
}

// forty and fiftyFive score exactly 40 and 55.
var (
	forty     = models.Asset{Name: "Reliable Starter", Age: 28, Overall: 75, Potential: 75, Salary: 10, YearsRemaining: 2}
	fiftyFive = models.Asset{Name: "Young Shortstop", Age: 25, Overall: 80, Potential: 80, Salary: 4, YearsRemaining: 4}
)

func TestAnalyze(t *testing.T) {
	pkg, err := Analyze([]models.Asset{forty}, []models.Asset{fiftyFive})
	require.NoError(t, err)

	assert.Equal(t, 40, pkg.SendingValue)
	assert.Equal(t, 55, pkg.ReceivingValue)
	assert.Equal(t, 15, pkg.BalanceDiff)
	assert.Equal(t, HeavilyFavorYou, pkg.Balance)
	assert.Contains(t, pkg.Analysis, "Young Shortstop")
	require.Len(t, pkg.Receiving, 1)
	assert.Equal(t, 55, pkg.Receiving[0].Value)
}

func TestAnalyzeSumsSides(t *testing.T) {
	pkg, err := Analyze([]models.Asset{forty, forty}, []models.Asset{fiftyFive})
	require.NoError(t, err)

	assert.Equal(t, 80, pkg.SendingValue)
	assert.Equal(t, -25, pkg.BalanceDiff)
	assert.Equal(t, HeavilyFavorThem, pkg.Balance)
	assert.Contains(t, pkg.Analysis, "Reliable Starter")
}

func TestAnalyzeRejectsEmptySide(t *testing.T) {
	_, err := Analyze(nil, []models.Asset{fiftyFive})
	assert.True(t, errors.Is(err, models.ErrEmptySide))

	_, err = Analyze([]models.Asset{forty}, []models.Asset{})
	assert.True(t, errors.Is(err, models.ErrEmptySide))
}

func TestAnalyzeRejectsInvalidAsset(t *testing.T) {
	broken := fiftyFive
	broken.Salary = -1

	_, err := Analyze([]models.Asset{forty}, []models.Asset{broken})
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	assert.Contains(t, err.Error(), "Young Shortstop")
}

func TestAnalyzeDoesNotModifyInputs(t *testing.T) {
	sending := []models.Asset{forty}
	receiving := []models.Asset{fiftyFive}

	_, err := Analyze(sending, receiving)
	require.NoError(t, err)
	assert.Equal(t, forty, sending[0])
	assert.Equal(t, fiftyFive, receiving[0])
}
