package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmurley/ulb-frontoffice/internal/arbitration"
	"github.com/pmurley/ulb-frontoffice/internal/cache"
	"github.com/pmurley/ulb-frontoffice/internal/models"
	"github.com/pmurley/ulb-frontoffice/internal/negotiation"
	"github.com/pmurley/ulb-frontoffice/internal/qualifying"
)

// advance settles Bohm, offers Jones and opens the Rodriguez negotiation the
// way the bot's commands do.
func advance(t *testing.T, c *cache.Cache, history fakeHistory) {
	t.Helper()

	bohm, err := c.FindArbitrationCase("Alec Bohm")
	require.NoError(t, err)
	settled, err := arbitration.Settle(bohm)
	require.NoError(t, err)
	require.NoError(t, c.PutArbitrationCase(settled))

	jones, err := c.FindQOCandidate("Nolan Jones")
	require.NoError(t, err)
	offered, err := qualifying.MakeOffer(jones)
	require.NoError(t, err)
	record, err := qualifying.RecordOffer(models.CareerHistory{PlayerName: "Nolan Jones"}, season, "Rockies")
	require.NoError(t, err)
	history["nolan jones"] = record
	require.NoError(t, c.PutQOCandidate(offered))

	julio, err := c.FindNegotiation("Julio Rodriguez")
	require.NoError(t, err)
	julio, err = negotiation.ProposeRound(julio, models.NegotiationOffer{OfferedBy: models.PartyTeam, Years: 8, TotalValue: 200})
	require.NoError(t, err)
	require.NoError(t, c.PutNegotiation(julio))
}

func TestReloadKeepsWorkflowState(t *testing.T) {
	client := newTestClient(t)
	qo, err := qualifying.New(21.05)
	require.NoError(t, err)
	history := fakeHistory{}

	c := cache.New(time.Minute)
	require.NoError(t, client.LoadInitialData(c, qo, history, season))
	advance(t, c, history)

	require.NoError(t, client.LoadInitialData(c, qo, history, season))

	bohm, err := c.FindArbitrationCase("Alec Bohm")
	require.NoError(t, err)
	assert.Equal(t, models.ArbSettled, bohm.Status)
	assert.Equal(t, 4.85, bohm.CurrentSalary)
	_, err = arbitration.Settle(bohm)
	assert.ErrorIs(t, err, models.ErrInvalidTransition, "a reload must not reopen a settled case")
	assert.Len(t, c.ArbitrationCases(), 2)

	jones, err := c.FindQOCandidate("Nolan Jones")
	require.NoError(t, err)
	assert.Equal(t, models.QOOffered, jones.Status)
	assert.False(t, jones.PreviousQO)
	resolved, err := qualifying.ResolveOffer(jones)
	require.NoError(t, err)
	assert.Equal(t, models.QOAccepted, resolved.Status)

	julio, err := c.FindNegotiation("Julio Rodriguez")
	require.NoError(t, err)
	require.Len(t, julio.Offers, 1)
	assert.Equal(t, 25.0, julio.Offers[0].AAV)
}

func TestReloadAfterRestartRestoresOffer(t *testing.T) {
	client := newTestClient(t)
	qo, err := qualifying.New(21.05)
	require.NoError(t, err)
	history := fakeHistory{}

	c := cache.New(time.Minute)
	require.NoError(t, client.LoadInitialData(c, qo, history, season))
	advance(t, c, history)

	// a restart starts from an empty cache; only the career history survives
	fresh := cache.New(time.Minute)
	require.NoError(t, client.LoadInitialData(fresh, qo, history, season))

	jones, err := fresh.FindQOCandidate("Nolan Jones")
	require.NoError(t, err)
	assert.Equal(t, models.QOOffered, jones.Status)
	_, err = qualifying.MakeOffer(jones)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	// next season the earlier offer makes him permanently ineligible
	next := cache.New(time.Minute)
	require.NoError(t, client.LoadInitialData(next, qo, history, season+1))
	jones, err = next.FindQOCandidate("Nolan Jones")
	require.NoError(t, err)
	assert.Equal(t, models.QONotEligible, jones.Status)
}

func TestRefreshAssetsLeavesWorkingSets(t *testing.T) {
	client := newTestClient(t)
	qo, err := qualifying.New(21.05)
	require.NoError(t, err)
	history := fakeHistory{}

	c := cache.New(time.Minute)
	require.NoError(t, client.LoadInitialData(c, qo, history, season))
	advance(t, c, history)

	c.InvalidateAssets()
	require.NoError(t, client.RefreshAssets(c))

	assets, found := c.GetAssets()
	require.True(t, found)
	assert.Len(t, assets, 1)

	bohm, err := c.FindArbitrationCase("Alec Bohm")
	require.NoError(t, err)
	assert.Equal(t, models.ArbSettled, bohm.Status)
}
