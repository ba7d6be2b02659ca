package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"4.5", 4.5, true},
		{"$4.5M", 4.5, true},
		{"$750K", 0.75, true},
		{"$4,500,000", 4.5, true},
		{" 12m ", 12, true},
		{"", 0, false},
		{"-", 0, false},
		{"lots", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseMoney(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestFormatMillions(t *testing.T) {
	assert.Equal(t, "$4.9M", FormatMillions(4.93))
	assert.Equal(t, "$0.0M", FormatMillions(0))
	assert.Equal(t, 4.86, RoundTo(4.855001, 2))
}

func TestParseAssetRow(t *testing.T) {
	a, err := ParseAssetRow([]string{"Cubs", "Cody Bellinger", "CF", "28", "75", "", "$10M", "2", "", "cb1"})
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "cb1", a.ID)
	assert.Equal(t, 75, a.Potential, "missing potential falls back to overall")
	assert.Equal(t, 10.0, a.Salary)
	assert.Equal(t, 2, a.YearsRemaining)
	assert.False(t, a.IsProspect)

	p, err := ParseAssetRow([]string{"Cubs", "Cade Horton", "SP", "21", "55", "80", "0.8", "6", "Y"})
	require.NoError(t, err)
	assert.True(t, p.IsProspect)
	assert.NotEmpty(t, p.ID)

	skipped, err := ParseAssetRow([]string{"Cubs", "", "CF"})
	assert.NoError(t, err)
	assert.Nil(t, skipped)

	_, err = ParseAssetRow([]string{"Cubs", "Bad Age", "CF", "old", "75", "75", "1", "1", ""})
	assert.True(t, IsValidationError(err))
}

func TestParseArbitrationRow(t *testing.T) {
	c, err := ParseArbitrationRow([]string{"Alec Bohm", "3B", "Phillies", "4.1", "2", "3.2", "$5.5M", "$4.2M", "6.85"})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, ArbPending, c.Status)
	assert.Equal(t, 5.5, c.PlayerAsk)

	c, err = ParseArbitrationRow([]string{"Alec Bohm", "3B", "Phillies", "4.1", "2", "3.2", "5.5", "4.2", "6.85", "Settled"})
	require.NoError(t, err)
	assert.Equal(t, ArbSettled, c.Status)

	_, err = ParseArbitrationRow([]string{"Alec Bohm", "3B", "Phillies", "4.1", "5", "3.2", "5.5", "4.2", "6.85"})
	assert.True(t, IsValidationError(err), "arb year out of range")

	_, err = ParseArbitrationRow([]string{"Alec Bohm", "3B", "Phillies", "4.1", "2", "3.2", "5.5", "4.2", "6.85", "appealed"})
	assert.True(t, IsValidationError(err))
}

func TestParseQORow(t *testing.T) {
	c, err := ParseQORow([]string{"Nolan Jones", "RF", "Rockies", "27", "72", "$10M"})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Empty(t, c.Status)
	assert.Equal(t, 10.0, c.ProjectedMarket)

	c, err = ParseQORow([]string{"Nolan Jones", "RF"})
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestParseNegotiationRow(t *testing.T) {
	p, err := ParseNegotiationRow([]string{"Julio Rodriguez", "CF", "Mariners", "25", "28", "30", "24", "Good"})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, RelationshipGood, p.Relationship)
	assert.Empty(t, p.Offers)

	p, err = ParseNegotiationRow([]string{"Julio Rodriguez", "CF", "Mariners", "25", "28", "30", "24"})
	require.NoError(t, err)
	assert.Equal(t, RelationshipNeutral, p.Relationship)
}

func TestResolve(t *testing.T) {
	pool := AssetList{
		{Name: "Will Smith", Team: "Dodgers"},
		{Name: "Will Smith", Team: "Mets"},
		{Name: "Will Benson", Team: "Reds"},
		{Name: "Riley Greene", Team: "Tigers"},
	}

	a, err := pool.Resolve("riley greene")
	require.NoError(t, err)
	assert.Equal(t, "Tigers", a.Team)

	a, err = pool.Resolve("benson")
	require.NoError(t, err)
	assert.Equal(t, "Will Benson", a.Name)

	_, err = pool.Resolve("Will Smith")
	assert.ErrorContains(t, err, "found 2 assets named Will Smith")

	_, err = pool.Resolve("Nobody")
	assert.ErrorContains(t, err, "no asset found")

	assert.Len(t, pool.FindByExactName("will smith").FilterByTeam("mets"), 1)
}

func TestTeamOwners(t *testing.T) {
	owners := TeamOwners{"Phillies": {"dave", "Sam"}, "Rockies": {"dave"}}

	assert.True(t, owners.CanAct("phillies", "sam"))
	assert.False(t, owners.CanAct("Rockies", "sam"))
	assert.ElementsMatch(t, []string{"Phillies", "Rockies"}, owners.TeamsForOwner("DAVE"))
	assert.True(t, TeamOwners{}.CanAct("Anyone", "anybody"))
}

func TestTradedAssetRetention(t *testing.T) {
	ta := TradedAsset{Asset: Asset{Name: "Cody Bellinger", Salary: 10, YearsRemaining: 2}, RetentionPercent: 25}

	assert.Equal(t, 2.5, ta.RetainedSalary())
	assert.Equal(t, 7.5, ta.TradedSalary())

	received := ta.Received()
	assert.Equal(t, 7.5, received.Salary)
	assert.Equal(t, 2, received.YearsRemaining)
	assert.Equal(t, 10.0, ta.Asset.Salary, "the original asset is untouched")

	none := TradedAsset{Asset: Asset{Salary: 10}}
	assert.Zero(t, none.RetainedSalary())
}

func TestNegotiationLedgerHelpers(t *testing.T) {
	p := NegotiationPlayer{Offers: []NegotiationOffer{
		{Round: 1, OfferedBy: PartyTeam, Status: OfferCountered},
		{Round: 2, OfferedBy: PartyPlayer, Status: OfferPending},
	}}

	latest, ok := p.Latest()
	require.True(t, ok)
	assert.Equal(t, 2, latest.Round)

	team, ok := p.LatestBy(PartyTeam)
	require.True(t, ok)
	assert.Equal(t, 1, team.Round)
	assert.False(t, p.Closed())

	party, ok := ParseParty("Agent")
	assert.True(t, ok)
	assert.Equal(t, PartyPlayer, party)
	assert.Equal(t, PartyTeam, party.Other())
}

func TestTransitionErrorUnwraps(t *testing.T) {
	err := error(&TransitionError{Workflow: "arbitration", From: "settled", Action: "settle"})
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, `arbitration: cannot settle from status "settled"`, err.Error())
	assert.True(t, ArbTeamWins.Terminal())
	assert.False(t, ArbHearing.Terminal())
}

func TestNameIDIsStable(t *testing.T) {
	assert.Equal(t, NameID("arb", "Alec Bohm"), NameID("arb", " alec bohm "))
	assert.NotEqual(t, NameID("arb", "Alec Bohm"), NameID("qo", "Alec Bohm"))

	first, err := ParseArbitrationRow([]string{"Alec Bohm", "3B", "Phillies", "4.1", "2", "3.2", "5.5", "4.2", "6.85"})
	require.NoError(t, err)
	second, err := ParseArbitrationRow([]string{"Alec Bohm", "3B", "Phillies", "4.1", "2", "3.2", "5.6", "4.2", "6.85"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "the same row maps to the same case on every load")
}

func TestCareerHistorySeasons(t *testing.T) {
	h := CareerHistory{PlayerName: "Nolan Jones", Offers: []QORecord{{Season: 2026, Team: "Rockies"}}}

	assert.False(t, h.ReceivedBefore(2026))
	assert.True(t, h.ReceivedBefore(2027))
	rec, ok := h.OfferIn(2026)
	assert.True(t, ok)
	assert.Equal(t, "Rockies", rec.Team)
	_, ok = h.OfferIn(2025)
	assert.False(t, ok)
}
