package spotrac

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchHTML = `<html><body>
<h1 class="h3 fw-bold">Search Results for "smith"</h1>
<div class="list-group"><a class="list-group-item" href="/nav">Nav</a></div>
<div class="list-group">
  <a class="list-group-item" href="https://www.spotrac.com/redirect/player/111">
    <span><span class="text-danger">Will Smith</span> (LAD)</span><span class="badge">C</span>
  </a>
  <a class="list-group-item" href="https://www.spotrac.com/redirect/player/222?x=1">
    <span><span class="text-danger">Dominic Smith</span> (NYM)</span><span class="badge">1B</span>
  </a>
</div>
</body></html>`

const emptySearchHTML = `<html><body>
<h1 class="h3 fw-bold">Search Results for "zzz"</h1>
<div class="list-group"></div><div class="list-group"></div>
</body></html>`

const contractHTML = `<html><head><title>Corbin Carroll | Spotrac</title></head><body>
<div class="contract-wrapper">
  <h2>Rookie Contract</h2>
  <div class="contract-details"><div class="cell"><div class="label">Contract Terms:</div><div class="value">3 yr(s) / $2,200,000</div></div></div>
</div>
<div class="contract-wrapper">
  <h2>Extension (CURRENT)</h2>
  <div class="contract-details">
    <div class="cell"><div class="label">Contract Terms:</div><div class="value">8 yr(s) / $111,000,000</div></div>
    <div class="cell"><div class="label">Average Salary:</div><div class="value">$13,875,000</div></div>
    <div class="cell"><div class="label">Free Agent:</div><div class="value">2032 / UFA</div></div>
  </div>
</div>
<div class="notes"><ul><li>Club option for 2031</li></ul></div>
<table>
  <thead><tr><th>Year</th><th>Age</th><th>Status</th><th>Payroll Salary</th></tr></thead>
  <tbody>
    <tr><td>2024</td><td>23</td><td>Signed</td><td>$3,625,000</td></tr>
    <tr><td>2025</td><td>24</td><td>Signed</td><td>$5,625,000</td></tr>
    <tr><td>2026</td><td>25</td><td>Signed</td><td>$10,625,000</td></tr>
    <tr><td>2027</td><td>26</td><td>Signed</td><td>$12,625,000</td></tr>
    <tr><td>2028</td><td>27</td><td><div class="option">Club Option</div></td><td>-</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseSearchResults(t *testing.T) {
	result, err := ParseSearchResults(strings.NewReader(searchHTML))
	require.NoError(t, err)
	assert.Equal(t, "multiple", result.Type)
	require.Len(t, result.PlayerResults, 2)

	first := result.PlayerResults[0]
	assert.Equal(t, "Will Smith", first.Name)
	assert.Equal(t, "LAD", first.Team)
	assert.Equal(t, "C", first.Position)
	assert.Equal(t, "111", first.ID)
	assert.Equal(t, "222", result.PlayerResults[1].ID)
}

func TestParseSearchResultsNone(t *testing.T) {
	result, err := ParseSearchResults(strings.NewReader(emptySearchHTML))
	require.NoError(t, err)
	assert.Equal(t, "none", result.Type)
	assert.Equal(t, "No players found matching 'zzz'", result.ErrorMessage)
}

func TestParseContractInfo(t *testing.T) {
	info, err := ParseContractInfo(strings.NewReader(contractHTML))
	require.NoError(t, err)
	assert.Equal(t, "Corbin Carroll", info.PlayerName)
	assert.Equal(t, "8 yr(s) / $111,000,000", info.ContractTerms)
	assert.Equal(t, "$111,000,000", info.TotalValue)
	assert.Equal(t, "$13,875,000", info.AverageSalary)
	assert.Equal(t, []string{"Club option for 2031"}, info.ContractNotes)
	require.Len(t, info.ContractYears, 5)
	assert.Equal(t, "Club Option", info.ContractYears[4].Status)
	assert.Equal(t, "-", info.ContractYears[4].PayrollTotal)
}

func TestContractTerms(t *testing.T) {
	info, err := ParseContractInfo(strings.NewReader(contractHTML))
	require.NoError(t, err)

	salary, years, ok := info.Terms(2026)
	require.True(t, ok)
	assert.Equal(t, 13.875, salary)
	assert.Equal(t, 2, years) // 2026 and 2027; the 2028 option is unpaid

	// Past the payroll table the free-agent year decides
	_, years, ok = info.Terms(2029)
	require.True(t, ok)
	assert.Equal(t, 3, years)

	_, _, ok = (&ContractInfo{}).Terms(2026)
	assert.False(t, ok)
}

func TestSearchFollowsPlayerRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/mlb/player/_/id/12345/juan-soto", http.StatusFound)
	})
	mux.HandleFunc("/mlb/player/_/id/12345/juan-soto", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, contractHTML)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient()
	c.baseURL = srv.URL

	result, err := c.Search("soto")
	require.NoError(t, err)
	assert.Equal(t, "single", result.Type)
	require.Len(t, result.PlayerResults, 1)
	assert.Equal(t, "Juan Soto", result.PlayerResults[0].Name)
	assert.Equal(t, "12345", result.PlayerResults[0].ID)

	info, err := c.GetPlayerContract(result.PlayerResults[0].URL)
	require.NoError(t, err)
	assert.Equal(t, "Corbin Carroll", info.PlayerName)
}

func TestGetPlayerContractBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewClient().GetPlayerContract(srv.URL + "/missing")
	assert.Error(t, err)
}
