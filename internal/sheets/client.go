package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pmurley/ulb-frontoffice/internal/cache"
	"github.com/pmurley/ulb-frontoffice/internal/config"
	"github.com/pmurley/ulb-frontoffice/internal/models"
	"github.com/pmurley/ulb-frontoffice/internal/negotiation"
	"github.com/pmurley/ulb-frontoffice/internal/qualifying"
)

const defaultBaseURL = "https://docs.google.com/spreadsheets/d"

// HistorySource supplies the career qualifying-offer records candidates are
// checked against.
type HistorySource interface {
	All() (map[string]models.CareerHistory, error)
}

// Client fetches data from public Google Sheets using CSV export
type Client struct {
	spreadsheetID string
	baseURL       string
	gids          config.SheetGIDs
	httpClient    *http.Client
}

func NewClient(spreadsheetID string, gids config.SheetGIDs) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	return &Client{
		spreadsheetID: spreadsheetID,
		baseURL:       defaultBaseURL,
		gids:          gids,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// LoadInitialData fills the cache with every working collection. QO candidates
// run through the workflow so their eligibility reflects career history, and
// negotiations get their starting likelihood. Working records are merged with
// the cached ones, so a case or negotiation the bot has already moved on keeps
// its progress.
func (c *Client) LoadInitialData(cache *cache.Cache, qo *qualifying.Workflow, history HistorySource, season int) error {
	assets, err := c.LoadAssets()
	if err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}

	cases, err := c.LoadArbitrationCases()
	if err != nil {
		return fmt.Errorf("failed to load arbitration cases: %w", err)
	}

	histories, err := history.All()
	if err != nil {
		return fmt.Errorf("failed to load qualifying offer history: %w", err)
	}
	candidates, err := c.LoadQOCandidates(qo, histories, season)
	if err != nil {
		return fmt.Errorf("failed to load qualifying offer candidates: %w", err)
	}

	players, err := c.LoadNegotiations()
	if err != nil {
		return fmt.Errorf("failed to load negotiations: %w", err)
	}

	cache.SetAssets(assets)
	cache.MergeArbitrationCases(cases)
	cache.MergeQOCandidates(candidates)
	cache.MergeNegotiations(players)
	return nil
}

// RefreshAssets reloads only the asset pool.
func (c *Client) RefreshAssets(cache *cache.Cache) error {
	assets, err := c.LoadAssets()
	if err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}
	cache.SetAssets(assets)
	return nil
}

// LoadAssets loads the valuation pool. Rows that do not parse are skipped.
func (c *Client) LoadAssets() ([]models.Asset, error) {
	data, err := c.dataRows(c.gids.Assets, "asset")
	if err != nil {
		return nil, err
	}

	var assets []models.Asset
	for _, row := range data {
		asset, err := models.ParseAssetRow(row)
		if err != nil || asset == nil {
			continue
		}
		assets = append(assets, *asset)
	}
	return assets, nil
}

func (c *Client) LoadArbitrationCases() ([]models.ArbitrationCase, error) {
	data, err := c.dataRows(c.gids.Arbitration, "arbitration")
	if err != nil {
		return nil, err
	}

	var cases []models.ArbitrationCase
	for _, row := range data {
		ac, err := models.ParseArbitrationRow(row)
		if err != nil || ac == nil {
			continue
		}
		cases = append(cases, *ac)
	}
	return cases, nil
}

// LoadQOCandidates loads the pending free agents for season. histories is
// keyed by lower-cased player name.
func (c *Client) LoadQOCandidates(qo *qualifying.Workflow, histories map[string]models.CareerHistory, season int) ([]models.QOCandidate, error) {
	data, err := c.dataRows(c.gids.Qualifying, "qualifying offer")
	if err != nil {
		return nil, err
	}

	var candidates []models.QOCandidate
	for _, row := range data {
		parsed, err := models.ParseQORow(row)
		if err != nil || parsed == nil {
			continue
		}
		candidate, err := qo.NewCandidate(*parsed, historyFor(histories, parsed.PlayerName), season)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func (c *Client) LoadNegotiations() ([]models.NegotiationPlayer, error) {
	data, err := c.dataRows(c.gids.Negotiations, "negotiation")
	if err != nil {
		return nil, err
	}

	var players []models.NegotiationPlayer
	for _, row := range data {
		np, err := models.ParseNegotiationRow(row)
		if err != nil || np == nil {
			continue
		}
		np.Likelihood = negotiation.Likelihood(*np)
		players = append(players, *np)
	}
	return players, nil
}

// dataRows fetches a tab and drops its header row.
func (c *Client) dataRows(gid, what string) ([][]string, error) {
	data, err := c.GetSheetDataCSV(gid)
	if err != nil {
		return nil, err
	}
	if len(data) < 2 { // Need the header row and one data row
		return nil, fmt.Errorf("insufficient data in %s sheet", what)
	}
	return data[1:], nil
}

// GetSheetDataCSV fetches data from a specific sheet tab as CSV
func (c *Client) GetSheetDataCSV(gid string) ([][]string, error) {
	url := fmt.Sprintf("%s/%s/export?format=csv&gid=%s", c.baseURL, c.spreadsheetID, gid)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	var data [][]string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		data = append(data, record)
	}

	return data, nil
}

func historyFor(histories map[string]models.CareerHistory, name string) models.CareerHistory {
	if h, ok := histories[strings.ToLower(strings.TrimSpace(name))]; ok {
		return h
	}
	return models.CareerHistory{PlayerName: name}
}
