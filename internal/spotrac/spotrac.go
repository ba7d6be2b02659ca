// Package spotrac scrapes real-world contract data used to refresh asset
// salaries and contract lengths.
package spotrac

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultBaseURL = "https://www.spotrac.com"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

func (c *Client) Search(query string) (*SearchResult, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))

	body, finalURL, err := c.get(searchURL)
	if err != nil {
		return nil, err
	}

	// A unique match redirects straight to the player page
	if strings.Contains(finalURL, "/player/_/id/") && !strings.Contains(finalURL, "/search") {
		return &SearchResult{
			Type: "single",
			PlayerResults: []PlayerSearchResult{{
				Name: nameFromSlug(finalURL),
				URL:  finalURL,
				ID:   playerIDFromURL(finalURL),
			}},
		}, nil
	}

	return ParseSearchResults(bytes.NewReader(body))
}

// GetPlayerContract fetches and parses a player page. Redirect URLs are
// followed by the HTTP client.
func (c *Client) GetPlayerContract(playerURL string) (*ContractInfo, error) {
	body, _, err := c.get(playerURL)
	if err != nil {
		return nil, err
	}
	return ParseContractInfo(bytes.NewReader(body))
}

// get returns the body and the URL after redirects.
func (c *Client) get(rawURL string) ([]byte, string, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.Request.URL.String(), nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// nameFromSlug turns ".../id/12345/juan-soto" into "Juan Soto".
func nameFromSlug(playerURL string) string {
	slug := strings.TrimSuffix(playerURL, "/")
	if idx := strings.LastIndex(slug, "/"); idx != -1 {
		slug = slug[idx+1:]
	}
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}
