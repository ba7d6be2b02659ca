package spotrac

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

type SearchResult struct {
	Type          string // none, single or multiple
	PlayerResults []PlayerSearchResult
	ErrorMessage  string
}

type PlayerSearchResult struct {
	Name     string
	Team     string
	Position string
	URL      string
	ID       string
}

type ContractInfo struct {
	PlayerName    string
	Status        string // Pre-Arbitration, Arbitration, etc.
	ContractTerms string
	TotalValue    string
	AverageSalary string
	FreeAgent     string
	ContractNotes []string
	ContractYears []ContractYear
}

type ContractYear struct {
	Year         int
	Age          int
	Status       string
	PayrollTotal string
}

var (
	quotedRe = regexp.MustCompile(`"([^"]+)"`)
	yearRe   = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

func ParseSearchResults(body io.Reader) (*SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	searchQuery := ""
	doc.Find("h1").Each(func(i int, s *goquery.Selection) {
		if text := s.Text(); strings.Contains(text, "Search Results for") {
			if m := quotedRe.FindStringSubmatch(text); len(m) > 1 {
				searchQuery = m[1]
			}
		}
	})

	// The second list-group holds the player results
	var results []PlayerSearchResult
	listGroups := doc.Find("div.list-group")
	if listGroups.Length() >= 2 {
		listGroups.Eq(1).Find("a.list-group-item").Each(func(i int, s *goquery.Selection) {
			href, exists := s.Attr("href")
			if !exists {
				return
			}
			results = append(results, PlayerSearchResult{
				Name:     strings.TrimSpace(s.Find("span.text-danger").Text()),
				Team:     parenthesized(strings.TrimSpace(s.Find("span").First().Text())),
				Position: strings.TrimSpace(s.Find("span.badge").Text()),
				URL:      href,
				ID:       playerIDFromURL(href),
			})
		})
	}

	result := &SearchResult{Type: "none", PlayerResults: results}
	switch {
	case len(results) == 1:
		result.Type = "single"
	case len(results) > 1:
		result.Type = "multiple"
	case searchQuery != "":
		result.ErrorMessage = fmt.Sprintf("No players found matching '%s'", searchQuery)
	}
	return result, nil
}

func ParseContractInfo(body io.Reader) (*ContractInfo, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	info := &ContractInfo{}
	if title := doc.Find("title").Text(); strings.Contains(title, "|") {
		info.PlayerName = strings.TrimSpace(strings.Split(title, "|")[0])
	}

	// Prefer the wrapper marked (CURRENT); otherwise the first one with terms
	wrappers := doc.Find("div.contract-wrapper")
	current := wrappers.FilterFunction(func(i int, s *goquery.Selection) bool {
		return strings.Contains(s.Find("h2").Text(), "(CURRENT)")
	}).First()
	if current.Length() == 0 {
		current = wrappers.FilterFunction(func(i int, s *goquery.Selection) bool {
			return strings.Contains(s.Find("div.contract-details").Text(), "$")
		}).First()
	}
	if current.Length() > 0 {
		readContractWrapper(current, info)
	}

	if parts := strings.Split(info.ContractTerms, "/"); len(parts) >= 2 && strings.Contains(parts[1], "$") {
		info.TotalValue = strings.TrimSpace(parts[1])
	}

	doc.Find("div.notes ul li").Each(func(i int, s *goquery.Selection) {
		if note := strings.TrimSpace(s.Text()); note != "" {
			info.ContractNotes = append(info.ContractNotes, note)
		}
	})

	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		years := readPayrollTable(table)
		if years == nil {
			return true
		}
		info.ContractYears = years
		return false
	})

	return info, nil
}

func readContractWrapper(wrapper *goquery.Selection, info *ContractInfo) {
	header := wrapper.Find("h2").Text()
	switch {
	case strings.Contains(header, "Pre-Arbitration"):
		info.Status = "Pre-Arbitration"
	case strings.Contains(header, "Arbitration"):
		info.Status = "Arbitration"
	case strings.Contains(header, "Free Agent"):
		info.Status = "Free Agent"
	}

	wrapper.Find("div.contract-details div.cell").Each(func(j int, s *goquery.Selection) {
		value := strings.TrimSpace(s.Find("div.value").Text())
		switch strings.TrimSpace(s.Find("div.label").Text()) {
		case "Contract Terms:":
			info.ContractTerms = value
		case "Average Salary:":
			info.AverageSalary = value
		case "Free Agent:":
			info.FreeAgent = value
		}
	})
}

// readPayrollTable returns nil unless the table has year and payroll columns.
func readPayrollTable(table *goquery.Selection) []ContractYear {
	yearCol, ageCol, statusCol, payrollCol := -1, -1, -1, -1
	table.Find("thead th").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		switch {
		case yearCol == -1 && strings.Contains(lower, "year"):
			yearCol = i
		case ageCol == -1 && strings.Contains(lower, "age"):
			ageCol = i
		case statusCol == -1 && strings.Contains(lower, "status"):
			statusCol = i
		case payrollCol == -1 && strings.Contains(text, "Payroll"):
			payrollCol = i
		}
	})
	if yearCol < 0 || payrollCol < 0 {
		return nil
	}

	years := []ContractYear{}
	table.Find("tbody tr").Each(func(rowIdx int, row *goquery.Selection) {
		var year ContractYear
		row.Find("td").Each(func(cellIdx int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			if option := strings.TrimSpace(cell.Find("div.option").Text()); option != "" && year.Status == "" {
				year.Status = option
			}
			switch cellIdx {
			case yearCol:
				year.Year, _ = strconv.Atoi(text)
			case ageCol:
				year.Age, _ = strconv.Atoi(text)
			case statusCol:
				if year.Status == "" && !strings.Contains(text, "$") {
					year.Status = text
				}
			case payrollCol:
				if strings.Contains(text, "$") || text == "-" {
					year.PayrollTotal = text
				}
			}
		})
		if year.Year > 0 {
			years = append(years, year)
		}
	})
	return years
}

// Terms converts the scraped contract into the salary (millions) and years
// remaining an asset carries as of season. ok is false when no salary could
// be read.
func (ci *ContractInfo) Terms(season int) (salary float64, years int, ok bool) {
	salary, ok = models.ParseMoney(ci.AverageSalary)
	if !ok {
		return 0, 0, false
	}

	for _, y := range ci.ContractYears {
		if y.Year >= season && y.PayrollTotal != "" && y.PayrollTotal != "-" {
			years++
		}
	}
	if years == 0 {
		if m := yearRe.FindString(ci.FreeAgent); m != "" {
			if fa, err := strconv.Atoi(m); err == nil && fa > season {
				years = fa - season
			}
		}
	}
	return salary, years, true
}

func parenthesized(text string) string {
	start := strings.LastIndex(text, "(")
	end := strings.LastIndex(text, ")")
	if start == -1 || end <= start {
		return ""
	}
	return text[start+1 : end]
}

func playerIDFromURL(href string) string {
	parts := strings.Split(href, "/")
	for i, part := range parts {
		if (part == "player" || part == "id") && i+1 < len(parts) && parts[i+1] != "_" {
			id := parts[i+1]
			if idx := strings.Index(id, "?"); idx != -1 {
				id = id[:idx]
			}
			return id
		}
	}
	return ""
}
