package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-frontoffice/internal/models"
	"github.com/pmurley/ulb-frontoffice/internal/spotrac"
	"github.com/pmurley/ulb-frontoffice/internal/valuation"
)

// runContract refreshes an asset's contract from Spotrac and re-scores it.
// The asset pool itself is not changed; sheets stay the source of truth.
func (hm *HandlerManager) runContract(user string, args []string) reply {
	if len(args) == 0 {
		return text("Usage: `!contract <name>`")
	}
	name := strings.Join(args, " ")

	result, err := hm.contracts.Search(name)
	if err != nil {
		return text("Failed to search Spotrac: %v", err)
	}

	var match spotrac.PlayerSearchResult
	switch result.Type {
	case "none":
		if result.ErrorMessage != "" {
			return text("%s", result.ErrorMessage)
		}
		return text("No players found on Spotrac")
	case "multiple":
		exact := exactResults(result.PlayerResults, name)
		if len(exact) != 1 {
			return embedReply(buildSpotracMultipleResultsEmbed(result, name))
		}
		match = exact[0]
	default:
		match = result.PlayerResults[0]
	}

	contract, err := hm.contracts.GetPlayerContract(match.URL)
	if err != nil {
		return text("Failed to get contract information: %v", err)
	}
	if contract.PlayerName == "" {
		contract.PlayerName = match.Name
	}

	embed := buildSpotracContractEmbed(contract)

	assets, err := hm.Assets()
	if err != nil {
		hm.logger.Warn("Contract lookup without asset pool:", err)
		return embedReply(embed)
	}
	asset, err := assets.Resolve(contract.PlayerName)
	if err != nil {
		return embedReply(embed)
	}
	if field := revaluationField(asset, contract, hm.config.League.Season); field != nil {
		embed.Fields = append(embed.Fields, field)
	}
	return embedReply(embed)
}

func exactResults(results []spotrac.PlayerSearchResult, name string) []spotrac.PlayerSearchResult {
	var exact []spotrac.PlayerSearchResult
	for _, r := range results {
		if strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(name)) {
			exact = append(exact, r)
		}
	}
	return exact
}

// revaluationField compares the asset's value under its sheet contract and
// under the Spotrac contract. Nil when the contract has no usable salary.
func revaluationField(asset models.Asset, contract *spotrac.ContractInfo, season int) *discordgo.MessageEmbedField {
	salary, years, ok := contract.Terms(season)
	if !ok {
		return nil
	}
	before, err := valuation.Score(asset)
	if err != nil {
		return nil
	}
	refreshed := asset.WithContract(salary, years)
	after, err := valuation.Score(refreshed)
	if err != nil {
		return nil
	}

	return &discordgo.MessageEmbedField{
		Name: "Trade Value",
		Value: fmt.Sprintf("Sheet: %d (%s)\nSpotrac: %d (%s)",
			before, contractLine(asset), after, contractLine(refreshed)),
		Inline: false,
	}
}

// buildSpotracMultipleResultsEmbed creates an embed for multiple search results
func buildSpotracMultipleResultsEmbed(result *spotrac.SearchResult, query string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Multiple players found for '%s'", query),
		Color: 0xFFA500, // Orange
	}

	var description strings.Builder
	description.WriteString("Please be more specific. Found players:\n\n")

	// Show up to 20 results to avoid hitting Discord's limits
	maxResults := len(result.PlayerResults)
	if maxResults > 20 {
		maxResults = 20
	}

	for _, player := range result.PlayerResults[:maxResults] {
		description.WriteString(fmt.Sprintf("**%s**", player.Name))
		if player.Team != "" {
			description.WriteString(fmt.Sprintf(" (%s)", player.Team))
		}
		if player.Position != "" {
			description.WriteString(fmt.Sprintf(" - %s", player.Position))
		}
		description.WriteString("\n")
	}

	if len(result.PlayerResults) > 20 {
		description.WriteString(fmt.Sprintf("\n*...and %d more results*", len(result.PlayerResults)-20))
	}

	embed.Description = description.String()
	return embed
}

// buildSpotracContractEmbed creates an embed for a player's contract information
func buildSpotracContractEmbed(contract *spotrac.ContractInfo) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s - Contract Information", contract.PlayerName),
		Color: 0x00FF00, // Green
	}

	var fields []*discordgo.MessageEmbedField

	if contract.ContractTerms != "" && contract.ContractTerms != "1 yr(s)" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Contract",
			Value:  contract.ContractTerms,
			Inline: true,
		})
		if contract.AverageSalary != "" {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   "Average Salary",
				Value:  contract.AverageSalary,
				Inline: true,
			})
		}
	} else {
		statusValue := "No Major League Contract"
		if contract.Status != "" {
			statusValue = contract.Status
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Status",
			Value:  statusValue,
			Inline: false,
		})
	}

	if contract.FreeAgent != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Free Agent",
			Value:  contract.FreeAgent,
			Inline: true,
		})
	}

	if len(contract.ContractNotes) > 0 {
		var notes []string
		for _, note := range contract.ContractNotes {
			notes = append(notes, "• "+note)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Contract Notes",
			Value:  strings.Join(notes, "\n"),
			Inline: false,
		})
	}

	// Year-by-year breakdown as an ASCII table in a code block
	if len(contract.ContractYears) > 0 {
		var breakdown strings.Builder
		breakdown.WriteString("```\n")
		breakdown.WriteString("Year  Age  Status      Salary\n")
		breakdown.WriteString("----  ---  ----------  ----------------\n")

		for _, year := range contract.ContractYears {
			ageStr := ""
			if year.Age > 0 {
				ageStr = strconv.Itoa(year.Age)
			}
			statusStr := year.Status
			if len(statusStr) > 10 {
				statusStr = statusStr[:10]
			}
			salaryStr := year.PayrollTotal
			if salaryStr == "" {
				salaryStr = "-"
			}
			breakdown.WriteString(fmt.Sprintf("%-4d  %-3s  %-10s  %s\n",
				year.Year, ageStr, statusStr, salaryStr))
		}
		breakdown.WriteString("```")

		// Discord field values have a limit of 1024 characters
		breakdownText := breakdown.String()
		if len(breakdownText) > 1024 {
			breakdownText = breakdownText[:1020] + "..."
		}

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Contract Breakdown",
			Value:  breakdownText,
			Inline: false,
		})
	}

	embed.Fields = fields
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: "Data from Spotrac.com",
	}

	return embed
}
