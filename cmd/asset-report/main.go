// Command asset-report loads the asset sheet and prints the league's most
// valuable assets with the terms their trade value is built from.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pmurley/ulb-frontoffice/internal/config"
	"github.com/pmurley/ulb-frontoffice/internal/models"
	"github.com/pmurley/ulb-frontoffice/internal/sheets"
	"github.com/pmurley/ulb-frontoffice/internal/valuation"
)

type scored struct {
	asset models.Asset
	b     valuation.Breakdown
}

var (
	top  int
	team string
)

var rootCmd = &cobra.Command{
	Use:   "asset-report",
	Short: "Rank the league's assets by trade value",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func main() {
	rootCmd.Flags().IntVar(&top, "top", 10, "number of assets to list")
	rootCmd.Flags().StringVar(&team, "team", "", "only list assets controlled by this club")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := sheets.NewClient(cfg.GoogleSheetsID, cfg.Sheets)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	fmt.Println("Loading assets...")
	loaded, err := client.LoadAssets()
	if err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}
	assets := models.AssetList(loaded)
	if team != "" {
		assets = assets.FilterByTeam(team)
	}
	fmt.Printf("\nLoaded %d assets\n", len(assets))

	var rows []scored
	teamValue := make(map[string]int)
	for _, a := range assets {
		b, err := valuation.Explain(a)
		if err != nil {
			fmt.Printf("  skipping %s: %v\n", a.Name, err)
			continue
		}
		rows = append(rows, scored{asset: a, b: b})
		if a.Team != "" {
			teamValue[a.Team] += b.Total
		}
	}

	fmt.Println("\nTotal Value by Club:")
	fmt.Println("--------------------")
	teams := make([]string, 0, len(teamValue))
	for t := range teamValue {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	for _, t := range teams {
		fmt.Printf("%-30s: %d\n", t, teamValue[t])
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].b.Total > rows[j].b.Total
	})

	fmt.Printf("\nTop %d Assets by Trade Value:\n", top)
	fmt.Println("-----------------------------")
	fmt.Printf("    %-25s %-20s %5s %6s %6s %6s %8s\n", "Name", "Club", "Value", "Skill", "Age", "Upside", "Contract")
	for i := 0; i < top && i < len(rows); i++ {
		r := rows[i]
		fmt.Printf("%2d. %-25s %-20s %5d %6.1f %6.1f %6.1f %8.1f\n",
			i+1, r.asset.Name, r.asset.Team, r.b.Total, r.b.Skill, r.b.Age, r.b.Upside, r.b.Contract)
	}
	return nil
}
