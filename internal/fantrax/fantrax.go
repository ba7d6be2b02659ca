// Package fantrax reads the league's executed trades from Fantrax.
package fantrax

import (
	"fmt"

	"github.com/pmurley/go-fantrax/auth_client"
	"github.com/pmurley/go-fantrax/models"
)

const tradeType = "TRADE"

type Client struct {
	Client   *auth_client.Client
	LeagueId string
}

func NewFantraxClient(leagueId string, useCache bool) (*Client, error) {
	if leagueId == "" {
		return nil, fmt.Errorf("fantrax league ID is required")
	}
	client, err := auth_client.NewClient(leagueId, useCache)
	if err != nil {
		return nil, fmt.Errorf("failed to create fantrax client: %w", err)
	}
	return &Client{
		Client:   client,
		LeagueId: leagueId,
	}, nil
}

// GetTrades returns every executed trade transaction in the league. Each
// moved player is its own transaction; TradeGroupID ties a trade together.
func (c *Client) GetTrades() ([]models.Transaction, error) {
	transactions, err := c.Client.GetAllTransactionsIncludingTrades()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return FilterTrades(transactions), nil
}

// FilterTrades keeps executed trade legs that belong to a trade group.
func FilterTrades(transactions []models.Transaction) []models.Transaction {
	var trades []models.Transaction
	for _, tx := range transactions {
		if tx.Type == tradeType && tx.TradeGroupID != "" {
			trades = append(trades, tx)
		}
	}
	return trades
}
