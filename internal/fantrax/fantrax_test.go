package fantrax

import (
	"testing"

	"github.com/pmurley/go-fantrax/models"
	"github.com/stretchr/testify/assert"
)

func TestFilterTrades(t *testing.T) {
	trades := FilterTrades([]models.Transaction{
		{ID: "1", Type: "TRADE", TradeGroupID: "g1"},
		{ID: "2", Type: "CLAIM"},
		{ID: "3", Type: "DROP"},
		{ID: "4", Type: "TRADE"},
		{ID: "5", Type: "TRADE", TradeGroupID: "g1"},
	})
	if assert.Len(t, trades, 2) {
		assert.Equal(t, "1", trades[0].ID)
		assert.Equal(t, "5", trades[1].ID)
	}
}

func TestNewClientRequiresLeague(t *testing.T) {
	_, err := NewFantraxClient("", false)
	assert.Error(t, err)
}
