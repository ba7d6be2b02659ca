package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/pmurley/go-fantrax/models"
)

const tradeFileName = "valued_trades.csv"

// TradeRecord is one league trade as valued by the trade monitor.
type TradeRecord struct {
	TradeGroupID  string
	ProcessedDate time.Time
	FromTeam      string
	ToTeam        string
	FromValue     int
	ToValue       int
	Balance       string
	Diff          int
}

// TradeStorage handles persistent storage of valued trades
type TradeStorage struct {
	mu       sync.RWMutex
	filePath string
}

// NewTradeStorage creates a new trade storage instance under dataDir
func NewTradeStorage(dataDir string) (*TradeStorage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	ts := &TradeStorage{
		filePath: filepath.Join(dataDir, tradeFileName),
	}

	if _, err := os.Stat(ts.filePath); os.IsNotExist(err) {
		headers := []string{
			"TradeGroupID", "ProcessedDate", "FromTeam", "ToTeam",
			"FromValue", "ToValue", "Balance", "Diff",
		}
		if err := createCSV(ts.filePath, headers); err != nil {
			return nil, err
		}
	}

	return ts, nil
}

// AddTrades appends valued trades to the CSV file
func (ts *TradeStorage) AddTrades(trades []TradeRecord) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	file, err := os.OpenFile(ts.filePath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open trade file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for _, tr := range trades {
		record := []string{
			tr.TradeGroupID,
			tr.ProcessedDate.Format(time.RFC3339),
			tr.FromTeam,
			tr.ToTeam,
			strconv.Itoa(tr.FromValue),
			strconv.Itoa(tr.ToValue),
			tr.Balance,
			strconv.Itoa(tr.Diff),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write trade record: %w", err)
		}
	}
	writer.Flush()

	return writer.Error()
}

// GetAllTrades returns all stored trades in file order
func (ts *TradeStorage) GetAllTrades() ([]TradeRecord, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	records, err := readCSV(ts.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read trade file: %w", err)
	}

	var trades []TradeRecord
	// Skip header row
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 8 {
			continue
		}

		processedDate, err := time.Parse(time.RFC3339, record[1])
		if err != nil {
			continue
		}
		fromValue, _ := strconv.Atoi(record[4])
		toValue, _ := strconv.Atoi(record[5])
		diff, _ := strconv.Atoi(record[7])

		trades = append(trades, TradeRecord{
			TradeGroupID:  record[0],
			ProcessedDate: processedDate,
			FromTeam:      record[2],
			ToTeam:        record[3],
			FromValue:     fromValue,
			ToValue:       toValue,
			Balance:       record[6],
			Diff:          diff,
		})
	}

	return trades, nil
}

// GetTradeGroupIDs returns a set of all stored trade group IDs for quick lookup
func (ts *TradeStorage) GetTradeGroupIDs() (map[string]bool, error) {
	trades, err := ts.GetAllTrades()
	if err != nil {
		return nil, err
	}

	groupIDs := make(map[string]bool, len(trades))
	for _, tr := range trades {
		if tr.TradeGroupID != "" {
			groupIDs[tr.TradeGroupID] = true
		}
	}

	return groupIDs, nil
}

// GroupTransactionsByTradeGroup groups trade transactions by their TradeGroupID
func GroupTransactionsByTradeGroup(transactions []models.Transaction) map[string][]models.Transaction {
	groups := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		if tx.Type == "TRADE" && tx.TradeGroupID != "" {
			groups[tx.TradeGroupID] = append(groups[tx.TradeGroupID], tx)
		}
	}
	return groups
}
