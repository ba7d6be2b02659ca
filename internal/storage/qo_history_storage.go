package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

const qoHistoryFileName = "qo_history.csv"

// QOHistoryStorage persists every qualifying offer a player has received.
// It is the long-lived career record that per-season candidates derive
// their eligibility from.
type QOHistoryStorage struct {
	mu       sync.RWMutex
	filePath string
}

// NewQOHistoryStorage opens (creating if needed) the history file under dataDir.
func NewQOHistoryStorage(dataDir string) (*QOHistoryStorage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	qs := &QOHistoryStorage{
		filePath: filepath.Join(dataDir, qoHistoryFileName),
	}

	if _, err := os.Stat(qs.filePath); os.IsNotExist(err) {
		if err := createCSV(qs.filePath, []string{"PlayerName", "Season", "Team", "RecordedAt"}); err != nil {
			return nil, err
		}
	}

	return qs, nil
}

// Record appends the career history's newest offer. The history must come
// from qualifying.RecordOffer so the one-per-career rule has been checked.
func (qs *QOHistoryStorage) Record(history models.CareerHistory) error {
	if len(history.Offers) == 0 {
		return fmt.Errorf("no qualifying offer to record for %s", history.PlayerName)
	}
	offer := history.Offers[len(history.Offers)-1]

	qs.mu.Lock()
	defer qs.mu.Unlock()

	existing, err := qs.readAll()
	if err != nil {
		return err
	}
	if h, ok := existing[historyKey(history.PlayerName)]; ok && h.HasReceivedQO() {
		return fmt.Errorf("%s: %w", history.PlayerName, models.ErrPermanentlyIneligible)
	}

	file, err := os.OpenFile(qs.filePath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open qualifying offer history: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	record := []string{
		history.PlayerName,
		strconv.Itoa(offer.Season),
		offer.Team,
		time.Now().UTC().Format(time.RFC3339),
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("failed to write qualifying offer record: %w", err)
	}
	writer.Flush()

	return writer.Error()
}

// History returns the career record of one player. Players never offered a
// QO get an empty history.
func (qs *QOHistoryStorage) History(playerName string) (models.CareerHistory, error) {
	all, err := qs.All()
	if err != nil {
		return models.CareerHistory{}, err
	}
	if h, ok := all[historyKey(playerName)]; ok {
		return h, nil
	}
	return models.CareerHistory{PlayerName: playerName}, nil
}

// All returns every stored career history keyed by lower-cased player name.
func (qs *QOHistoryStorage) All() (map[string]models.CareerHistory, error) {
	qs.mu.RLock()
	defer qs.mu.RUnlock()
	return qs.readAll()
}

func (qs *QOHistoryStorage) readAll() (map[string]models.CareerHistory, error) {
	records, err := readCSV(qs.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read qualifying offer history: %w", err)
	}

	histories := make(map[string]models.CareerHistory)
	// Skip header row
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}
		season, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}

		key := historyKey(record[0])
		h := histories[key]
		h.PlayerName = record[0]
		h.Offers = append(h.Offers, models.QORecord{Season: season, Team: record[2]})
		histories[key] = h
	}

	return histories, nil
}

func historyKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
