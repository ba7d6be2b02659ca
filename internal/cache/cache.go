// Package cache holds the in-memory collections the bot works on: the asset
// pool, which expires and is reloaded from sheets, and the working sets of
// arbitration cases, qualifying-offer candidates and negotiations, which never
// expire. A reload merges the working sets so records a workflow has moved on
// are kept. Records are stored by value; callers update a record by putting the
// new value returned from a workflow.
package cache

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

const (
	assetsKey       = "assets"
	arbPrefix       = "arb:"
	qoPrefix        = "qo:"
	negotiationPref = "neg:"
)

type Cache struct {
	cache    *gocache.Cache
	mu       sync.RWMutex
	duration time.Duration
}

func New(duration time.Duration) *Cache {
	return &Cache{
		cache:    gocache.New(duration, duration*2),
		duration: duration,
	}
}

func (c *Cache) SetAssets(assets []models.Asset) {
	c.cache.Set(assetsKey, assets, c.duration)
}

func (c *Cache) GetAssets() (models.AssetList, bool) {
	if assets, found := c.cache.Get(assetsKey); found {
		return models.AssetList(assets.([]models.Asset)), true
	}
	return nil, false
}

// SetArbitrationCases replaces the working set of arbitration cases.
func (c *Cache) SetArbitrationCases(cases []models.ArbitrationCase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletePrefix(arbPrefix)
	for _, ac := range cases {
		c.cache.Set(arbPrefix+ac.ID, ac, gocache.NoExpiration)
	}
}

// MergeArbitrationCases replaces the working set with freshly loaded cases,
// keeping the cached version of any case that has left pending.
func (c *Cache) MergeArbitrationCases(cases []models.ArbitrationCase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	merged := make([]models.ArbitrationCase, 0, len(cases))
	for _, ac := range cases {
		if cached, ok := c.cache.Get(arbPrefix + ac.ID); ok {
			if prev := cached.(models.ArbitrationCase); prev.Status != models.ArbPending {
				ac = prev
			}
		}
		merged = append(merged, ac)
	}
	c.deletePrefix(arbPrefix)
	for _, ac := range merged {
		c.cache.Set(arbPrefix+ac.ID, ac, gocache.NoExpiration)
	}
}

// PutArbitrationCase substitutes an updated case back into the collection.
func (c *Cache) PutArbitrationCase(ac models.ArbitrationCase) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Replace(arbPrefix+ac.ID, ac, gocache.NoExpiration)
}

func (c *Cache) ArbitrationCases() []models.ArbitrationCase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.ArbitrationCase
	for _, v := range c.withPrefix(arbPrefix) {
		out = append(out, v.(models.ArbitrationCase))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerName < out[j].PlayerName })
	return out
}

// FindArbitrationCase looks a case up by player name (case-insensitive).
func (c *Cache) FindArbitrationCase(playerName string) (models.ArbitrationCase, error) {
	for _, ac := range c.ArbitrationCases() {
		if strings.EqualFold(ac.PlayerName, strings.TrimSpace(playerName)) {
			return ac, nil
		}
	}
	return models.ArbitrationCase{}, fmt.Errorf("no arbitration case for '%s'", playerName)
}

func (c *Cache) SetQOCandidates(candidates []models.QOCandidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletePrefix(qoPrefix)
	for _, qc := range candidates {
		c.cache.Set(qoPrefix+qc.ID, qc, gocache.NoExpiration)
	}
}

// MergeQOCandidates replaces the working set with freshly loaded candidates,
// keeping the cached version of any candidate that was already offered.
func (c *Cache) MergeQOCandidates(candidates []models.QOCandidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	merged := make([]models.QOCandidate, 0, len(candidates))
	for _, qc := range candidates {
		if cached, ok := c.cache.Get(qoPrefix + qc.ID); ok {
			switch prev := cached.(models.QOCandidate); prev.Status {
			case models.QOOffered, models.QOPending, models.QOAccepted, models.QORejected:
				qc = prev
			}
		}
		merged = append(merged, qc)
	}
	c.deletePrefix(qoPrefix)
	for _, qc := range merged {
		c.cache.Set(qoPrefix+qc.ID, qc, gocache.NoExpiration)
	}
}

func (c *Cache) PutQOCandidate(qc models.QOCandidate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Replace(qoPrefix+qc.ID, qc, gocache.NoExpiration)
}

func (c *Cache) QOCandidates() []models.QOCandidate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.QOCandidate
	for _, v := range c.withPrefix(qoPrefix) {
		out = append(out, v.(models.QOCandidate))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerName < out[j].PlayerName })
	return out
}

func (c *Cache) FindQOCandidate(playerName string) (models.QOCandidate, error) {
	for _, qc := range c.QOCandidates() {
		if strings.EqualFold(qc.PlayerName, strings.TrimSpace(playerName)) {
			return qc, nil
		}
	}
	return models.QOCandidate{}, fmt.Errorf("no qualifying offer candidate named '%s'", playerName)
}

func (c *Cache) SetNegotiations(players []models.NegotiationPlayer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletePrefix(negotiationPref)
	for _, np := range players {
		c.cache.Set(negotiationPref+np.ID, np, gocache.NoExpiration)
	}
}

// MergeNegotiations replaces the working set with freshly loaded players,
// keeping the cached ledger of any negotiation that has started.
func (c *Cache) MergeNegotiations(players []models.NegotiationPlayer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	merged := make([]models.NegotiationPlayer, 0, len(players))
	for _, np := range players {
		if cached, ok := c.cache.Get(negotiationPref + np.ID); ok {
			if prev := cached.(models.NegotiationPlayer); len(prev.Offers) > 0 {
				np = prev
			}
		}
		merged = append(merged, np)
	}
	c.deletePrefix(negotiationPref)
	for _, np := range merged {
		c.cache.Set(negotiationPref+np.ID, np, gocache.NoExpiration)
	}
}

func (c *Cache) PutNegotiation(np models.NegotiationPlayer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Replace(negotiationPref+np.ID, np, gocache.NoExpiration)
}

func (c *Cache) Negotiations() []models.NegotiationPlayer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.NegotiationPlayer
	for _, v := range c.withPrefix(negotiationPref) {
		out = append(out, v.(models.NegotiationPlayer))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Cache) FindNegotiation(playerName string) (models.NegotiationPlayer, error) {
	for _, np := range c.Negotiations() {
		if strings.EqualFold(np.Name, strings.TrimSpace(playerName)) {
			return np, nil
		}
	}
	return models.NegotiationPlayer{}, fmt.Errorf("no negotiation with '%s'", playerName)
}

// InvalidateAssets drops the asset pool so the next read reloads it.
// Working sets are left alone.
func (c *Cache) InvalidateAssets() {
	c.cache.Delete(assetsKey)
}

// Callers hold c.mu.
func (c *Cache) withPrefix(prefix string) []interface{} {
	var out []interface{}
	for k, item := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			out = append(out, item.Object)
		}
	}
	return out
}

func (c *Cache) deletePrefix(prefix string) {
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}
