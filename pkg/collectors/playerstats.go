package collectors

import (
	"sync"

	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

// PlayerRecord is the last known identity and statistics store of a player.
type PlayerRecord struct {
	ID    string
	Name  string
	Stats simulation.StatsStore
}

// PlayerStatistics reports the general statistics of every player seen since
// the collector was created. Records are kept after a player disconnects, so
// their last values stay visible.
type PlayerStatistics struct {
	server simulation.Server

	mu      sync.Mutex
	order   []string
	records map[string]*PlayerRecord
	names   map[string]string
}

// NewPlayerStatistics creates the player statistics collector.
func NewPlayerStatistics(server simulation.Server) *PlayerStatistics {
	return &PlayerStatistics{
		server:  server,
		records: make(map[string]*PlayerRecord),
		names:   make(map[string]string),
	}
}

func newPlayerStatsFamily() *metrics.Family {
	return metrics.NewGauge("mc_player_stat_total", "The general stats about players.", "code", "name", "player_id", "player_name")
}

func (c *PlayerStatistics) Name() string { return "player_statistics" }

func (c *PlayerStatistics) Describe() []*metrics.Family {
	return []*metrics.Family{newPlayerStatsFamily()}
}

func (c *PlayerStatistics) Collect() ([]*metrics.Family, error) {
	players := c.server.Players()
	catalog := c.server.StatCatalog()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range players {
		if p == nil {
			continue
		}
		profile := p.Profile()
		if profile.ID == "" || profile.Name == "" {
			continue
		}
		if rec, ok := c.records[profile.ID]; ok {
			rec.Name = profile.Name
			rec.Stats = p.Stats()
			continue
		}
		c.records[profile.ID] = &PlayerRecord{ID: profile.ID, Name: profile.Name, Stats: p.Stats()}
		c.order = append(c.order, profile.ID)
	}

	f := newPlayerStatsFamily()
	for _, id := range c.order {
		rec := c.records[id]
		for _, stat := range catalog {
			var value int64
			if rec.Stats != nil {
				value = rec.Stats.Read(stat)
			}
			if err := f.Add(float64(value), stat.Code(), c.displayName(stat), rec.ID, rec.Name); err != nil {
				return nil, err
			}
		}
	}
	return []*metrics.Family{f}, nil
}

// Records returns a copy of the cached player records in first-seen order.
func (c *PlayerStatistics) Records() []PlayerRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]PlayerRecord, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.records[id])
	}
	return out
}

// displayName must be called with mu held.
func (c *PlayerStatistics) displayName(stat simulation.Stat) string {
	code := stat.Code()
	if name, ok := c.names[code]; ok {
		return name
	}
	name := stat.DisplayName()
	c.names[code] = name
	return name
}
