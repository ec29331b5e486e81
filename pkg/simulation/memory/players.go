package memory

import (
	"sync"
	"sync/atomic"

	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

// Player is a connected player.
type Player struct {
	profile simulation.Profile
	stats   *StatStore

	mu  sync.RWMutex
	dim *Dim
}

// NewPlayer creates a player in dim. dim may be nil.
func NewPlayer(id, name string, dim *Dim) *Player {
	return &Player{
		profile: simulation.Profile{ID: id, Name: name},
		stats:   NewStatStore(),
		dim:     dim,
	}
}

func (p *Player) Profile() simulation.Profile {
	return p.profile
}

func (p *Player) Dimension() simulation.Dimension {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.dim == nil {
		return nil
	}
	return p.dim
}

// MoveTo moves the player to another dimension.
func (p *Player) MoveTo(dim *Dim) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dim = dim
}

func (p *Player) Stats() simulation.StatsStore {
	return p.stats
}

// StatValues returns the concrete statistics store of the player.
func (p *Player) StatValues() *StatStore {
	return p.stats
}

// Stat is a catalog statistic.
type Stat struct {
	code string
	name string

	resolved atomic.Int64
}

// NewStat creates a statistic with a code and a display name.
func NewStat(code, name string) *Stat {
	return &Stat{code: code, name: name}
}

func (s *Stat) Code() string { return s.code }

func (s *Stat) DisplayName() string {
	s.resolved.Add(1)
	return s.name
}

// Resolutions returns how many times DisplayName was called.
func (s *Stat) Resolutions() int64 {
	return s.resolved.Load()
}

// StatStore holds per-player statistic values by stat code.
type StatStore struct {
	mu     sync.RWMutex
	values map[string]int64
}

// NewStatStore returns an empty store.
func NewStatStore() *StatStore {
	return &StatStore{values: make(map[string]int64)}
}

// Set sets the value of the statistic with the given code.
func (s *StatStore) Set(code string, v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[code] = v
}

// Add increments the statistic with the given code.
func (s *StatStore) Add(code string, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[code] += delta
}

func (s *StatStore) Read(stat simulation.Stat) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[stat.Code()]
}
