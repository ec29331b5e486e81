package memory

import (
	"slices"
	"sync"

	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

// Team is a player team.
type Team struct {
	id    string
	title string
	typ   string

	mu      sync.RWMutex
	members []simulation.TeamMember
}

// NewTeam creates a team without members.
func NewTeam(id, title, typ string) *Team {
	return &Team{id: id, title: title, typ: typ}
}

func (t *Team) ID() string    { return t.id }
func (t *Team) Title() string { return t.title }
func (t *Team) Type() string  { return t.typ }

// Join adds a member.
func (t *Team) Join(id, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.members = append(t.members, simulation.TeamMember{ID: id, Name: name})
}

func (t *Team) Members() []simulation.TeamMember {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.members)
}

type claimKey struct {
	team string
	dim  int
}

// Teams is an in-memory team system.
type Teams struct {
	mu           sync.RWMutex
	ready        bool
	claimsActive bool
	teams        []*Team
	claims       map[claimKey][]simulation.ClaimedChunk
}

// NewTeams returns a ready team system with chunk claiming enabled.
func NewTeams() *Teams {
	return &Teams{
		ready:        true,
		claimsActive: true,
		claims:       make(map[claimKey][]simulation.ClaimedChunk),
	}
}

// SetReady marks the team data as loaded or not.
func (s *Teams) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// SetClaimsActive enables or disables chunk claiming.
func (s *Teams) SetClaimsActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claimsActive = active
}

// Add registers a team.
func (s *Teams) Add(t *Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = append(s.teams, t)
}

// Claim records a chunk claim of team in dimension dimID.
func (s *Teams) Claim(t *Team, dimID int, chunk simulation.ClaimedChunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := claimKey{t.id, dimID}
	s.claims[k] = append(s.claims[k], chunk)
}

func (s *Teams) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Teams) ClaimsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claimsActive
}

func (s *Teams) Teams() []simulation.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]simulation.Team, len(s.teams))
	for i, t := range s.teams {
		out[i] = t
	}
	return out
}

func (s *Teams) ClaimedChunks(team simulation.Team, dimID int) []simulation.ClaimedChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.claims[claimKey{team.ID(), dimID}])
}
