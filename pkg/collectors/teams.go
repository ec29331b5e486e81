package collectors

import (
	"strconv"

	"github.com/Aleph-Alpha/sim-exporter/pkg/aggregate"
	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

type claimKey struct {
	TeamID   string
	TeamName string
	TeamType string
	DimID    int
	DimName  string
}

type memberKey struct {
	TeamID string
	ID     string
}

// Teams reports chunk claims, forced chunk loads and members of every team
// of the companion team system.
type Teams struct {
	server simulation.Server
	system simulation.TeamSystem
}

// NewTeams creates the teams collector. system may be nil when no team
// system is installed.
func NewTeams(server simulation.Server, system simulation.TeamSystem) *Teams {
	return &Teams{server: server, system: system}
}

func newClaimsFamily() *metrics.Family {
	return metrics.NewGauge("mc_teams_chunk_claims", "Number of chunk claims per team per dim.", "team_id", "team_name", "team_type", "dim_id", "dim_name")
}

func newLoadsFamily() *metrics.Family {
	return metrics.NewGauge("mc_teams_chunk_loads", "Number of chunks being force loaded per team per dim.", "team_id", "team_name", "team_type", "dim_id", "dim_name")
}

func newTeamPlayersFamily() *metrics.Family {
	return metrics.NewGauge("mc_teams_players", "Players in a team.", "team_id", "team_name", "player_uuid", "player_name")
}

func (c *Teams) Name() string { return "teams" }

func (c *Teams) Describe() []*metrics.Family {
	return []*metrics.Family{newClaimsFamily(), newLoadsFamily(), newTeamPlayersFamily()}
}

// Collect returns no families while the team system is absent or not ready.
func (c *Teams) Collect() ([]*metrics.Family, error) {
	if c.system == nil || !c.system.Ready() {
		return nil, nil
	}

	teams := c.system.Teams()
	claims, loads := newClaimsFamily(), newLoadsFamily()
	if c.system.ClaimsActive() {
		claimed, forced := aggregate.New[claimKey](), aggregate.New[claimKey]()
		for _, team := range teams {
			if team == nil {
				continue
			}
			for _, dim := range c.server.Dimensions() {
				chunks := c.system.ClaimedChunks(team, dim.ID())
				if len(chunks) == 0 {
					continue
				}
				key := claimKey{TeamID: team.ID(), TeamName: team.Title(), TeamType: team.Type(), DimID: dim.ID(), DimName: dim.Name()}
				claimed.Add(key, len(chunks))
				aggregate.Into(forced, chunks, func(simulation.ClaimedChunk) (claimKey, bool) {
					return key, true
				}, func(ch simulation.ClaimedChunk) bool { return ch.Forced })
				// A team with claims but no forced chunks still reports zero loads.
				forced.Add(key, 0)
			}
		}
		labels := func(k claimKey) []string {
			return []string{k.TeamID, k.TeamName, k.TeamType, strconv.Itoa(k.DimID), k.DimName}
		}
		if err := emitCounts(claims, claimed, labels); err != nil {
			return nil, err
		}
		if err := emitCounts(loads, forced, labels); err != nil {
			return nil, err
		}
	}

	members := newTeamPlayersFamily()
	seen := make(map[memberKey]struct{})
	for _, team := range teams {
		if team == nil {
			continue
		}
		for _, m := range team.Members() {
			key := memberKey{TeamID: team.ID(), ID: m.ID}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if err := members.Add(1, team.ID(), team.Title(), m.ID, m.Name); err != nil {
				return nil, err
			}
		}
	}

	return []*metrics.Family{claims, loads, members}, nil
}
