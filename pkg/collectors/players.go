package collectors

import (
	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

// Players reports one sample per connected player.
//
// Missing profile fields and a missing dimension become empty labels, so a
// connected player with an incomplete profile is still reported.
type Players struct {
	server simulation.Server
}

// NewPlayers creates the players collector.
func NewPlayers(server simulation.Server) *Players {
	return &Players{server: server}
}

func newPlayersFamily() *metrics.Family {
	return metrics.NewGauge("mc_player_list", "The players connected to the server.", "id", "name", "dim_id", "dim")
}

func (c *Players) Name() string { return "players" }

func (c *Players) Describe() []*metrics.Family {
	return []*metrics.Family{newPlayersFamily()}
}

func (c *Players) Collect() ([]*metrics.Family, error) {
	f := newPlayersFamily()
	for _, p := range c.server.Players() {
		if p == nil {
			continue
		}
		profile := p.Profile()
		var dimID, dim string
		if d := p.Dimension(); d != nil {
			dimID, dim = dimLabels(d)
		}
		// Two players that share an incomplete profile collapse into one
		// sample; Add keeps the labels unique.
		if err := f.Add(1, profile.ID, profile.Name, dimID, dim); err != nil {
			return nil, err
		}
	}
	return []*metrics.Family{f}, nil
}
