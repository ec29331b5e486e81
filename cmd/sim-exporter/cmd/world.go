package cmd

import (
	"math/rand/v2"

	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation/memory"
)

var (
	zombie   = memory.Mob{Type: simulation.EntityType{ID: 54, Name: "Zombie"}, Hostile: true}
	skeleton = memory.Mob{Type: simulation.EntityType{ID: 51, Name: "Skeleton"}, Hostile: true}
	pig      = memory.Mob{Type: simulation.EntityType{ID: 90, Name: "Pig"}}
	ghast    = memory.Mob{Type: simulation.EntityType{ID: 56, Name: "Ghast"}, Hostile: true}
)

// demo is a small world that changes a little on every dimension tick so
// the scrape output moves.
type demo struct {
	world *memory.World
	teams *memory.Teams
	rng   *rand.Rand

	players []*memory.Player
	minute  *memory.Stat
	jump    *memory.Stat
}

func newDemo(seed uint64) *demo {
	d := &demo{
		world:  memory.NewWorld(),
		teams:  memory.NewTeams(),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		minute: memory.NewStat("stat.playOneMinute", "Minutes Played"),
		jump:   memory.NewStat("stat.jump", "Jumps"),
	}
	d.world.SetStatCatalog(
		memory.NewStat("stat.leaveGame", "Games quit"),
		d.minute,
		d.jump,
		memory.NewStat("stat.deaths", "Number of Deaths"),
	)

	overworld := d.world.AddDimension(0, "Overworld")
	overworld.Spawn(zombie, zombie, skeleton, pig, pig, pig)
	overworld.Place(
		memory.Block{Class: "TileEntityFurnace", Name: "furnace"},
		memory.Block{Class: "TileEntityChest", Name: "chest"},
		memory.Block{Class: "TileEntityChest", Name: "chest"},
	)
	overworld.SetLoadedChunks(441)

	nether := d.world.AddDimension(-1, "Nether")
	nether.Spawn(ghast, zombie)
	nether.SetLoadedChunks(121)

	alice := memory.NewPlayer("069a79f4-44e9-4726-a5be-fca90e38aaf5", "Alice", overworld)
	bob := memory.NewPlayer("61699b2e-d327-4a01-9f1e-0ea8c3f06bc6", "Bob", nether)
	d.players = []*memory.Player{alice, bob}
	for _, p := range d.players {
		d.world.Connect(p)
	}
	overworld.Spawn(memory.PlayerBody{ID: alice.Profile().ID})
	nether.Spawn(memory.PlayerBody{ID: bob.Profile().ID})

	red := memory.NewTeam("red", "Red Team", "player")
	red.Join(alice.Profile().ID, "Alice")
	red.Join(bob.Profile().ID, "Bob")
	d.teams.Add(red)
	d.teams.Claim(red, 0, simulation.ClaimedChunk{X: 0, Z: 0, Forced: true})
	d.teams.Claim(red, 0, simulation.ClaimedChunk{X: 0, Z: 1})
	d.teams.Claim(red, -1, simulation.ClaimedChunk{X: 8, Z: -3})

	return d
}

// tick is installed as the tick loop's dimension hook.
func (d *demo) tick(dim *memory.Dim) {
	switch n := d.rng.IntN(100); {
	case n < 3:
		dim.Spawn(zombie)
	case n < 6:
		dim.Despawn(func(e simulation.Entity) bool {
			t, ok := e.Classify()
			return ok && t.Name == zombie.Type.Name
		})
	}

	for _, p := range d.players {
		if pd := p.Dimension(); pd == nil || pd.ID() != dim.ID() {
			continue
		}
		p.StatValues().Add(d.minute.Code(), 1)
		if d.rng.IntN(20) == 0 {
			p.StatValues().Add(d.jump.Code(), 1)
		}
	}
}
