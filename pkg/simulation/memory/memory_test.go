package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
	"github.com/Aleph-Alpha/sim-exporter/pkg/ticktimer"
)

func TestMobClassification(t *testing.T) {
	tests := []struct {
		name string
		mob  Mob
		want simulation.EntityType
		ok   bool
	}{
		{"registered", Mob{Type: simulation.EntityType{ID: 54, Name: "Zombie"}}, simulation.EntityType{ID: 54, Name: "Zombie"}, true},
		{"hostile fallback", Mob{Type: simulation.EntityType{ID: 0}, Class: "mod.CustomMob", Hostile: true}, simulation.EntityType{Name: "mod.CustomMob"}, true},
		{"passive unknown", Mob{Class: "mod.Critter"}, simulation.EntityType{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.mob.Classify()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := PlayerBody{ID: "u1"}.Classify()
	assert.False(t, ok)
	assert.True(t, PlayerBody{}.IsPlayer())
}

func TestWorldAccessorsReturnCopies(t *testing.T) {
	w := NewWorld()
	d := w.AddDimension(0, "overworld")
	d.Spawn(Mob{Type: simulation.EntityType{ID: 54, Name: "Zombie"}})

	entities := d.Entities()
	d.Spawn(Mob{Type: simulation.EntityType{ID: 51, Name: "Skeleton"}})
	assert.Len(t, entities, 1)
	assert.Len(t, d.Entities(), 2)

	removed := d.Despawn(func(e simulation.Entity) bool {
		et, _ := e.Classify()
		return et.Name == "Zombie"
	})
	assert.Equal(t, 1, removed)
	assert.Len(t, d.Entities(), 1)

	assert.Same(t, d, w.AddDimension(0, "overworld"))
	w.UnloadDimension(0)
	assert.Empty(t, w.Dimensions())
}

func TestPlayersConnectAndDisconnect(t *testing.T) {
	w := NewWorld()
	d := w.AddDimension(0, "overworld")
	p := NewPlayer("u1", "Alice", d)
	w.Connect(p)
	w.Connect(NewPlayer("u1", "Alice", d))
	require.Len(t, w.Players(), 1)

	noDim := NewPlayer("u2", "Bob", nil)
	assert.Nil(t, noDim.Dimension())

	w.Disconnect("u1")
	assert.Empty(t, w.Players())
}

func TestTickLoopDrivesTimer(t *testing.T) {
	w := NewWorld()
	w.AddDimension(0, "overworld")
	w.AddDimension(-1, "nether")
	timer := ticktimer.New(ticktimer.WithPolicy(ticktimer.PolicyStrict))

	visited := 0
	loop := NewTickLoop(w, timer, time.Millisecond)
	loop.OnDimensionTick = func(*Dim) { visited++ }

	for i := 0; i < 3; i++ {
		require.NoError(t, loop.Step())
	}

	assert.Equal(t, int64(3), w.TotalTicks())
	assert.Equal(t, uint64(3), timer.ServerTicks())
	assert.Equal(t, uint64(3), timer.DimensionTicks(0))
	assert.Equal(t, uint64(3), timer.DimensionTicks(-1))
	assert.Equal(t, 6, visited)
}

type failingListener struct{}

func (failingListener) StartServerTick() error               { return errors.New("boom") }
func (failingListener) StopServerTick() error                { return nil }
func (failingListener) StartDimensionTick(int, string) error { return nil }
func (failingListener) StopDimensionTick(int, string) error  { return nil }

func TestTickLoopStopsOnListenerError(t *testing.T) {
	w := NewWorld()
	loop := NewTickLoop(w, failingListener{}, time.Millisecond)

	err := loop.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start server tick")
	assert.Equal(t, int64(0), w.TotalTicks())
}

func TestTickLoopRunStopsOnCancel(t *testing.T) {
	w := NewWorld()
	w.AddDimension(0, "overworld")
	timer := ticktimer.New(ticktimer.WithPolicy(ticktimer.PolicyStrict))
	loop := NewTickLoop(w, timer, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	require.Eventually(t, func() bool { return w.TotalTicks() >= 3 }, 5*time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestTeamsClaims(t *testing.T) {
	teams := NewTeams()
	red := NewTeam("red", "Red Team", "player")
	red.Join("u1", "Alice")
	teams.Add(red)
	teams.Claim(red, 0, simulation.ClaimedChunk{X: 1, Z: 2, Forced: true})

	assert.True(t, teams.Ready())
	assert.Len(t, teams.ClaimedChunks(red, 0), 1)
	assert.Empty(t, teams.ClaimedChunks(red, 1))
	assert.Equal(t, []simulation.TeamMember{{ID: "u1", Name: "Alice"}}, red.Members())
}
