// Package memory is an in-memory simulation.Server. It backs the demo
// server of the sim-exporter command and the collector tests.
//
// All accessors return copies taken under a read lock, so a scrape can
// iterate them while the tick loop keeps mutating the world.
package memory

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

// World is a mutable in-memory game server.
type World struct {
	mu      sync.RWMutex
	dims    []*Dim
	players []*Player
	catalog []simulation.Stat

	ticks atomic.Int64
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{}
}

// AddDimension loads a dimension. Loading an id twice returns the
// existing dimension.
func (w *World) AddDimension(id int, name string) *Dim {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, d := range w.dims {
		if d.id == id {
			return d
		}
	}
	d := &Dim{id: id, name: name}
	w.dims = append(w.dims, d)
	return d
}

// UnloadDimension removes the dimension with the given id.
func (w *World) UnloadDimension(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dims = slices.DeleteFunc(w.dims, func(d *Dim) bool { return d.id == id })
}

// Dimension returns the loaded dimension with the given id.
func (w *World) Dimension(id int) (*Dim, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, d := range w.dims {
		if d.id == id {
			return d, true
		}
	}
	return nil, false
}

func (w *World) Dimensions() []simulation.Dimension {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]simulation.Dimension, len(w.dims))
	for i, d := range w.dims {
		out[i] = d
	}
	return out
}

func (w *World) loaded() []*Dim {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.dims)
}

// Connect adds a player. A player already connected under the same id
// is replaced.
func (w *World) Connect(p *Player) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id := p.profile.ID; id != "" {
		w.players = slices.DeleteFunc(w.players, func(o *Player) bool { return o.profile.ID == id })
	}
	w.players = append(w.players, p)
}

// Disconnect removes the player with the given id.
func (w *World) Disconnect(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.players = slices.DeleteFunc(w.players, func(p *Player) bool { return p.profile.ID == id })
}

func (w *World) Players() []simulation.Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]simulation.Player, len(w.players))
	for i, p := range w.players {
		out[i] = p
	}
	return out
}

// SetStatCatalog replaces the statistic catalog.
func (w *World) SetStatCatalog(stats ...*Stat) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.catalog = w.catalog[:0]
	for _, s := range stats {
		w.catalog = append(w.catalog, s)
	}
}

func (w *World) StatCatalog() []simulation.Stat {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.catalog)
}

func (w *World) TotalTicks() int64 {
	return w.ticks.Load()
}

// advance increments the world tick count.
func (w *World) advance() {
	w.ticks.Add(1)
}

// Dim is a loaded dimension.
type Dim struct {
	id   int
	name string

	mu       sync.RWMutex
	entities []simulation.Entity
	tiles    []simulation.TileEntity
	chunks   int
}

func (d *Dim) ID() int      { return d.id }
func (d *Dim) Name() string { return d.name }

// Spawn adds entities to the dimension.
func (d *Dim) Spawn(entities ...simulation.Entity) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entities = append(d.entities, entities...)
}

// Despawn removes every entity for which match returns true and reports
// how many were removed.
func (d *Dim) Despawn(match func(simulation.Entity) bool) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	before := len(d.entities)
	d.entities = slices.DeleteFunc(d.entities, match)
	return before - len(d.entities)
}

func (d *Dim) Entities() []simulation.Entity {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.entities)
}

// Place adds tile entities to the dimension.
func (d *Dim) Place(tiles ...simulation.TileEntity) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tiles = append(d.tiles, tiles...)
}

func (d *Dim) TileEntities() []simulation.TileEntity {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.tiles)
}

// SetLoadedChunks sets the number of resident chunks.
func (d *Dim) SetLoadedChunks(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chunks = n
}

func (d *Dim) LoadedChunks() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.chunks
}
