// Package simulation declares the read-only view of a tick-based game
// server that collectors consume, and the tick signal interface the
// server's tick loop drives.
//
// Every accessor is best effort: implementations may return a snapshot
// that is already stale, and optional fields may be empty. Collectors
// tolerate both.
package simulation

// Server is the root of the simulation state.
type Server interface {
	// Dimensions returns the currently loaded dimensions.
	Dimensions() []Dimension

	// Players returns the currently connected players.
	Players() []Player

	// TotalTicks returns the authoritative tick count of the primary dimension.
	TotalTicks() int64

	// StatCatalog returns the fixed set of general statistics tracked per player.
	StatCatalog() []Stat
}

// Dimension is one independently ticking world partition.
type Dimension interface {
	ID() int
	Name() string
	Entities() []Entity
	TileEntities() []TileEntity
	LoadedChunks() int
}

// EntityType identifies the registered type of an entity.
type EntityType struct {
	ID   int
	Name string
}

// Entity is a live entity in a dimension.
type Entity interface {
	// IsPlayer reports whether the entity is a connected player.
	IsPlayer() bool

	// Classify returns the entity's type. It reports false when the
	// entity has no known type.
	Classify() (EntityType, bool)
}

// TileEntityType identifies the implementation and registered name of
// a tile entity.
type TileEntityType struct {
	Class string
	Name  string
}

// TileEntity is a loaded ticking block entity.
type TileEntity interface {
	Classify() (TileEntityType, bool)
}

// Profile is a player's identity. ID and Name may both be empty.
type Profile struct {
	ID   string
	Name string
}

// Player is a connected player.
type Player interface {
	Profile() Profile

	// Dimension returns the dimension the player is in, or nil.
	Dimension() Dimension

	Stats() StatsStore
}

// Stat is an entry of the server's statistic catalog.
type Stat interface {
	Code() string

	// DisplayName resolves the human readable name. It may be expensive;
	// the result never changes for a given stat.
	DisplayName() string
}

// StatsStore holds the statistic values of one player.
type StatsStore interface {
	Read(stat Stat) int64
}

// ClaimedChunk is a chunk claimed by a team.
type ClaimedChunk struct {
	X, Z   int
	Forced bool
}

// TeamMember is a member of a team.
type TeamMember struct {
	ID   string
	Name string
}

// Team is a player team of the companion team system.
type Team interface {
	ID() string
	Title() string
	Type() string
	Members() []TeamMember
}

// TeamSystem is the optional companion system that manages teams and
// chunk claims.
type TeamSystem interface {
	// Ready reports whether the team data is loaded.
	Ready() bool

	// ClaimsActive reports whether chunk claiming is enabled.
	ClaimsActive() bool

	Teams() []Team
	ClaimedChunks(team Team, dimID int) []ClaimedChunk
}

// TickListener receives tick boundary signals from the tick loop.
// An error returned from a listener is surfaced to the tick loop.
type TickListener interface {
	StartServerTick() error
	StopServerTick() error
	StartDimensionTick(id int, name string) error
	StopDimensionTick(id int, name string) error
}
