// Package ticktimer measures tick durations of a tick-based game server.
//
// The server's tick loop calls StartServerTick/StopServerTick around each
// server tick and StartDimensionTick/StopDimensionTick around each
// dimension tick. Completed ticks are observed into the
// mc_server_tick_seconds and mc_dimension_tick_seconds histograms; the
// histogram count doubles as the per-scope tick counter.
//
// A tick source that misbehaves (a start while a tick is running, or a
// stop with no tick running) is handled according to the Policy:
//
//	timer := ticktimer.New(
//		ticktimer.WithPolicy(ticktimer.PolicyLog),
//		ticktimer.WithLogger(log),
//	)
//	loop := memory.NewTickLoop(world, timer, 50*time.Millisecond)
//
// Under PolicyStrict the violation is returned as a *TickError wrapping
// ErrTickOverlap or ErrTickUnderflow.
package ticktimer
