// Package exporter exposes simulation metrics on a Prometheus scrape
// endpoint.
//
//	exp := exporter.New(cfg, world,
//		exporter.WithLogger(log),
//		exporter.WithTeams(teams),
//	)
//	loop := memory.NewTickLoop(world, exp.Timer(), 0)
//
//	if err := exp.Start(ctx); err != nil {
//		return err
//	}
//	defer exp.Stop(context.Background())
//
// Start registers the collectors enabled in cfg.Collector in a fixed
// order: entities, tile entities, ticks, chunks, players, player
// statistics and teams. Teams is only registered when a team system is
// given. With cfg.Collector.Runtime set, the Go runtime, process and
// build info collectors are served alongside.
//
// If any collector fails during a scrape the whole scrape fails and the
// endpoint answers 500.
package exporter
