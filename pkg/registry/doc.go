// Package registry holds the enabled collectors of the exporter and runs
// them once per scrape.
//
// Collectors are run in registration order. If one fails, the scrape is
// aborted as a whole: CollectAll returns a *CollectError and, through the
// prometheus.Collector interface, promhttp answers the request with an
// error instead of a partial snapshot.
//
//	reg := registry.New(nil)
//	_ = reg.Register(collectors.NewEntities(server))
//	_ = reg.Register(collectors.NewChunks(server))
//	families, err := reg.CollectAll()
package registry
