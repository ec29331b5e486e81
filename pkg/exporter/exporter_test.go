package exporter

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/Aleph-Alpha/sim-exporter/pkg/config"
	"github.com/Aleph-Alpha/sim-exporter/pkg/logger"
	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
	"github.com/Aleph-Alpha/sim-exporter/pkg/registry"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation/memory"
	"github.com/Aleph-Alpha/sim-exporter/pkg/tracer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Web.ListenAddress = "127.0.0.1"
	cfg.Web.ListenPort = 0
	cfg.Collector.Runtime = false
	return cfg
}

func testWorld() *memory.World {
	w := memory.NewWorld()
	overworld := w.AddDimension(0, "Overworld")
	zombie := memory.Mob{Type: simulation.EntityType{ID: 54, Name: "Zombie"}}
	overworld.Spawn(zombie, zombie, zombie)
	overworld.SetLoadedChunks(100)
	w.Connect(memory.NewPlayer("U1", "Alice", overworld))
	return w
}

func scrape(t *testing.T, url string) (int, string) {
	t.Helper()
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func familyNames(fams []*metrics.Family) []string {
	names := make([]string, 0, len(fams))
	for _, f := range fams {
		names = append(names, f.Name)
	}
	return names
}

func TestLifecycleMisuse(t *testing.T) {
	ctx := context.Background()
	e := New(testConfig(), testWorld())

	assert.ErrorIs(t, e.Stop(ctx), ErrNotRunning)
	assert.False(t, e.Running())

	require.NoError(t, e.Start(ctx))
	assert.ErrorIs(t, e.Start(ctx), ErrAlreadyRunning)
	assert.True(t, e.Running())

	require.NoError(t, e.Stop(ctx))
	assert.False(t, e.Running())
	assert.ErrorIs(t, e.Stop(ctx), ErrNotRunning)

	_, err := e.Gather()
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestScrapeOverHTTP(t *testing.T) {
	ctx := context.Background()
	e := New(testConfig(), testWorld())
	require.NoError(t, e.Start(ctx))
	defer func() { require.NoError(t, e.Stop(ctx)) }()

	require.NotEmpty(t, e.Addr())
	status, body := scrape(t, "http://"+e.Addr()+MetricsPath)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `mc_entities_total{dim="Overworld",dim_id="0",id="54",type="Zombie"} 3`)
	assert.Contains(t, body, `mc_dimension_chunks_loaded{id="0",name="Overworld"} 100`)
	assert.Contains(t, body, `mc_player_list{dim="Overworld",dim_id="0",id="U1",name="Alice"} 1`)
	assert.Contains(t, body, "mc_server_tick_seconds_count 0")
	assert.NotContains(t, body, "go_goroutines")
}

func TestRuntimeCollectors(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.Collector.Runtime = true
	e := New(cfg, testWorld())
	require.NoError(t, e.Start(ctx))
	defer func() { require.NoError(t, e.Stop(ctx)) }()

	_, body := scrape(t, "http://"+e.Addr()+MetricsPath)
	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, "go_build_info")
}

func TestCollectorOrder(t *testing.T) {
	ctx := context.Background()
	w := testWorld()

	e := New(testConfig(), w, WithTeams(memory.NewTeams()))
	require.NoError(t, e.Start(ctx))
	defer func() { require.NoError(t, e.Stop(ctx)) }()

	fams, err := e.Gather()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"mc_entities_total",
		"mc_dimension_tileentities",
		"mc_server_tick_seconds",
		"mc_dimension_tick_seconds",
		"mc_server_ticks_total_counter",
		"mc_dimension_chunks_loaded",
		"mc_player_list",
		"mc_player_stat_total",
		"mc_teams_chunk_claims",
		"mc_teams_chunk_loads",
		"mc_teams_players",
	}, familyNames(fams))
}

func TestDisabledCollectorsAndDetailedTiles(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.Collector.Entities = false
	cfg.Collector.Ticks = false
	cfg.Collector.PlayerStatistics = false
	cfg.Collector.TileEntitiesDetails = true

	e := New(cfg, testWorld())
	require.NoError(t, e.Start(ctx))
	defer func() { require.NoError(t, e.Stop(ctx)) }()

	fams, err := e.Gather()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"mc_dimension_tileentities_detailed",
		"mc_dimension_chunks_loaded",
		"mc_player_list",
	}, familyNames(fams))
}

func TestBindFailureLeavesExporterDegraded(t *testing.T) {
	ctx := context.Background()
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig()
	cfg.Web.ListenPort = busy.Addr().(*net.TCPAddr).Port

	log := NewMockLogger(gomock.NewController(t))
	log.EXPECT().Error("failed to bind metrics endpoint", gomock.Any(), gomock.Any()).Times(1)
	log.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	e := New(cfg, testWorld(), WithLogger(log))
	require.NoError(t, e.Start(ctx))
	assert.True(t, e.Running())
	assert.Empty(t, e.Addr())

	fams, err := e.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, fams)

	require.NoError(t, e.Stop(ctx))
	assert.False(t, e.Running())
}

func TestTimerSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	w := testWorld()
	e := New(testConfig(), w)
	loop := memory.NewTickLoop(w, e.Timer(), time.Millisecond)

	require.NoError(t, loop.Step())
	require.NoError(t, e.Start(ctx))
	require.NoError(t, e.Stop(ctx))
	require.NoError(t, loop.Step())
	require.NoError(t, e.Start(ctx))
	defer func() { require.NoError(t, e.Stop(ctx)) }()

	fams, err := e.Gather()
	require.NoError(t, err)
	for _, f := range fams {
		if f.Name == "mc_server_tick_seconds" {
			require.Len(t, f.Samples(), 1)
			assert.Equal(t, uint64(2), f.Samples()[0].Histogram.Count)
			return
		}
	}
	t.Fatal("mc_server_tick_seconds not gathered")
}

func TestTracedScrape(t *testing.T) {
	ctx := context.Background()
	spans := tracetest.NewInMemoryExporter()
	tr := tracer.NewWithExporter(tracer.Config{ServiceName: "test"}, logger.NewWithZap(zap.NewNop()), spans)
	defer func() { require.NoError(t, tr.Shutdown(ctx)) }()

	e := New(testConfig(), testWorld(), WithTracer(tr))
	require.NoError(t, e.Start(ctx))
	defer func() { require.NoError(t, e.Stop(ctx)) }()

	status, _ := scrape(t, "http://"+e.Addr()+MetricsPath)
	require.Equal(t, http.StatusOK, status)

	got := spans.GetSpans()
	require.Len(t, got, 1)
	assert.Equal(t, "exporter.scrape", got[0].Name)
	assert.Contains(t, got[0].Attributes, attribute.Int("http.status_code", http.StatusOK))
}

type failingCollector struct{}

func (failingCollector) Name() string { return "failing" }

func (failingCollector) Describe() []*metrics.Family {
	return []*metrics.Family{metrics.NewGauge("mc_failing", "Always fails.")}
}

func (failingCollector) Collect() ([]*metrics.Family, error) {
	return nil, errors.New("world unloaded mid-scrape")
}

func TestCollectorFailureFailsScrape(t *testing.T) {
	log := NewMockLogger(gomock.NewController(t))
	log.EXPECT().Error("scrape failed", nil, gomock.Any()).MinTimes(1)

	reg := registry.New(nil)
	require.NoError(t, reg.Register(failingCollector{}))
	promReg := prometheus.NewRegistry()
	require.NoError(t, promReg.Register(reg))

	e := New(testConfig(), testWorld(), WithLogger(log))
	rec := httptest.NewRecorder()
	e.handler(promReg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestFXModule(t *testing.T) {
	w := testWorld()
	var e *Exporter
	app := fxtest.New(t,
		fx.Supply(testConfig()),
		fx.Provide(func() simulation.Server { return w }),
		FXModule,
		fx.Populate(&e),
	)
	app.RequireStart()
	require.NotNil(t, e)
	assert.True(t, e.Running())

	// Stopping through the command surface first must not fail the app stop.
	require.NoError(t, e.Stop(context.Background()))
	app.RequireStop()
	assert.False(t, e.Running())
}
