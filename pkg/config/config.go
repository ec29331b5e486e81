package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/sim-exporter/pkg/ticktimer"
)

const (
	// DefaultListenAddress is the default bind address of the metrics endpoint.
	DefaultListenAddress = "0.0.0.0"

	// DefaultListenPort is the default port of the metrics endpoint.
	DefaultListenPort = 19565

	// DefaultCommandPermissionLevel is the operator level required to run
	// the exporter command.
	DefaultCommandPermissionLevel = 3

	// DefaultServiceName names the process in logs and traces.
	DefaultServiceName = "sim-exporter"

	// DefaultAppEnv is the default deployment environment attached to traces.
	DefaultAppEnv = "development"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// MaxPermissionLevel is the highest operator level.
	MaxPermissionLevel = 4
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config is the top-level exporter configuration.
type Config struct {
	Web       WebConfig       `yaml:"web"`
	Collector CollectorConfig `yaml:"collector"`
	Logger    LoggerConfig    `yaml:"logger"`
	Tracer    TracerConfig    `yaml:"tracer"`
}

// WebConfig configures the HTTP metrics endpoint.
type WebConfig struct {
	ListenAddress string `yaml:"listen_address"`
	ListenPort    int    `yaml:"listen_port"`
}

// Addr returns the host:port the endpoint binds to.
func (w WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", w.ListenAddress, w.ListenPort)
}

// CollectorConfig toggles the individual collectors.
type CollectorConfig struct {
	// Runtime enables the Go runtime and process collectors.
	Runtime bool `yaml:"runtime"`

	Entities     bool `yaml:"entities"`
	TileEntities bool `yaml:"tileentities"`

	// TileEntitiesDetails reports tile entities per type instead of per
	// dimension. It has no effect when TileEntities is disabled.
	TileEntitiesDetails bool `yaml:"tileentities_details"`

	Ticks bool `yaml:"ticks"`

	// TickErrors is the tick protocol violation policy: ignore, log or strict.
	TickErrors string `yaml:"tick_errors"`

	Chunks           bool `yaml:"chunks"`
	Players          bool `yaml:"players"`
	PlayerStatistics bool `yaml:"player_statistics"`
	Teams            bool `yaml:"teams"`

	CommandPermissionLevel int `yaml:"command_permission_level"`
}

// TickPolicy parses TickErrors.
func (c CollectorConfig) TickPolicy() (ticktimer.Policy, error) {
	return ticktimer.ParsePolicy(c.TickErrors)
}

// LoggerConfig configures the process logger.
type LoggerConfig struct {
	Level       string `yaml:"level"`
	ServiceName string `yaml:"service_name"`
}

// TracerConfig configures tracing.
type TracerConfig struct {
	ServiceName  string `yaml:"service_name"`
	AppEnv       string `yaml:"app_env"`
	EnableExport bool   `yaml:"enable_export"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Web: WebConfig{
			ListenAddress: DefaultListenAddress,
			ListenPort:    DefaultListenPort,
		},
		Collector: CollectorConfig{
			Runtime:                true,
			Entities:               true,
			TileEntities:           true,
			Ticks:                  true,
			TickErrors:             ticktimer.PolicyLog.String(),
			Chunks:                 true,
			Players:                true,
			PlayerStatistics:       true,
			Teams:                  true,
			CommandPermissionLevel: DefaultCommandPermissionLevel,
		},
		Logger: LoggerConfig{
			Level:       DefaultLogLevel,
			ServiceName: DefaultServiceName,
		},
		Tracer: TracerConfig{
			ServiceName: DefaultServiceName,
			AppEnv:      DefaultAppEnv,
		},
	}
}

// ApplyDefaults fills zero-valued string fields. Booleans and numbers are
// taken as written.
func (c *Config) ApplyDefaults() {
	if c.Web.ListenAddress == "" {
		c.Web.ListenAddress = DefaultListenAddress
	}
	if c.Collector.TickErrors == "" {
		c.Collector.TickErrors = ticktimer.PolicyLog.String()
	}
	if c.Logger.Level == "" {
		c.Logger.Level = DefaultLogLevel
	}
	if c.Logger.ServiceName == "" {
		c.Logger.ServiceName = DefaultServiceName
	}
	if c.Tracer.ServiceName == "" {
		c.Tracer.ServiceName = c.Logger.ServiceName
	}
	if c.Tracer.AppEnv == "" {
		c.Tracer.AppEnv = DefaultAppEnv
	}
}

// Validate checks that values are in range.
func (c *Config) Validate() error {
	if c.Web.ListenPort < 0 || c.Web.ListenPort > 65535 {
		return fmt.Errorf("%w: web.listen_port %d out of range 0-65535", ErrInvalid, c.Web.ListenPort)
	}
	if _, err := c.Collector.TickPolicy(); err != nil {
		return fmt.Errorf("%w: collector.tick_errors: %w", ErrInvalid, err)
	}
	if lvl := c.Collector.CommandPermissionLevel; lvl < 0 || lvl > MaxPermissionLevel {
		return fmt.Errorf("%w: collector.command_permission_level %d out of range 0-%d", ErrInvalid, lvl, MaxPermissionLevel)
	}
	switch c.Logger.Level {
	case "debug", "info", "warning", "warn", "error":
	default:
		return fmt.Errorf("%w: logger.level %q", ErrInvalid, c.Logger.Level)
	}
	return nil
}

// Parse decodes YAML on top of Default, so omitted keys keep their default
// values. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads, decodes and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data))
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return buf.Bytes(), nil
}
