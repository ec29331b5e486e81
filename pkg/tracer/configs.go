package tracer

type Config struct {
	ServiceName string `yaml:"service_name"`
	AppEnv      string `yaml:"app_env"`

	// EnableExport ships spans over OTLP/HTTP. The endpoint is taken from the
	// standard OTEL_EXPORTER_OTLP_* environment variables.
	EnableExport bool `yaml:"enable_export"`
}
