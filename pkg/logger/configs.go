package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Warn    = "warn"
	Error   = "error"
)

type Config struct {
	// debug, info, warning (or warn), error. Anything else selects info.
	Level string `yaml:"level"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name"`
}
