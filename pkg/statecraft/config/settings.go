package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/randalmurphal/statecraft/pkg/statecraft/observability"
)

// Settings holds process-level statecraft settings.
type Settings struct {
	LogLevel       string `env:"STATECRAFT_LOG_LEVEL"       envDefault:"info"`
	LogFormat      string `env:"STATECRAFT_LOG_FORMAT"      envDefault:"text"`
	MetricsEnabled bool   `env:"STATECRAFT_METRICS_ENABLED" envDefault:"false"`
	TracingEnabled bool   `env:"STATECRAFT_TRACING_ENABLED" envDefault:"false"`
	Manifest       string `env:"STATECRAFT_MANIFEST"`
}

// LoadSettings reads Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, s.Validate()
}

// LoadSettingsFrom reads Settings from the given environment instead of the
// process environment.
func LoadSettingsFrom(environ map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, s.Validate()
}

// Validate reports unsupported level or format values.
func (s Settings) Validate() error {
	if _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("config: unsupported log format %q", s.LogFormat)
	}
}

// Level returns the configured slog level, or Info when it does not parse.
func (s Settings) Level() slog.Level {
	l, err := parseLevel(s.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: unsupported log level %q", s)
	}
	return l, nil
}

// Logger builds a slog logger writing to w in the configured format and level.
func (s Settings) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: s.Level()}
	if strings.EqualFold(s.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Metrics returns an OpenTelemetry recorder when metrics are enabled.
func (s Settings) Metrics() observability.MetricsRecorder {
	if s.MetricsEnabled {
		return observability.NewMetricsRecorder()
	}
	return observability.NoopMetrics{}
}

// Spans returns an OpenTelemetry span manager when tracing is enabled.
func (s Settings) Spans() observability.SpanManager {
	if s.TracingEnabled {
		return observability.NewSpanManager()
	}
	return observability.NoopSpanManager{}
}
