// Package logger configures the application's logging, monitoring, and
// observability.
//
// It uses zerolog for structured logging and optionally integrates with
// New Relic, forwarding logs and exposing the agent application so other
// packages (database tracing, redis hooks, echo middleware) can instrument
// themselves. When no license key is configured every integration degrades
// to a no-op.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/shieldsupport/backend/internal/config"
)

// LoggerService wraps the optional New Relic application instance.
// A nil receiver or nil application is valid and means "agent disabled".
type LoggerService struct {
	app *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.app
}

// Shutdown flushes and stops the agent, waiting at most timeout.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s == nil || s.app == nil {
		return
	}
	s.app.Shutdown(timeout)
}

// New builds the application logger and, when configured, the New Relic
// agent.
//
// Output format follows Observability.Logging.Format: "console" writes a
// human-friendly stream to stderr, anything else writes JSON to stdout.
// With the agent enabled and log forwarding on, log lines are decorated and
// shipped through the zerologWriter integration.
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	service := &LoggerService{}
	if cfg.Observability.NewRelic.LicenseKey != "" {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(cfg.Observability.NewRelic.LicenseKey),
			newrelic.ConfigAppLogForwardingEnabled(cfg.Observability.NewRelic.AppLogForwardingEnabled),
			newrelic.ConfigDistributedTracerEnabled(cfg.Observability.NewRelic.DistributedTracingEnabled),
			func(c *newrelic.Config) {
				if cfg.Observability.NewRelic.DebugLogging {
					c.Logger = newrelic.NewDebugLogger(os.Stderr)
				}
			},
		)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing new relic application: %w", err)
		}
		service.app = app
	}

	var log zerolog.Logger
	switch {
	case cfg.Observability.Logging.Format == "console":
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	case service.app != nil && cfg.Observability.NewRelic.AppLogForwardingEnabled:
		w := zerologWriter.New(os.Stdout, service.app)
		log = zerolog.New(w)
	default:
		log = zerolog.New(os.Stdout)
	}

	log = log.Level(level).With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &log, service, nil
}

// WithTraceContext attaches New Relic trace correlation fields to a logger.
func WithTraceContext(log zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return log
	}
	md := txn.GetTraceMetadata()
	return log.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger returns the logger used by the pgx tracelog adapter for SQL
// statement logging in the local environment.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps a zerolog level onto pgx tracelog levels
// (1=error, 2=warn, 3=info, 4=debug, 6=trace).
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return 6
	case zerolog.DebugLevel:
		return 4
	case zerolog.InfoLevel:
		return 3
	case zerolog.WarnLevel:
		return 2
	default:
		return 1
	}
}
