package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Output formats understood by NewWithWriter.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatPretty  = "pretty"
)

const unnamed = "default"

// Logger is a zerolog logger bound to the service it reports for.
// Derived loggers share the writer and level of their parent.
type Logger struct {
	zl      zerolog.Logger
	service string
}

// New builds a logger writing to the stream named by cfg.Output.
func New(cfg *Config, serviceName string) *Logger {
	return NewWithWriter(cfg, serviceName, streamFor(cfg.Output))
}

// NewWithWriter builds a logger writing to w. An unparseable level
// falls back to info.
func NewWithWriter(cfg *Config, serviceName string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	base := zerolog.New(w)
	if isConsole(cfg.Format) {
		base = zerolog.New(consoleWriter(w, serviceName, cfg.NoColor))
	}

	ctx := base.Level(level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	if named(serviceName) {
		ctx = ctx.Str("service", serviceName)
	}
	return &Logger{zl: ctx.Logger(), service: serviceName}
}

// NewDefault returns an info-level console logger on stdout.
func NewDefault(serviceName string) *Logger {
	cfg := Config{Level: "info", Format: FormatConsole, Output: "stdout", Timestamp: true}
	return New(&cfg, serviceName)
}

// NewFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT, LOG_NO_COLOR and
// LOG_TIMESTAMP, each falling back to the NewDefault value.
func NewFromEnv(serviceName string) *Logger {
	cfg := Config{
		Level:     envOr("LOG_LEVEL", "info"),
		Format:    envOr("LOG_FORMAT", FormatConsole),
		Output:    envOr("LOG_OUTPUT", "stdout"),
		NoColor:   envOr("LOG_NO_COLOR", "false") == "true",
		Timestamp: envOr("LOG_TIMESTAMP", "true") == "true",
	}
	return New(&cfg, serviceName)
}

// Nop discards every event.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) derive(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl, service: l.service}
}

// WithComponent tags every event with the component field.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.zl.With().Str(FieldComponent, name).Logger())
}

// WithFields attaches fields to every event.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return l.derive(l.zl.With().Fields(fields).Logger())
}

// WithError attaches err to every event.
func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.zl.With().Err(err).Logger())
}

// Service is the name the logger was built for.
func (l *Logger) Service() string { return l.service }

// GetLogger exposes the underlying zerolog logger.
func (l *Logger) GetLogger() zerolog.Logger { return l.zl }

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Error(), msg, fields)
}

// Fatal logs and then exits the process.
func (l *Logger) Fatal(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Fatal(), msg, fields)
}

func emit(e *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, f := range fields {
		e = e.Fields(f)
	}
	e.Msg(msg)
}

var global atomic.Pointer[Logger]

// Init replaces the process-wide logger with one built from cfg.
func Init(cfg Config) {
	cfg.ApplyDefaults()
	name := cfg.ServiceName
	if name == "" {
		name = unnamed
	}
	global.Store(New(&cfg, name))
}

// SetGlobalLogger replaces the process-wide logger. A nil l resets it.
func SetGlobalLogger(l *Logger) { global.Store(l) }

// GetGlobalLogger returns the process-wide logger, creating a default
// one on first use.
func GetGlobalLogger() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, NewDefault(unnamed))
	return global.Load()
}

func Debug(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Debug(msg, fields...) }
func Info(msg string, fields ...map[string]interface{})  { GetGlobalLogger().Info(msg, fields...) }
func Warn(msg string, fields ...map[string]interface{})  { GetGlobalLogger().Warn(msg, fields...) }
func Error(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Error(msg, fields...) }

// WithComponent derives a component logger from the process-wide one.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

func named(service string) bool {
	return service != "" && service != unnamed
}

func isConsole(format string) bool {
	switch strings.ToLower(format) {
	case FormatConsole, FormatPretty:
		return true
	}
	return false
}

func streamFor(output string) io.Writer {
	if strings.EqualFold(output, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
