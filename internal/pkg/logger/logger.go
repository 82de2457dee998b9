package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps zap with optional file output and New Relic log
// forwarding.
type ZapLogger struct {
	*zap.Logger
	nrApp *newrelic.Application
	file  *os.File
}

// InitZapLoggerFromConfig builds the application logger from config.
// When a file path is configured logs go to both console and file; when
// New Relic is enabled entries are also forwarded as log events.
func InitZapLoggerFromConfig(cfg *models.Config, nrApp *newrelic.Application) (*ZapLogger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Logger.Level); err != nil {
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(os.Stdout), level),
	}

	l := &ZapLogger{nrApp: nrApp}

	if cfg.Logger.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logger.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.Logger.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), level))
	}

	if nrApp != nil {
		cores = append(cores, &newRelicCore{level: level, nrApp: nrApp, service: cfg.App.Name})
	}

	l.Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return l, nil
}

// Close flushes buffered entries and releases the log file, if any.
func (l *ZapLogger) Close() {
	_ = l.Sync()
	if l.file != nil {
		_ = l.file.Close()
	}
}

// newRelicCore is a zapcore.Core that forwards entries to New Relic.
type newRelicCore struct {
	level   zapcore.Level
	nrApp   *newrelic.Application
	service string
}

func (c *newRelicCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level)
}

func (c *newRelicCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	return &clone
}

func (c *newRelicCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *newRelicCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if c.nrApp == nil {
		return nil
	}

	encoder := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(encoder)
	}
	attrs := encoder.Fields
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["service"] = c.service

	c.nrApp.RecordLog(newrelic.LogData{
		Timestamp:  entry.Time.UnixMilli(),
		Message:    entry.Message,
		Severity:   entry.Level.String(),
		Attributes: attrs,
	})
	return nil
}

func (c *newRelicCore) Sync() error {
	return nil
}
