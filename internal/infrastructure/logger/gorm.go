package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

var _ gormlogger.Interface = (*GormLogger)(nil)

// GormLogger routes GORM statements into the zap logger, tagged with the
// request and trace ids found on the statement context.
type GormLogger struct {
	logger         *zap.Logger
	level          gormlogger.LogLevel
	slowThreshold  time.Duration
	logNotFoundErr bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which statements log at warn.
// Zero disables slow query reporting.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowThreshold = threshold }
}

// WithIgnoreRecordNotFoundError controls whether gorm.ErrRecordNotFound is
// logged. Lookups of unknown vendors or orders are normal traffic, so it is
// ignored unless set to false.
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(l *GormLogger) { l.logNotFoundErr = !ignore }
}

// NewGormLogger creates a GORM logger under the "gorm" name
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	gl := &GormLogger{
		logger:        zapLogger.Named("gorm"),
		level:         level,
		slowThreshold: defaultSlowQueryThreshold,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode returns a copy at the given level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, min gormlogger.LogLevel, lvl zapcore.Level, msg string, data []any) {
	if l.level < min {
		return
	}
	if ce := l.logger.Check(lvl, fmt.Sprintf(msg, data...)); ce != nil {
		ce.Write(contextFields(ctx)...)
	}
}

// Trace logs one statement: failures at error, slow statements at warn,
// everything else at debug when the level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && (l.logNotFoundErr || !errors.Is(err, gormlogger.ErrRecordNotFound))
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		lvl zapcore.Level
		msg string
	)
	switch {
	case failed && l.level >= gormlogger.Error:
		lvl, msg = zapcore.ErrorLevel, "query failed"
	case err == nil && slow && l.level >= gormlogger.Warn:
		lvl, msg = zapcore.WarnLevel, "slow query"
	case err == nil && l.level >= gormlogger.Info:
		lvl, msg = zapcore.DebugLevel, "query"
	default:
		return
	}

	ce := l.logger.Check(lvl, msg)
	if ce == nil {
		return
	}
	sql, rows := fc()
	fields := append(contextFields(ctx),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	)
	if failed {
		fields = append(fields, zap.Error(err))
	}
	if msg == "slow query" {
		fields = append(fields, zap.Duration("threshold", l.slowThreshold))
	}
	ce.Write(fields...)
}

func contextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 5)
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := GetTraceID(ctx); id != "" {
		fields = append(fields, zap.String("trace_id", id))
	}
	return fields
}

// MapGormLogLevel maps the application log level onto GORM's levels.
// Unknown values map to Warn.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
