package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables; development only
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string        // default "postgresql"
}

// DefaultDBTracingConfig returns default configuration for database tracing.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingPlugin wraps otelgorm with slow query detection.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// registerAround installs before/after callbacks around every gorm processor.
// After callbacks run ahead of otelgorm's so the query span is still recording.
func registerAround(db *gorm.DB, prefix string, before, after func(*gorm.DB)) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register(prefix+":before_create", before),
		cb.Create().After("gorm:create").Before("otel:after:create").Register(prefix+":after_create", after),
		cb.Query().Before("gorm:query").Register(prefix+":before_query", before),
		cb.Query().After("gorm:query").Before("otel:after:select").Register(prefix+":after_query", after),
		cb.Update().Before("gorm:update").Register(prefix+":before_update", before),
		cb.Update().After("gorm:update").Before("otel:after:update").Register(prefix+":after_update", after),
		cb.Delete().Before("gorm:delete").Register(prefix+":before_delete", before),
		cb.Delete().After("gorm:delete").Before("otel:after:delete").Register(prefix+":after_delete", after),
		cb.Row().Before("gorm:row").Register(prefix+":before_row", before),
		cb.Row().After("gorm:row").Before("otel:after:row").Register(prefix+":after_row", after),
		cb.Raw().Before("gorm:raw").Register(prefix+":before_raw", before),
		cb.Raw().After("gorm:raw").Before("otel:after:raw").Register(prefix+":after_raw", after),
	)
}

// RegisterOtelGorm registers otelgorm and the slow query callbacks on db.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := registerAround(db, "otel_timing", markQueryStart, p.afterQuery); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

func (p *DBTracingPlugin) afterQuery(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if elapsed, ok := queryElapsed(ctx); ok && elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}

type queryStartKey struct{}

func markQueryStart(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, queryStartKey{}, time.Now())
}

func queryElapsed(ctx context.Context) (time.Duration, bool) {
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}
