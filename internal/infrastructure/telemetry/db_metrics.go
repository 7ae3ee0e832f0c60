package telemetry

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetricsConfig holds configuration for database metrics collection.
type DBMetricsConfig struct {
	Enabled            bool
	SlowQueryThreshold time.Duration // default 200ms
}

// DBMetrics records query counts, latency and connection pool usage.
type DBMetrics struct {
	queryTotal     *Counter
	queryDuration  *Histogram
	slowQueryTotal *Counter
	registration   metric.Registration
	config         DBMetricsConfig
}

// NewDBMetrics creates the query instruments and, when sqlDB is set, observable pool gauges.
func NewDBMetrics(meter metric.Meter, sqlDB *sql.DB, cfg DBMetricsConfig) (*DBMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}

	m := &DBMetrics{config: cfg}
	var err error

	if m.queryTotal, err = NewCounter(meter, "db_query_total", "Database queries by operation", "{query}"); err != nil {
		return nil, err
	}
	if m.slowQueryTotal, err = NewCounter(meter, "db_slow_query_total", "Database queries slower than the threshold", "{query}"); err != nil {
		return nil, err
	}
	m.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	if sqlDB != nil {
		if err := m.observePool(meter, sqlDB); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *DBMetrics) observePool(meter metric.Meter, sqlDB *sql.DB) error {
	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return err
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return err
	}

	m.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		return nil
	}, connections, maxOpen)
	return err
}

// RecordQuery records one completed query.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}

	m.queryTotal.Inc(ctx, AttrDBOperation.String(operation))
	m.queryDuration.RecordDuration(ctx, duration, AttrDBOperation.String(operation))

	if duration > m.config.SlowQueryThreshold {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	}
}

// Stop unregisters the pool callback.
func (m *DBMetrics) Stop() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}

// Register installs query callbacks on db.
func (m *DBMetrics) Register(db *gorm.DB) error {
	return registerAround(db, "db_metrics", markQueryStart, func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		elapsed, ok := queryElapsed(ctx)
		if !ok {
			return
		}
		m.RecordQuery(ctx, detectOperationType(db.Statement.SQL.String()), db.Statement.Table, elapsed)
	})
}

// RegisterDBMetrics wires pool and query metrics for db when metrics are enabled.
func RegisterDBMetrics(db *gorm.DB, meterProvider *MeterProvider, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if !cfg.Enabled || meterProvider == nil || !meterProvider.IsEnabled() {
		logger.Debug("Database metrics disabled, skipping registration")
		return nil, nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	metrics, err := NewDBMetrics(meterProvider.Meter("db.client"), sqlDB, cfg)
	if err != nil {
		return nil, err
	}
	if err := metrics.Register(db); err != nil {
		return nil, err
	}

	logger.Info("Database metrics registered", zap.Duration("slow_query_threshold", metrics.config.SlowQueryThreshold))
	return metrics, nil
}

func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}
