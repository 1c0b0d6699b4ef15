package config

import "time"

// ApplyDefaults fills every unset field of cfg with its platform default.
// Called by the loader between unmarshalling and validation; safe to call on
// a partially-populated Config.
func ApplyDefaults(cfg *Config) {
	// Logging
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stdout"}
	}
	if len(cfg.Log.ErrorOutputPaths) == 0 {
		cfg.Log.ErrorOutputPaths = []string{"stderr"}
	}

	// Database
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "litintel"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.MinConns == 0 {
		cfg.Database.MinConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30 * time.Minute
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = "internal/infrastructure/database/postgres/migrations"
	}

	// Redis
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = 15 * time.Minute
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "litintel:"
	}

	// Kafka
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{"localhost:9092"}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "litintel-workers"
	}
	if cfg.Kafka.AutoOffsetReset == "" {
		cfg.Kafka.AutoOffsetReset = "earliest"
	}
	if cfg.Kafka.ProducerRetries == 0 {
		cfg.Kafka.ProducerRetries = 3
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = time.Second
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = 10 * time.Second
	}

	// MinIO
	if cfg.Minio.Endpoint == "" {
		cfg.Minio.Endpoint = "localhost:9000"
	}
	if cfg.Minio.Bucket == "" {
		cfg.Minio.Bucket = "litintel-extracted-text"
	}

	// Metrics
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "litintel"
	}

	applyAnalysisDefaults(&cfg.Analysis)
}

// applyAnalysisDefaults fills the detection thresholds with the standard
// CPR-derived values the engine was designed around.
func applyAnalysisDefaults(a *AnalysisConfig) {
	if a.SilenceHighDays == 0 {
		a.SilenceHighDays = 21
	}
	if a.SilenceCriticalDays == 0 {
		a.SilenceCriticalDays = 42
	}
	if a.IdealWindowStartDays == 0 {
		a.IdealWindowStartDays = 21
	}
	if a.IdealWindowEndDays == 0 {
		a.IdealWindowEndDays = 28
	}
	if a.PreActionOverdueDays == 0 {
		a.PreActionOverdueDays = 30
	}
	if a.DeadlineCriticalDays == 0 {
		a.DeadlineCriticalDays = 14
	}
	if a.DisclosureOverdueDays == 0 {
		a.DisclosureOverdueDays = 28
	}
	if a.DisclosureCriticalDays == 0 {
		a.DisclosureCriticalDays = 56
	}
	if a.TimelineGapDays == 0 {
		a.TimelineGapDays = 90
	}
	if a.ChronologyMinEvents == 0 {
		a.ChronologyMinEvents = 5
	}
	if a.DefendantMargin == 0 {
		a.DefendantMargin = 2
	}
	if a.MeritsContextRadius == 0 {
		a.MeritsContextRadius = 120
	}
	if a.MeritsStrongThreshold == 0 {
		a.MeritsStrongThreshold = 50
	}
}

// DefaultAnalysis returns an AnalysisConfig populated entirely with defaults.
// The analysis packages use this in tests and when no Config is injected.
func DefaultAnalysis() AnalysisConfig {
	var a AnalysisConfig
	applyAnalysisDefaults(&a)
	return a
}
