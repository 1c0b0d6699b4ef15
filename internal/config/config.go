// Package config defines all configuration structures for the LitIntel
// platform.  No I/O or parsing logic lives here — only plain data types and
// validation.  Loading lives in loader.go, defaults in defaults.go.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// LogConfig holds structured-logging tunables.
type LogConfig struct {
	Level            string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string   `mapstructure:"format"` // "json" | "console"
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the case-data
// and snapshot stores.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds the snapshot/opponent-activity cache parameters.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds the analysis event bus parameters.
type KafkaConfig struct {
	Brokers         []string      `mapstructure:"brokers"`
	GroupID         string        `mapstructure:"group_id"`
	AutoOffsetReset string        `mapstructure:"auto_offset_reset"` // "earliest" | "latest"
	ProducerRetries int           `mapstructure:"producer_retries"`
	BatchTimeout    time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	Enabled         bool          `mapstructure:"enabled"`
}

// MinioConfig holds the extracted-text object store parameters.
type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// AnalysisConfig holds the detection thresholds of the strategic analysis
// engine.  All values are whole days unless noted.  The defaults encode the
// standard CPR-derived thresholds; deployments tune them per practice.
type AnalysisConfig struct {
	// SilenceHighDays is the opponent-silence duration that yields a
	// high-severity leverage point.
	SilenceHighDays int `mapstructure:"silence_high_days"`

	// SilenceCriticalDays is the opponent-silence duration that escalates
	// the leverage point to critical.
	SilenceCriticalDays int `mapstructure:"silence_critical_days"`

	// IdealWindowStartDays / IdealWindowEndDays bound the opponent-silence
	// band flagged as the best moment to escalate.
	IdealWindowStartDays int `mapstructure:"ideal_window_start_days"`
	IdealWindowEndDays   int `mapstructure:"ideal_window_end_days"`

	// PreActionOverdueDays is how long a case may run without a pre-action
	// protocol letter before that absence becomes actionable.
	PreActionOverdueDays int `mapstructure:"pre_action_overdue_days"`

	// DeadlineCriticalDays is how many days past due an open deadline must
	// be before it is graded critical.
	DeadlineCriticalDays int `mapstructure:"deadline_critical_days"`

	// DisclosureOverdueDays / DisclosureCriticalDays grade late disclosure
	// after issue.
	DisclosureOverdueDays  int `mapstructure:"disclosure_overdue_days"`
	DisclosureCriticalDays int `mapstructure:"disclosure_critical_days"`

	// TimelineGapDays is the minimum gap between consecutive timeline events
	// that is treated as an evidential weak spot.
	TimelineGapDays int `mapstructure:"timeline_gap_days"`

	// ChronologyMinEvents is the timeline size above which a missing
	// chronology document becomes a compliance issue.
	ChronologyMinEvents int `mapstructure:"chronology_min_events"`

	// DefendantMargin is how far the defendant lexicon score must exceed the
	// claimant score before the role classifier abandons the claimant default.
	DefendantMargin int `mapstructure:"defendant_margin"`

	// MeritsContextRadius is the character window around a lexicon hit that
	// must contain a confirming term before a merits sub-score counts it.
	MeritsContextRadius int `mapstructure:"merits_context_radius"`

	// MeritsStrongThreshold is the substantive-merits total at or above which
	// a claimant clinical-negligence case is forced to strong momentum when
	// no non-administrative negative factor exists.
	MeritsStrongThreshold int `mapstructure:"merits_strong_threshold"`

	// RulesPath optionally points at a YAML rule-table file overriding the
	// compiled-in lexicons.  Empty means use defaults.
	RulesPath string `mapstructure:"rules_path"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Top-level Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object for all LitIntel binaries.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Minio    MinioConfig    `mapstructure:"minio"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

// Validate checks cross-field consistency.  It is called by the loader after
// defaults have been applied, so zero values that have defaults never reach it.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug|info|warn|error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}

	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port out of range: %d", c.Database.Port)
	}
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) below min_conns (%d)",
			c.Database.MaxConns, c.Database.MinConns)
	}

	return c.Analysis.Validate()
}

// Validate checks the analysis thresholds for internal consistency.
func (a *AnalysisConfig) Validate() error {
	if a.SilenceHighDays <= 0 || a.SilenceCriticalDays <= a.SilenceHighDays {
		return fmt.Errorf("analysis silence thresholds must satisfy 0 < high (%d) < critical (%d)",
			a.SilenceHighDays, a.SilenceCriticalDays)
	}
	if a.IdealWindowStartDays <= 0 || a.IdealWindowEndDays < a.IdealWindowStartDays {
		return fmt.Errorf("analysis ideal window [%d,%d] is malformed",
			a.IdealWindowStartDays, a.IdealWindowEndDays)
	}
	if a.DisclosureCriticalDays <= a.DisclosureOverdueDays {
		return fmt.Errorf("analysis disclosure thresholds must satisfy overdue (%d) < critical (%d)",
			a.DisclosureOverdueDays, a.DisclosureCriticalDays)
	}
	if a.TimelineGapDays <= 0 {
		return fmt.Errorf("analysis.timeline_gap_days must be positive, got %d", a.TimelineGapDays)
	}
	if a.DefendantMargin < 0 {
		return fmt.Errorf("analysis.defendant_margin must be non-negative, got %d", a.DefendantMargin)
	}
	if a.MeritsContextRadius <= 0 {
		return fmt.Errorf("analysis.merits_context_radius must be positive, got %d", a.MeritsContextRadius)
	}
	return nil
}
