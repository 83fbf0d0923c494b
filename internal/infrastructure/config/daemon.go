package config

import "time"

// DaemonConfig holds the background reconciler configuration
type DaemonConfig struct {
	// PID file location
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// How often every player's finished expeditions are settled
	ReconcileInterval time.Duration `mapstructure:"reconcile_interval" validate:"required"`

	// Players reconciled per second within one tick
	ReconcileRate float64 `mapstructure:"reconcile_rate" validate:"gt=0"`

	// Burst allowance for the reconcile rate limiter
	ReconcileBurst int `mapstructure:"reconcile_burst" validate:"min=1"`

	// How often cash flow gauges are refreshed
	MetricsPollInterval time.Duration `mapstructure:"metrics_poll_interval"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
