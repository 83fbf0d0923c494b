package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "sanctuary.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "sanctuary"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "sanctuary"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/sanctuary-daemon.pid"
	}
	if cfg.Daemon.ReconcileInterval == 0 {
		cfg.Daemon.ReconcileInterval = 30 * time.Second
	}
	if cfg.Daemon.ReconcileRate == 0 {
		cfg.Daemon.ReconcileRate = 20
	}
	if cfg.Daemon.ReconcileBurst == 0 {
		cfg.Daemon.ReconcileBurst = 5
	}
	if cfg.Daemon.MetricsPollInterval == 0 {
		cfg.Daemon.MetricsPollInterval = time.Minute
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Economy defaults; an explicit 0 in the file is indistinguishable from unset
	if cfg.Economy.HireCost == 0 {
		cfg.Economy.HireCost = 250
	}
	if cfg.Economy.UpgradeBaseCost == 0 {
		cfg.Economy.UpgradeBaseCost = 100
	}
	if cfg.Economy.HarvestFallbackCurrency == 0 {
		cfg.Economy.HarvestFallbackCurrency = 10
	}
	if cfg.Economy.ExpeditionCompletionCurrency == 0 {
		cfg.Economy.ExpeditionCompletionCurrency = 100
	}
}
