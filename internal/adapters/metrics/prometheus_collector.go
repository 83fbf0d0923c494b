package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "sanctuary"
	// Subsystem for engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalProgressionCollector is the singleton progression metrics collector
	// Set by SetGlobalProgressionCollector() when metrics are enabled
	globalProgressionCollector ProgressionMetricsRecorder

	// globalFinancialCollector is the singleton financial metrics collector
	// Set by SetGlobalFinancialCollector() when metrics are enabled
	globalFinancialCollector FinancialMetricsRecorder
)

// ProgressionMetricsRecorder defines the interface for recording gameplay events
// This interface is used by application handlers to record metrics
type ProgressionMetricsRecorder interface {
	RecordPlant(playerID int, kind string)
	RecordHarvest(playerID int, kind string, rewardKind string, fallback bool)
	RecordHire(playerID int, role string)
	RecordUpgrade(playerID int, role string, level int)
	RecordExpeditionLaunch(playerID int, definitionID string, partySize int)
	RecordExpeditionSettled(playerID int, definitionID string, xp int, currency int)
}

// FinancialMetricsRecorder defines the interface for recording currency metrics
type FinancialMetricsRecorder interface {
	RecordTransaction(playerID int, playerName string, transactionType string, category string, amount int, balance int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalProgressionCollector sets the global progression metrics collector
func SetGlobalProgressionCollector(collector ProgressionMetricsRecorder) {
	globalProgressionCollector = collector
}

// RecordPlant records a planted growable globally
func RecordPlant(playerID int, kind string) {
	if globalProgressionCollector != nil {
		globalProgressionCollector.RecordPlant(playerID, kind)
	}
}

// RecordHarvest records a harvested growable globally
func RecordHarvest(playerID int, kind string, rewardKind string, fallback bool) {
	if globalProgressionCollector != nil {
		globalProgressionCollector.RecordHarvest(playerID, kind, rewardKind, fallback)
	}
}

// RecordHire records a hired guild member globally
func RecordHire(playerID int, role string) {
	if globalProgressionCollector != nil {
		globalProgressionCollector.RecordHire(playerID, role)
	}
}

// RecordUpgrade records a guild member upgrade globally
func RecordUpgrade(playerID int, role string, level int) {
	if globalProgressionCollector != nil {
		globalProgressionCollector.RecordUpgrade(playerID, role, level)
	}
}

// RecordExpeditionLaunch records a launched expedition globally
func RecordExpeditionLaunch(playerID int, definitionID string, partySize int) {
	if globalProgressionCollector != nil {
		globalProgressionCollector.RecordExpeditionLaunch(playerID, definitionID, partySize)
	}
}

// RecordExpeditionSettled records a settled expedition globally
func RecordExpeditionSettled(playerID int, definitionID string, xp int, currency int) {
	if globalProgressionCollector != nil {
		globalProgressionCollector.RecordExpeditionSettled(playerID, definitionID, xp, currency)
	}
}

// SetGlobalFinancialCollector sets the global financial metrics collector
func SetGlobalFinancialCollector(collector FinancialMetricsRecorder) {
	globalFinancialCollector = collector
}

// RecordTransaction records a currency transaction globally
func RecordTransaction(playerID int, playerName string, transactionType string, category string, amount int, balance int) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordTransaction(playerID, playerName, transactionType, category, amount, balance)
	}
}
