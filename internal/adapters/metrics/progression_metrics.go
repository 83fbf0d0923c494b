package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// ProgressionMetricsCollector handles garden, guild and expedition metrics
type ProgressionMetricsCollector struct {
	// Garden metrics
	plantsTotal   *prometheus.CounterVec
	harvestsTotal *prometheus.CounterVec

	// Guild metrics
	hiresTotal    *prometheus.CounterVec
	upgradesTotal *prometheus.CounterVec
	memberLevel   *prometheus.HistogramVec

	// Expedition metrics
	launchesTotal     *prometheus.CounterVec
	partySize         *prometheus.HistogramVec
	settledTotal      *prometheus.CounterVec
	expeditionXP      *prometheus.CounterVec
	expeditionPayouts *prometheus.CounterVec
}

// NewProgressionMetricsCollector creates a new progression metrics collector
func NewProgressionMetricsCollector() *ProgressionMetricsCollector {
	return &ProgressionMetricsCollector{
		plantsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "plants_total",
				Help:      "Total number of growables planted by kind",
			},
			[]string{"player_id", "kind"},
		),

		harvestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "harvests_total",
				Help:      "Total number of harvests by kind, reward kind and fallback usage",
			},
			[]string{"player_id", "kind", "reward_kind", "fallback"},
		),

		hiresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "guild_hires_total",
				Help:      "Total number of guild members hired by role",
			},
			[]string{"player_id", "role"},
		),

		upgradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "guild_upgrades_total",
				Help:      "Total number of guild member upgrades by role",
			},
			[]string{"player_id", "role"},
		),

		memberLevel: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "guild_member_level",
				Help:      "Level reached by upgraded guild members",
				Buckets:   []float64{2, 3, 5, 8, 13, 21},
			},
			[]string{"role"},
		),

		launchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "expedition_launches_total",
				Help:      "Total number of expeditions launched by definition",
			},
			[]string{"player_id", "definition"},
		),

		partySize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "expedition_party_size",
				Help:      "Number of members sent per expedition",
				Buckets:   []float64{1, 2, 3, 4, 6, 8},
			},
			[]string{"definition"},
		),

		settledTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "expeditions_settled_total",
				Help:      "Total number of expeditions settled by definition",
			},
			[]string{"player_id", "definition"},
		),

		expeditionXP: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "expedition_xp_awarded_total",
				Help:      "Total experience awarded by settled expeditions",
			},
			[]string{"player_id"},
		),

		expeditionPayouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "expedition_currency_awarded_total",
				Help:      "Total currency awarded by settled expeditions",
			},
			[]string{"player_id"},
		),
	}
}

// Register registers all progression metrics with the Prometheus registry
func (c *ProgressionMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.plantsTotal,
		c.harvestsTotal,
		c.hiresTotal,
		c.upgradesTotal,
		c.memberLevel,
		c.launchesTotal,
		c.partySize,
		c.settledTotal,
		c.expeditionXP,
		c.expeditionPayouts,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordPlant records a planted growable
func (c *ProgressionMetricsCollector) RecordPlant(playerID int, kind string) {
	c.plantsTotal.WithLabelValues(strconv.Itoa(playerID), kind).Inc()
}

// RecordHarvest records a harvest and the reward it paid
func (c *ProgressionMetricsCollector) RecordHarvest(playerID int, kind string, rewardKind string, fallback bool) {
	c.harvestsTotal.WithLabelValues(strconv.Itoa(playerID), kind, rewardKind, strconv.FormatBool(fallback)).Inc()
}

// RecordHire records a hired guild member
func (c *ProgressionMetricsCollector) RecordHire(playerID int, role string) {
	c.hiresTotal.WithLabelValues(strconv.Itoa(playerID), role).Inc()
}

// RecordUpgrade records a guild member reaching level
func (c *ProgressionMetricsCollector) RecordUpgrade(playerID int, role string, level int) {
	c.upgradesTotal.WithLabelValues(strconv.Itoa(playerID), role).Inc()
	c.memberLevel.WithLabelValues(role).Observe(float64(level))
}

// RecordExpeditionLaunch records a launched expedition
func (c *ProgressionMetricsCollector) RecordExpeditionLaunch(playerID int, definitionID string, partySize int) {
	c.launchesTotal.WithLabelValues(strconv.Itoa(playerID), definitionID).Inc()
	c.partySize.WithLabelValues(definitionID).Observe(float64(partySize))
}

// RecordExpeditionSettled records a settled expedition and its payout
func (c *ProgressionMetricsCollector) RecordExpeditionSettled(playerID int, definitionID string, xp int, currency int) {
	playerIDStr := strconv.Itoa(playerID)
	c.settledTotal.WithLabelValues(playerIDStr, definitionID).Inc()
	c.expeditionXP.WithLabelValues(playerIDStr).Add(float64(xp))
	c.expeditionPayouts.WithLabelValues(playerIDStr).Add(float64(currency))
}
