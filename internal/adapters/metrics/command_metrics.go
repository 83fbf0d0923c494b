package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// Outcome labels. Every failed request is counted under "error" in commands_total
// and under one of the kinds below in command_failures_total.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"

	KindUnknownDefinition = "unknown_definition"
	KindNotPlantable      = "not_plantable"
	KindNotOwned          = "not_owned"
	KindInsufficientItems = "insufficient_quantity"
	KindInsufficientFunds = "insufficient_funds"
	KindGrowableNotFound  = "growable_not_found"
	KindUnknownMember     = "unknown_member"
	KindMemberBusy        = "member_busy"
	KindEmptyParty        = "empty_party"
	KindTransactionFailed = "transaction_failed"
	KindValidation        = "validation"
	KindPlayerNotFound    = "player_not_found"
	KindInternal          = "internal"
)

// CommandMetricsCollector tracks mediator requests: latency and outcome per request
// type, and engine failures broken down by domain error kind
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
	failuresTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		// engine operations are one load and one commit, so sub-millisecond buckets matter
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Mediator request duration by request type and outcome",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
			},
			[]string{"command", "status"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Mediator requests by request type and outcome",
			},
			[]string{"command", "status"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_failures_total",
				Help:      "Failed mediator requests by request type and domain error kind",
			},
			[]string{"command", "kind"},
		),
	}
}

// Register registers all command metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, metric := range []prometheus.Collector{c.commandDuration, c.commandsTotal, c.failuresTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommandExecution records one mediator request; a non-nil err is also
// counted under its domain error kind
func (c *CommandMetricsCollector) RecordCommandExecution(commandName string, duration float64, err error) {
	status := outcomeSuccess
	if err != nil {
		status = outcomeError
		c.failuresTotal.WithLabelValues(commandName, ErrorKind(err)).Inc()
	}

	c.commandDuration.WithLabelValues(commandName, status).Observe(duration)
	c.commandsTotal.WithLabelValues(commandName, status).Inc()
}

// ErrorKind maps an error returned through the mediator to a bounded label value.
// NotOwnedError wraps InsufficientQuantityError, so it is checked first.
func ErrorKind(err error) string {
	var (
		unknownDefinition *shared.UnknownDefinitionError
		notPlantable      *shared.NotPlantableError
		notOwned          *shared.NotOwnedError
		insufficientItems *shared.InsufficientQuantityError
		insufficientFunds *shared.InsufficientFundsError
		growableNotFound  *shared.GrowableNotFoundError
		unknownMember     *shared.UnknownMemberError
		memberBusy        *shared.MemberBusyError
		emptyParty        *shared.EmptyPartyError
		transactionFailed *shared.TransactionFailedError
		validation        *shared.ValidationError
		playerNotFound    *player.NotFoundError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &notOwned):
		return KindNotOwned
	case errors.As(err, &unknownDefinition):
		return KindUnknownDefinition
	case errors.As(err, &notPlantable):
		return KindNotPlantable
	case errors.As(err, &insufficientItems):
		return KindInsufficientItems
	case errors.As(err, &insufficientFunds):
		return KindInsufficientFunds
	case errors.As(err, &growableNotFound):
		return KindGrowableNotFound
	case errors.As(err, &unknownMember):
		return KindUnknownMember
	case errors.As(err, &memberBusy):
		return KindMemberBusy
	case errors.As(err, &emptyParty):
		return KindEmptyParty
	case errors.As(err, &transactionFailed):
		return KindTransactionFailed
	case errors.As(err, &validation):
		return KindValidation
	case errors.As(err, &playerNotFound):
		return KindPlayerNotFound
	default:
		return KindInternal
	}
}
