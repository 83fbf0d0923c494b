package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records command execution metrics:
// execution duration (histogram), success/failure counts and failures by domain error kind.
//
// Command names drop their package prefix, so "*commands.PlantCommand" becomes "PlantCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		commandName := ExtractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), err)

		return response, err
	}
}

// ExtractCommandName extracts a clean command name from the request using reflection
// Examples:
//   - "*commands.HarvestCommand" → "HarvestCommand"
//   - "*queries.GetCashFlowQuery" → "GetCashFlowQuery"
func ExtractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")

	parts := strings.Split(fullName, ".")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}

	return fullName
}
