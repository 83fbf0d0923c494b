package logging

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/sanctuary-go/internal/application/common"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
)

// Middleware puts logger into every request's context and logs each request's outcome.
// Successful queries log at debug so polling does not flood the output.
func Middleware(logger common.OperationLogger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		ctx = common.WithLogger(ctx, logger)

		name := requestName(request)
		start := time.Now()
		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		switch {
		case err != nil:
			metadata["error"] = err.Error()
			logger.Log("WARNING", "request failed", metadata)
		case strings.HasSuffix(name, "Query"):
			logger.Log("DEBUG", "query handled", metadata)
		default:
			logger.Log("INFO", "command handled", metadata)
		}

		return response, err
	}
}

func requestName(request mediator.Request) string {
	if request == nil {
		return "nil"
	}
	t := reflect.TypeOf(request)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
