package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

type plantCommand struct{}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "plantCommand", ExtractCommandName(&plantCommand{}))
	assert.Equal(t, "UnknownCommand", ExtractCommandName(nil))
}

func TestPrometheusMiddleware_RecordsStatus(t *testing.T) {
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)

	ok := func(ctx context.Context, req mediator.Request) (mediator.Response, error) { return "ok", nil }
	fail := func(ctx context.Context, req mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }

	_, err := mw(context.Background(), &plantCommand{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &plantCommand{}, fail)
	require.Error(t, err)

	assert.Equal(t, 1.0, counterValue(t, collector.commandsTotal.WithLabelValues("plantCommand", "success")))
	assert.Equal(t, 1.0, counterValue(t, collector.commandsTotal.WithLabelValues("plantCommand", "error")))
	assert.Equal(t, 1.0, counterValue(t, collector.failuresTotal.WithLabelValues("plantCommand", KindInternal)))
}

func TestPrometheusMiddleware_CountsFailuresByDomainKind(t *testing.T) {
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)
	broke := func(ctx context.Context, req mediator.Request) (mediator.Response, error) {
		return nil, fmt.Errorf("failed to hire guild member: %w", shared.NewInsufficientFundsError(250, 40))
	}

	for i := 0; i < 2; i++ {
		_, err := mw(context.Background(), &plantCommand{}, broke)
		require.Error(t, err)
	}

	assert.Equal(t, 2.0, counterValue(t, collector.failuresTotal.WithLabelValues("plantCommand", KindInsufficientFunds)))
	assert.Equal(t, 0.0, counterValue(t, collector.failuresTotal.WithLabelValues("plantCommand", KindInternal)))
}

func TestErrorKind(t *testing.T) {
	shortage := shared.NewInsufficientQuantityError("wheat", 1, 0)

	assert.Equal(t, "", ErrorKind(nil))
	assert.Equal(t, KindNotOwned, ErrorKind(shared.NewNotOwnedError("wheat", shortage)))
	assert.Equal(t, KindInsufficientItems, ErrorKind(shortage))
	assert.Equal(t, KindEmptyParty, ErrorKind(fmt.Errorf("launch: %w", shared.NewEmptyPartyError("E1"))))
	assert.Equal(t, KindTransactionFailed, ErrorKind(shared.NewTransactionFailedError("commit", errors.New("disk full"))))
	assert.Equal(t, KindPlayerNotFound, ErrorKind(&player.NotFoundError{Key: "ghost"}))
	assert.Equal(t, KindInternal, ErrorKind(errors.New("boom")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := PrometheusMiddleware(nil)

	resp, err := mw(context.Background(), &plantCommand{}, func(ctx context.Context, req mediator.Request) (mediator.Response, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestGlobalRecorders_NoopWithoutCollector(t *testing.T) {
	SetGlobalProgressionCollector(nil)
	SetGlobalFinancialCollector(nil)

	assert.NotPanics(t, func() {
		RecordPlant(1, "SEED")
		RecordTransaction(1, "wren", "HIRE_GUILD_MEMBER", "GUILD_INVESTMENTS", -250, 50)
	})
}

func TestProgressionCollector_RecordsSettlement(t *testing.T) {
	InitRegistry()
	defer func() { Registry = nil }()

	c := NewProgressionMetricsCollector()
	require.NoError(t, c.Register())
	SetGlobalProgressionCollector(c)
	defer SetGlobalProgressionCollector(nil)

	RecordExpeditionSettled(7, "E1", 30, 100)
	RecordExpeditionSettled(7, "E1", 30, 100)

	assert.Equal(t, 2.0, counterValue(t, c.settledTotal.WithLabelValues("7", "E1")))
	assert.Equal(t, 60.0, counterValue(t, c.expeditionXP.WithLabelValues("7")))
	assert.Equal(t, 200.0, counterValue(t, c.expeditionPayouts.WithLabelValues("7")))
}
