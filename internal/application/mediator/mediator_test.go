package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
)

type pingCommand struct {
	Value string
}

type pingHandler struct {
	calls int
}

func (h *pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	h.calls++
	cmd := request.(*pingCommand)
	return "pong:" + cmd.Value, nil
}

func TestSend_DispatchesToRegisteredHandler(t *testing.T) {
	m := mediator.NewMediator()
	h := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, h))

	resp, err := m.Send(context.Background(), &pingCommand{Value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", resp)
	assert.Equal(t, 1, h.calls)
}

func TestSend_UnregisteredType(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &pingCommand{})

	assert.ErrorContains(t, err, "no handler registered")
}

func TestSend_NilRequest(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), nil)

	assert.Error(t, err)
}

func TestRegister_RejectsDuplicate(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))

	err := mediator.RegisterHandler[*pingCommand](m, &pingHandler{})

	assert.ErrorContains(t, err, "already registered")
}

func TestMiddleware_RunsInRegistrationOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, &pingHandler{}))

	var order []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, req mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name+":before")
			resp, err := next(ctx, req)
			order = append(order, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	_, err := m.Send(context.Background(), &pingCommand{})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestMiddleware_CanShortCircuit(t *testing.T) {
	m := mediator.NewMediator()
	h := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingCommand](m, h))
	denied := errors.New("denied")
	m.RegisterMiddleware(func(ctx context.Context, req mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, denied
	})

	_, err := m.Send(context.Background(), &pingCommand{})

	assert.ErrorIs(t, err, denied)
	assert.Zero(t, h.calls)
}
