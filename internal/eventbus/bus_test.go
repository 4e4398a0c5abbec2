package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/Nyssa/internal/models"
)

func TestEventBus_RoundTrip(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(SendMessageEvent{Message: "hi"}))
	require.NoError(t, eb.SendToUI(NavigateEvent{Screen: models.ScreenHome}))

	assert.Equal(t, SendMessageEvent{Message: "hi"}, <-eb.UIToCore())
	assert.Equal(t, NavigateEvent{Screen: models.ScreenHome}, <-eb.CoreToUI())
}

func TestEventBus_FullChannelOpensBreaker(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	for i := 0; i < 100; i++ {
		require.NoError(t, eb.SendToUI(AlertStateEvent{State: models.AlertArmed}))
	}
	for i := 0; i < 5; i++ {
		assert.Error(t, eb.SendToUI(AlertStateEvent{State: models.AlertArmed}))
	}

	assert.Equal(t, CircuitOpen, eb.GetCircuitBreakerState())
	assert.Len(t, reported, 5)
	assert.Equal(t, "SendToUI", reported[0].Operation)

	err := eb.SendToCore(SendMessageEvent{Message: "x"})
	assert.EqualError(t, err, "circuit breaker is open")
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)
	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	time.Sleep(20 * time.Millisecond)
	assert.False(t, cb.IsOpen())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestEventBus_SendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	assert.ErrorIs(t, eb.SendToUI(NavigateEvent{Back: true}), ErrBusClosed)
	assert.ErrorIs(t, eb.SendToCore(ScreenEvent{Screen: models.ScreenChat}), ErrBusClosed)
}

func TestEventBusError_Error(t *testing.T) {
	err := EventBusError{Operation: "SendToUI", Err: assert.AnError}
	assert.Equal(t, "SendToUI: "+assert.AnError.Error(), err.Error())
}
