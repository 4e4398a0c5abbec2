package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/Nyssa/internal/eventbus"
	"github.com/Rorical/Nyssa/internal/models"
	"github.com/Rorical/Nyssa/internal/update"
)

func TestListenForCoreEvents(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb)

	require.NoError(t, eb.SendToUI(eventbus.NavigateEvent{Screen: models.ScreenHome}))

	msg := ed.ListenForCoreEvents()()
	coreMsg, ok := msg.(update.CoreEventMsg)
	require.True(t, ok)
	assert.Equal(t, eventbus.NavigateEvent{Screen: models.ScreenHome}, coreMsg.Event)
}

func TestListenForCoreEvents_Stopped(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb)

	ed.Stop()

	assert.Nil(t, ed.ListenForCoreEvents()())
}

func TestListenForCoreEvents_ClosedBus(t *testing.T) {
	eb := eventbus.NewEventBus()
	ed := NewEventDispatcher(eb)

	eb.Close()

	assert.Nil(t, ed.ListenForCoreEvents()())
}
