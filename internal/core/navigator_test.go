package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/Nyssa/internal/eventbus"
	"github.com/Rorical/Nyssa/internal/models"
)

func TestNavigator(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	nav := NewNavigator(eb)

	nav.Home()
	nav.Back()

	assert.Equal(t, eventbus.NavigateEvent{Screen: models.ScreenHome}, <-eb.CoreToUI())
	assert.Equal(t, eventbus.NavigateEvent{Back: true}, <-eb.CoreToUI())
}

func TestNavigator_ClosedBus(t *testing.T) {
	eb := eventbus.NewEventBus()
	eb.Close()

	assert.NotPanics(t, NewNavigator(eb).Home)
}
