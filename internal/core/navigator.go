package core

import (
	"github.com/Rorical/Nyssa/internal/eventbus"
	"github.com/Rorical/Nyssa/internal/logger"
	"github.com/Rorical/Nyssa/internal/models"
)

// Navigator asks the UI to change screens.
type Navigator struct {
	eventBus *eventbus.EventBus
}

func NewNavigator(eb *eventbus.EventBus) *Navigator {
	return &Navigator{eventBus: eb}
}

func (n *Navigator) Home() {
	n.send(eventbus.NavigateEvent{Screen: models.ScreenHome})
}

func (n *Navigator) Back() {
	n.send(eventbus.NavigateEvent{Back: true})
}

func (n *Navigator) send(event eventbus.NavigateEvent) {
	if err := n.eventBus.SendToUI(event); err != nil {
		logger.Error("failed to navigate", "screen", event.Screen, "back", event.Back, "error", err)
	}
}
