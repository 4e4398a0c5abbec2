package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/Nyssa/internal/eventbus"
)

func TestPromptBroker_ShowAndRespond(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	pb := NewPromptBroker(eb)

	var pressed []string
	require.NoError(t, pb.Show("Title", "Body", []string{"OK", "Later"}, func(b string) {
		pressed = append(pressed, b)
	}))

	event := (<-eb.CoreToUI()).(eventbus.PromptRequestEvent)
	assert.NotEmpty(t, event.Prompt.ID)
	assert.Equal(t, "Title", event.Prompt.Title)
	assert.Equal(t, []string{"OK", "Later"}, event.Prompt.Buttons)
	assert.Equal(t, 1, pb.Pending())

	pb.Respond(eventbus.PromptResponseEvent{ID: event.Prompt.ID, Button: "Later"})
	pb.Respond(eventbus.PromptResponseEvent{ID: event.Prompt.ID, Button: "OK"})

	assert.Equal(t, []string{"Later"}, pressed)
	assert.Equal(t, 0, pb.Pending())
}

func TestPromptBroker_Notify(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	pb := NewPromptBroker(eb)

	pb.Notify("Error", "Message cannot be empty")

	event := (<-eb.CoreToUI()).(eventbus.PromptRequestEvent)
	assert.Equal(t, []string{"OK"}, event.Prompt.Buttons)
	assert.Equal(t, "Message cannot be empty", event.Prompt.Message)

	pb.Respond(eventbus.PromptResponseEvent{ID: event.Prompt.ID, Button: "OK"})
	assert.Equal(t, 0, pb.Pending())
}

func TestPromptBroker_ClosedBus(t *testing.T) {
	eb := eventbus.NewEventBus()
	eb.Close()
	pb := NewPromptBroker(eb)

	assert.ErrorIs(t, pb.Show("t", "m", nil, nil), eventbus.ErrBusClosed)
	assert.Equal(t, 0, pb.Pending())
}
