// websocket/hub_test.go
package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastReachesRegisteredClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{send: make(chan Event, 1)}
	hub.register <- client

	hub.Broadcast(Event{Type: EventTypeOrderCreated, Message: "New order placed"})

	select {
	case event := <-client.send:
		assert.Equal(t, EventTypeOrderCreated, event.Type)
	case <-time.After(time.Second):
		require.Fail(t, "event was not delivered")
	}

	hub.unregister <- client
	_, open := <-client.send
	assert.False(t, open)
}
