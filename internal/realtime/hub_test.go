package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, hub *Hub, projectID uint) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, projectID)
	}))
	t.Cleanup(server.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var welcome Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "connected", welcome.Type)
	return conn
}

func TestHub_BroadcastsToProjectClients(t *testing.T) {
	hub := NewHub(nil)
	watcher := dial(t, hub, 1)
	bystander := dial(t, hub, 2)

	require.Eventually(t, func() bool { return hub.Clients(1) == 1 }, time.Second, 10*time.Millisecond)

	hub.ProjectChanged(1)

	var event Event
	require.NoError(t, watcher.ReadJSON(&event))
	assert.Equal(t, Event{Type: "refresh", Message: "Project data updated", ProjectID: 1}, event)

	require.NoError(t, bystander.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := bystander.ReadMessage()
	assert.Error(t, err)
}

func TestHub_RemovesClosedClients(t *testing.T) {
	hub := NewHub(nil)
	conn := dial(t, hub, 5)
	require.Eventually(t, func() bool { return hub.Clients(5) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients(5) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RejectsUnknownOrigins(t *testing.T) {
	hub := NewHub([]string{"http://localhost:5173"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, 1)
	}))
	defer server.Close()

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
