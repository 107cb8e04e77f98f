package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/utils"
)

func TestHubBroadcastsEvents(t *testing.T) {
	utils.InitLogger("error")
	hub := NewHub("http://localhost:3000")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := hub.Upgrade(w, r, "user-1")
		if err != nil {
			return
		}
		hub.Listen(conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	event := services.NewEvent(services.EventReservationCreated, map[string]string{"customerName": "Ana"})
	require.NoError(t, hub.Publish(context.Background(), event))

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]interface{}
	require.NoError(t, client.ReadJSON(&got))
	assert.Equal(t, "reservation.created", got["event"])
	assert.Equal(t, map[string]interface{}{"customerName": "Ana"}, got["data"])

	client.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubRejectsForeignOrigin(t *testing.T) {
	hub := NewHub("http://localhost:3000")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if conn, err := hub.Upgrade(w, r, "user-1"); err == nil {
			hub.Listen(conn)
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHubAcceptsEveryListedOrigin(t *testing.T) {
	hub := NewHub("http://localhost:3000", "https://admin.example.com")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if conn, err := hub.Upgrade(w, r, "user-1"); err == nil {
			hub.Listen(conn)
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"https://admin.example.com"}})
	require.NoError(t, err)
	defer client.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
}
