package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tonobo/battlesnake-lookahead/internal/engine"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, strings.TrimPrefix(r.URL.Path, "/"))
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/" + gameID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// publishUntilRead keeps publishing until conn receives something, since
// registration finishes asynchronously after the handshake.
func publishUntilRead(t *testing.T, hub *Hub, conn *websocket.Conn, e *Event) Event {
	t.Helper()
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			hub.Publish(e)
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Event
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return got
}

func TestHubDeliversToGameWatchers(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "game-1")

	food := engine.Position{X: 8, Y: 5}
	got := publishUntilRead(t, hub, conn, &Event{
		GameID: "game-1",
		Turn:   12,
		Event:  "move",
		Decision: &engine.Decision{
			Move:   engine.Right,
			Reason: engine.ReasonFood,
			Food:   &food,
		},
	})
	if got.GameID != "game-1" || got.Turn != 12 || got.Event != "move" {
		t.Errorf("event = %+v", got)
	}
	if got.Decision == nil || got.Decision.Move != engine.Right || got.Decision.Reason != engine.ReasonFood {
		t.Errorf("decision = %+v", got.Decision)
	}
}

func TestHubIsolatesGames(t *testing.T) {
	hub, srv := startHub(t)
	other := dial(t, srv, "game-2")
	watched := dial(t, srv, "game-1")

	publishUntilRead(t, hub, watched, &Event{GameID: "game-1", Event: "move"})

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, data, err := other.ReadMessage(); err == nil {
		t.Errorf("game-2 watcher received %s", data)
	}
}
