package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"github.com/tonobo/battlesnake-lookahead/internal/config"
	"github.com/tonobo/battlesnake-lookahead/internal/engine"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// moveRequest is an 11x11 board with our snake at (5,5) trailing left and
// one opponent in the top right corner.
const moveRequest = `{
  "game": {"id": "game-1", "ruleset": {"name": "standard", "version": "v1"}, "timeout": 500},
  "turn": 14,
  "board": {
    "height": 11,
    "width": 11,
    "food": [{"x": 8, "y": 5}],
    "hazards": [],
    "snakes": [
      {"id": "me", "name": "lookahead", "health": %d, "length": 3,
       "body": [{"x": 5, "y": 5}, {"x": 4, "y": 5}, {"x": 3, "y": 5}], "head": {"x": 5, "y": 5}},
      {"id": "them", "name": "other", "health": 90, "length": 3,
       "body": [{"x": 10, "y": 10}, {"x": 10, "y": 9}, {"x": 10, "y": 8}], "head": {"x": 10, "y": 10}}
    ]
  },
  "you": {"id": "me", "name": "lookahead", "health": %d, "length": 3,
          "body": [{"x": 5, "y": 5}, {"x": 4, "y": 5}, {"x": 3, "y": 5}], "head": {"x": 5, "y": 5}}
}`

func withHealth(health int) string {
	return fmt.Sprintf(moveRequest, health, health)
}

func newTestServer(logger log.Logger) *gin.Engine {
	appearance := config.Default().Appearance
	appearance.Author = "tonobo"
	return NewServer(engine.Default(), appearance, nil, logger).Router()
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInfo(t *testing.T) {
	w := do(t, newTestServer(nil), http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var info InfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.APIVersion != "1" || info.Author != "tonobo" || info.Color != "#93E9BE" {
		t.Errorf("info = %+v", info)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name   string
		health int
		move   string
		shout  string
	}{
		{"healthy", 100, "up", "lookahead"},
		{"hungry", 5, "right", "food"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(nil), http.MethodPost, "/move", withHealth(tt.health))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", w.Code, w.Body)
			}
			var resp struct {
				Move  string `json:"move"`
				Shout string `json:"shout"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Move != tt.move || resp.Shout != tt.shout {
				t.Errorf("response = %+v, want %s/%s", resp, tt.move, tt.shout)
			}
		})
	}
}

func TestMoveLogsDecision(t *testing.T) {
	var buf bytes.Buffer
	r := newTestServer(log.NewLogfmtLogger(&buf))
	do(t, r, http.MethodPost, "/move", withHealth(100))

	out := buf.String()
	for _, want := range []string{"msg=move", "game=game-1", "turn=14", "move=up"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing game", `{"board": {"width": 11, "height": 11}, "you": {"body": [{"x": 1, "y": 1}]}}`},
		{"empty board", `{"game": {"id": "g"}, "board": {"width": 0, "height": 11}, "you": {"body": [{"x": 1, "y": 1}]}}`},
		{"no body", `{"game": {"id": "g"}, "board": {"width": 11, "height": 11}, "you": {"id": "me", "body": []}}`},
	}
	for _, tt := range tests {
		for _, path := range []string{"/start", "/move", "/end"} {
			t.Run(tt.name+path, func(t *testing.T) {
				w := do(t, newTestServer(nil), http.MethodPost, path, tt.body)
				if w.Code != http.StatusBadRequest {
					t.Errorf("status = %d, want 400", w.Code)
				}
				if !strings.Contains(w.Body.String(), "error") {
					t.Errorf("body = %s", w.Body)
				}
			})
		}
	}
}

func TestStartEndPing(t *testing.T) {
	r := newTestServer(nil)
	for _, path := range []string{"/start", "/end", "/ping"} {
		w := do(t, r, http.MethodPost, path, withHealth(50))
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d: %s", path, w.Code, w.Body)
		}
	}
}

func TestResult(t *testing.T) {
	me := engine.Snake{ID: "me"}
	them := engine.Snake{ID: "them"}
	tests := []struct {
		snakes []engine.Snake
		want   string
	}{
		{[]engine.Snake{me}, "won"},
		{[]engine.Snake{me, them}, "alive"},
		{[]engine.Snake{them}, "lost"},
		{nil, "draw"},
	}
	for _, tt := range tests {
		s := engine.Snapshot{You: me, Board: engine.Board{Snakes: tt.snakes}}
		if got := result(s); got != tt.want {
			t.Errorf("result(%d snakes) = %s, want %s", len(tt.snakes), got, tt.want)
		}
	}
}
