// Package api serves the Battlesnake HTTP API on top of the engine.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/tonobo/battlesnake-lookahead/internal/config"
	"github.com/tonobo/battlesnake-lookahead/internal/engine"
	"github.com/tonobo/battlesnake-lookahead/internal/feed"
)

type InfoResponse struct {
	APIVersion string `json:"apiversion"`
	Author     string `json:"author"`
	Color      string `json:"color"`
	Head       string `json:"head"`
	Tail       string `json:"tail"`
}

type MoveResponse struct {
	Move  engine.Direction `json:"move"`
	Shout string           `json:"shout,omitempty"`
}

type Server struct {
	engine     *engine.Engine
	appearance config.Appearance
	hub        *feed.Hub
	logger     log.Logger
}

// NewServer wires the engine to the HTTP handlers. hub may be nil.
func NewServer(e *engine.Engine, appearance config.Appearance, hub *feed.Hub, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Server{engine: e, appearance: appearance, hub: hub, logger: logger}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(os.Stderr), gin.Recovery())

	r.GET("/", s.handleInfo)
	r.POST("/start", s.handleStart)
	r.POST("/move", s.handleMove)
	r.POST("/end", s.handleEnd)
	r.POST("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	if s.hub != nil {
		r.GET("/games/:id/watch", func(c *gin.Context) {
			s.hub.ServeWS(c.Writer, c.Request, c.Param("id"))
		})
	}
	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		_ = level.Info(s.logger).Log("msg", "listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		APIVersion: "1",
		Author:     s.appearance.Author,
		Color:      s.appearance.Color,
		Head:       s.appearance.Head,
		Tail:       s.appearance.Tail,
	})
}

// bind decodes and validates a request, answering 400 itself on failure.
func (s *Server) bind(c *gin.Context) (*Request, engine.Snapshot, bool) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, engine.Snapshot{}, false
	}
	snap, err := req.Snapshot()
	if err != nil {
		_ = level.Warn(s.logger).Log("msg", "rejected request", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, engine.Snapshot{}, false
	}
	return &req, snap, true
}

func (s *Server) publish(e *feed.Event) {
	if s.hub != nil {
		s.hub.Publish(e)
	}
}

func (s *Server) handleStart(c *gin.Context) {
	req, snap, ok := s.bind(c)
	if !ok {
		return
	}
	_ = level.Info(s.logger).Log("msg", "game start", "game", snap.GameID, "ruleset", req.Game.Ruleset.Name, "you", snap.You.Name)
	s.publish(&feed.Event{GameID: snap.GameID, Turn: snap.Turn, Event: "start"})
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) handleMove(c *gin.Context) {
	_, snap, ok := s.bind(c)
	if !ok {
		return
	}
	decision := s.engine.Decide(snap)
	_ = level.Info(s.logger).Log("msg", "move", "game", snap.GameID, "turn", snap.Turn,
		"move", decision.Move, "reason", decision.Reason, "health", snap.You.Health)
	s.publish(&feed.Event{GameID: snap.GameID, Turn: snap.Turn, Event: "move", Decision: &decision})

	c.JSON(http.StatusOK, MoveResponse{Move: decision.Move, Shout: string(decision.Reason)})
}

func (s *Server) handleEnd(c *gin.Context) {
	_, snap, ok := s.bind(c)
	if !ok {
		return
	}
	_ = level.Info(s.logger).Log("msg", "game over", "game", snap.GameID, "turn", snap.Turn, "result", result(snap))
	s.publish(&feed.Event{GameID: snap.GameID, Turn: snap.Turn, Event: "end"})
	c.JSON(http.StatusOK, gin.H{})
}

func result(s engine.Snapshot) string {
	for _, snake := range s.Board.Snakes {
		if snake.ID == s.You.ID {
			if len(s.Board.Snakes) == 1 {
				return "won"
			}
			return "alive"
		}
	}
	if len(s.Board.Snakes) == 0 {
		return "draw"
	}
	return "lost"
}
