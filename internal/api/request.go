package api

import (
	"errors"
	"fmt"

	"github.com/tonobo/battlesnake-lookahead/internal/engine"
)

// ErrInvalidSnapshot marks a request the engine cannot be run on.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

type Request struct {
	Game  *Game  `json:"game"`
	Turn  int    `json:"turn"`
	Board *Board `json:"board"`
	Self  *Snake `json:"you"`
}

type Game struct {
	ID      string  `json:"id"`
	Ruleset Ruleset `json:"ruleset"`
	Map     string  `json:"map"`
	Timeout int     `json:"timeout"`
	Source  string  `json:"source"`
}

type Ruleset struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Board struct {
	Height  int               `json:"height"`
	Width   int               `json:"width"`
	Food    []engine.Position `json:"food"`
	Hazards []engine.Position `json:"hazards"`
	Snakes  []Snake           `json:"snakes"`
}

type Snake struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Health  int               `json:"health"`
	Body    []engine.Position `json:"body"`
	Head    engine.Position   `json:"head"`
	Length  int               `json:"length"`
	Latency string            `json:"latency"`
	Shout   string            `json:"shout"`
}

func (s Snake) engineSnake() engine.Snake {
	return engine.Snake{
		ID:     s.ID,
		Name:   s.Name,
		Health: s.Health,
		Length: s.Length,
		Body:   s.Body,
	}
}

// Snapshot validates the request and converts it for the engine.
func (r *Request) Snapshot() (engine.Snapshot, error) {
	if r.Game == nil {
		return engine.Snapshot{}, fmt.Errorf("%w: missing game", ErrInvalidSnapshot)
	}
	if r.Board == nil {
		return engine.Snapshot{}, fmt.Errorf("%w: missing board", ErrInvalidSnapshot)
	}
	if r.Board.Width <= 0 || r.Board.Height <= 0 {
		return engine.Snapshot{}, fmt.Errorf("%w: board is %dx%d", ErrInvalidSnapshot, r.Board.Width, r.Board.Height)
	}
	if r.Self == nil || len(r.Self.Body) == 0 {
		return engine.Snapshot{}, fmt.Errorf("%w: missing you.body", ErrInvalidSnapshot)
	}

	s := engine.Snapshot{
		GameID: r.Game.ID,
		Turn:   r.Turn,
		Board: engine.Board{
			Width:  r.Board.Width,
			Height: r.Board.Height,
			Food:   r.Board.Food,
		},
		You: r.Self.engineSnake(),
	}
	for _, snake := range r.Board.Snakes {
		if len(snake.Body) == 0 {
			continue
		}
		s.Board.Snakes = append(s.Board.Snakes, snake.engineSnake())
	}
	return s, nil
}
