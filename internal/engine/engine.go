// Package engine picks one move per turn for a Battlesnake.
//
// A decision runs the safety filter, falls back to Down when nothing is
// safe, ranks the safe directions with a two-ply lookahead and finally lets
// the food policy override the ranking when the snake is hungry. Nothing is
// kept between calls, so one Engine can serve any number of games at once.
package engine

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Fallback is returned when every direction is lethal.
const Fallback = Down

type Reason string

const (
	ReasonFallback  Reason = "fallback"
	ReasonLookahead Reason = "lookahead"
	ReasonFood      Reason = "food"
)

type Decision struct {
	Move   Direction   `json:"move"`
	Reason Reason      `json:"reason"`
	Safety MoveSafety  `json:"safety"`
	Scores ScoredMoves `json:"scores"`
	// Food is the food being chased when Reason is ReasonFood.
	Food *Position `json:"food,omitempty"`
}

type Engine struct {
	Food      FoodPolicy
	Lookahead Lookahead
	Logger    log.Logger
}

func New(food FoodPolicy, lookahead Lookahead, logger log.Logger) *Engine {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Engine{Food: food, Lookahead: lookahead, Logger: logger}
}

func Default() *Engine {
	return New(DefaultFoodPolicy(), Lookahead{Mobility: true}, nil)
}

func (e *Engine) Decide(s Snapshot) Decision {
	logger := e.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = log.With(logger, "game", s.GameID, "turn", s.Turn)

	you := s.You
	head := you.Head()
	opponents := s.Opponents()

	safe := ComputeSafeMoves(head, you.Body, s.Board, opponents, you.Len())
	_ = level.Debug(logger).Log("msg", "safety", "safe", safe)
	if safe.Count() == 0 {
		_ = level.Warn(logger).Log("msg", "no safe moves", "move", Fallback)
		return Decision{Move: Fallback, Reason: ReasonFallback, Safety: safe}
	}

	scores := e.Lookahead.ScoreMoves(safe, head, you.Body, s.Board, opponents, you.Len())
	best, _ := scores.Best()
	_ = level.Debug(logger).Log("msg", "lookahead", "scores", scores, "best", best)

	decision := Decision{Move: best, Reason: ReasonLookahead, Safety: safe, Scores: scores}
	if d, target, ok := e.Food.Seek(s.Board.Food, head, you.Health, safe, scores); ok {
		decision.Move = d
		decision.Reason = ReasonFood
		decision.Food = &target
		_ = level.Debug(logger).Log("msg", "food", "target", target, "move", d, "health", you.Health)
	}
	return decision
}
