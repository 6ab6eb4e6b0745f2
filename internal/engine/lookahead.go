package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ScoredMoves holds the lookahead score of every direction that passed the
// safety filter.
type ScoredMoves struct {
	score  [4]int
	scored [4]bool
}

func (s *ScoredMoves) set(d Direction, score int) {
	s.score[d] = score
	s.scored[d] = true
}

// Score returns the score of d and whether d was scored at all.
func (s ScoredMoves) Score(d Direction) (int, bool) {
	return s.score[d], s.scored[d]
}

func (s ScoredMoves) Len() int {
	n := 0
	for _, ok := range s.scored {
		if ok {
			n++
		}
	}
	return n
}

// Best returns the highest scored direction. Equal scores go to the earlier
// direction in Directions. ok is false when nothing was scored.
func (s ScoredMoves) Best() (best Direction, ok bool) {
	for _, d := range Directions {
		if !s.scored[d] {
			continue
		}
		if !ok || s.score[d] > s.score[best] {
			best, ok = d, true
		}
	}
	return best, ok
}

func (s ScoredMoves) String() string {
	parts := make([]string, 0, 4)
	for _, d := range Directions {
		if s.scored[d] {
			parts = append(parts, fmt.Sprintf("%s:%d", d, s.score[d]))
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// MarshalJSON writes only the scored directions.
func (s ScoredMoves) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, 4)
	for _, d := range Directions {
		if s.scored[d] {
			out[d.String()] = s.score[d]
		}
	}
	return json.Marshal(out)
}

func (s *ScoredMoves) UnmarshalJSON(b []byte) error {
	var in map[string]int
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*s = ScoredMoves{}
	for name, score := range in {
		d, err := ParseDirection(name)
		if err != nil {
			return err
		}
		s.set(d, score)
	}
	return nil
}

// Lookahead scores safe directions by simulating one more step.
type Lookahead struct {
	// Mobility adds, to every candidate, the total number of safe follow-up
	// moves over all four one-step simulations from the current head.
	Mobility bool
}

// simulate moves the snake one step without growing and runs the safety
// filter from the new head.
func simulate(d Direction, head Position, body []Position, board Board, opponents Opponents, selfLength int) MoveSafety {
	next := head.Step(d)
	moved := make([]Position, 0, len(body))
	moved = append(moved, next)
	if len(body) > 0 {
		moved = append(moved, body[:len(body)-1]...)
	}
	return ComputeSafeMoves(next, moved, board, opponents, selfLength)
}

// ScoreMoves gives each safe direction the number of directions still safe
// one step later, plus the mobility total when enabled.
func (l Lookahead) ScoreMoves(safe MoveSafety, head Position, body []Position, board Board, opponents Opponents, selfLength int) ScoredMoves {
	bonus := 0
	if l.Mobility {
		for _, d := range Directions {
			bonus += simulate(d, head, body, board, opponents, selfLength).Count()
		}
	}
	var scores ScoredMoves
	for _, d := range safe.Moves() {
		scores.set(d, simulate(d, head, body, board, opponents, selfLength).Count()+bonus)
	}
	return scores
}
