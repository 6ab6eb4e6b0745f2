package engine

import (
	"encoding/json"
	"strings"
)

// MoveSafety flags each direction as safe or not. Flags only ever go from
// safe to unsafe during one evaluation.
type MoveSafety [4]bool

func NewMoveSafety() MoveSafety {
	return MoveSafety{true, true, true, true}
}

func (m MoveSafety) Safe(d Direction) bool {
	return m[d]
}

func (m *MoveSafety) block(d Direction) {
	m[d] = false
}

func (m MoveSafety) Count() int {
	n := 0
	for _, d := range Directions {
		if m[d] {
			n++
		}
	}
	return n
}

// Moves returns the safe directions in priority order.
func (m MoveSafety) Moves() []Direction {
	moves := make([]Direction, 0, 4)
	for _, d := range Directions {
		if m[d] {
			moves = append(moves, d)
		}
	}
	return moves
}

func (m MoveSafety) String() string {
	parts := make([]string, 0, 4)
	for _, d := range Directions {
		if m[d] {
			parts = append(parts, d.String())
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (m MoveSafety) MarshalJSON() ([]byte, error) {
	out := make(map[string]bool, 4)
	for _, d := range Directions {
		out[d.String()] = m[d]
	}
	return json.Marshal(out)
}

func (m *MoveSafety) UnmarshalJSON(b []byte) error {
	var in map[string]bool
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	for name, safe := range in {
		d, err := ParseDirection(name)
		if err != nil {
			return err
		}
		m[d] = safe
	}
	return nil
}

// ComputeSafeMoves marks every direction from head that would hit a wall,
// our own body or another snake. Every check runs for every direction.
//
// The last body cell is skipped in the self check because the tail moves
// away this turn. A snake that ate on the previous turn keeps its tail in
// place, which this does not account for.
func ComputeSafeMoves(head Position, body []Position, board Board, opponents Opponents, selfLength int) MoveSafety {
	safety := NewMoveSafety()
	var neck []Position
	if len(body) > 0 {
		neck = body[:len(body)-1]
	}
	for _, d := range Directions {
		next := head.Step(d)
		if board.Outside(next) {
			safety.block(d)
		}
		if contains(neck, next) {
			safety.block(d)
		}
		if contains(opponents.Bodies, next) {
			safety.block(d)
		}
		for _, o := range opponents.Heads {
			// equal length head-to-head eliminates both snakes
			if o.Head == next && o.Length >= selfLength {
				safety.block(d)
			}
		}
	}
	return safety
}
