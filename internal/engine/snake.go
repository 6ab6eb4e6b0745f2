package engine

type Snake struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Health int        `json:"health"`
	Length int        `json:"length"`
	Body   []Position `json:"body"`
}

func (s Snake) Head() Position {
	return s.Body[0]
}

// Len reports the snake length, falling back to the body size when the
// snapshot left Length unset.
func (s Snake) Len() int {
	if s.Length > 0 {
		return s.Length
	}
	return len(s.Body)
}

// Opponent is the part of another snake that matters for head-to-head checks.
type Opponent struct {
	Head   Position
	Length int
}

// Opponents splits the other snakes into their heads and the rest of their bodies.
type Opponents struct {
	Heads  []Opponent
	Bodies []Position
}
