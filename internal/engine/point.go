package engine

import (
	"fmt"
	"math"

	"github.com/joonazan/vec2"
)

// Position is a cell on the board. (0,0) is the bottom left corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Vec() vec2.Vector {
	return vec2.Vector{X: float64(p.X), Y: float64(p.Y)}
}

func fromVec(v vec2.Vector) Position {
	return Position{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

// Step returns the cell one move away in direction d.
func (p Position) Step(d Direction) Position {
	return fromVec(p.Vec().Minus(Direction2Vector[d]))
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Distance is the Manhattan distance between a and b.
func Distance(a, b Position) int {
	d := a.Vec().Minus(b.Vec())
	return int(math.Abs(d.X) + math.Abs(d.Y))
}

func contains(cells []Position, p Position) bool {
	for _, c := range cells {
		if c == p {
			return true
		}
	}
	return false
}
