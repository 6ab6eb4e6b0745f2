package engine

import (
	"fmt"

	"github.com/joonazan/vec2"
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in tie-break priority order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Direction2Vector points from the successor cell back to the current one,
// so the successor is pos.Minus(vector).
var Direction2Vector = [4]vec2.Vector{
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
	Left:  {X: 1, Y: 0},
	Right: {X: -1, Y: 0},
}

var directionNames = [4]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if d < Up || d > Right {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if directionNames[d] == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
