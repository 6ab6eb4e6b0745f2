package engine

import (
	"fmt"
	"io"
	"strings"
)

type Board struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Food   []Position `json:"food"`
	Snakes []Snake    `json:"snakes"`
}

func (b Board) Outside(p Position) bool {
	if p.X > b.Width-1 || p.X < 0 {
		return true
	}
	if p.Y > b.Height-1 || p.Y < 0 {
		return true
	}
	return false
}

// Snapshot is everything the engine knows about one turn.
type Snapshot struct {
	GameID string
	Turn   int
	Board  Board
	You    Snake
}

// Opponents collects every snake on the board other than You. Opponent
// bodies leave out the head, which is checked separately.
func (s Snapshot) Opponents() Opponents {
	var o Opponents
	for _, snake := range s.Board.Snakes {
		if snake.ID == s.You.ID || len(snake.Body) == 0 {
			continue
		}
		o.Heads = append(o.Heads, Opponent{Head: snake.Head(), Length: snake.Len()})
		o.Bodies = append(o.Bodies, snake.Body[1:]...)
	}
	return o
}

// Render prints the board top row first. M/m is You, other snakes get a
// letter each, F is food.
func (b Board) Render(w io.Writer, youID string) {
	grid := make([][]byte, b.Height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat("-", b.Width))
	}
	set := func(p Position, c byte) {
		if b.Outside(p) {
			return
		}
		grid[p.Y][p.X] = c
	}
	for _, f := range b.Food {
		set(f, 'F')
	}
	letter := byte('a')
	for _, snake := range b.Snakes {
		id := letter
		if snake.ID == youID {
			id = 'm'
		} else {
			letter++
		}
		for i := len(snake.Body) - 1; i >= 0; i-- {
			c := id
			if i == 0 {
				c = id - 'a' + 'A'
			}
			set(snake.Body[i], c)
		}
	}
	for y := b.Height - 1; y >= 0; y-- {
		fmt.Fprintf(w, "%s\n", grid[y])
	}
	fmt.Fprint(w, "\n")
}
