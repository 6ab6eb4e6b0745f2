package engine

import (
	"strings"
	"testing"
)

func pos(x, y int) Position { return Position{X: x, Y: y} }

func body(cells ...Position) []Position { return cells }

func snapshot(width, height int, you Snake, others ...Snake) Snapshot {
	return Snapshot{
		GameID: "test",
		Board: Board{
			Width:  width,
			Height: height,
			Snakes: append([]Snake{you}, others...),
		},
		You: you,
	}
}

func dumpBoard(s Snapshot) string {
	var b strings.Builder
	s.Board.Render(&b, s.You.ID)
	return b.String()
}

func logBoard(t *testing.T, s Snapshot) {
	t.Helper()
	t.Logf("turn %d health %d\n%s", s.Turn, s.You.Health, dumpBoard(s))
}
