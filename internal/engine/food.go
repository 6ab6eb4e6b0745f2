package engine

import "sort"

const (
	DefaultFoodBuffer     = 35
	DefaultCriticalHealth = 40
)

// FoodPolicy decides when hunger overrides the lookahead ranking.
type FoodPolicy struct {
	// Buffer is added to the nearest food distance. Health at or below the
	// sum starts food seeking.
	Buffer int
	// CriticalHealth starts food seeking regardless of distance when health
	// drops below it.
	CriticalHealth int
	// LegacySecondTarget gates the second target on the ranking entry the
	// first version of this snake read by mistake, instead of the distance
	// to the second food.
	LegacySecondTarget bool
}

func DefaultFoodPolicy() FoodPolicy {
	return FoodPolicy{Buffer: DefaultFoodBuffer, CriticalHealth: DefaultCriticalHealth}
}

type foodTarget struct {
	Index    int
	Position Position
	Distance int
}

type foodTargets []foodTarget

func (p foodTargets) Len() int           { return len(p) }
func (p foodTargets) Less(i, j int) bool { return p[i].Distance < p[j].Distance }
func (p foodTargets) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

func rankFood(food []Position, head Position) foodTargets {
	targets := make(foodTargets, len(food))
	for i, f := range food {
		targets[i] = foodTarget{Index: i, Position: f, Distance: Distance(head, f)}
	}
	sort.Stable(targets)
	return targets
}

// stepToward tries right, left, up and down in that order, keeping only the
// ones that close the gap to target. A step has to be safe and score above 1.
func stepToward(target, head Position, safe MoveSafety, scores ScoredMoves) (Direction, bool) {
	candidates := []struct {
		dir    Direction
		closer bool
	}{
		{Right, target.X > head.X},
		{Left, target.X < head.X},
		{Up, target.Y > head.Y},
		{Down, target.Y < head.Y},
	}
	for _, c := range candidates {
		if !c.closer || !safe.Safe(c.dir) {
			continue
		}
		if score, ok := scores.Score(c.dir); ok && score > 1 {
			return c.dir, true
		}
	}
	return 0, false
}

// Seek returns a direction toward food when health calls for it. The
// returned position is the food being chased.
func (p FoodPolicy) Seek(food []Position, head Position, health int, safe MoveSafety, scores ScoredMoves) (Direction, Position, bool) {
	if len(food) == 0 {
		return 0, Position{}, false
	}
	ranked := rankFood(food, head)
	nearest := ranked[0]
	if health > nearest.Distance+p.Buffer && health >= p.CriticalHealth {
		return 0, Position{}, false
	}
	if d, ok := stepToward(nearest.Position, head, safe, scores); ok {
		return d, nearest.Position, true
	}
	if len(ranked) < 2 {
		return 0, Position{}, false
	}
	second := ranked[1]
	if health > p.secondTargetLimit(ranked) {
		return 0, Position{}, false
	}
	if d, ok := stepToward(second.Position, head, safe, scores); ok {
		return d, second.Position, true
	}
	return 0, Position{}, false
}

func (p FoodPolicy) secondTargetLimit(ranked foodTargets) int {
	if !p.LegacySecondTarget {
		return ranked[1].Distance
	}
	// The legacy rule indexes the ranking with the second food's board
	// index and compares health against the board index found there.
	i := ranked[1].Index
	if i >= len(ranked) {
		return -1
	}
	return ranked[i].Index
}
