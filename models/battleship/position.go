package battleship

import "math"

// Position is a cell coordinate on a grid, or a point in screen space
// when used for drawing. It is a value type and safe to use as a map key.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

func (p Position) Scale(factor int) Position {
	return Position{X: p.X * factor, Y: p.Y * factor}
}

func (p Position) Equals(other Position) bool {
	return p == other
}

// Euclidean distance between the two positions
func (p Position) DistanceTo(other Position) float64 {
	dx, dy := float64(p.X-other.X), float64(p.Y-other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Number of king moves between the two positions.
func (p Position) ChebyshevDistance(other Position) int {
	return max(abs(p.X-other.X), abs(p.Y-other.Y))
}

// Returns the four orthogonal neighbours in the order
// left, right, up, down. Bounds are not checked here.
func (p Position) Neighbours() [4]Position {
	return [4]Position{
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y - 1},
		{X: p.X, Y: p.Y + 1},
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
