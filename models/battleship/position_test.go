package battleship

import (
	"math"
	"testing"
)

func TestPositionArithmetic(t *testing.T) {
	a, b := NewPosition(3, -2), NewPosition(1, 5)

	if got := a.Add(b); got != NewPosition(4, 3) {
		t.Fatalf("add: got %+v", got)
	}
	if got := a.Sub(b); got != NewPosition(2, -7) {
		t.Fatalf("sub: got %+v", got)
	}
	if got := b.Scale(CellSize); got != NewPosition(30, 150) {
		t.Fatalf("scale: got %+v", got)
	}
	if !a.Equals(NewPosition(3, -2)) || a.Equals(b) {
		t.Fatal("equals mismatch")
	}
}

func TestPositionDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Position
		euclidean float64
		chebyshev int
	}{
		{name: "same", a: NewPosition(2, 2), b: NewPosition(2, 2), euclidean: 0, chebyshev: 0},
		{name: "three four five", a: NewPosition(0, 0), b: NewPosition(3, 4), euclidean: 5, chebyshev: 4},
		{name: "diagonal", a: NewPosition(1, 1), b: NewPosition(0, 0), euclidean: math.Sqrt2, chebyshev: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.a.DistanceTo(test.b); math.Abs(got-test.euclidean) > 1e-9 {
				t.Fatalf("euclidean expected: %f\tgot: %f", test.euclidean, got)
			}
			if got := test.a.ChebyshevDistance(test.b); got != test.chebyshev {
				t.Fatalf("chebyshev expected: %d\tgot: %d", test.chebyshev, got)
			}
		})
	}
}

func TestPositionNeighbours(t *testing.T) {
	expected := [4]Position{{X: 4, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 4}, {X: 5, Y: 6}}
	if got := NewPosition(5, 5).Neighbours(); got != expected {
		t.Fatalf("expected: %v\tgot: %v", expected, got)
	}
}
