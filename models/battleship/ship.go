package battleship

type ShipPlacementColour uint8

const (
	ShipPlacementColourValid ShipPlacementColour = iota
	ShipPlacementColourInvalid
	ShipPlacementColourPlaced
)

func (c ShipPlacementColour) String() string {
	switch c {
	case ShipPlacementColourValid:
		return "valid"
	case ShipPlacementColourInvalid:
		return "invalid"
	default:
		return "placed"
	}
}

// A ship occupies Length contiguous cells starting at Origin, extending
// along +x when sideways and +y otherwise. Validity of the footprint is
// decided by the grid, never by the ship itself.
type Ship struct {
	Origin          Position
	DrawOrigin      Position
	Length          int
	IsSideways      bool
	PlacementColour ShipPlacementColour

	// Indexed by the offset from Origin
	hitCells []bool
	hits     int
}

func NewShip(origin, drawOrigin Position, length int, isSideways bool) *Ship {
	return &Ship{
		Origin:          origin,
		DrawOrigin:      drawOrigin,
		Length:          length,
		IsSideways:      isSideways,
		PlacementColour: ShipPlacementColourValid,
		hitCells:        make([]bool, length),
	}
}

func (sh *Ship) ToggleSideways() {
	sh.IsSideways = !sh.IsSideways
}

func (sh *Ship) SetDrawPosition(origin, drawOrigin Position) {
	sh.Origin = origin
	sh.DrawOrigin = drawOrigin
}

func (sh *Ship) SetPlacementColour(colour ShipPlacementColour) {
	sh.PlacementColour = colour
}

func (sh *Ship) direction() Position {
	if sh.IsSideways {
		return Position{X: 1}
	}
	return Position{Y: 1}
}

func (sh *Ship) OccupiedCells() []Position {
	cells := make([]Position, sh.Length)
	dir := sh.direction()
	for i := 0; i < sh.Length; i++ {
		cells[i] = sh.Origin.Add(dir.Scale(i))
	}
	return cells
}

// Returns the offset of cell from the ship origin and whether the
// cell belongs to the ship at all.
func (sh *Ship) OffsetOf(cell Position) (int, bool) {
	d := cell.Sub(sh.Origin)
	if sh.IsSideways {
		if d.Y != 0 || d.X < 0 || d.X >= sh.Length {
			return 0, false
		}
		return d.X, true
	}
	if d.X != 0 || d.Y < 0 || d.Y >= sh.Length {
		return 0, false
	}
	return d.Y, true
}

// Calling it twice with the same offset counts once.
func (sh *Ship) RegisterHit(offset int) {
	if offset < 0 || offset >= len(sh.hitCells) || sh.hitCells[offset] {
		return
	}
	sh.hitCells[offset] = true
	sh.hits++
}

func (sh *Ship) Hits() int {
	return sh.hits
}

func (sh *Ship) IsDestroyed() bool {
	return sh.Length > 0 && sh.hits == sh.Length
}

// Relative offsets that have been hit so far, in ascending order.
func (sh *Ship) HitOffsets() []int {
	offsets := make([]int, 0, sh.hits)
	for i, hit := range sh.hitCells {
		if hit {
			offsets = append(offsets, i)
		}
	}
	return offsets
}
