package battleship

type MarkerState uint8

const (
	MarkerStateEmpty MarkerState = iota
	MarkerStateHit
	MarkerStateMiss
)

const noShip = -1

// Marker is the per cell record of a grid. It references the occupying
// ship by its index in the owning grid so that a reset drops every ship
// at once.
type Marker struct {
	state      MarkerState
	shipIndex  int
	isTreasure bool
}

func newMarker() Marker {
	return Marker{state: MarkerStateEmpty, shipIndex: noShip}
}

func (m Marker) State() MarkerState {
	return m.state
}

func (m Marker) IsMarked() bool {
	return m.state != MarkerStateEmpty
}

func (m Marker) IsShip() bool {
	return m.shipIndex != noShip
}

// Index into the grid ships; -1 when no ship occupies the cell.
func (m Marker) ShipIndex() int {
	return m.shipIndex
}

func (m Marker) IsTreasure() bool {
	return m.isTreasure
}
