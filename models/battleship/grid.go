package battleship

import (
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const (
	GridWidth  int = 10
	GridHeight int = 10

	// Pixel size of a single cell, only used for screen translation
	CellSize int = 30

	DefaultTreasureCount int = 1

	// Upper bound on the number of tentative placements PopulateShips
	// may try before giving up.
	populateBudget int = 100_000
)

var DefaultShipSizes = []int{5, 4, 3, 3, 2}

type GridConfig struct {
	Width         int
	Height        int
	ShipSizes     []int
	TreasureCount int

	// The computer side populates itself on every reset
	AutoPopulate bool
}

// SelectionGrid owns the markers of one side and the ships placed on it.
// markers is indexed as markers[x][y].
type SelectionGrid struct {
	width         int
	height        int
	origin        Position
	markers       [][]Marker
	ships         []*Ship
	shipSizes     []int
	treasureCount int
	treasures     []Position
	autoPopulate  bool
	showShips     bool
	rnd           Random
}

func NewSelectionGrid(origin Position, cfg GridConfig, rnd Random) *SelectionGrid {
	g := &SelectionGrid{
		width:         cfg.Width,
		height:        cfg.Height,
		origin:        origin,
		shipSizes:     append([]int(nil), cfg.ShipSizes...),
		treasureCount: cfg.TreasureCount,
		autoPopulate:  cfg.AutoPopulate,
		rnd:           rnd,
	}

	g.markers = make([][]Marker, g.width)
	for x := 0; x < g.width; x++ {
		g.markers[x] = make([]Marker, g.height)
	}
	g.clearMarkers()
	return g
}

func (g *SelectionGrid) Width() int       { return g.width }
func (g *SelectionGrid) Height() int      { return g.height }
func (g *SelectionGrid) Origin() Position { return g.origin }
func (g *SelectionGrid) ShowShips() bool  { return g.showShips }

func (g *SelectionGrid) SetShowShips(show bool) {
	g.showShips = show
}

func (g *SelectionGrid) ShipSizes() []int {
	return append([]int(nil), g.shipSizes...)
}

// Ships returns the placed ships in placement order.
func (g *SelectionGrid) Ships() []*Ship {
	return append([]*Ship(nil), g.ships...)
}

func (g *SelectionGrid) Treasures() []Position {
	return append([]Position(nil), g.treasures...)
}

func (g *SelectionGrid) isInBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// Clears every marker, drops every ship and treasure. The computer side
// is repopulated straight away.
func (g *SelectionGrid) Reset() error {
	g.clearMarkers()
	g.ships = g.ships[:0]
	g.treasures = nil
	g.showShips = false

	if g.autoPopulate {
		return g.PopulateShips()
	}
	return nil
}

func (g *SelectionGrid) clearMarkers() {
	for x := range g.markers {
		for y := range g.markers[x] {
			g.markers[x][y] = newMarker()
		}
	}
}

// DrawPosition translates a grid cell into screen coordinates.
func (g *SelectionGrid) DrawPosition(cell Position) Position {
	return g.origin.Add(cell.Scale(CellSize))
}

func (g *SelectionGrid) IsPositionInside(screenPoint Position) bool {
	return screenPoint.X >= g.origin.X && screenPoint.Y >= g.origin.Y &&
		screenPoint.X < g.origin.X+g.width*CellSize &&
		screenPoint.Y < g.origin.Y+g.height*CellSize
}

// GetPositionInGrid translates screen coordinates into a cell. Points
// outside the grid give (-1, -1).
func (g *SelectionGrid) GetPositionInGrid(screenX, screenY int) Position {
	if !g.IsPositionInside(Position{X: screenX, Y: screenY}) {
		return Position{X: -1, Y: -1}
	}
	return Position{
		X: (screenX - g.origin.X) / CellSize,
		Y: (screenY - g.origin.Y) / CellSize,
	}
}

// ClampPlacement returns target moved so that a ship of the given length
// and orientation stays inside the grid.
func (g *SelectionGrid) ClampPlacement(target Position, length int, isSideways bool) Position {
	maxX, maxY := g.width-1, g.height-1
	if isSideways {
		maxX = g.width - length
	} else {
		maxY = g.height - length
	}
	return Position{
		X: min(max(target.X, 0), max(maxX, 0)),
		Y: min(max(target.Y, 0), max(maxY, 0)),
	}
}

// CanPlaceShipAt reports whether the whole footprint is inside the grid
// and free of other ships. It never mutates the grid.
func (g *SelectionGrid) CanPlaceShipAt(x, y, length int, isSideways bool) bool {
	if length <= 0 || x < 0 || y < 0 {
		return false
	}
	if isSideways {
		if x+length > g.width || y >= g.height {
			return false
		}
		for i := 0; i < length; i++ {
			if g.markers[x+i][y].IsShip() {
				return false
			}
		}
		return true
	}

	if y+length > g.height || x >= g.width {
		return false
	}
	for i := 0; i < length; i++ {
		if g.markers[x][y+i].IsShip() {
			return false
		}
	}
	return true
}

// PlaceShip commits the ship with its origin at (x, y). Either the whole
// ship is placed or the grid stays untouched.
func (g *SelectionGrid) PlaceShip(ship *Ship, x, y int) error {
	if ship == nil || !g.CanPlaceShipAt(x, y, ship.Length, ship.IsSideways) {
		length, sideways := 0, false
		if ship != nil {
			length, sideways = ship.Length, ship.IsSideways
		}
		return cerr.ErrShipPlacement(x, y, length, sideways)
	}

	origin := Position{X: x, Y: y}
	ship.SetDrawPosition(origin, g.DrawPosition(origin))
	ship.SetPlacementColour(ShipPlacementColourPlaced)
	g.commitShip(ship)
	return nil
}

func (g *SelectionGrid) commitShip(ship *Ship) {
	idx := len(g.ships)
	g.ships = append(g.ships, ship)
	for _, cell := range ship.OccupiedCells() {
		g.markers[cell.X][cell.Y].shipIndex = idx
	}
}

func (g *SelectionGrid) removeLastShip() {
	last := g.ships[len(g.ships)-1]
	for _, cell := range last.OccupiedCells() {
		g.markers[cell.X][cell.Y].shipIndex = noShip
	}
	g.ships = g.ships[:len(g.ships)-1]
}

type placement struct {
	origin     Position
	isSideways bool
}

func (g *SelectionGrid) validPlacements(length int) []placement {
	placements := make([]placement, 0, 2*g.width*g.height)
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.CanPlaceShipAt(x, y, length, true) {
				placements = append(placements, placement{origin: Position{X: x, Y: y}, isSideways: true})
			}
			if length > 1 && g.CanPlaceShipAt(x, y, length, false) {
				placements = append(placements, placement{origin: Position{X: x, Y: y}, isSideways: false})
			}
		}
	}
	return placements
}

// PopulateShips places every configured ship at random without overlap.
// It is a randomised backtracking search over all valid placements, so a
// layout is found whenever one exists within the search budget, and the
// call always returns.
func (g *SelectionGrid) PopulateShips() error {
	for len(g.ships) > 0 {
		g.removeLastShip()
	}

	budget := populateBudget
	if !g.populateFrom(0, &budget) {
		for len(g.ships) > 0 {
			g.removeLastShip()
		}
		return cerr.ErrPopulateBudgetExhausted(populateBudget)
	}

	g.deriveTreasures()
	return nil
}

func (g *SelectionGrid) populateFrom(shipIdx int, budget *int) bool {
	if shipIdx == len(g.shipSizes) {
		return true
	}

	length := g.shipSizes[shipIdx]
	candidates := g.validPlacements(length)
	g.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, c := range candidates {
		if *budget <= 0 {
			return false
		}
		*budget--

		ship := NewShip(c.origin, g.DrawPosition(c.origin), length, c.isSideways)
		ship.SetPlacementColour(ShipPlacementColourPlaced)
		g.commitShip(ship)

		if g.populateFrom(shipIdx+1, budget) {
			return true
		}
		g.removeLastShip()
	}
	return false
}

// Treasure cells are picked among the occupied cells so that finding one
// is always a hit.
func (g *SelectionGrid) deriveTreasures() {
	for _, p := range g.treasures {
		g.markers[p.X][p.Y].isTreasure = false
	}
	g.treasures = nil

	if g.treasureCount == 0 {
		return
	}

	cells := make([]Position, 0, 17)
	for _, ship := range g.ships {
		cells = append(cells, ship.OccupiedCells()...)
	}
	g.rnd.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	for _, p := range cells[:min(g.treasureCount, len(cells))] {
		g.markers[p.X][p.Y].isTreasure = true
		g.treasures = append(g.treasures, p)
	}
}

// MarkPosition fires at target. Callers are expected to check
// IsPositionMarked first; a second shot at the same cell is rejected and
// leaves the grid as it was.
func (g *SelectionGrid) MarkPosition(target Position) (bool, error) {
	if !g.isInBounds(target) {
		return false, cerr.ErrXorYOutOfGridBound(target.X, target.Y)
	}

	marker := &g.markers[target.X][target.Y]
	if marker.IsMarked() {
		return false, cerr.ErrAttackPositionAlreadyFilled(target.X, target.Y)
	}

	if !marker.IsShip() {
		marker.state = MarkerStateMiss
		return false, nil
	}

	marker.state = MarkerStateHit
	ship := g.ships[marker.shipIndex]
	if offset, ok := ship.OffsetOf(target); ok {
		ship.RegisterHit(offset)
	}
	return true, nil
}

// Out of bound positions count as marked so that nobody fires at them.
func (g *SelectionGrid) IsPositionMarked(target Position) bool {
	if !g.isInBounds(target) {
		return true
	}
	return g.markers[target.X][target.Y].IsMarked()
}

func (g *SelectionGrid) IsTreasureAtPosition(target Position) bool {
	if !g.isInBounds(target) {
		return false
	}
	return g.markers[target.X][target.Y].IsTreasure()
}

func (g *SelectionGrid) GetMarkerAtPosition(target Position) (Marker, error) {
	if !g.isInBounds(target) {
		return Marker{}, cerr.ErrXorYOutOfGridBound(target.X, target.Y)
	}
	return g.markers[target.X][target.Y], nil
}

// ShipAt returns the ship occupying target, if any.
func (g *SelectionGrid) ShipAt(target Position) (*Ship, bool) {
	if !g.isInBounds(target) {
		return nil, false
	}
	idx := g.markers[target.X][target.Y].shipIndex
	if idx == noShip {
		return nil, false
	}
	return g.ships[idx], true
}

// A grid without ships is never considered destroyed.
func (g *SelectionGrid) AreAllShipsDestroyed() bool {
	if len(g.ships) == 0 {
		return false
	}
	for _, ship := range g.ships {
		if !ship.IsDestroyed() {
			return false
		}
	}
	return true
}

func (g *SelectionGrid) DestroyedShips() int {
	n := 0
	for _, ship := range g.ships {
		if ship.IsDestroyed() {
			n++
		}
	}
	return n
}
