package battleship

import (
	"strings"

	"github.com/charmbracelet/log"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type GameState uint8

const (
	GameStatePlacingShips GameState = iota
	GameStateFiringShots
	GameStateGameOver
)

func (s GameState) String() string {
	switch s {
	case GameStatePlacingShips:
		return "placing_ships"
	case GameStateFiringShots:
		return "firing_shots"
	default:
		return "game_over"
	}
}

type Winner uint8

const (
	WinnerNone Winner = iota
	WinnerPlayer
	WinnerComputer
)

func (w Winner) String() string {
	switch w {
	case WinnerPlayer:
		return "player"
	case WinnerComputer:
		return "computer"
	default:
		return "none"
	}
}

type FireOutcome uint8

const (
	FireOutcomeMiss FireOutcome = iota
	FireOutcomeHit
	FireOutcomeSunk
	FireOutcomeGameOver
)

const (
	// Horizontal pixel gap between the computer and the player grid
	gridGap int = 60

	statusPlacingTop    = "PLACE YOUR SHIPS BELOW!"
	statusPlacingBottom = "R TO ROTATE."
	statusFiringTop     = "ATTACK THE ENEMY!"
	statusFiringBottom  = "DESTROY ALL SHIPS TO WIN!"
	statusWinTop        = "YOU DESTROYED ALL THE SHIPS! YOU WIN!"
	statusLossTop       = "YOUR SHIPS WERE ALL DESTROYED! YOU LOSE!"
	statusGameOverBot   = "PRESS S TO RESTART."
	statusTreasure      = "TREASURE FOUND! YOU HAVE 1 MORE MOVE!!"
	statusRestartFailed = "THE ENEMY FLEET COULD NOT BE DEPLOYED!"
)

type Status struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
}

// Placement describes the ship being placed, clamped into the player grid.
type Placement struct {
	Origin     Position            `json:"origin"`
	Length     int                 `json:"length"`
	IsSideways bool                `json:"is_sideways"`
	Valid      bool                `json:"valid"`
	Colour     ShipPlacementColour `json:"colour"`
}

type AITurn struct {
	Target   Position    `json:"target"`
	Result   ShotResult  `json:"result"`
	Outcome  FireOutcome `json:"outcome"`
	GameOver bool        `json:"game_over"`
}

type ShotReport struct {
	Target    Position    `json:"target"`
	Result    ShotResult  `json:"result"`
	Outcome   FireOutcome `json:"outcome"`
	BonusTurn bool        `json:"bonus_turn"`
	GameOver  bool        `json:"game_over"`

	// nil when the computer did not answer this shot
	AITurn *AITurn `json:"ai_turn,omitempty"`
}

// Game sequences a single human versus computer match. All methods run
// to completion synchronously; a Game must only be used from one
// goroutine at a time.
type Game struct {
	uuid            string
	difficulty      int
	state           GameState
	computer        *SelectionGrid
	player          *SelectionGrid
	aiController    Controller
	shipSizes       []int
	placingShip     *Ship
	placingPosition Position
	placingIdx      int
	hasExtraTurn    bool
	debugModeActive bool
	winner          Winner
	status          Status
}

func NewGame(cfg Config, rnd Random) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	computer := NewSelectionGrid(Position{}, GridConfig{
		Width:         cfg.GridWidth,
		Height:        cfg.GridHeight,
		ShipSizes:     cfg.ShipSizes,
		TreasureCount: cfg.TreasureCount,
		AutoPopulate:  true,
	}, rnd)

	player := NewSelectionGrid(Position{X: cfg.GridWidth*CellSize + gridGap}, GridConfig{
		Width:     cfg.GridWidth,
		Height:    cfg.GridHeight,
		ShipSizes: cfg.ShipSizes,
	}, rnd)

	ai, err := NewController(cfg.Difficulty, player, rnd)
	if err != nil {
		return nil, err
	}

	g := &Game{
		difficulty:   cfg.Difficulty,
		computer:     computer,
		player:       player,
		aiController: ai,
		shipSizes:    append([]int(nil), cfg.ShipSizes...),
	}
	if err := g.Restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Uuid() string                 { return g.uuid }
func (g *Game) Difficulty() int              { return g.difficulty }
func (g *Game) State() GameState             { return g.state }
func (g *Game) Winner() Winner               { return g.winner }
func (g *Game) HasExtraTurn() bool           { return g.hasExtraTurn }
func (g *Game) IsDebugActive() bool          { return g.debugModeActive }
func (g *Game) PlayerGrid() *SelectionGrid   { return g.player }
func (g *Game) ComputerGrid() *SelectionGrid { return g.computer }
func (g *Game) AIController() Controller     { return g.aiController }

func (g *Game) ShipSizes() []int {
	return append([]int(nil), g.shipSizes...)
}

func (g *Game) StatusText() (string, string) {
	return g.status.Top, g.status.Bottom
}

func (g *Game) Status() Status {
	return g.status
}

// Length of the ship currently being placed, 0 once all are placed.
func (g *Game) CurrentShipLength() int {
	if g.state != GameStatePlacingShips || g.placingIdx >= len(g.shipSizes) {
		return 0
	}
	return g.shipSizes[g.placingIdx]
}

func (g *Game) ToggleDebug() bool {
	g.debugModeActive = !g.debugModeActive
	return g.debugModeActive
}

func (g *Game) IsComputerFleetVisible() bool {
	return g.debugModeActive || g.computer.ShowShips()
}

// Restart is valid in any state. It resets both grids, repopulates the
// computer side and the AI and goes back to placing ships. When the
// computer fleet cannot be populated the game is left over without a
// winner; only another Restart can revive it.
func (g *Game) Restart() error {
	g.debugModeActive = false
	g.hasExtraTurn = false
	g.winner = WinnerNone
	g.placingIdx = 0
	g.placingPosition = Position{}
	g.placingShip = nil

	if err := g.player.Reset(); err != nil {
		return g.abortRestart(err)
	}
	g.player.SetShowShips(true)
	g.aiController.Reset()

	if err := g.computer.Reset(); err != nil {
		return g.abortRestart(err)
	}

	g.placingShip = NewShip(Position{}, g.player.DrawPosition(Position{}), g.shipSizes[0], true)
	g.updateShipPlacement(g.placingPosition)

	g.status = Status{Top: statusPlacingTop, Bottom: statusPlacingBottom}
	g.state = GameStatePlacingShips
	return nil
}

func (g *Game) abortRestart(err error) error {
	g.state = GameStateGameOver
	g.status = Status{Top: statusRestartFailed, Bottom: statusGameOverBot}
	log.Error("restart failed", "game", g.uuid, "err", err)
	return err
}

// CurrentPlacement is the preview of the ship being placed, zero once
// every ship is placed.
func (g *Game) CurrentPlacement() Placement {
	if g.state != GameStatePlacingShips || g.placingShip == nil {
		return Placement{}
	}
	return Placement{
		Origin:     g.placingPosition,
		Length:     g.placingShip.Length,
		IsSideways: g.placingShip.IsSideways,
		Valid:      g.placingShip.PlacementColour == ShipPlacementColourValid,
		Colour:     g.placingShip.PlacementColour,
	}
}

// Clamps target into the grid, moves the placing ship there and colours
// it by whether it could be placed.
func (g *Game) updateShipPlacement(target Position) Placement {
	clamped := g.player.ClampPlacement(target, g.placingShip.Length, g.placingShip.IsSideways)
	g.placingShip.SetDrawPosition(clamped, g.player.DrawPosition(clamped))
	g.placingPosition = clamped

	valid := g.player.CanPlaceShipAt(clamped.X, clamped.Y, g.placingShip.Length, g.placingShip.IsSideways)
	if valid {
		g.placingShip.SetPlacementColour(ShipPlacementColourValid)
	} else {
		g.placingShip.SetPlacementColour(ShipPlacementColourInvalid)
	}

	return Placement{
		Origin:     clamped,
		Length:     g.placingShip.Length,
		IsSideways: g.placingShip.IsSideways,
		Valid:      valid,
		Colour:     g.placingShip.PlacementColour,
	}
}

func (g *Game) MovePlacingShip(target Position) (Placement, error) {
	if g.state != GameStatePlacingShips {
		return Placement{}, cerr.ErrGameNotPlacing
	}
	return g.updateShipPlacement(target), nil
}

func (g *Game) RotatePlacingShip() (Placement, error) {
	if g.state != GameStatePlacingShips {
		return Placement{}, cerr.ErrGameNotPlacing
	}
	g.placingShip.ToggleSideways()
	return g.updateShipPlacement(g.placingPosition), nil
}

// PlacePlayerShip moves the placing ship to target and locks it in if
// the footprint is valid. After the last ship the game moves on to
// firing shots.
func (g *Game) PlacePlayerShip(target Position) (Placement, error) {
	if g.state != GameStatePlacingShips {
		return Placement{}, cerr.ErrGameNotPlacing
	}

	preview := g.updateShipPlacement(target)
	if !preview.Valid {
		return preview, cerr.ErrShipPlacement(preview.Origin.X, preview.Origin.Y, preview.Length, preview.IsSideways)
	}
	if err := g.player.PlaceShip(g.placingShip, g.placingPosition.X, g.placingPosition.Y); err != nil {
		return preview, err
	}

	placed := preview
	placed.Colour = ShipPlacementColourPlaced
	g.placingIdx++

	if g.placingIdx < len(g.shipSizes) {
		g.placingShip = NewShip(placed.Origin, g.player.DrawPosition(placed.Origin), g.shipSizes[g.placingIdx], true)
		g.updateShipPlacement(g.placingPosition)
		return placed, nil
	}

	g.placingShip = nil
	g.state = GameStateFiringShots
	g.status = Status{Top: statusFiringTop, Bottom: statusFiringBottom}
	log.Info("all player ships placed", "game", g.uuid)
	return placed, nil
}

// HandlePlayerFire fires at the computer grid. Shots at cells that were
// already fired upon are ignored and reported with an error. Unless the
// shot found a treasure or ended the game the computer answers with
// exactly one shot of its own.
func (g *Game) HandlePlayerFire(target Position) (ShotReport, error) {
	if g.state != GameStateFiringShots {
		return ShotReport{}, cerr.ErrGameNotFiring
	}
	if target.X < 0 || target.Y < 0 || target.X >= g.computer.Width() || target.Y >= g.computer.Height() {
		return ShotReport{}, cerr.ErrXorYOutOfGridBound(target.X, target.Y)
	}
	if g.computer.IsPositionMarked(target) {
		return ShotReport{}, cerr.ErrAttackPositionAlreadyFilled(target.X, target.Y)
	}

	report, err := g.doPlayerTurn(target)
	if err != nil {
		return ShotReport{}, err
	}

	if !g.computer.AreAllShipsDestroyed() && !g.hasExtraTurn {
		report.AITurn = g.doAITurn()
		if report.AITurn != nil && report.AITurn.GameOver {
			report.GameOver = true
		}
	}
	g.hasExtraTurn = false

	return report, nil
}

func (g *Game) doPlayerTurn(target Position) (ShotReport, error) {
	hit, err := g.computer.MarkPosition(target)
	if err != nil {
		return ShotReport{}, err
	}

	report := ShotReport{Target: target, Result: ShotResultMiss, Outcome: FireOutcomeMiss}
	parts := make([]string, 0, 3)

	if g.computer.IsTreasureAtPosition(target) {
		g.hasExtraTurn = true
		report.BonusTurn = true
		parts = append(parts, statusTreasure)
	}

	if hit {
		parts = append(parts, "YOU HIT!")
		report.Result, report.Outcome = ShotResultHit, FireOutcomeHit
		if ship, ok := g.computer.ShipAt(target); ok && ship.IsDestroyed() {
			parts = append(parts, "ENEMY'S SHIP HAS SUNK!")
			report.Result, report.Outcome = ShotResultSunk, FireOutcomeSunk
		}
	} else {
		parts = append(parts, "YOU MISSED!")
	}
	g.status.Top = strings.Join(parts, " ")

	if g.computer.AreAllShipsDestroyed() {
		g.endGame(WinnerPlayer)
		report.Outcome = FireOutcomeGameOver
		report.GameOver = true
	}
	return report, nil
}

// A controller that has run out of moves skips its turn.
func (g *Game) doAITurn() *AITurn {
	move, err := g.aiController.SelectMove()
	if err != nil {
		log.Warn("ai could not select a move", "game", g.uuid, "err", err)
		return nil
	}

	hit, err := g.player.MarkPosition(move)
	if err != nil {
		log.Error("ai selected an invalid move", "game", g.uuid, "x", move.X, "y", move.Y, "err", err)
		return nil
	}

	turn := &AITurn{Target: move, Result: ShotResultMiss, Outcome: FireOutcomeMiss}
	bottom := "ENEMY MISSED!"
	if hit {
		turn.Result, turn.Outcome = ShotResultHit, FireOutcomeHit
		bottom = "ENEMY HIT!"
		if ship, ok := g.player.ShipAt(move); ok && ship.IsDestroyed() {
			turn.Result, turn.Outcome = ShotResultSunk, FireOutcomeSunk
			bottom += " YOUR SHIP HAS SUNK!"
		}
	}
	g.status.Bottom = bottom
	g.aiController.NotifyResult(move, turn.Result)

	if g.player.AreAllShipsDestroyed() {
		g.endGame(WinnerComputer)
		turn.Outcome = FireOutcomeGameOver
		turn.GameOver = true
	}
	return turn
}

func (g *Game) endGame(winner Winner) {
	g.state = GameStateGameOver
	g.winner = winner
	g.computer.SetShowShips(true)

	if winner == WinnerPlayer {
		g.status = Status{Top: statusWinTop, Bottom: statusGameOverBot}
	} else {
		g.status = Status{Top: statusLossTop, Bottom: statusGameOverBot}
	}
	log.Info("game over", "game", g.uuid, "winner", winner)
}
