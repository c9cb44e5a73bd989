package api

import (
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
)

type RequestHandler interface {
	HandleCreateGame(gm mb.GameManager, current *mb.Game) (*mb.Game, mc.Message[mc.RespCreateGame])
	HandleMovePlacingShip(game *mb.Game) mc.Message[mc.RespPlacement]
	HandleRotateShip(game *mb.Game) mc.Message[mc.RespPlacement]
	HandlePlaceShip(game *mb.Game) mc.Message[mc.RespPlacement]
	HandleFire(game *mb.Game) mc.Message[mc.RespFire]
	HandleRestart(game *mb.Game) mc.Message[mc.RespGameStatus]
	HandleToggleDebug(game *mb.Game) mc.Message[mc.RespDebug]
	HandleGameStatus(game *mb.Game) mc.Message[mc.RespGameStatus]
}

// Every incoming valid request has this structure. The payload is the
// raw message read from the session connection.
type Request struct {
	payload []byte
}

var _ RequestHandler = Request{}

func NewRequest(payload ...[]byte) Request {
	if len(payload) == 0 {
		return Request{}
	}
	return Request{payload: payload[0]}
}

// Creating a game while one is running replaces it; the old game is
// dropped from the manager.
func (r Request) HandleCreateGame(gm mb.GameManager, current *mb.Game) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	var req mc.Message[mc.ReqCreateGame]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		return current, mc.NewErrorMessage[mc.RespCreateGame](mc.CodeCreateGame, err, "failed to unmarshal create game request")
	}
	if req.Payload == nil {
		return current, mc.NewErrorMessage[mc.RespCreateGame](mc.CodeCreateGame, cerr.ErrPayloadAbsent, "game_difficulty is required")
	}

	game, err := gm.CreateGame(req.Payload.GameDifficulty)
	if err != nil {
		return current, mc.NewErrorMessage[mc.RespCreateGame](mc.CodeCreateGame, err, "failed to create game")
	}
	if current != nil {
		gm.TerminateGame(current.Uuid())
	}
	log.Info("game created", "game", game.Uuid(), "difficulty", game.Difficulty())

	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
	resp.AddPayload(mc.RespCreateGame{
		GameUuid:   game.Uuid(),
		Difficulty: game.Difficulty(),
		GridWidth:  game.PlayerGrid().Width(),
		GridHeight: game.PlayerGrid().Height(),
		ShipSizes:  game.ShipSizes(),
		Placement:  game.CurrentPlacement(),
		Status:     game.Status(),
	})
	return game, resp
}

func (r Request) coordinates() (mb.Position, error) {
	var req mc.Message[mc.ReqCoordinates]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		return mb.Position{}, err
	}
	if req.Payload == nil {
		return mb.Position{}, cerr.ErrPayloadAbsent
	}
	return mb.NewPosition(req.Payload.X, req.Payload.Y), nil
}

func (r Request) placementResponse(code uint8, game *mb.Game, placement mb.Placement) mc.Message[mc.RespPlacement] {
	resp := mc.NewMessage[mc.RespPlacement](code)
	resp.AddPayload(mc.RespPlacement{
		Placement:      placement,
		NextShipLength: game.CurrentShipLength(),
		Status:         game.Status(),
	})
	return resp
}

func (r Request) HandleMovePlacingShip(game *mb.Game) mc.Message[mc.RespPlacement] {
	if game == nil {
		return mc.NewErrorMessage[mc.RespPlacement](mc.CodeMovePlacingShip, cerr.ErrNoGame, "create a game first")
	}
	target, err := r.coordinates()
	if err != nil {
		return mc.NewErrorMessage[mc.RespPlacement](mc.CodeMovePlacingShip, err, "failed to unmarshal coordinates")
	}

	placement, err := game.MovePlacingShip(target)
	if err != nil {
		return mc.NewErrorMessage[mc.RespPlacement](mc.CodeMovePlacingShip, err, cerr.ConstErrPlacementFailed)
	}
	return r.placementResponse(mc.CodeMovePlacingShip, game, placement)
}

func (r Request) HandleRotateShip(game *mb.Game) mc.Message[mc.RespPlacement] {
	if game == nil {
		return mc.NewErrorMessage[mc.RespPlacement](mc.CodeRotateShip, cerr.ErrNoGame, "create a game first")
	}

	placement, err := game.RotatePlacingShip()
	if err != nil {
		return mc.NewErrorMessage[mc.RespPlacement](mc.CodeRotateShip, err, cerr.ConstErrPlacementFailed)
	}
	return r.placementResponse(mc.CodeRotateShip, game, placement)
}

// An invalid footprint is reported with the clamped preview so the
// client can keep showing the ship in its invalid colour.
func (r Request) HandlePlaceShip(game *mb.Game) mc.Message[mc.RespPlacement] {
	if game == nil {
		return mc.NewErrorMessage[mc.RespPlacement](mc.CodePlaceShip, cerr.ErrNoGame, "create a game first")
	}
	target, err := r.coordinates()
	if err != nil {
		return mc.NewErrorMessage[mc.RespPlacement](mc.CodePlaceShip, err, "failed to unmarshal coordinates")
	}

	placement, err := game.PlacePlayerShip(target)
	resp := r.placementResponse(mc.CodePlaceShip, game, placement)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrPlacementFailed)
	}
	return resp
}

func (r Request) HandleFire(game *mb.Game) mc.Message[mc.RespFire] {
	if game == nil {
		return mc.NewErrorMessage[mc.RespFire](mc.CodeFire, cerr.ErrNoGame, "create a game first")
	}
	target, err := r.coordinates()
	if err != nil {
		return mc.NewErrorMessage[mc.RespFire](mc.CodeFire, err, "failed to unmarshal coordinates")
	}

	report, err := game.HandlePlayerFire(target)
	if err != nil {
		message := cerr.ConstErrAttackFailed
		if errors.Is(err, cerr.ErrDoubleFire) {
			message = "this position was already fired upon"
		}
		return mc.NewErrorMessage[mc.RespFire](mc.CodeFire, err, message)
	}

	resp := mc.NewMessage[mc.RespFire](mc.CodeFire)
	resp.AddPayload(mc.RespFire{Report: report, Status: game.Status()})
	return resp
}

func (r Request) HandleRestart(game *mb.Game) mc.Message[mc.RespGameStatus] {
	if game == nil {
		return mc.NewErrorMessage[mc.RespGameStatus](mc.CodeRestart, cerr.ErrNoGame, "create a game first")
	}
	if err := game.Restart(); err != nil {
		return mc.NewErrorMessage[mc.RespGameStatus](mc.CodeRestart, err, "failed to restart game")
	}
	log.Info("game restarted", "game", game.Uuid())

	resp := mc.NewMessage[mc.RespGameStatus](mc.CodeRestart)
	resp.AddPayload(NewRespGameStatus(game))
	return resp
}

func (r Request) HandleToggleDebug(game *mb.Game) mc.Message[mc.RespDebug] {
	if game == nil {
		return mc.NewErrorMessage[mc.RespDebug](mc.CodeToggleDebug, cerr.ErrNoGame, "create a game first")
	}

	active := game.ToggleDebug()
	payload := mc.RespDebug{Active: active}
	if game.IsComputerFleetVisible() {
		payload.ComputerShips = mc.NewRespShips(game.ComputerGrid().Ships())
	}

	resp := mc.NewMessage[mc.RespDebug](mc.CodeToggleDebug)
	resp.AddPayload(payload)
	return resp
}

func (r Request) HandleGameStatus(game *mb.Game) mc.Message[mc.RespGameStatus] {
	if game == nil {
		return mc.NewErrorMessage[mc.RespGameStatus](mc.CodeGameStatus, cerr.ErrNoGame, "create a game first")
	}

	resp := mc.NewMessage[mc.RespGameStatus](mc.CodeGameStatus)
	resp.AddPayload(NewRespGameStatus(game))
	return resp
}

func NewRespGameStatus(game *mb.Game) mc.RespGameStatus {
	return mc.RespGameStatus{
		GameUuid:          game.Uuid(),
		State:             game.State().String(),
		Winner:            game.Winner().String(),
		CurrentShipLength: game.CurrentShipLength(),
		DebugActive:       game.IsDebugActive(),
		Status:            game.Status(),
	}
}

func NewRespEndGame(game *mb.Game) mc.RespEndGame {
	return mc.RespEndGame{
		Winner:    game.Winner().String(),
		PlayerWon: game.Winner() == mb.WinnerPlayer,
		Status:    game.Status(),
	}
}
