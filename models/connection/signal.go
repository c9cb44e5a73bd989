package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame

	// Live feedback while the player moves the ship being placed
	CodeMovePlacingShip
	CodeRotateShip
	CodePlaceShip

	// Sent once every player ship is placed
	CodeStartFiring
	CodeFire
	CodeEndGame

	// Valid in any game state
	CodeRestart
	CodeToggleDebug
	CodeGameStatus

	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
