package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed    = "attack operation failed"
	ConstErrPlacementFailed = "ship placement failed"
)

var (
	ErrPlacement      = errors.New("ship cannot be placed at this position")
	ErrDoubleFire     = errors.New("position already fired upon")
	ErrOutOfGridBound = errors.New("position is out of grid bound")
	ErrNoLegalMove    = errors.New("no legal move left")
	ErrInvalidConfig  = errors.New("invalid game configuration")
	ErrPopulateFailed = errors.New("failed to populate ships")
	ErrGameNotPlacing = errors.New("game is not in ship placement phase")
	ErrGameNotFiring  = errors.New("game is not in firing phase")
	ErrNoGame         = errors.New("session has no game")
	ErrPayloadAbsent  = errors.New("request payload is missing")
)

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game with this uuid is nil, uuid: %s", gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrOutOfGridBound, x, y)
}

func ErrShipPlacement(x, y, length int, isSideways bool) error {
	return fmt.Errorf("%w\tx: %d\ty: %d\tlength: %d\tsideways: %t", ErrPlacement, x, y, length, isSideways)
}

func ErrAttackPositionAlreadyFilled(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrDoubleFire, x, y)
}

func ErrInvalidGameDifficulty(difficulty int) error {
	return fmt.Errorf("%w: difficulty must be 0, 1 or 2, got %d", ErrInvalidConfig, difficulty)
}

func ErrInvalidGridSize(width, height int) error {
	return fmt.Errorf("%w: grid size must be positive, got %dx%d", ErrInvalidConfig, width, height)
}

func ErrInvalidShipSizes(reason string) error {
	return fmt.Errorf("%w: ship sizes %s", ErrInvalidConfig, reason)
}

func ErrInvalidTreasureCount(count int) error {
	return fmt.Errorf("%w: treasure count must not be negative, got %d", ErrInvalidConfig, count)
}

func ErrPopulateBudgetExhausted(budget int) error {
	return fmt.Errorf("%w: search budget of %d placements exhausted", ErrPopulateFailed, budget)
}
