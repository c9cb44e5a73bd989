package battleship

import (
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type GameManager interface {
	CreateGame(difficulty uint8) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	Count() int

	isDifficultyValid(uint8) bool
}

type BattleshipGameManager struct {
	games map[string]*Game
	mu    sync.RWMutex

	shipSizes     []int
	gridWidth     int
	gridHeight    int
	treasureCount int
	newRandom     func() Random
}

var _ GameManager = (*BattleshipGameManager)(nil)

type GameManagerOption func(*BattleshipGameManager)

func WithShipSizes(sizes ...int) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.shipSizes = append([]int(nil), sizes...)
	}
}

func WithGridSize(width, height int) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.gridWidth = width
		bgm.gridHeight = height
	}
}

func WithTreasureCount(count int) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.treasureCount = count
	}
}

// Every created game gets its own source from newRandom.
func WithRandSource(newRandom func() Random) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.newRandom = newRandom
	}
}

func NewBattleshipGameManager(opts ...GameManagerOption) *BattleshipGameManager {
	bgm := &BattleshipGameManager{
		games:         make(map[string]*Game, 10),
		shipSizes:     append([]int(nil), DefaultShipSizes...),
		gridWidth:     GridWidth,
		gridHeight:    GridHeight,
		treasureCount: DefaultTreasureCount,
		newRandom:     func() Random { return NewTimeSeededRandom() },
	}
	for _, opt := range opts {
		opt(bgm)
	}
	return bgm
}

func (bgm *BattleshipGameManager) config(difficulty uint8) Config {
	return Config{
		Difficulty:    int(difficulty),
		ShipSizes:     bgm.shipSizes,
		GridWidth:     bgm.gridWidth,
		GridHeight:    bgm.gridHeight,
		TreasureCount: bgm.treasureCount,
	}
}

func (bgm *BattleshipGameManager) CreateGame(difficulty uint8) (*Game, error) {
	if !bgm.isDifficultyValid(difficulty) {
		return nil, cerr.ErrInvalidGameDifficulty(int(difficulty))
	}

	game, err := NewGame(bgm.config(difficulty), bgm.newRandom())
	if err != nil {
		return nil, err
	}
	game.uuid = uuid.NewString()[:6]

	bgm.mu.Lock()
	bgm.games[game.uuid] = game
	bgm.mu.Unlock()

	return game, nil
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}
	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) Count() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}

func (bgm *BattleshipGameManager) isDifficultyValid(difficulty uint8) bool {
	return !(int(difficulty) != GameDifficultyEasy && int(difficulty) != GameDifficultyNormal && int(difficulty) != GameDifficultyHard)
}
