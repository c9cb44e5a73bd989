package api_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-ai/api"
	"github.com/saeidalz13/battleship-ai/db/sqlc"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
	"github.com/stretchr/testify/require"
)

var (
	testWsUrl          string
	testMock           sqlmock.Sqlmock
	testGameManager    *mb.BattleshipGameManager
	testSessionManager *mc.BattleshipSessionManager
	dialer             = websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
)

func TestMain(m *testing.M) {
	log.SetLevel(log.WarnLevel)

	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatal("sqlmock", "err", err)
	}
	testMock = mock

	testSessionManager = mc.NewBattleshipSessionManager(mc.WithGracePeriod(time.Millisecond * 100))
	testGameManager = mb.NewBattleshipGameManager()

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", api.NewRequestProcessor(testSessionManager, testGameManager, sqlc.New(db)))
	server := httptest.NewServer(mux)
	testWsUrl = "ws" + strings.TrimPrefix(server.URL, "http") + "/battleship"

	code := m.Run()
	db.Close()
	os.Exit(code)
}

func dial(t *testing.T) (*websocket.Conn, string) {
	t.Helper()

	conn, _, err := dialer.Dial(testWsUrl, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	resp := read[mc.RespSessionId](t, conn)
	require.Equal(t, mc.CodeSessionID, resp.Code)
	require.NotEmpty(t, resp.Payload.SessionID)
	return conn, resp.Payload.SessionID
}

func send[T any](t *testing.T, conn *websocket.Conn, code uint8, payload T) {
	t.Helper()

	msg := mc.NewMessage[T](code)
	msg.AddPayload(payload)
	require.NoError(t, conn.WriteJSON(msg))
}

func read[T any](t *testing.T, conn *websocket.Conn) mc.Message[T] {
	t.Helper()

	var msg mc.Message[T]
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func createGame(t *testing.T, conn *websocket.Conn, difficulty int) *mb.Game {
	t.Helper()

	testMock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, games_created\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	send(t, conn, mc.CodeCreateGame, mc.ReqCreateGame{GameDifficulty: uint8(difficulty)})
	resp := read[mc.RespCreateGame](t, conn)
	require.Equal(t, mc.CodeCreateGame, resp.Code)
	require.Nil(t, resp.Error)
	require.NoError(t, testMock.ExpectationsWereMet())

	game, err := testGameManager.GetGame(resp.Payload.GameUuid)
	require.NoError(t, err)
	return game
}

func TestInvalidCode(t *testing.T) {
	conn, _ := dial(t)

	tests := []struct {
		name         string
		raw          []byte
		expectedCode uint8
	}{
		{name: "unknown code", raw: []byte(`{"code":200}`), expectedCode: mc.CodeInvalidSignal},
		{name: "not json", raw: []byte(`hello`), expectedCode: mc.CodeSignalAbsent},
		{name: "server only code", raw: []byte(`{"code":0}`), expectedCode: mc.CodeInvalidSignal},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, test.raw))

			resp := read[mc.NoPayload](t, conn)
			if resp.Code != test.expectedCode {
				t.Fatalf("expected code: %d\t got: %d", test.expectedCode, resp.Code)
			}
			require.NotNil(t, resp.Error)
		})
	}
}

func TestRequestsWithoutGame(t *testing.T) {
	conn, _ := dial(t)

	tests := []struct {
		name string
		code uint8
	}{
		{name: "move", code: mc.CodeMovePlacingShip},
		{name: "rotate", code: mc.CodeRotateShip},
		{name: "place", code: mc.CodePlaceShip},
		{name: "fire", code: mc.CodeFire},
		{name: "restart", code: mc.CodeRestart},
		{name: "debug", code: mc.CodeToggleDebug},
		{name: "status", code: mc.CodeGameStatus},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			send(t, conn, test.code, mc.ReqCoordinates{})
			resp := read[mc.NoPayload](t, conn)
			require.Equal(t, test.code, resp.Code)
			require.NotNil(t, resp.Error)
			require.Contains(t, resp.Error.ErrorDetails, "session has no game")
			require.Nil(t, resp.Payload)
		})
	}
}

func TestCreateGame(t *testing.T) {
	conn, _ := dial(t)

	send(t, conn, mc.CodeCreateGame, mc.ReqCreateGame{GameDifficulty: 9})
	resp := read[mc.RespCreateGame](t, conn)
	require.NotNil(t, resp.Error)
	require.Nil(t, resp.Payload)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"code":2}`)))
	absent := read[mc.RespCreateGame](t, conn)
	require.Equal(t, mc.CodeCreateGame, absent.Code)
	require.NotNil(t, absent.Error)
	require.Contains(t, absent.Error.ErrorDetails, "request payload is missing")
	require.Nil(t, absent.Payload)

	game := createGame(t, conn, mb.GameDifficultyNormal)
	require.Equal(t, mb.GameDifficultyNormal, game.Difficulty())
	require.Equal(t, mb.GameStatePlacingShips, game.State())

	// A second game replaces the first one
	second := createGame(t, conn, mb.GameDifficultyEasy)
	_, err := testGameManager.GetGame(game.Uuid())
	require.Error(t, err)
	require.NotEqual(t, game.Uuid(), second.Uuid())
}

func TestShipPlacement(t *testing.T) {
	conn, _ := dial(t)
	createGame(t, conn, mb.GameDifficultyEasy)

	send(t, conn, mc.CodeMovePlacingShip, mc.ReqCoordinates{X: 9, Y: 9})
	move := read[mc.RespPlacement](t, conn)
	require.Nil(t, move.Error)
	require.Equal(t, mb.Position{X: 5, Y: 9}, move.Payload.Placement.Origin)
	require.Equal(t, 5, move.Payload.NextShipLength)

	send(t, conn, mc.CodeRotateShip, mc.NoPayload(false))
	rotate := read[mc.RespPlacement](t, conn)
	require.Nil(t, rotate.Error)
	require.False(t, rotate.Payload.Placement.IsSideways)

	send(t, conn, mc.CodePlaceShip, mc.ReqCoordinates{X: 0, Y: 0})
	place := read[mc.RespPlacement](t, conn)
	require.Nil(t, place.Error)
	require.Equal(t, mb.ShipPlacementColourPlaced, place.Payload.Placement.Colour)
	require.Equal(t, 4, place.Payload.NextShipLength)

	// Overlaps the vertical ship at the origin
	send(t, conn, mc.CodePlaceShip, mc.ReqCoordinates{X: 0, Y: 2})
	invalid := read[mc.RespPlacement](t, conn)
	require.NotNil(t, invalid.Error)
	require.False(t, invalid.Payload.Placement.Valid)
	require.Equal(t, 4, invalid.Payload.NextShipLength)
}

func TestFullGame(t *testing.T) {
	conn, _ := dial(t)
	game := createGame(t, conn, mb.GameDifficultyHard)

	for i, size := range mb.DefaultShipSizes {
		send(t, conn, mc.CodePlaceShip, mc.ReqCoordinates{X: 0, Y: 2 * i})
		resp := read[mc.RespPlacement](t, conn)
		require.Nil(t, resp.Error, "ship of size %d", size)
	}

	start := read[mc.RespGameStatus](t, conn)
	require.Equal(t, mc.CodeStartFiring, start.Code)
	require.Equal(t, "firing_shots", start.Payload.State)

	var cells []mb.Position
	for _, ship := range game.ComputerGrid().Ships() {
		cells = append(cells, ship.OccupiedCells()...)
	}

	testMock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, player_wins\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	var last mc.Message[mc.RespFire]
	for _, cell := range cells {
		send(t, conn, mc.CodeFire, mc.ReqCoordinates{X: cell.X, Y: cell.Y})
		last = read[mc.RespFire](t, conn)
		require.Nil(t, last.Error)
		require.NotEqual(t, mb.ShotResultMiss, last.Payload.Report.Result)
	}
	require.True(t, last.Payload.Report.GameOver)

	end := read[mc.RespEndGame](t, conn)
	require.Equal(t, mc.CodeEndGame, end.Code)
	require.True(t, end.Payload.PlayerWon)
	require.Equal(t, "player", end.Payload.Winner)
	require.NoError(t, testMock.ExpectationsWereMet())

	send(t, conn, mc.CodeFire, mc.ReqCoordinates{X: 0, Y: 0})
	afterEnd := read[mc.RespFire](t, conn)
	require.NotNil(t, afterEnd.Error)

	send(t, conn, mc.CodeToggleDebug, mc.NoPayload(false))
	debug := read[mc.RespDebug](t, conn)
	require.True(t, debug.Payload.Active)
	require.Len(t, debug.Payload.ComputerShips, len(mb.DefaultShipSizes))

	testMock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, restarts_called\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	send(t, conn, mc.CodeRestart, mc.NoPayload(false))
	restart := read[mc.RespGameStatus](t, conn)
	require.Nil(t, restart.Error)
	require.Equal(t, "placing_ships", restart.Payload.State)
	require.False(t, restart.Payload.DebugActive)
	require.NoError(t, testMock.ExpectationsWereMet())

	send(t, conn, mc.CodeGameStatus, mc.NoPayload(false))
	status := read[mc.RespGameStatus](t, conn)
	require.Equal(t, game.Uuid(), status.Payload.GameUuid)
	require.Equal(t, 5, status.Payload.CurrentShipLength)
	require.Equal(t, "PLACE YOUR SHIPS BELOW!", status.Payload.Status.Top)
}
