package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-ai/db/sqlc"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
	"github.com/sqlc-dev/pqtype"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var (
	upgrader = websocket.Upgrader{
		HandshakeTimeout: time.Second * 5,
		ReadBufferSize:   2048,
		WriteBufferSize:  2048,
		CheckOrigin:      func(r *http.Request) bool { return true },
	}

	loopbackIpNet = net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(8, 32)}
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	ipnet          net.IPNet
}

// NewRequestProcessor accepts a nil querier, in which case nothing is
// recorded to the analytics table.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	q sqlc.Querier,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      sqlc.NewAnalyticsManager(q),
		ipnet:          findServerIpNet(),
	}
}

// The first non-loopback IPv4 of an interface that is up. Falls back to
// the loopback network when the host has none.
func findServerIpNet() net.IPNet {
	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warn("failed to list network interfaces", "err", err)
		return loopbackIpNet
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}

	log.Warn("no external ipv4 found, using loopback for analytics")
	return loopbackIpNet
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		log.Error("failed to upgrade connection", "remote", r.RemoteAddr, "err", err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Info("a new connection established", "remote", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		rp.sessionManager.ReconnectSession(sessionIdQuery, conn)
	}
}

// Analytics failures never end a game; they are only logged.
func (rp RequestProcessor) record(name string, fn func(ctx context.Context, ipnet pqtype.Inet) error) {
	if !rp.analytics.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := fn(ctx, pqtype.Inet{IPNet: rp.ipnet, Valid: true}); err != nil {
		log.Warn("failed to record analytics", "counter", name, "err", err)
	}
}

func (rp RequestProcessor) recordGameOver(game *mb.Game) {
	playerWon := game.Winner() == mb.WinnerPlayer
	rp.record("wins", func(ctx context.Context, ipnet pqtype.Inet) error {
		return rp.analytics.IncrementWinsCount(ctx, ipnet, playerWon)
	})
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		if game := session.Game(); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		if conn := session.Conn(); conn != nil {
			_ = conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// Retries and the grace period are already exhausted here
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), "incoming req payload must contain 'code' field")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		req := NewRequest(payload)
		game := session.Game()

		switch code {
		case mc.CodeCreateGame:
			newGame, respMsg := req.HandleCreateGame(rp.gameManager, game)
			session.SetGame(newGame)
			if respMsg.Error == nil {
				rp.record("games_created", rp.analytics.IncrementGamesCreatedCount)
			}
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeMovePlacingShip:
			if err := rp.sessionManager.WriteToSessionConn(session, req.HandleMovePlacingShip(game), mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeRotateShip:
			if err := rp.sessionManager.WriteToSessionConn(session, req.HandleRotateShip(game), mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// Once the last ship is locked in, the client is told that
		// firing has started
		case mc.CodePlaceShip:
			respMsg := req.HandlePlaceShip(game)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if respMsg.Error == nil && game.State() == mb.GameStateFiringShots {
				respStart := mc.NewMessage[mc.RespGameStatus](mc.CodeStartFiring)
				respStart.AddPayload(NewRespGameStatus(game))
				if err := rp.sessionManager.WriteToSessionConn(session, respStart, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeFire:
			respMsg := req.HandleFire(game)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if respMsg.Error == nil && respMsg.Payload.Report.GameOver {
				rp.recordGameOver(game)

				respEnd := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
				respEnd.AddPayload(NewRespEndGame(game))
				if err := rp.sessionManager.WriteToSessionConn(session, respEnd, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeRestart:
			respMsg := req.HandleRestart(game)
			if respMsg.Error == nil {
				rp.record("restarts_called", rp.analytics.IncrementRestartsCalledCount)
			}
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeToggleDebug:
			if err := rp.sessionManager.WriteToSessionConn(session, req.HandleToggleDebug(game), mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeGameStatus:
			if err := rp.sessionManager.WriteToSessionConn(session, req.HandleGameStatus(game), mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}
