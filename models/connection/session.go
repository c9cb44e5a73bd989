package connection

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnectionAfterAbnormalClosure(conn *websocket.Conn)
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session binds one websocket connection to at most one game against
// the computer. The game is only touched from the session read loop.
//
// reconnectionSignalChan holds at most one pending reconnection, so a
// client that comes back before the drop is noticed is not missed.
type Session struct {
	id                     string
	conn                   *websocket.Conn
	game                   *mb.Game
	reconnectionSignalChan chan struct{}
	createdAt              time.Time
	lastActivity           time.Time
	mu                     sync.Mutex
}

func NewSession(id string, conn *websocket.Conn) *Session {
	now := time.Now()
	return &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan struct{}, 1),
		createdAt:              now,
		lastActivity:           now,
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *Session) Game() *mb.Game {
	return s.game
}

func (s *Session) SetGame(game *mb.Game) {
	s.game = game
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Session) reconnectionSignal() <-chan struct{} {
	return s.reconnectionSignalChan
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Warn("timeout error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Warn("high server load/traffic error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	// Happens if a mobile client goes to background
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Warn("abnormal closure error", "session", s.id, "err", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Info("close error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Error("critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	/*
		Most likely the client is not ours (binary frames, invalid utf-8
		text, oversized messages). Breaking instead of retrying so that
		invalid payloads cannot keep the server busy.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Warn("non-critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	log.Error("unexpected error", "session", s.id, "err", err)
	return ConnLoopBreak
}

// Writes to the connection of that session. Timeouts are retried with a
// linear back off; anything else is reported to the caller as ConnErr.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8

	for {
		conn := s.Conn()
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			s.touch()
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				log.Warn("writing to ws failed; retrying", "remote", conn.RemoteAddr().String(), "retry", retries)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue
			}
			log.Error("max retries reached for writing to ws", "remote", conn.RemoteAddr().String(), "err", err)
			return NewConnErr(ConnLoopBreak).WithCause(err)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry).WithCause(err)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop").WithCause(err)
		}
	}
}

// Handles the errors that occur when reading from the ws connection.
// ConnLoopBreak ends the session read loop.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries < maxWriteWsRetries {
			log.Warn("failed to read from ws conn; retrying", "session", s.id, "retry", retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		log.Info("break ws conn loop", "session", s.id, "err", err)
		return ConnLoopBreak
	}
}

func (s *Session) reconnectionAfterAbnormalClosure(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.lastActivity = time.Now()
	s.mu.Unlock()

	// Non blocking: one pending signal is enough
	select {
	case s.reconnectionSignalChan <- struct{}{}:
	default:
	}
}

var _ ConnectionHandler = (*Session)(nil)
