package connection

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const (
	defaultCleanupInterval time.Duration = time.Minute * 20
	defaultGracePeriod     time.Duration = time.Minute * 2
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically()

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn)
	HandleAbnormalClosureSession(session *Session) error
	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	Count() int
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	gracePeriod     time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

type SessionManagerOption func(*BattleshipSessionManager)

func WithGracePeriod(d time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.gracePeriod = d
	}
}

func WithCleanupInterval(d time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = d
	}
}

func NewBattleshipSessionManager(opts ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: defaultCleanupInterval,
		gracePeriod:     defaultGracePeriod,
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
	log.Info("session terminated", "session", sessionId)
}

// ReconnectSession hands a new connection to a session that lost its
// previous one. Unknown ids get an invalid session message and the
// connection is closed.
func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		_ = conn.WriteJSON(NewMessage[NoPayload](CodeReceivedInvalidSessionID))
		_ = conn.Close()
		return
	}

	session.reconnectionAfterAbnormalClosure(conn)
	log.Info("session reconnected", "session", sessionId, "remote", conn.RemoteAddr().String())
}

func (bsm *BattleshipSessionManager) Count() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// To ensure that there is no dangling connections, sessions without any
// read or write for longer than the cleanup interval are considered
// stale and deleted.
func (bsm *BattleshipSessionManager) CleanupPeriodically() {
	for {
		time.Sleep(bsm.cleanupInterval)

		removed := bsm.removeInactiveSessions(time.Now())
		log.Info("clean up sessions", "removed", removed)
	}
}

func (bsm *BattleshipSessionManager) removeInactiveSessions(now time.Time) int {
	assumedClosedConns := 10
	toDelete := make([]string, 0, assumedClosedConns)

	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	for id, session := range bsm.sessions {
		if now.Sub(session.LastActivity()) > bsm.cleanupInterval {
			toDelete = append(toDelete, id)
		}
	}

	for _, id := range toDelete {
		delete(bsm.sessions, id)
	}
	return len(toDelete)
}

// This function takes care of abnormal closures (backgrounded mobile
// clients, flaky networks). The session waits for the client to come
// back with its session id until the grace period is over.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session) error {
	// Nothing worth waiting for without a game
	if s.game == nil {
		return NewConnErr(ConnLoopBreak).AddDesc("session has no game")
	}

	reconnected := s.reconnectionSignal()
	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	log.Info("starting grace period", "session", s.id, "grace", bsm.gracePeriod)
	select {
	case <-timer.C:
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)

	case <-reconnected:
		log.Info("player reconnected", "session", s.id)
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	var connErr ConnErr
	if !errors.As(err, &connErr) {
		return err
	}

	switch connErr.Code() {
	case ConnLoopAbnormalClosureRetry:
		if err := bsm.HandleAbnormalClosureSession(session); err != nil {
			return err
		}
		// The client came back; deliver on the new connection
		return session.writeToConnWithRetry(msg, msgType)

	default:
		return connErr
	}
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.Conn().ReadMessage()
		if err == nil {
			session.touch()
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return -1, nil, err
			}
			retries = 0

		default:
			return -1, nil, err
		}
	}
}

func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}

	return signal.Code, nil
}
