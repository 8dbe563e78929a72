package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const defaultCleanupInterval time.Duration = time.Minute * 20

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	TerminateSession(sessionId string)
	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	Broadcast(senderSessionId string, msg interface{}, msgType uint8)
	CleanupPeriodically(ctx context.Context)
	FetchCodeFromMsg(payload []byte) (uint8, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func NewBattleshipSessionManager() *BattleshipSessionManager {
	initMapSize := 10

	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: defaultCleanupInterval,
	}
}

func (bsm *BattleshipSessionManager) WithCleanupInterval(interval time.Duration) *BattleshipSessionManager {
	bsm.cleanupInterval = interval
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

func (bsm *BattleshipSessionManager) SessionCount() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
	log.Printf("session terminated: %s\n", sessionId)
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	return session.writeToConnWithRetry(msg, msgType)
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		default:
			return -1, []byte{}, err
		}
	}
}

// Sends msg to every open session except the sender.
// An empty senderSessionId reaches all of them. Receivers are written
// in parallel with a single attempt each; a receiver that fails or
// times out is closed and terminated.
func (bsm *BattleshipSessionManager) Broadcast(senderSessionId string, msg interface{}, msgType uint8) {
	bsm.mu.RLock()
	receivers := make([]*Session, 0, len(bsm.sessions))
	for id, session := range bsm.sessions {
		if id != senderSessionId {
			receivers = append(receivers, session)
		}
	}
	bsm.mu.RUnlock()

	var wg sync.WaitGroup
	for _, receiver := range receivers {
		wg.Add(1)
		go func(receiver *Session) {
			defer wg.Done()
			if err := receiver.writeToConnOnce(msg, msgType, broadcastWriteTimeout); err != nil {
				log.Printf("broadcast to session %s failed: %s\n", receiver.id, err)
				receiver.conn.Close()
				bsm.TerminateSession(receiver.id)
			}
		}(receiver)
	}
	wg.Wait()
}

// To ensure that there is no dangling connections,
// sessions living longer than the cleanup interval
// are closed and removed.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	assumedClosedConns := 10

	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		bsm.mu.Lock()
		toDelete := make([]string, 0, assumedClosedConns)

		for ID, session := range bsm.sessions {
			if time.Since(session.createdAt) > bsm.cleanupInterval {
				toDelete = append(toDelete, ID)
			}
		}

		for _, ID := range toDelete {
			bsm.sessions[ID].conn.Close()
			delete(bsm.sessions, ID)
			log.Printf("stale session removed: %s", ID)
		}
		bsm.mu.Unlock()
	}
}

// FetchCodeFromMsg reads the signal code of an incoming frame.
// Frames that are not JSON return an error.
func (bsm *BattleshipSessionManager) FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}

	return signal.Code, nil
}
