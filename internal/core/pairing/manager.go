package pairing

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/odiabiz/odiabiz-api/internal/shared/utils"
)

// Manager owns the live pairing sessions. Sessions are ephemeral and never
// persisted; a restart simply forces users to pair again.
type Manager struct {
	oracle      StatusOracle
	opts        Options
	onConnected func(accountID uuid.UUID)

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewManager(oracle StatusOracle, opts Options, onConnected func(uuid.UUID)) *Manager {
	return &Manager{
		oracle:      oracle,
		opts:        opts,
		onConnected: onConnected,
		sessions:    make(map[uuid.UUID]*Session),
	}
}

// StartSession creates and starts a pairing session for an account. An
// account can only have one live session; starting again replaces it.
func (m *Manager) StartSession(accountID uuid.UUID) *Session {
	session := newSession(accountID, m.oracle, m.opts, m.onConnected)

	m.mu.Lock()
	for id, existing := range m.sessions {
		if existing.AccountID == accountID {
			existing.Stop()
			delete(m.sessions, id)
		}
	}
	m.sessions[session.ID] = session
	m.mu.Unlock()

	session.Start()
	return session
}

// Get returns the session by ID.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// QRPNG renders the session's connection URI as a PNG for the scan screen.
func (m *Manager) QRPNG(id uuid.UUID) ([]byte, error) {
	session, ok := m.Get(id)
	if !ok {
		return nil, fmt.Errorf("pairing session not found")
	}

	uri := session.connectionURI()
	if uri == "" {
		return nil, fmt.Errorf("session is not awaiting scan (state: %s)", session.State())
	}
	return qrcode.Encode(uri, qrcode.Medium, 256)
}

// SweepExpired drops sessions that have sat in EXPIRED longer than maxAge.
// Run from the scheduler; keeps the map from growing unbounded.
func (m *Manager) SweepExpired(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		session.mu.Lock()
		stale := session.state == StateExpired && session.expiredAt.Before(cutoff)
		session.mu.Unlock()

		if stale {
			session.Stop()
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		utils.LogInfo("swept expired pairing sessions", map[string]interface{}{
			"removed": removed,
		})
	}
	return removed
}
