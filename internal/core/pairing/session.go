// Package pairing drives the WhatsApp device-linking workflow: token
// generation, a polled connection oracle, and the hand-off to the
// dashboard once the device is linked.
package pairing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/odiabiz/odiabiz-api/internal/shared/utils"
)

// State of a pairing session. Transitions only move forward:
// GENERATING -> AWAITING_SCAN -> CONNECTED, with EXPIRED reachable from
// either non-terminal state. Only an explicit regenerate re-enters
// GENERATING.
type State string

const (
	StateGenerating   State = "GENERATING"
	StateAwaitingScan State = "AWAITING_SCAN"
	StateConnected    State = "CONNECTED"
	StateExpired      State = "EXPIRED"
)

// StatusOracle answers whether a pairing token has been linked on the
// WhatsApp side. The session issues one outstanding probe at a time on a
// fixed interval; oracle errors are treated as "not connected yet".
type StatusOracle interface {
	SessionConnected(ctx context.Context, token string) (bool, error)
}

// Options tune the polling contract. Zero values take the defaults.
type Options struct {
	ProbeInterval   time.Duration // between connection probes (default 3s)
	Ceiling         time.Duration // hard expiry from AWAITING_SCAN entry (default 120s)
	GenerateLatency time.Duration // simulated token-creation latency (default 2s)
}

func (o Options) withDefaults() Options {
	if o.ProbeInterval <= 0 {
		o.ProbeInterval = 3 * time.Second
	}
	if o.Ceiling <= 0 {
		o.Ceiling = 120 * time.Second
	}
	if o.GenerateLatency < 0 {
		o.GenerateLatency = 0
	}
	return o
}

// Session is one pairing attempt for an account. All timers of a cycle
// hang off a single context, so cancelling it is the single point that
// stops both the probe loop and the ceiling timer.
type Session struct {
	ID        uuid.UUID
	AccountID uuid.UUID

	oracle      StatusOracle
	opts        Options
	onConnected func(accountID uuid.UUID)

	mu             sync.Mutex
	state          State
	token          string
	uri            string
	cycle          uint64 // bumped on every (re)start; stale callbacks check it
	cancel         context.CancelFunc
	connectedFired bool
	expiredAt      time.Time
}

// Snapshot is a point-in-time view of a session for API responses.
type Snapshot struct {
	ID            uuid.UUID `json:"id"`
	AccountID     uuid.UUID `json:"account_id"`
	State         State     `json:"state"`
	ConnectionURI string    `json:"connection_uri,omitempty"`
}

func newSession(accountID uuid.UUID, oracle StatusOracle, opts Options, onConnected func(uuid.UUID)) *Session {
	return &Session{
		ID:          uuid.New(),
		AccountID:   accountID,
		oracle:      oracle,
		opts:        opts.withDefaults(),
		onConnected: onConnected,
		state:       StateGenerating,
	}
}

// Start begins a pairing cycle: cancel whatever was running, enter
// GENERATING, and kick off the async token generation.
func (s *Session) Start() {
	s.mu.Lock()
	s.beginCycleLocked()
	s.mu.Unlock()
}

// Regenerate restarts the cycle from AWAITING_SCAN or EXPIRED. Starting
// over from CONNECTED is not allowed.
func (s *Session) Regenerate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingScan && s.state != StateExpired {
		return fmt.Errorf("cannot regenerate from state %s", s.state)
	}
	s.beginCycleLocked()
	return nil
}

// beginCycleLocked cancels any outstanding timers, then launches a fresh
// run loop. Caller holds s.mu.
func (s *Session) beginCycleLocked() {
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.cycle++
	s.state = StateGenerating
	s.token = ""
	s.uri = ""

	go s.run(ctx, s.cycle)
}

// run owns the whole cycle in one goroutine: token generation, then the
// probe loop. Probes are therefore serialized and at most one probe ticker
// and one ceiling timer exist per session.
func (s *Session) run(ctx context.Context, cycle uint64) {
	if s.opts.GenerateLatency > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.opts.GenerateLatency):
		}
	}

	token := uuid.NewString()
	if !s.enterAwaitingScan(cycle, token) {
		return
	}

	utils.LogInfo("pairing token issued", map[string]interface{}{
		"session_id": s.ID,
		"account_id": s.AccountID,
	})

	ticker := time.NewTicker(s.opts.ProbeInterval)
	defer ticker.Stop()
	ceiling := time.NewTimer(s.opts.Ceiling)
	defer ceiling.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ceiling.C:
			s.expire(cycle)
			return
		case <-ticker.C:
			connected, err := s.oracle.SessionConnected(ctx, token)
			if err != nil {
				// Oracle hiccups are not terminal; just probe again
				// on the next tick.
				utils.LogWarn("pairing probe failed", map[string]interface{}{
					"session_id": s.ID,
					"error":      err.Error(),
				})
				continue
			}
			if s.handleProbeResult(cycle, connected) {
				return
			}
		}
	}
}

// enterAwaitingScan moves GENERATING -> AWAITING_SCAN for the current
// cycle. A stale cycle (regenerated while the token was being created)
// returns false and its goroutine unwinds.
func (s *Session) enterAwaitingScan(cycle uint64, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cycle != s.cycle || s.state != StateGenerating {
		return false
	}
	s.state = StateAwaitingScan
	s.token = token
	s.uri = fmt.Sprintf("whatsapp://connect?token=%s&account=%s", token, s.AccountID)
	return true
}

// handleProbeResult applies one probe outcome. Returns true when the cycle
// is finished (connected) so the run loop stops. Probe results for stale
// cycles or terminal states are ignored.
func (s *Session) handleProbeResult(cycle uint64, connected bool) bool {
	if !connected {
		return false
	}

	s.mu.Lock()
	if cycle != s.cycle || s.state != StateAwaitingScan {
		s.mu.Unlock()
		return true
	}
	s.state = StateConnected
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	fire := !s.connectedFired && s.onConnected != nil
	s.connectedFired = true
	accountID := s.AccountID
	s.mu.Unlock()

	utils.LogInfo("pairing connected", map[string]interface{}{
		"session_id": s.ID,
		"account_id": accountID,
	})

	if fire {
		s.onConnected(accountID)
	}
	return true
}

// expire applies the ceiling timeout.
func (s *Session) expire(cycle uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cycle != s.cycle || s.state != StateAwaitingScan {
		return
	}
	s.state = StateExpired
	s.expiredAt = time.Now()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	utils.LogWarn("pairing session expired", map[string]interface{}{
		"session_id": s.ID,
		"account_id": s.AccountID,
	})
}

// Stop cancels the session's timers without a state transition. Used when
// the owning manager discards the session.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the session view exposed over the API. The connection
// URI is only present while a scan can still succeed.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:        s.ID,
		AccountID: s.AccountID,
		State:     s.state,
	}
	if s.state == StateAwaitingScan {
		snap.ConnectionURI = s.uri
	}
	return snap
}

// connectionURI returns the current URI, empty unless AWAITING_SCAN.
func (s *Session) connectionURI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingScan {
		return ""
	}
	return s.uri
}
