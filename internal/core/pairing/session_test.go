package pairing

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOracle reports connected once the flip switch is set, and counts
// every probe it receives.
type fakeOracle struct {
	connected atomic.Bool
	probes    atomic.Int64
	err       error
}

func (f *fakeOracle) SessionConnected(ctx context.Context, token string) (bool, error) {
	f.probes.Add(1)
	if f.err != nil {
		return false, f.err
	}
	return f.connected.Load(), nil
}

func fastOpts() Options {
	return Options{
		ProbeInterval:   5 * time.Millisecond,
		Ceiling:         50 * time.Millisecond,
		GenerateLatency: 0,
	}
}

func currentCycle(s *Session) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycle
}

func TestSessionExpiresAtCeiling(t *testing.T) {
	oracle := &fakeOracle{}
	session := newSession(uuid.New(), oracle, fastOpts(), nil)
	session.Start()

	require.Eventually(t, func() bool {
		return session.State() == StateExpired
	}, 2*time.Second, 5*time.Millisecond)

	// No further probes once expired.
	probesAtExpiry := oracle.probes.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, probesAtExpiry, oracle.probes.Load(), "probes fired after expiry")
	assert.Equal(t, StateExpired, session.State())
}

func TestSessionConnectsOnce(t *testing.T) {
	oracle := &fakeOracle{}

	var callbackCount atomic.Int64
	var gotAccount uuid.UUID
	var mu sync.Mutex

	accountID := uuid.New()
	session := newSession(accountID, oracle, Options{
		ProbeInterval:   5 * time.Millisecond,
		Ceiling:         5 * time.Second,
		GenerateLatency: 0,
	}, func(id uuid.UUID) {
		callbackCount.Add(1)
		mu.Lock()
		gotAccount = id
		mu.Unlock()
	})
	session.Start()

	require.Eventually(t, func() bool {
		return session.State() == StateAwaitingScan
	}, 2*time.Second, time.Millisecond)

	oracle.connected.Store(true)

	require.Eventually(t, func() bool {
		return session.State() == StateConnected
	}, 2*time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		return callbackCount.Load() == 1
	}, time.Second, time.Millisecond)

	mu.Lock()
	assert.Equal(t, accountID, gotAccount)
	mu.Unlock()

	// A stray probe event after CONNECTED must not change anything.
	session.handleProbeResult(currentCycle(session), true)
	assert.Equal(t, StateConnected, session.State())
	assert.Equal(t, int64(1), callbackCount.Load(), "completion callback fired more than once")

	// No re-probing after CONNECTED.
	probesAtConnect := oracle.probes.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, probesAtConnect, oracle.probes.Load())
}

func TestStaleProbeAfterExpiryIgnored(t *testing.T) {
	oracle := &fakeOracle{}
	session := newSession(uuid.New(), oracle, fastOpts(), nil)
	session.Start()

	require.Eventually(t, func() bool {
		return session.State() == StateExpired
	}, 2*time.Second, 5*time.Millisecond)

	session.handleProbeResult(currentCycle(session), true)
	assert.Equal(t, StateExpired, session.State(), "expired session must not transition on a late probe")
}

func TestRegenerateFromExpired(t *testing.T) {
	oracle := &fakeOracle{}
	session := newSession(uuid.New(), oracle, fastOpts(), nil)
	session.Start()

	require.Eventually(t, func() bool {
		return session.State() == StateExpired
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, session.Regenerate())

	require.Eventually(t, func() bool {
		return session.State() == StateAwaitingScan
	}, 2*time.Second, time.Millisecond)
	assert.NotEmpty(t, session.connectionURI())
}

func TestRegenerateIssuesFreshToken(t *testing.T) {
	oracle := &fakeOracle{}
	session := newSession(uuid.New(), oracle, Options{
		ProbeInterval:   5 * time.Millisecond,
		Ceiling:         5 * time.Second,
		GenerateLatency: 0,
	}, nil)
	session.Start()

	require.Eventually(t, func() bool {
		return session.State() == StateAwaitingScan
	}, 2*time.Second, time.Millisecond)
	firstURI := session.connectionURI()

	require.NoError(t, session.Regenerate())

	require.Eventually(t, func() bool {
		return session.State() == StateAwaitingScan && session.connectionURI() != firstURI
	}, 2*time.Second, time.Millisecond)
}

func TestRegenerateFromConnectedRejected(t *testing.T) {
	oracle := &fakeOracle{}
	oracle.connected.Store(true)
	session := newSession(uuid.New(), oracle, Options{
		ProbeInterval:   5 * time.Millisecond,
		Ceiling:         5 * time.Second,
		GenerateLatency: 0,
	}, nil)
	session.Start()

	require.Eventually(t, func() bool {
		return session.State() == StateConnected
	}, 2*time.Second, time.Millisecond)

	err := session.Regenerate()
	require.Error(t, err)
	assert.Equal(t, StateConnected, session.State())
}

func TestOracleErrorsAreRetried(t *testing.T) {
	oracle := &fakeOracle{err: context.DeadlineExceeded}
	session := newSession(uuid.New(), oracle, fastOpts(), nil)
	session.Start()

	// Errors never transition the state; the session keeps probing until
	// the ceiling expires it.
	require.Eventually(t, func() bool {
		return session.State() == StateExpired
	}, 2*time.Second, 5*time.Millisecond)
	assert.Greater(t, oracle.probes.Load(), int64(1))
}

func TestManagerReplacesAccountSession(t *testing.T) {
	oracle := &fakeOracle{}
	manager := NewManager(oracle, Options{
		ProbeInterval:   5 * time.Millisecond,
		Ceiling:         5 * time.Second,
		GenerateLatency: 0,
	}, nil)

	accountID := uuid.New()
	first := manager.StartSession(accountID)
	second := manager.StartSession(accountID)

	_, ok := manager.Get(first.ID)
	assert.False(t, ok, "replaced session must be dropped")

	got, ok := manager.Get(second.ID)
	require.True(t, ok)
	assert.Equal(t, accountID, got.AccountID)
}

func TestManagerQRPNG(t *testing.T) {
	oracle := &fakeOracle{}
	manager := NewManager(oracle, Options{
		ProbeInterval:   5 * time.Millisecond,
		Ceiling:         5 * time.Second,
		GenerateLatency: 0,
	}, nil)

	session := manager.StartSession(uuid.New())

	require.Eventually(t, func() bool {
		return session.State() == StateAwaitingScan
	}, 2*time.Second, time.Millisecond)

	png, err := manager.QRPNG(session.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	_, err = manager.QRPNG(uuid.New())
	assert.Error(t, err)
}

func TestManagerSweepExpired(t *testing.T) {
	oracle := &fakeOracle{}
	manager := NewManager(oracle, fastOpts(), nil)

	session := manager.StartSession(uuid.New())

	require.Eventually(t, func() bool {
		return session.State() == StateExpired
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, manager.SweepExpired(time.Hour), "fresh expiry kept")
	assert.Equal(t, 1, manager.SweepExpired(0))

	_, ok := manager.Get(session.ID)
	assert.False(t, ok)
}
