package whatsapp

import (
	"context"
	"sync"
)

// SimulatedProvider is the development transport. It reports a pairing
// token as connected after a fixed number of probes, so the full
// registration -> pairing -> dashboard flow can be exercised without a
// real device. Deterministic on purpose: no randomness.
type SimulatedProvider struct {
	connectAfter int

	mu       sync.Mutex
	probes   map[string]int
	listener func(msg InboundMessage)
	running  bool
}

func NewSimulatedProvider(connectAfter int) *SimulatedProvider {
	return &SimulatedProvider{
		connectAfter: connectAfter,
		probes:       make(map[string]int),
	}
}

func (s *SimulatedProvider) GetProviderName() string {
	return "Simulated"
}

func (s *SimulatedProvider) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	return nil
}

func (s *SimulatedProvider) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

func (s *SimulatedProvider) SendMessage(phoneNumber, message string) error {
	return nil
}

func (s *SimulatedProvider) StartListening(handler func(msg InboundMessage)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = handler
	return nil
}

// Inject delivers a fake inbound message to the registered listener.
// Used by tests and the local demo webhook.
func (s *SimulatedProvider) Inject(msg InboundMessage) {
	s.mu.Lock()
	handler := s.listener
	s.mu.Unlock()
	if handler != nil {
		handler(msg)
	}
}

// SessionConnected counts probes per token and flips to connected once the
// configured threshold is reached.
func (s *SimulatedProvider) SessionConnected(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connectAfter <= 0 {
		return false, nil
	}
	s.probes[token]++
	return s.probes[token] >= s.connectAfter, nil
}

func (s *SimulatedProvider) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *SimulatedProvider) StartKeepAlive(ctx context.Context) {}
