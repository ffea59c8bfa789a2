package whatsapp

import (
	"context"
	"log"

	"github.com/odiabiz/odiabiz-api/internal/shared/config"
)

// Service wraps the active WhatsApp provider. It is the layer the rest of
// the application talks to, and it satisfies pairing.StatusOracle.
type Service struct {
	provider Provider
}

// NewService builds the provider selected by configuration.
func NewService(cfg *config.Config) *Service {
	providerCfg := &ProviderConfig{
		Type:     ProviderType(cfg.WhatsAppProvider),
		StoreURL: cfg.WhatsAppStoreURL,
	}

	provider, err := NewProvider(providerCfg)
	if err != nil {
		log.Fatalf("❌ Failed to create WhatsApp provider: %v", err)
	}

	log.Printf("✅ Using WhatsApp provider: %s", provider.GetProviderName())
	return &Service{provider: provider}
}

// NewServiceWithProvider wires a specific provider. Used in tests.
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

func (s *Service) Connect() error {
	return s.provider.Connect()
}

func (s *Service) Disconnect() {
	s.provider.Disconnect()
}

func (s *Service) SendMessage(phoneNumber, message string) error {
	return s.provider.SendMessage(phoneNumber, message)
}

func (s *Service) StartListening(handler func(msg InboundMessage)) error {
	return s.provider.StartListening(handler)
}

// SessionConnected implements the pairing status oracle.
func (s *Service) SessionConnected(ctx context.Context, token string) (bool, error) {
	return s.provider.SessionConnected(ctx, token)
}

func (s *Service) IsConnected() bool {
	return s.provider.IsConnected()
}

func (s *Service) StartKeepAlive(ctx context.Context) {
	s.provider.StartKeepAlive(ctx)
}

func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}

// Underlying exposes the provider for wiring that needs the concrete type
// (the demo webhook injects messages into the simulated provider).
func (s *Service) Underlying() Provider {
	return s.provider
}
