package whatsapp

import (
	"context"
	"fmt"
)

// InboundMessage is a provider-agnostic view of a customer message.
type InboundMessage struct {
	From string // sender phone number, digits only
	Text string
}

// Provider is the interface every WhatsApp transport implements. The
// pairing state machine uses SessionConnected as its status oracle; the
// message path uses SendMessage/StartListening.
type Provider interface {
	// Connect initializes the transport connection.
	Connect() error

	// Disconnect tears the connection down.
	Disconnect()

	// SendMessage sends a text message to a phone number.
	SendMessage(phoneNumber, message string) error

	// StartListening registers a handler for inbound customer messages.
	StartListening(handler func(msg InboundMessage)) error

	// SessionConnected reports whether the pairing attempt identified by
	// token has been linked on a device.
	SessionConnected(ctx context.Context, token string) (bool, error)

	// IsConnected reports transport liveness.
	IsConnected() bool

	// StartKeepAlive maintains the session until ctx is cancelled.
	StartKeepAlive(ctx context.Context)

	// GetProviderName returns the provider name for logging.
	GetProviderName() string
}

// ProviderType selects the transport implementation.
type ProviderType string

const (
	ProviderWhatsmeow ProviderType = "whatsmeow"
	ProviderSimulated ProviderType = "simulated"
)

// ProviderConfig configures the provider factory.
type ProviderConfig struct {
	Type     ProviderType
	StoreURL string

	// Simulated provider: number of probes before a session reports
	// connected. Zero means never.
	SimulatedConnectAfter int
}

// NewProvider creates a provider from config.
func NewProvider(cfg *ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case ProviderWhatsmeow:
		return NewWhatsmeowProvider(cfg.StoreURL), nil

	case ProviderSimulated:
		after := cfg.SimulatedConnectAfter
		if after == 0 {
			after = 5
		}
		return NewSimulatedProvider(after), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}
