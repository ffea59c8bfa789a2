package email

import "fmt"

// Provider defines the interface for email providers
type Provider interface {
	SendEmail(to, subject, body string) error
	GetProviderName() string
}

// Service wraps the email provider. A nil provider disables email without
// special-casing at every call site.
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// SendEmail sends an HTML email through the configured provider.
func (s *Service) SendEmail(to, subject, body string) error {
	if s.provider == nil {
		return fmt.Errorf("no email provider configured")
	}
	return s.provider.SendEmail(to, subject, body)
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}
