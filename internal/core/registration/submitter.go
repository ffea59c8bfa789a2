package registration

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/odiabiz/odiabiz-api/internal/core/phone"
	"github.com/odiabiz/odiabiz-api/internal/models"
	"github.com/odiabiz/odiabiz-api/internal/repositories"
	"github.com/odiabiz/odiabiz-api/internal/shared/utils"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ErrAlreadyRegistered is returned when the WhatsApp number is taken.
var ErrAlreadyRegistered = errors.New("this WhatsApp number is already registered")

// Request is the registration form payload.
type Request struct {
	BusinessName   string `json:"business_name"`
	Email          string `json:"email"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Language       string `json:"language"`
	BusinessType   string `json:"business_type"`
}

// ValidationError carries field-keyed messages for inline display.
// No persistence call is made when validation fails.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// Mailer sends the post-registration welcome email. Optional.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type Submitter struct {
	accounts repositories.AccountRepo
	mailer   Mailer
}

func NewSubmitter(accounts repositories.AccountRepo, mailer Mailer) *Submitter {
	return &Submitter{accounts: accounts, mailer: mailer}
}

// Validate checks every field and returns nil only when all pass.
func (s *Submitter) Validate(req Request) *ValidationError {
	fields := map[string]string{}

	if strings.TrimSpace(req.BusinessName) == "" {
		fields["businessName"] = "Business name is required"
	}
	if req.Email == "" {
		fields["email"] = "Email is required"
	} else if !emailPattern.MatchString(req.Email) {
		fields["email"] = "Email is invalid"
	}
	if req.WhatsAppNumber == "" {
		fields["whatsappNumber"] = "WhatsApp number is required"
	} else if !phone.IsValidNigerianMobile(phone.Normalize(req.WhatsAppNumber)) {
		fields["whatsappNumber"] = "Enter valid Nigerian number (+234 or 0)"
	}
	if req.Language == "" {
		fields["language"] = "Preferred language is required"
	} else if !models.Language(req.Language).Valid() {
		fields["language"] = "Unsupported language"
	}
	if strings.TrimSpace(req.BusinessType) == "" {
		fields["businessType"] = "Business type is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Submit validates the form, normalizes the number and creates the account
// on the trial plan. The returned account's ID is the session context the
// caller hands to the pairing step.
func (s *Submitter) Submit(req Request) (*models.Account, error) {
	if verr := s.Validate(req); verr != nil {
		return nil, verr
	}

	account := &models.Account{
		BusinessName:   strings.TrimSpace(req.BusinessName),
		WhatsAppNumber: phone.Normalize(req.WhatsAppNumber),
		Email:          req.Email,
		LanguagePref:   models.Language(req.Language),
		Plan:           models.PlanTrial,
		TrialRemaining: models.TrialMessageQuota,
		BusinessType:   strings.TrimSpace(req.BusinessType),
	}

	if err := s.accounts.Insert(account); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrAlreadyRegistered
		}
		utils.LogError("account insert failed", err, map[string]interface{}{
			"whatsapp_number": account.WhatsAppNumber,
		})
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	utils.LogInfo("account registered", map[string]interface{}{
		"account_id":    account.ID,
		"business_name": account.BusinessName,
	})

	s.sendWelcomeEmail(account)
	return account, nil
}

// sendWelcomeEmail is best effort; a mail failure never fails registration.
func (s *Submitter) sendWelcomeEmail(account *models.Account) {
	if s.mailer == nil || account.Email == "" {
		return
	}
	go func() {
		subject := "Welcome to OdiaBiz AI 🎉"
		body := fmt.Sprintf(
			"<p>Hello %s,</p><p>Your WhatsApp AI assistant is almost ready. "+
				"Link your WhatsApp Business account to start your free trial of %d messages.</p>",
			account.BusinessName, models.TrialMessageQuota,
		)
		if err := s.mailer.SendEmail(account.Email, subject, body); err != nil {
			utils.LogWarn("welcome email failed", map[string]interface{}{
				"account_id": account.ID,
				"error":      err.Error(),
			})
		}
	}()
}
