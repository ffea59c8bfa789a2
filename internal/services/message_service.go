package services

import (
	"context"
	"time"

	"github.com/odiabiz/odiabiz-api/internal/core/llm"
	"github.com/odiabiz/odiabiz-api/internal/core/phone"
	"github.com/odiabiz/odiabiz-api/internal/core/whatsapp"
	"github.com/odiabiz/odiabiz-api/internal/models"
	"github.com/odiabiz/odiabiz-api/internal/repositories"
	"github.com/odiabiz/odiabiz-api/internal/shared/utils"
)

const replyTimeout = 10 * time.Second

// upgradeNotice is sent instead of an AI reply once the trial quota is gone.
const upgradeNotice = "Your free trial messages are finished. Upgrade your OdiaBiz plan to keep your AI assistant replying to customers."

// Sender is the outbound side of the transport the service needs.
type Sender interface {
	SendMessage(phoneNumber, message string) error
}

// MessageService handles one inbound customer message end to end:
// resolve the account, generate the AI reply, send it, record the
// interaction and consume trial quota.
type MessageService struct {
	sender       Sender
	responder    llm.Responder
	accounts     repositories.AccountRepo
	interactions repositories.InteractionRepo
}

func NewMessageService(
	sender Sender,
	responder llm.Responder,
	accounts repositories.AccountRepo,
	interactions repositories.InteractionRepo,
) *MessageService {
	return &MessageService{
		sender:       sender,
		responder:    responder,
		accounts:     accounts,
		interactions: interactions,
	}
}

// HandleInbound processes a customer message addressed to the business
// account that owns the given WhatsApp number.
func (s *MessageService) HandleInbound(businessNumber string, msg whatsapp.InboundMessage) {
	account, err := s.accounts.GetByNumber(phone.Normalize(businessNumber))
	if err != nil {
		utils.LogWarn("inbound message for unknown account", map[string]interface{}{
			"business_number": businessNumber,
		})
		return
	}

	if account.Plan == models.PlanTrial && account.TrialRemaining <= 0 {
		if err := s.sender.SendMessage(msg.From, upgradeNotice); err != nil {
			utils.LogError("upgrade notice send failed", err, nil)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	reply, err := s.responder.Reply(ctx, account, msg.Text)
	if err != nil {
		utils.LogError("AI reply failed", err, map[string]interface{}{
			"account_id": account.ID,
		})
		reply = "Sorry, I cannot answer right now. The business owner will follow up shortly."
	}

	if err := s.sender.SendMessage(msg.From, reply); err != nil {
		utils.LogError("reply send failed", err, map[string]interface{}{
			"account_id": account.ID,
		})
		return
	}

	// Bookkeeping is best effort and off the reply path.
	go func() {
		interaction := &models.Interaction{
			AccountID:    account.ID,
			UserMessage:  msg.Text,
			AIResponse:   reply,
			LanguageUsed: account.LanguagePref,
		}
		if err := s.interactions.Log(interaction); err != nil {
			utils.LogError("interaction log failed", err, map[string]interface{}{
				"account_id": account.ID,
			})
		}
		if account.Plan == models.PlanTrial {
			_ = s.accounts.DecrementTrial(account.ID)
		}
		_ = s.accounts.TouchLastActive(account.ID)
	}()
}
