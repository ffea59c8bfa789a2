package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/odiabiz/odiabiz-api/internal/models"
	"github.com/odiabiz/odiabiz-api/internal/repositories"
	"github.com/odiabiz/odiabiz-api/internal/shared/utils"
)

const (
	// How long the result screen shows before the client navigates on.
	successDisplayDelay = 2 * time.Second
	failureDisplayDelay = 3 * time.Second
)

// Plan prices in NGN; a verified amount selects the purchased tier.
var planByAmount = map[float64]models.Plan{
	5000:  models.PlanStarter,
	15000: models.PlanProfessional,
	75000: models.PlanEnterprise,
}

// Result is what the callback screen renders: outcome, message and the
// navigation hint (the client performs the redirect, not the server).
type Result struct {
	Outcome       Outcome       `json:"outcome"`
	Status        string        `json:"status"` // gateway-reported status, lowercase ("successful", "pending", ...)
	Message       string        `json:"message"`
	RedirectTo    string        `json:"redirect_to"`
	RedirectAfter time.Duration `json:"-"`
}

// RedirectAfterSeconds is the wire form of the display delay.
func (r Result) RedirectAfterSeconds() int {
	return int(r.RedirectAfter / time.Second)
}

// Verifier interprets payment-gateway redirects. One verification request
// per callback, no automatic retry.
type Verifier struct {
	gateway  Gateway
	payments repositories.PaymentRepo
	accounts repositories.AccountRepo
}

func NewVerifier(gateway Gateway, payments repositories.PaymentRepo, accounts repositories.AccountRepo) *Verifier {
	return &Verifier{gateway: gateway, payments: payments, accounts: accounts}
}

// Verify resolves a redirect callback. An empty txRef fails immediately
// without touching the network. accountID may be uuid.Nil when the
// redirect carried no account context; the transaction is then verified
// but no plan upgrade happens.
func (v *Verifier) Verify(ctx context.Context, txRef, transactionID string, accountID uuid.UUID) Result {
	if txRef == "" {
		return Result{
			Outcome:       OutcomeFailed,
			Status:        "failed",
			Message:       "invalid payment reference",
			RedirectTo:    "/payment/cancel",
			RedirectAfter: failureDisplayDelay,
		}
	}

	verification, err := v.gateway.Verify(ctx, txRef)
	if err != nil {
		utils.LogError("payment verification request failed", err, map[string]interface{}{
			"tx_ref": txRef,
		})
		return Result{
			Outcome:       OutcomeFailed,
			Status:        "failed",
			Message:       "Unable to verify payment",
			RedirectTo:    "/payment/cancel",
			RedirectAfter: failureDisplayDelay,
		}
	}

	if verification.Status != statusSuccessful {
		utils.LogWarn("payment not successful", map[string]interface{}{
			"tx_ref": txRef,
			"status": verification.Status,
		})
		return Result{
			Outcome:       OutcomeFailed,
			Status:        verification.Status,
			Message:       "Payment verification failed",
			RedirectTo:    "/payment/cancel",
			RedirectAfter: failureDisplayDelay,
		}
	}

	v.settle(txRef, transactionID, accountID, verification)

	return Result{
		Outcome:       OutcomeSuccessful,
		Status:        verification.Status,
		Message:       "Payment verified successfully!",
		RedirectTo:    "/payment/success",
		RedirectAfter: successDisplayDelay,
	}
}

// settle records the transaction and upgrades the account's plan. Failures
// here are logged, not surfaced: the gateway has confirmed the money.
func (v *Verifier) settle(txRef, transactionID string, accountID uuid.UUID, verification *VerificationResult) {
	plan := planForAmount(verification.Amount)

	if v.payments != nil {
		tx := &models.PaymentTransaction{
			AccountID:     accountID,
			TxRef:         txRef,
			TransactionID: transactionID,
			Amount:        verification.Amount,
			Currency:      verification.Currency,
			Plan:          plan,
			Status:        verification.Status,
			RawPayload:    datatypes.JSON(verification.RawPayload),
		}
		if err := v.payments.Record(tx); err != nil {
			utils.LogError("payment record failed", err, map[string]interface{}{
				"tx_ref": txRef,
			})
		}
	}

	if v.accounts != nil && accountID != uuid.Nil {
		if err := v.accounts.UpgradePlan(accountID, plan); err != nil {
			utils.LogError("plan upgrade failed", err, map[string]interface{}{
				"account_id": accountID,
				"plan":       plan,
			})
			return
		}
		utils.LogInfo("plan upgraded", map[string]interface{}{
			"account_id": accountID,
			"plan":       plan,
		})
	}
}

func planForAmount(amount float64) models.Plan {
	if plan, ok := planByAmount[amount]; ok {
		return plan
	}
	return models.PlanStarter
}
