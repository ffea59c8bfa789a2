package payment

import "context"

// Gateway is the payment-verification provider interface. The verifier
// issues exactly one Verify call per callback; retries are a user action.
type Gateway interface {
	// Verify looks up a transaction by its reference and returns the
	// gateway's view of it.
	Verify(ctx context.Context, txRef string) (*VerificationResult, error)

	// Name returns the gateway provider name.
	Name() string
}

// VerificationResult is the gateway's answer for one transaction.
type VerificationResult struct {
	Status        string  `json:"status"` // "successful", "pending", "failed", ...
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	RawPayload    []byte  `json:"-"` // verbatim gateway response body
}

// Outcome is the tri-state verification result shown to the user.
type Outcome string

const (
	OutcomePending    Outcome = "PENDING"
	OutcomeSuccessful Outcome = "SUCCESSFUL"
	OutcomeFailed     Outcome = "FAILED"
)

// Gateway status value that maps to OutcomeSuccessful.
const statusSuccessful = "successful"
