package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odiabiz/odiabiz-api/internal/models"
	"github.com/odiabiz/odiabiz-api/internal/repositories"
)

type fakeGateway struct {
	result *VerificationResult
	err    error
	calls  int
}

func (f *fakeGateway) Verify(ctx context.Context, txRef string) (*VerificationResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeGateway) Name() string { return "fake" }

type fakePayments struct {
	recorded []*models.PaymentTransaction
}

func (f *fakePayments) Record(tx *models.PaymentTransaction) error {
	f.recorded = append(f.recorded, tx)
	return nil
}
func (f *fakePayments) GetByTxRef(string) (*models.PaymentTransaction, error) {
	return nil, repositories.ErrNotFound
}

type fakeUpgrades struct {
	upgraded map[uuid.UUID]models.Plan
}

func (f *fakeUpgrades) UpgradePlan(id uuid.UUID, plan models.Plan) error {
	if f.upgraded == nil {
		f.upgraded = map[uuid.UUID]models.Plan{}
	}
	f.upgraded[id] = plan
	return nil
}
func (f *fakeUpgrades) Insert(*models.Account) error                { return nil }
func (f *fakeUpgrades) GetByID(uuid.UUID) (*models.Account, error)  { return nil, repositories.ErrNotFound }
func (f *fakeUpgrades) GetByNumber(string) (*models.Account, error) { return nil, repositories.ErrNotFound }
func (f *fakeUpgrades) ListRecent(int) ([]models.Account, error)    { return nil, nil }
func (f *fakeUpgrades) DecrementTrial(uuid.UUID) error              { return nil }
func (f *fakeUpgrades) TouchLastActive(uuid.UUID) error             { return nil }

func TestVerifyMissingTxRef(t *testing.T) {
	gw := &fakeGateway{}
	v := NewVerifier(gw, nil, nil)

	result := v.Verify(context.Background(), "", "", uuid.Nil)

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, "invalid payment reference", result.Message)
	assert.Equal(t, "/payment/cancel", result.RedirectTo)
	assert.Equal(t, 3, result.RedirectAfterSeconds())
	assert.Zero(t, gw.calls, "no network call for a missing reference")
}

func TestVerifySuccessful(t *testing.T) {
	gw := &fakeGateway{result: &VerificationResult{
		Status:   "successful",
		Amount:   15000,
		Currency: "NGN",
	}}
	payments := &fakePayments{}
	accounts := &fakeUpgrades{}
	v := NewVerifier(gw, payments, accounts)

	accountID := uuid.New()
	result := v.Verify(context.Background(), "odb-tx-1", "99001", accountID)

	assert.Equal(t, OutcomeSuccessful, result.Outcome)
	assert.Equal(t, "successful", result.Status, "gateway status passes through lowercase")
	assert.Equal(t, "/payment/success", result.RedirectTo)
	assert.Equal(t, 1, gw.calls, "exactly one verification request")

	require.Len(t, payments.recorded, 1)
	assert.Equal(t, "odb-tx-1", payments.recorded[0].TxRef)
	assert.Equal(t, models.PlanProfessional, payments.recorded[0].Plan)
	assert.Equal(t, models.PlanProfessional, accounts.upgraded[accountID])
}

func TestVerifyNonSuccessfulStatus(t *testing.T) {
	gw := &fakeGateway{result: &VerificationResult{Status: "pending"}}
	accounts := &fakeUpgrades{}
	v := NewVerifier(gw, &fakePayments{}, accounts)

	result := v.Verify(context.Background(), "odb-tx-2", "", uuid.New())

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, "/payment/cancel", result.RedirectTo)
	assert.Empty(t, accounts.upgraded, "no upgrade without a successful status")
}

func TestVerifyGatewayError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	v := NewVerifier(gw, nil, nil)

	result := v.Verify(context.Background(), "odb-tx-3", "", uuid.Nil)

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, 1, gw.calls, "no automatic retry")
}

func TestVerifyWithoutAccountContext(t *testing.T) {
	gw := &fakeGateway{result: &VerificationResult{Status: "successful", Amount: 5000}}
	payments := &fakePayments{}
	accounts := &fakeUpgrades{}
	v := NewVerifier(gw, payments, accounts)

	result := v.Verify(context.Background(), "odb-tx-4", "", uuid.Nil)

	assert.Equal(t, OutcomeSuccessful, result.Outcome)
	require.Len(t, payments.recorded, 1)
	assert.Empty(t, accounts.upgraded, "nil account context records but does not upgrade")
}

func TestPlanForAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   models.Plan
	}{
		{name: "starter", amount: 5000, want: models.PlanStarter},
		{name: "professional", amount: 15000, want: models.PlanProfessional},
		{name: "enterprise", amount: 75000, want: models.PlanEnterprise},
		{name: "unknown amount falls back to starter", amount: 1234, want: models.PlanStarter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planForAmount(tt.amount))
		})
	}
}
