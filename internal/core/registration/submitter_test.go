package registration

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odiabiz/odiabiz-api/internal/models"
	"github.com/odiabiz/odiabiz-api/internal/repositories"
)

type fakeAccountRepo struct {
	inserted  []*models.Account
	insertErr error
}

func (f *fakeAccountRepo) Insert(a *models.Account) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.inserted = append(f.inserted, a)
	return nil
}

func (f *fakeAccountRepo) GetByID(uuid.UUID) (*models.Account, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeAccountRepo) GetByNumber(string) (*models.Account, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeAccountRepo) ListRecent(int) ([]models.Account, error)    { return nil, nil }
func (f *fakeAccountRepo) UpgradePlan(uuid.UUID, models.Plan) error    { return nil }
func (f *fakeAccountRepo) DecrementTrial(uuid.UUID) error              { return nil }
func (f *fakeAccountRepo) TouchLastActive(uuid.UUID) error             { return nil }

func validRequest() Request {
	return Request{
		BusinessName:   "Lagos Shop",
		Email:          "a@b.com",
		WhatsAppNumber: "08012345678",
		Language:       "en",
		BusinessType:   "Retail",
	}
}

func TestSubmitCreatesTrialAccount(t *testing.T) {
	repo := &fakeAccountRepo{}
	sub := NewSubmitter(repo, nil)

	account, err := sub.Submit(validRequest())
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)

	assert.Equal(t, "Lagos Shop", account.BusinessName)
	assert.Equal(t, "+2348012345678", account.WhatsAppNumber)
	assert.Equal(t, models.PlanTrial, account.Plan)
	assert.Equal(t, models.TrialMessageQuota, account.TrialRemaining)
	assert.Equal(t, models.LanguageEnglish, account.LanguagePref)
	assert.NotEqual(t, uuid.Nil, account.ID)
}

func TestSubmitEmptyBusinessName(t *testing.T) {
	repo := &fakeAccountRepo{}
	sub := NewSubmitter(repo, nil)

	req := validRequest()
	req.BusinessName = "  "

	_, err := sub.Submit(req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "businessName")
	assert.Empty(t, repo.inserted, "no persistence call on validation failure")
}

func TestSubmitDuplicateNumber(t *testing.T) {
	repo := &fakeAccountRepo{insertErr: repositories.ErrConflict}
	sub := NewSubmitter(repo, nil)

	_, err := sub.Submit(validRequest())
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Contains(t, ErrAlreadyRegistered.Error(), "already registered")
}

func TestSubmitGenericPersistenceFailure(t *testing.T) {
	repo := &fakeAccountRepo{insertErr: errors.New("connection reset")}
	sub := NewSubmitter(repo, nil)

	_, err := sub.Submit(validRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyRegistered)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestValidateFieldMatrix(t *testing.T) {
	sub := NewSubmitter(&fakeAccountRepo{}, nil)

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantKey string
	}{
		{
			name:    "missing email",
			mutate:  func(r *Request) { r.Email = "" },
			wantKey: "email",
		},
		{
			name:    "malformed email",
			mutate:  func(r *Request) { r.Email = "not-an-email" },
			wantKey: "email",
		},
		{
			name:    "invalid number",
			mutate:  func(r *Request) { r.WhatsAppNumber = "12345" },
			wantKey: "whatsappNumber",
		},
		{
			name:    "unknown language",
			mutate:  func(r *Request) { r.Language = "fr" },
			wantKey: "language",
		},
		{
			name:    "missing business type",
			mutate:  func(r *Request) { r.BusinessType = "" },
			wantKey: "businessType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			verr := sub.Validate(req)
			require.NotNil(t, verr)
			assert.Contains(t, verr.Fields, tt.wantKey)
		})
	}
}

func TestValidateAllFieldsPass(t *testing.T) {
	sub := NewSubmitter(&fakeAccountRepo{}, nil)
	assert.Nil(t, sub.Validate(validRequest()))
}
