package dashboard

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

type fakeAccounts struct {
	account *models.Account
	err     error
}

func (f *fakeAccounts) GetByID(uuid.UUID) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.account, nil
}
func (f *fakeAccounts) Insert(*models.Account) error                     { return nil }
func (f *fakeAccounts) GetByNumber(string) (*models.Account, error)      { return nil, repositories.ErrNotFound }
func (f *fakeAccounts) ListRecent(int) ([]models.Account, error)         { return nil, nil }
func (f *fakeAccounts) UpgradePlan(uuid.UUID, models.Plan) error         { return nil }
func (f *fakeAccounts) DecrementTrial(uuid.UUID) error                   { return nil }
func (f *fakeAccounts) TouchLastActive(uuid.UUID) error                  { return nil }

type fakeInteractions struct {
	list []models.Interaction
	err  error
}

func (f *fakeInteractions) ListRecent(uuid.UUID, int) ([]models.Interaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}
func (f *fakeInteractions) Log(*models.Interaction) error                     { return nil }
func (f *fakeInteractions) CountByAccount(uuid.UUID) (int64, error)           { return 0, nil }
func (f *fakeInteractions) ActiveAccountIDs(time.Time) ([]uuid.UUID, error)   { return nil, nil }

func testAccount() *models.Account {
	return &models.Account{
		ID:             uuid.New(),
		BusinessName:   "Lagos Shop",
		WhatsAppNumber: "+2348012345678",
		Plan:           models.PlanTrial,
		TrialRemaining: 42,
	}
}

func TestLoadEmptyInteractions(t *testing.T) {
	agg := NewAggregator(&fakeAccounts{account: testAccount()}, &fakeInteractions{})

	data, err := agg.Load(uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, data.Stats.TotalMessages)
	assert.Equal(t, 0, data.Stats.ThisMonth)
	assert.Empty(t, data.Interactions)
	assert.NotNil(t, data.Interactions, "empty list, not nil")
	assert.False(t, data.Partial)
	assert.Equal(t, 42, data.Stats.MessagesLeft)
	assert.Equal(t, "trial", data.Stats.PlanStatus)
}

func TestLoadMasksNumber(t *testing.T) {
	agg := NewAggregator(&fakeAccounts{account: testAccount()}, &fakeInteractions{})

	data, err := agg.Load(uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "+234801...5678", data.Account.WhatsAppNumber)
	assert.Equal(t, "5678", data.Account.WhatsAppNumber[len(data.Account.WhatsAppNumber)-4:])
}

func TestLoadCountsWindowAndMonth(t *testing.T) {
	now := time.Now()
	lastYear := now.AddDate(-1, -2, 0)

	interactions := []models.Interaction{
		{CreatedAt: now},
		{CreatedAt: now.Add(-time.Hour)},
		{CreatedAt: lastYear},
	}
	agg := NewAggregator(&fakeAccounts{account: testAccount()}, &fakeInteractions{list: interactions})

	data, err := agg.Load(uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 3, data.Stats.TotalMessages, "window size, not historical total")
	assert.Equal(t, 3, data.Stats.TotalConversations)
	assert.Equal(t, 2, data.Stats.ThisMonth)
}

func TestLoadAccountNotFound(t *testing.T) {
	agg := NewAggregator(&fakeAccounts{err: repositories.ErrNotFound}, &fakeInteractions{})

	_, err := agg.Load(uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadPartialOnInteractionError(t *testing.T) {
	agg := NewAggregator(
		&fakeAccounts{account: testAccount()},
		&fakeInteractions{err: errors.New("timeout")},
	)

	data, err := agg.Load(uuid.New())
	require.NoError(t, err, "interaction failure must not be fatal")

	assert.True(t, data.Partial)
	assert.Empty(t, data.Interactions)
	assert.Equal(t, 0, data.Stats.TotalMessages)
	assert.Equal(t, "Lagos Shop", data.Account.BusinessName)
}
