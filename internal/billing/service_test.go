package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bhashai/bhashai/internal/audit"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateBalance(ctx context.Context, b *AccountBalance) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepo) GetBalance(ctx context.Context, enterpriseID string) (*AccountBalance, error) {
	args := m.Called(ctx, enterpriseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AccountBalance), args.Error(1)
}

func (m *mockRepo) Debit(ctx context.Context, enterpriseID string, amount decimal.Decimal) (*DebitOutcome, error) {
	args := m.Called(ctx, enterpriseID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DebitOutcome), args.Error(1)
}

func (m *mockRepo) Credit(ctx context.Context, enterpriseID string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, enterpriseID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockRepo) UpdateAutoRecharge(ctx context.Context, enterpriseID string, enabled bool, amount, trigger decimal.Decimal) error {
	args := m.Called(ctx, enterpriseID, enabled, amount, trigger)
	return args.Error(0)
}

func (m *mockRepo) CreateTransaction(ctx context.Context, t *PaymentTransaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRepo) ListTransactions(ctx context.Context, enterpriseID string, limit, offset int) ([]*PaymentTransaction, error) {
	args := m.Called(ctx, enterpriseID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*PaymentTransaction), args.Error(1)
}

func (m *mockRepo) CreateUsageLog(ctx context.Context, u *CreditUsageLog) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockRepo) ListUsageLogs(ctx context.Context, enterpriseID string, limit, offset int) ([]*CreditUsageLog, error) {
	args := m.Called(ctx, enterpriseID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CreditUsageLog), args.Error(1)
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

func newTestService(repo Repository, al audit.Logger) *Service {
	return NewService(repo, al, "USD",
		decimal.RequireFromString("1000.00"),
		decimal.RequireFromString("0.05"))
}

func TestEnsureBalanceCreatesWithInitialGrant(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, new(mockAudit))

	repo.On("GetBalance", mock.Anything, "ent-1").Return(nil, ErrBalanceNotFound)
	repo.On("CreateBalance", mock.Anything, mock.MatchedBy(func(b *AccountBalance) bool {
		return b.EnterpriseID == "ent-1" && b.CreditsBalance.Equal(decimal.RequireFromString("1000.00"))
	})).Return(nil)
	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *PaymentTransaction) bool {
		return tx.Type == TxnInitialGrant && tx.Status == TxnStatusCompleted
	})).Return(nil)

	b, err := svc.EnsureBalance(context.Background(), "ent-1")
	require.NoError(t, err)
	assert.Equal(t, "USD", b.Currency)
	assert.False(t, b.AutoRechargeEnabled)
	repo.AssertExpectations(t)
}

func TestEnsureBalanceReturnsExisting(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, new(mockAudit))

	existing := &AccountBalance{ID: "bal-1", EnterpriseID: "ent-1", CreditsBalance: decimal.NewFromInt(7)}
	repo.On("GetBalance", mock.Anything, "ent-1").Return(existing, nil)

	b, err := svc.EnsureBalance(context.Background(), "ent-1")
	require.NoError(t, err)
	assert.Equal(t, "bal-1", b.ID)
	repo.AssertNotCalled(t, "CreateBalance", mock.Anything, mock.Anything)
}

func TestDebitForCall(t *testing.T) {
	repo := new(mockRepo)
	al := new(mockAudit)
	svc := newTestService(repo, al)

	cost := decimal.RequireFromString("0.05")
	repo.On("Debit", mock.Anything, "ent-1", cost).Return(&DebitOutcome{
		NewBalance: decimal.RequireFromString("999.95"),
	}, nil)
	repo.On("CreateUsageLog", mock.Anything, mock.MatchedBy(func(u *CreditUsageLog) bool {
		return u.CallLogID == "cl-1" && u.VoiceAgentID == "ag-1" &&
			u.CreditsUsed.Equal(cost) &&
			u.BalanceAfter.Equal(decimal.RequireFromString("999.95"))
	})).Return(nil)
	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *PaymentTransaction) bool {
		return tx.Type == TxnCallDebit && tx.Amount.Equal(cost.Neg())
	})).Return(nil)
	al.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeCreditsDebited
	})).Return()

	newBalance, err := svc.DebitForCall(context.Background(), "ent-1", "cl-1", "ag-1", "outbound call to +919876543210")
	require.NoError(t, err)
	assert.True(t, newBalance.Equal(decimal.RequireFromString("999.95")))
	repo.AssertExpectations(t)
}

func TestDebitForCallQueuesAutoRecharge(t *testing.T) {
	repo := new(mockRepo)
	al := new(mockAudit)
	svc := newTestService(repo, al)

	repo.On("Debit", mock.Anything, "ent-1", mock.Anything).Return(&DebitOutcome{
		NewBalance:            decimal.RequireFromString("9.95"),
		AutoRechargeTriggered: true,
		AutoRechargeAmount:    decimal.RequireFromString("10.00"),
	}, nil)
	repo.On("CreateUsageLog", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *PaymentTransaction) bool {
		return tx.Type == TxnCallDebit
	})).Return(nil)
	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *PaymentTransaction) bool {
		return tx.Type == TxnAutoRecharge && tx.Status == TxnStatusPending &&
			tx.Amount.Equal(decimal.RequireFromString("10.00"))
	})).Return(nil)
	al.On("Log", mock.Anything, mock.Anything).Return()

	_, err := svc.DebitForCall(context.Background(), "ent-1", "cl-1", "ag-1", "call")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDebitForCallInsufficientCredits(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, new(mockAudit))

	repo.On("Debit", mock.Anything, "ent-1", mock.Anything).Return(nil, ErrInsufficientCredits)

	_, err := svc.DebitForCall(context.Background(), "ent-1", "cl-1", "ag-1", "call")
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	repo.AssertNotCalled(t, "CreateUsageLog", mock.Anything, mock.Anything)
}

func TestRecharge(t *testing.T) {
	repo := new(mockRepo)
	al := new(mockAudit)
	svc := newTestService(repo, al)

	amount := decimal.RequireFromString("50.00")
	repo.On("Credit", mock.Anything, "ent-1", amount).Return(decimal.RequireFromString("150.00"), nil)
	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *PaymentTransaction) bool {
		return tx.Type == TxnCreditPurchase && tx.Amount.Equal(amount)
	})).Return(nil)
	al.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeCreditsRecharged
	})).Return()

	newBalance, err := svc.Recharge(context.Background(), "ent-1", amount, "actor-1")
	require.NoError(t, err)
	assert.True(t, newBalance.Equal(decimal.RequireFromString("150.00")))
}

func TestRechargeRejectsNonPositive(t *testing.T) {
	svc := newTestService(new(mockRepo), new(mockAudit))

	_, err := svc.Recharge(context.Background(), "ent-1", decimal.Zero, "actor-1")
	assert.Error(t, err)

	_, err = svc.Recharge(context.Background(), "ent-1", decimal.RequireFromString("-5"), "actor-1")
	assert.Error(t, err)
}

func TestSetAutoRechargeValidation(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo, new(mockAudit))

	err := svc.SetAutoRecharge(context.Background(), "ent-1", true, decimal.Zero, decimal.NewFromInt(10))
	assert.Error(t, err)

	repo.On("UpdateAutoRecharge", mock.Anything, "ent-1", false, mock.Anything, mock.Anything).Return(nil)
	err = svc.SetAutoRecharge(context.Background(), "ent-1", false, decimal.Zero, decimal.Zero)
	assert.NoError(t, err)
}

func TestRechargeOptions(t *testing.T) {
	svc := newTestService(new(mockRepo), new(mockAudit))

	options := svc.RechargeOptions()
	require.Len(t, options, 4)

	assert.True(t, options[0].Credits.Equal(decimal.NewFromInt(10)))
	assert.True(t, options[3].Credits.Equal(decimal.NewFromInt(100)))
	for _, opt := range options {
		assert.True(t, opt.Credits.Equal(opt.Price))
		assert.Equal(t, "USD", opt.Currency)
	}
	assert.Equal(t, "25 credits", options[1].Label)
}
