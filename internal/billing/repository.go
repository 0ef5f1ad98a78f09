package billing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrBalanceNotFound     = errors.New("account balance not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// DebitOutcome is the result of an atomic balance debit. The
// repository evaluates the auto-recharge trigger inside the same
// statement that moves the balance, so concurrent debits cannot both
// observe the pre-debit balance.
type DebitOutcome struct {
	NewBalance            decimal.Decimal
	AutoRechargeTriggered bool
	AutoRechargeAmount    decimal.Decimal
}

// Repository defines the interface for balance and ledger storage
type Repository interface {
	CreateBalance(ctx context.Context, b *AccountBalance) error
	GetBalance(ctx context.Context, enterpriseID string) (*AccountBalance, error)
	// Debit subtracts amount from the balance in a single statement,
	// failing with ErrInsufficientCredits when the balance would go
	// negative, and reports whether the debit crossed the
	// auto-recharge trigger.
	Debit(ctx context.Context, enterpriseID string, amount decimal.Decimal) (*DebitOutcome, error)
	Credit(ctx context.Context, enterpriseID string, amount decimal.Decimal) (decimal.Decimal, error)
	UpdateAutoRecharge(ctx context.Context, enterpriseID string, enabled bool, amount, trigger decimal.Decimal) error

	CreateTransaction(ctx context.Context, t *PaymentTransaction) error
	ListTransactions(ctx context.Context, enterpriseID string, limit, offset int) ([]*PaymentTransaction, error)

	CreateUsageLog(ctx context.Context, u *CreditUsageLog) error
	ListUsageLogs(ctx context.Context, enterpriseID string, limit, offset int) ([]*CreditUsageLog, error)
}
