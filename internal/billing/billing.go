package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is an enterprise's credit account. One row per
// enterprise; every call debit and recharge flows through it.
type AccountBalance struct {
	ID                  string          `json:"id"`
	EnterpriseID        string          `json:"enterprise_id"`
	CreditsBalance      decimal.Decimal `json:"credits_balance"`
	Currency            string          `json:"currency"`
	AutoRechargeEnabled bool            `json:"auto_recharge_enabled"`
	AutoRechargeAmount  decimal.Decimal `json:"auto_recharge_amount"`
	AutoRechargeTrigger decimal.Decimal `json:"auto_recharge_trigger"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// PaymentTransaction is one entry in the balance ledger. Negative
// amounts are debits, positive amounts are credits.
type PaymentTransaction struct {
	ID           string          `json:"id"`
	EnterpriseID string          `json:"enterprise_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Transaction types
const (
	TxnInitialGrant   = "initial_grant"
	TxnCreditPurchase = "credit_purchase"
	TxnCallDebit      = "call_debit"
	TxnAutoRecharge   = "auto_recharge"
)

// Transaction statuses
const (
	TxnStatusCompleted = "completed"
	TxnStatusPending   = "pending"
)

// RechargeOption is a purchasable credit bundle.
type RechargeOption struct {
	Credits  decimal.Decimal `json:"credits"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Label    string          `json:"label"`
}

// CreditUsageLog records the credits consumed by one successful call.
type CreditUsageLog struct {
	ID           string          `json:"id"`
	EnterpriseID string          `json:"enterprise_id"`
	CallLogID    string          `json:"call_log_id"`
	VoiceAgentID string          `json:"voice_agent_id"`
	CreditsUsed  decimal.Decimal `json:"credits_used"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
