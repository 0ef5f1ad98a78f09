// Copyright 2026 The BhashAI Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bhashai/bhashai/internal/billing"
)

// BillingRepository implements billing.Repository
type BillingRepository struct {
	db *DB
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(db *DB) *BillingRepository {
	return &BillingRepository{db: db}
}

// CreateBalance inserts an account balance row
func (r *BillingRepository) CreateBalance(ctx context.Context, b *billing.AccountBalance) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO account_balances (id, enterprise_id, credits_balance, currency,
			auto_recharge_enabled, auto_recharge_amount, auto_recharge_trigger,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, b.ID, b.EnterpriseID, b.CreditsBalance, b.Currency,
		b.AutoRechargeEnabled, b.AutoRechargeAmount, b.AutoRechargeTrigger,
		b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert balance: %w", err)
	}
	return nil
}

// GetBalance retrieves an enterprise's balance
func (r *BillingRepository) GetBalance(ctx context.Context, enterpriseID string) (*billing.AccountBalance, error) {
	var b billing.AccountBalance
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, enterprise_id, credits_balance, currency,
			auto_recharge_enabled, auto_recharge_amount, auto_recharge_trigger,
			created_at, updated_at
		FROM account_balances WHERE enterprise_id = $1
	`, enterpriseID).Scan(&b.ID, &b.EnterpriseID, &b.CreditsBalance, &b.Currency,
		&b.AutoRechargeEnabled, &b.AutoRechargeAmount, &b.AutoRechargeTrigger,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, billing.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return &b, nil
}

// Debit moves the balance and evaluates the auto-recharge trigger in
// one statement, so two concurrent debits can never both see the
// pre-debit balance. Triggered reports the debit that crossed the
// threshold, not every debit below it.
func (r *BillingRepository) Debit(ctx context.Context, enterpriseID string, amount decimal.Decimal) (*billing.DebitOutcome, error) {
	var out billing.DebitOutcome
	err := r.db.pool.QueryRow(ctx, `
		UPDATE account_balances
		SET credits_balance = credits_balance - $2, updated_at = now()
		WHERE enterprise_id = $1 AND credits_balance >= $2
		RETURNING credits_balance,
			(auto_recharge_enabled
				AND credits_balance <= auto_recharge_trigger
				AND credits_balance + $2 > auto_recharge_trigger),
			auto_recharge_amount
	`, enterpriseID, amount).Scan(&out.NewBalance, &out.AutoRechargeTriggered, &out.AutoRechargeAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either no balance row or not enough credits; look once
			// more to tell the two apart.
			if _, getErr := r.GetBalance(ctx, enterpriseID); getErr != nil {
				return nil, getErr
			}
			return nil, billing.ErrInsufficientCredits
		}
		return nil, fmt.Errorf("failed to debit balance: %w", err)
	}
	return &out, nil
}

// Credit adds to the balance and returns the new value
func (r *BillingRepository) Credit(ctx context.Context, enterpriseID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var newBalance decimal.Decimal
	err := r.db.pool.QueryRow(ctx, `
		UPDATE account_balances
		SET credits_balance = credits_balance + $2, updated_at = now()
		WHERE enterprise_id = $1
		RETURNING credits_balance
	`, enterpriseID, amount).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, billing.ErrBalanceNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to credit balance: %w", err)
	}
	return newBalance, nil
}

// UpdateAutoRecharge updates the auto-recharge settings
func (r *BillingRepository) UpdateAutoRecharge(ctx context.Context, enterpriseID string, enabled bool, amount, trigger decimal.Decimal) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE account_balances
		SET auto_recharge_enabled = $2, auto_recharge_amount = $3,
			auto_recharge_trigger = $4, updated_at = now()
		WHERE enterprise_id = $1
	`, enterpriseID, enabled, amount, trigger)
	if err != nil {
		return fmt.Errorf("failed to update auto recharge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return billing.ErrBalanceNotFound
	}
	return nil
}

// CreateTransaction inserts a ledger entry
func (r *BillingRepository) CreateTransaction(ctx context.Context, t *billing.PaymentTransaction) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO payment_transactions (id, enterprise_id, amount, currency, type,
			status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, t.EnterpriseID, t.Amount, t.Currency, t.Type, t.Status, t.Description, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListTransactions lists ledger entries, newest first
func (r *BillingRepository) ListTransactions(ctx context.Context, enterpriseID string, limit, offset int) ([]*billing.PaymentTransaction, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, enterprise_id, amount, currency, type, status, description, created_at
		FROM payment_transactions
		WHERE enterprise_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, enterpriseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []*billing.PaymentTransaction
	for rows.Next() {
		var t billing.PaymentTransaction
		if err := rows.Scan(&t.ID, &t.EnterpriseID, &t.Amount, &t.Currency, &t.Type,
			&t.Status, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// CreateUsageLog inserts a credit usage entry
func (r *BillingRepository) CreateUsageLog(ctx context.Context, u *billing.CreditUsageLog) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO credit_usage_logs (id, enterprise_id, call_log_id, voice_agent_id,
			credits_used, balance_after, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.EnterpriseID, u.CallLogID, u.VoiceAgentID, u.CreditsUsed, u.BalanceAfter, u.Description, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}

// ListUsageLogs lists credit usage entries, newest first
func (r *BillingRepository) ListUsageLogs(ctx context.Context, enterpriseID string, limit, offset int) ([]*billing.CreditUsageLog, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, enterprise_id, call_log_id, voice_agent_id, credits_used, balance_after, description, created_at
		FROM credit_usage_logs
		WHERE enterprise_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, enterpriseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage logs: %w", err)
	}
	defer rows.Close()

	var out []*billing.CreditUsageLog
	for rows.Next() {
		var u billing.CreditUsageLog
		if err := rows.Scan(&u.ID, &u.EnterpriseID, &u.CallLogID, &u.VoiceAgentID,
			&u.CreditsUsed, &u.BalanceAfter, &u.Description, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan usage log: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
