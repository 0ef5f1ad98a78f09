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

package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bhashai/bhashai/internal/audit"
	"github.com/bhashai/bhashai/internal/id"
)

// Service provides credit and ledger business logic
type Service struct {
	repo        Repository
	auditLogger audit.Logger

	currency       string
	initialCredits decimal.Decimal
	costPerCall    decimal.Decimal
}

// NewService creates a new billing service
func NewService(repo Repository, auditLogger audit.Logger, currency string, initialCredits, costPerCall decimal.Decimal) *Service {
	return &Service{
		repo:           repo,
		auditLogger:    auditLogger,
		currency:       currency,
		initialCredits: initialCredits,
		costPerCall:    costPerCall,
	}
}

// CostPerCall returns the configured per-call debit amount.
func (s *Service) CostPerCall() decimal.Decimal {
	return s.costPerCall
}

// RechargeOptions lists the credit bundles offered at checkout.
// Credits map 1:1 to price; bundles exist for the UI, not for
// discounting.
func (s *Service) RechargeOptions() []RechargeOption {
	options := make([]RechargeOption, 0, 4)
	for _, amount := range []int64{10, 25, 50, 100} {
		d := decimal.NewFromInt(amount)
		options = append(options, RechargeOption{
			Credits:  d,
			Price:    d,
			Currency: s.currency,
			Label:    fmt.Sprintf("%d credits", amount),
		})
	}
	return options
}

// EnsureBalance returns the enterprise's balance, creating it with the
// initial credit grant on first access.
func (s *Service) EnsureBalance(ctx context.Context, enterpriseID string) (*AccountBalance, error) {
	b, err := s.repo.GetBalance(ctx, enterpriseID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrBalanceNotFound) {
		return nil, err
	}

	now := time.Now()
	b = &AccountBalance{
		ID:                  id.NewUUIDv7(),
		EnterpriseID:        enterpriseID,
		CreditsBalance:      s.initialCredits,
		Currency:            s.currency,
		AutoRechargeEnabled: false,
		AutoRechargeAmount:  decimal.NewFromInt(10),
		AutoRechargeTrigger: decimal.NewFromInt(10),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.CreateBalance(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create balance: %w", err)
	}

	if s.initialCredits.IsPositive() {
		txn := &PaymentTransaction{
			ID:           id.NewUUIDv7(),
			EnterpriseID: enterpriseID,
			Amount:       s.initialCredits,
			Currency:     s.currency,
			Type:         TxnInitialGrant,
			Status:       TxnStatusCompleted,
			Description:  "initial credit grant",
			CreatedAt:    now,
		}
		if err := s.repo.CreateTransaction(ctx, txn); err != nil {
			return nil, fmt.Errorf("failed to record initial grant: %w", err)
		}
	}

	return b, nil
}

// GetBalance retrieves an enterprise's balance.
func (s *Service) GetBalance(ctx context.Context, enterpriseID string) (*AccountBalance, error) {
	return s.repo.GetBalance(ctx, enterpriseID)
}

// DebitForCall charges one call's cost against the balance, records
// the usage log and ledger entry, and queues an auto-recharge when the
// debit crosses the configured trigger.
func (s *Service) DebitForCall(ctx context.Context, enterpriseID, callLogID, agentID, description string) (decimal.Decimal, error) {
	outcome, err := s.repo.Debit(ctx, enterpriseID, s.costPerCall)
	if err != nil {
		return decimal.Zero, err
	}

	now := time.Now()
	usage := &CreditUsageLog{
		ID:           id.NewUUIDv7(),
		EnterpriseID: enterpriseID,
		CallLogID:    callLogID,
		VoiceAgentID: agentID,
		CreditsUsed:  s.costPerCall,
		BalanceAfter: outcome.NewBalance,
		Description:  description,
		CreatedAt:    now,
	}
	if err := s.repo.CreateUsageLog(ctx, usage); err != nil {
		return decimal.Zero, fmt.Errorf("failed to record credit usage: %w", err)
	}

	txn := &PaymentTransaction{
		ID:           id.NewUUIDv7(),
		EnterpriseID: enterpriseID,
		Amount:       s.costPerCall.Neg(),
		Currency:     s.currency,
		Type:         TxnCallDebit,
		Status:       TxnStatusCompleted,
		Description:  description,
		CreatedAt:    now,
	}
	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return decimal.Zero, fmt.Errorf("failed to record debit: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeCreditsDebited,
		EnterpriseID: enterpriseID,
		Resource:     callLogID,
		Metadata: map[string]any{
			audit.AttrAmount: s.costPerCall.String(),
			"balance_after":  outcome.NewBalance.String(),
		},
	})

	if outcome.AutoRechargeTriggered {
		if err := s.queueAutoRecharge(ctx, enterpriseID, outcome.AutoRechargeAmount); err != nil {
			return decimal.Zero, err
		}
	}

	return outcome.NewBalance, nil
}

func (s *Service) queueAutoRecharge(ctx context.Context, enterpriseID string, amount decimal.Decimal) error {
	txn := &PaymentTransaction{
		ID:           id.NewUUIDv7(),
		EnterpriseID: enterpriseID,
		Amount:       amount,
		Currency:     s.currency,
		Type:         TxnAutoRecharge,
		Status:       TxnStatusPending,
		Description:  "auto recharge triggered by low balance",
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to queue auto recharge: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeAutoRechargeQueued,
		EnterpriseID: enterpriseID,
		Metadata:     map[string]any{audit.AttrAmount: amount.String()},
	})

	return nil
}

// Recharge adds credits to the balance and records the purchase.
func (s *Service) Recharge(ctx context.Context, enterpriseID string, amount decimal.Decimal, actorID string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("recharge amount must be positive")
	}

	newBalance, err := s.repo.Credit(ctx, enterpriseID, amount)
	if err != nil {
		return decimal.Zero, err
	}

	txn := &PaymentTransaction{
		ID:           id.NewUUIDv7(),
		EnterpriseID: enterpriseID,
		Amount:       amount,
		Currency:     s.currency,
		Type:         TxnCreditPurchase,
		Status:       TxnStatusCompleted,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return decimal.Zero, fmt.Errorf("failed to record recharge: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeCreditsRecharged,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Metadata: map[string]any{
			audit.AttrAmount: amount.String(),
			"balance_after":  newBalance.String(),
		},
	})

	return newBalance, nil
}

// SetAutoRecharge updates the auto-recharge settings of a balance.
func (s *Service) SetAutoRecharge(ctx context.Context, enterpriseID string, enabled bool, amount, trigger decimal.Decimal) error {
	if enabled {
		if !amount.IsPositive() {
			return fmt.Errorf("auto recharge amount must be positive")
		}
		if trigger.IsNegative() {
			return fmt.Errorf("auto recharge trigger must not be negative")
		}
	}
	return s.repo.UpdateAutoRecharge(ctx, enterpriseID, enabled, amount, trigger)
}

// ListTransactions lists an enterprise's ledger entries, newest first.
func (s *Service) ListTransactions(ctx context.Context, enterpriseID string, limit, offset int) ([]*PaymentTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListTransactions(ctx, enterpriseID, limit, offset)
}

// ListUsageLogs lists an enterprise's credit usage entries, newest first.
func (s *Service) ListUsageLogs(ctx context.Context, enterpriseID string, limit, offset int) ([]*CreditUsageLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListUsageLogs(ctx, enterpriseID, limit, offset)
}
