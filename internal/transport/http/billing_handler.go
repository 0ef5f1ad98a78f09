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

package http

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

// GetBalance returns the caller's credit balance, creating it with the
// initial grant on first access.
// @Summary Get Balance
// @Tags Billing
// @Produce json
// @Security CookieAuth
// @Success 200 {object} billing.AccountBalance
// @Failure 500 {object} map[string]string
// @Router /billing/balance [get]
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.billingService.EnsureBalance(r.Context(), GetEnterpriseID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load balance")
		return
	}
	respondJSON(w, http.StatusOK, balance)
}

// ListRechargeOptions lists the credit bundles offered at checkout
// @Summary List Recharge Options
// @Tags Billing
// @Produce json
// @Security CookieAuth
// @Success 200 {array} billing.RechargeOption
// @Router /billing/recharge-options [get]
func (h *Handler) ListRechargeOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.billingService.RechargeOptions())
}

// RechargeRequest represents a credit purchase
type RechargeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Recharge adds purchased credits to the balance
// @Summary Recharge Credits
// @Tags Billing
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body RechargeRequest true "Recharge Data"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /billing/recharge [post]
func (h *Handler) Recharge(w http.ResponseWriter, r *http.Request) {
	var req RechargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newBalance, err := h.billingService.Recharge(r.Context(), GetEnterpriseID(r.Context()), req.Amount, GetUserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"credits_balance": newBalance,
	})
}

// AutoRechargeRequest represents auto-recharge settings
type AutoRechargeRequest struct {
	Enabled bool            `json:"enabled"`
	Amount  decimal.Decimal `json:"amount"`
	Trigger decimal.Decimal `json:"trigger"`
}

// SetAutoRecharge updates auto-recharge settings
// @Summary Set Auto-Recharge
// @Description When enabled, a recharge of the given amount is queued whenever the balance drops below the trigger.
// @Tags Billing
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body AutoRechargeRequest true "Auto-Recharge Settings"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /billing/auto-recharge [put]
func (h *Handler) SetAutoRecharge(w http.ResponseWriter, r *http.Request) {
	var req AutoRechargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.billingService.SetAutoRecharge(r.Context(), GetEnterpriseID(r.Context()), req.Enabled, req.Amount, req.Trigger)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "auto-recharge settings updated"})
}

// ListTransactions lists payment transactions
// @Summary List Transactions
// @Tags Billing
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} billing.PaymentTransaction
// @Router /billing/transactions [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	list, err := h.billingService.ListTransactions(r.Context(), GetEnterpriseID(r.Context()), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// ListUsageLogs lists per-call credit usage
// @Summary List Usage Logs
// @Tags Billing
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} billing.CreditUsageLog
// @Router /billing/usage [get]
func (h *Handler) ListUsageLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	list, err := h.billingService.ListUsageLogs(r.Context(), GetEnterpriseID(r.Context()), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list usage logs")
		return
	}
	respondJSON(w, http.StatusOK, list)
}
