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

// Package bolna is a client for the Bolna voice-agent API, the vendor
// that actually places and tracks phone calls.
package bolna

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrNotConfigured = errors.New("bolna api key not configured")

// Client talks to the Bolna REST API with bearer authentication.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Bolna client. An empty API key is allowed at
// construction time; calls then fail with ErrNotConfigured so the
// platform can run without outbound calling.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// StartCallRequest is the payload for initiating a single outbound call.
type StartCallRequest struct {
	AgentID              string            `json:"agent_id"`
	RecipientPhoneNumber string            `json:"recipient_phone_number"`
	FromPhoneNumber      string            `json:"from_phone_number,omitempty"`
	Variables            map[string]string `json:"variables,omitempty"`
	Metadata             map[string]string `json:"metadata,omitempty"`
}

// StartCallResponse is the vendor's acknowledgement of a dispatched call.
type StartCallResponse struct {
	CallID  string `json:"call_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CallStatus is the vendor-side state of a previously dispatched call.
type CallStatus struct {
	CallID          string  `json:"call_id"`
	Status          string  `json:"status"`
	DurationSeconds float64 `json:"conversation_duration,omitempty"`
	Transcript      string  `json:"transcript,omitempty"`
	TotalCost       float64 `json:"total_cost,omitempty"`
}

// Agent is a vendor-side agent definition.
type Agent struct {
	ID        string `json:"id"`
	AgentName string `json:"agent_name"`
	AgentType string `json:"agent_type,omitempty"`
}

// APIError is a non-2xx response from the vendor.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bolna api returned %d: %s", e.StatusCode, e.Body)
}

// StartCall asks the vendor to place one outbound call.
func (c *Client) StartCall(ctx context.Context, req StartCallRequest) (*StartCallResponse, error) {
	var resp StartCallResponse
	if err := c.do(ctx, http.MethodPost, "/call", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCallStatus fetches the vendor-side state of a call.
func (c *Client) GetCallStatus(ctx context.Context, callID string) (*CallStatus, error) {
	var status CallStatus
	if err := c.do(ctx, http.MethodGet, "/call/"+callID+"/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListAgents fetches all agents defined under the vendor account.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var agents []Agent
	if err := c.do(ctx, http.MethodGet, "/v2/agent/all", nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bolna request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{StatusCode: resp.StatusCode, Body: string(excerpt)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
