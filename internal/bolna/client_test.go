package bolna

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCall(t *testing.T) {
	var gotAuth string
	var gotBody StartCallRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/call", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(StartCallResponse{CallID: "call-abc", Status: "queued"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	resp, err := c.StartCall(context.Background(), StartCallRequest{
		AgentID:              "agent-1",
		RecipientPhoneNumber: "+919876543210",
		FromPhoneNumber:      "+918888888888",
		Variables:            map[string]string{"customer_name": "Asha"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "agent-1", gotBody.AgentID)
	assert.Equal(t, "+919876543210", gotBody.RecipientPhoneNumber)
	assert.Equal(t, "call-abc", resp.CallID)
	assert.Equal(t, "queued", resp.Status)
}

func TestStartCallVendorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"telephony provider unavailable"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	_, err := c.StartCall(context.Background(), StartCallRequest{AgentID: "agent-1"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "telephony provider unavailable")
}

func TestGetCallStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/call/call-abc/status", r.URL.Path)
		json.NewEncoder(w).Encode(CallStatus{CallID: "call-abc", Status: "completed", DurationSeconds: 42})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	status, err := c.GetCallStatus(context.Background(), "call-abc")
	require.NoError(t, err)

	assert.Equal(t, "completed", status.Status)
	assert.Equal(t, 42.0, status.DurationSeconds)
}

func TestListAgents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/agent/all", r.URL.Path)
		json.NewEncoder(w).Encode([]Agent{
			{ID: "a1", AgentName: "Clinic Reminder"},
			{ID: "a2", AgentName: "Lead Qualifier"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	agents, err := c.ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "Clinic Reminder", agents[0].AgentName)
}

func TestNotConfigured(t *testing.T) {
	c := NewClient("http://unused", "", 5*time.Second)

	assert.False(t, c.Configured())

	_, err := c.StartCall(context.Background(), StartCallRequest{AgentID: "agent-1"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
