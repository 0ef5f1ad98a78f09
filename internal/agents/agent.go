package agents

import (
	"time"
)

// VoiceAgent is a configured conversational agent attached to a
// channel. BolnaAgentID links it to the vendor-side agent that
// actually places calls; an agent without one cannot dispatch.
type VoiceAgent struct {
	ID                 string    `json:"id"`
	ChannelID          string    `json:"channel_id"`
	EnterpriseID       string    `json:"enterprise_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	WelcomeMessage     string    `json:"welcome_message,omitempty"`
	AgentPrompt        string    `json:"agent_prompt,omitempty"`
	ConversationStyle  string    `json:"conversation_style,omitempty"`
	LanguagePreference string    `json:"language_preference"`
	CallingNumber      string    `json:"calling_number,omitempty"`
	BolnaAgentID       string    `json:"bolna_agent_id,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Status constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDraft    = "draft"
)

// Contact is a callee in a voice agent's list. Phone numbers are
// stored in E.164 form and are unique within an agent.
type Contact struct {
	ID           string    `json:"id"`
	VoiceAgentID string    `json:"voice_agent_id"`
	EnterpriseID string    `json:"enterprise_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
