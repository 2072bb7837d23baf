// Package chat wraps the conversational character API in a single-call
// client and reshapes its turn responses into a stable internal form.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
)

const defaultTimezone = "America/Sao_Paulo"

// createdAtLayout is the display format for turn timestamps.
const createdAtLayout = "02/01/2006 15:04:05"

// Config contains configuration for the chat client.
//
// Example configuration (HCL):
//
//	chat {
//	  base_url = "https://chat.example.com"
//	  timezone = "America/Sao_Paulo"
//	}
type Config struct {
	// BaseURL is the base URL of the chat API.
	BaseURL string `hcl:"base_url"`

	// Timezone renders turn timestamps in the caller's local time.
	Timezone string `hcl:"timezone,optional"`

	// Timeout for chat requests.
	Timeout time.Duration `hcl:"timeout,optional"`
}

// Session identifies the conversation a turn belongs to.
type Session struct {
	ChatID string `json:"chat_id"`
	TurnID string `json:"turn_id"`
}

// Character identifies who answered.
type Character struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Candidate is one generated answer.
type Candidate struct {
	CandidateID string `json:"candidate_id"`
	Message     string `json:"message"`
}

// Response is the reshaped chat turn handed back to controllers.
type Response struct {
	CreatedAt          string      `json:"created_at"`
	Session            Session     `json:"session"`
	Character          Character   `json:"character"`
	Candidates         []Candidate `json:"candidates"`
	PrimaryCandidateID string      `json:"primary_candidate_id"`
}

type sendPayload struct {
	CharacterID string `json:"character_id"`
	ChatID      string `json:"chat_id,omitempty"`
	Message     string `json:"message"`
}

// turnPayload is the provider's turn object.
type turnPayload struct {
	CreateTime string `json:"create_time"`
	TurnKey    struct {
		ChatID string `json:"chat_id"`
		TurnID string `json:"turn_id"`
	} `json:"turn_key"`
	Author struct {
		AuthorID string `json:"author_id"`
		Name     string `json:"name"`
	} `json:"author"`
	Candidates []struct {
		CandidateID string `json:"candidate_id"`
		RawContent  string `json:"raw_content"`
	} `json:"candidates"`
	PrimaryCandidateID string `json:"primary_candidate_id"`
}

// Client is a synchronous chat API client: one call per turn, no retries.
type Client struct {
	config   *Config
	location *time.Location
	client   *http.Client
	logger   hclog.Logger
}

// NewClient creates a chat client from a resolved configuration.
func NewClient(cfg *Config, logger hclog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("chat base_url is required")
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid chat timezone %q: %w", cfg.Timezone, err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Client{
		config:   cfg,
		location: loc,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger.Named("chat-client"),
	}, nil
}

// Send submits one message to a character and returns the reshaped turn.
// Leaving chatID empty starts a new conversation.
func (c *Client) Send(
	ctx context.Context, token, characterID, chatID, message string,
) (*Response, error) {
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if characterID == "" {
		return nil, fmt.Errorf("character ID is required")
	}
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	payload := sendPayload{
		CharacterID: characterID,
		ChatID:      chatID,
		Message:     message,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.config.BaseURL+"/chat/turn", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending chat turn", "character_id", characterID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading chat response: %w", err)
	}

	// This collaborator's validation threshold is flipped relative to the
	// Notion path: only sub-200 statuses are rejected here.
	if resp.StatusCode < http.StatusOK {
		return nil, fmt.Errorf(
			"chat request failed with status code %d and response data %s",
			resp.StatusCode, respBody)
	}

	var turn turnPayload
	if err := json.Unmarshal(respBody, &turn); err != nil {
		return nil, fmt.Errorf("decoding chat response: %w", err)
	}

	return c.reshape(&turn)
}

// reshape converts a provider turn into the internal response form.
func (c *Client) reshape(turn *turnPayload) (*Response, error) {
	created, err := time.Parse(time.RFC3339, turn.CreateTime)
	if err != nil {
		return nil, fmt.Errorf("parsing turn create time: %w", err)
	}

	out := &Response{
		CreatedAt: created.In(c.location).Format(createdAtLayout),
		Session: Session{
			ChatID: turn.TurnKey.ChatID,
			TurnID: turn.TurnKey.TurnID,
		},
		Character: Character{
			ID:   turn.Author.AuthorID,
			Name: turn.Author.Name,
		},
		Candidates:         make([]Candidate, 0, len(turn.Candidates)),
		PrimaryCandidateID: turn.PrimaryCandidateID,
	}
	for _, cand := range turn.Candidates {
		out.Candidates = append(out.Candidates, Candidate{
			CandidateID: cand.CandidateID,
			Message:     cand.RawContent,
		})
	}
	return out, nil
}
