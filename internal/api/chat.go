package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/micro-tools/notebridge/internal/server"
)

// ChatRequest contains the fields that are allowed to make the POST request.
// Leaving ChatID empty starts a new conversation.
type ChatRequest struct {
	CharacterID string `json:"character_id"`
	ChatID      string `json:"chat_id,omitempty"`
	Message     string `json:"message"`
}

// Validate validates the request.
func (r *ChatRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CharacterID, validation.Required),
		validation.Field(&r.Message, validation.Required),
	)
}

// ChatHandler relays one message to a character and returns the reshaped
// turn.
func ChatHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST":
			token, err := bearerToken(r)
			if err != nil {
				http.Error(w, fmt.Sprintf("Unauthorized: %q", err),
					http.StatusUnauthorized)
				return
			}

			req := &ChatRequest{}
			if err := decodeRequest(r, req); err != nil {
				srv.Logger.Error("error decoding chat request", "error", err)
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}
			if err := req.Validate(); err != nil {
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}

			resp, err := srv.Chat.Send(
				r.Context(), token, req.CharacterID, req.ChatID, req.Message)
			if err != nil {
				srv.Logger.Error("error sending chat message", "error", err)
				http.Error(w, fmt.Sprintf("Error sending chat message: %q", err),
					http.StatusInternalServerError)
				return
			}

			// Write response.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)

			enc := json.NewEncoder(w)
			if err := enc.Encode(resp); err != nil {
				srv.Logger.Error("error encoding chat response", "error", err)
				http.Error(w, "Error sending chat message",
					http.StatusInternalServerError)
				return
			}
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	})
}
