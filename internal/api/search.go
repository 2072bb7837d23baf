package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/micro-tools/notebridge/internal/server"
	"github.com/micro-tools/notebridge/pkg/notion"
)

// SearchRequest contains the fields that are allowed to make the POST
// request. The caller's own bearer token is forwarded upstream, so search
// only sees what that token can see.
type SearchRequest struct {
	Query       string               `json:"query,omitempty"`
	Sort        *notion.SearchSort   `json:"sort,omitempty"`
	Filter      *notion.SearchFilter `json:"filter,omitempty"`
	PageSize    int                  `json:"page_size,omitempty"`
	StartCursor string               `json:"start_cursor,omitempty"`
}

// Validate validates the request.
func (r *SearchRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PageSize, validation.Min(0), validation.Max(100)),
	)
}

// SearchHandler runs workspace searches.
func SearchHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		// Using POST method to avoid logging the query in browser history
		// and server logs.
		case "POST":
			token, err := bearerToken(r)
			if err != nil {
				http.Error(w, fmt.Sprintf("Unauthorized: %q", err),
					http.StatusUnauthorized)
				return
			}

			req := &SearchRequest{}
			if err := decodeRequest(r, req); err != nil {
				srv.Logger.Error("error decoding search request", "error", err)
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}
			if err := req.Validate(); err != nil {
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}

			query := &notion.SearchQuery{
				Query:       req.Query,
				Sort:        req.Sort,
				Filter:      req.Filter,
				PageSize:    req.PageSize,
				StartCursor: req.StartCursor,
			}
			result, err := srv.Search.Search(r.Context(), token, query)
			if err != nil {
				srv.Logger.Error("error searching workspace", "error", err)
				http.Error(w, fmt.Sprintf("Error searching workspace: %q", err),
					errorStatus(err))
				return
			}

			// Write response.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)

			enc := json.NewEncoder(w)
			if err := enc.Encode(result); err != nil {
				srv.Logger.Error("error encoding search response", "error", err)
				http.Error(w, "Error searching workspace",
					http.StatusInternalServerError)
				return
			}
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	})
}
