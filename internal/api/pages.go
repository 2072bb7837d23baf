package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/micro-tools/notebridge/internal/server"
	"github.com/micro-tools/notebridge/pkg/notion"
)

// PageCreateRequest contains the fields that are allowed to make the POST
// request. DatabaseID falls back to the configured default database.
type PageCreateRequest struct {
	DatabaseID string            `json:"database_id,omitempty"`
	Icon       *notion.Icon      `json:"icon,omitempty"`
	Properties []notion.Property `json:"properties"`
	Blocks     []notion.Block    `json:"blocks"`
}

// Validate validates the request.
func (r *PageCreateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Properties, validation.Required),
		// An empty body is fine, an absent one is not.
		validation.Field(&r.Blocks, validation.NotNil),
	)
}

// PageUpdateRequest contains the fields that are allowed to make the PATCH
// request. The block list replaces the page body wholesale.
type PageUpdateRequest struct {
	Icon       *notion.Icon      `json:"icon,omitempty"`
	Properties []notion.Property `json:"properties"`
	Blocks     []notion.Block    `json:"blocks"`
}

// Validate validates the request.
func (r *PageUpdateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Properties, validation.Required),
		validation.Field(&r.Blocks, validation.NotNil),
	)
}

// PagesHandler creates pages.
func PagesHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST":
			req := &PageCreateRequest{}
			if err := decodeRequest(r, req); err != nil {
				srv.Logger.Error("error decoding create page request", "error", err)
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}
			if err := req.Validate(); err != nil {
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}

			databaseID := req.DatabaseID
			if databaseID == "" {
				databaseID = srv.Config.Notion.DatabaseID
			}

			page := &notion.Page{
				Icon:       req.Icon,
				Properties: req.Properties,
				Blocks:     req.Blocks,
			}
			obj, err := srv.Pages.Create(r.Context(), page, databaseID)
			if err != nil {
				srv.Logger.Error("error creating page", "error", err)
				http.Error(w, fmt.Sprintf("Error creating page: %q", err),
					errorStatus(err))
				return
			}

			// Write response.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)

			enc := json.NewEncoder(w)
			if err := enc.Encode(obj); err != nil {
				srv.Logger.Error("error encoding create page response", "error", err)
				http.Error(w, "Error creating page",
					http.StatusInternalServerError)
				return
			}
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	})
}

// PageResourceHandler reads, updates, archives, and unarchives a single page.
func PageResourceHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageID, action, err := parseResourcePathFromURL(r.URL.Path, "pages")
		if err != nil {
			srv.Logger.Error("error parsing page URL path",
				"error", err, "path", r.URL.Path)
			http.Error(w, "Bad request: invalid URL path",
				http.StatusBadRequest)
			return
		}

		switch action {
		case "":
			switch r.Method {
			case "GET":
				page, err := srv.Pages.Read(r.Context(), pageID)
				if err != nil {
					srv.Logger.Error("error reading page",
						"error", err, "page_id", pageID)
					http.Error(w, fmt.Sprintf("Error reading page: %q", err),
						errorStatus(err))
					return
				}
				writeJSON(w, srv, page, "page")
			case "PATCH":
				req := &PageUpdateRequest{}
				if err := decodeRequest(r, req); err != nil {
					srv.Logger.Error("error decoding update page request",
						"error", err, "page_id", pageID)
					http.Error(w, fmt.Sprintf("Bad request: %q", err),
						http.StatusBadRequest)
					return
				}
				if err := req.Validate(); err != nil {
					http.Error(w, fmt.Sprintf("Bad request: %q", err),
						http.StatusBadRequest)
					return
				}

				page := &notion.Page{
					Icon:       req.Icon,
					Properties: req.Properties,
					Blocks:     req.Blocks,
				}
				obj, err := srv.Pages.Update(r.Context(), pageID, page)
				if err != nil {
					srv.Logger.Error("error updating page",
						"error", err, "page_id", pageID)
					http.Error(w, fmt.Sprintf("Error updating page: %q", err),
						errorStatus(err))
					return
				}
				writeJSON(w, srv, obj, "page")
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
		case "archive", "unarchive":
			if r.Method != "POST" {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			var obj map[string]any
			if action == "archive" {
				obj, err = srv.Pages.Archive(r.Context(), pageID)
			} else {
				obj, err = srv.Pages.Unarchive(r.Context(), pageID)
			}
			if err != nil {
				srv.Logger.Error("error archiving page",
					"error", err, "page_id", pageID, "action", action)
				http.Error(w, fmt.Sprintf("Error archiving page: %q", err),
					errorStatus(err))
				return
			}
			writeJSON(w, srv, obj, "page")
		default:
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
	})
}

// writeJSON writes a 200 response with a JSON body.
func writeJSON(w http.ResponseWriter, srv server.Server, v any, what string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		srv.Logger.Error("error encoding response", "error", err, "what", what)
		http.Error(w, fmt.Sprintf("Error encoding %s response", what),
			http.StatusInternalServerError)
		return
	}
}
