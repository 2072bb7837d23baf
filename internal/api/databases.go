package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/micro-tools/notebridge/internal/server"
	"github.com/micro-tools/notebridge/pkg/notion"
)

// DatabaseCreateRequest contains the fields that are allowed to make the POST
// request. Properties are schema definitions, not values.
type DatabaseCreateRequest struct {
	PageID      string            `json:"page_id"`
	Icon        *notion.Icon      `json:"icon"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	IsInline    bool              `json:"is_inline"`
	Properties  []notion.Property `json:"properties"`
}

// Validate validates the request.
func (r *DatabaseCreateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PageID, validation.Required),
		validation.Field(&r.Icon, validation.NotNil),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Properties, validation.Required),
	)
}

// DatabaseUpdateRequest contains the fields that are allowed to make the
// PATCH request. The schema replaces the existing one; no reparenting.
type DatabaseUpdateRequest struct {
	Icon        *notion.Icon      `json:"icon"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	IsInline    bool              `json:"is_inline"`
	Properties  []notion.Property `json:"properties"`
}

// Validate validates the request.
func (r *DatabaseUpdateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Icon, validation.NotNil),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Properties, validation.Required),
	)
}

// DatabasesHandler creates databases.
func DatabasesHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST":
			req := &DatabaseCreateRequest{}
			if err := decodeRequest(r, req); err != nil {
				srv.Logger.Error("error decoding create database request",
					"error", err)
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}
			if err := req.Validate(); err != nil {
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}

			db := &notion.Database{
				Icon:        req.Icon,
				Title:       req.Title,
				Description: req.Description,
				IsInline:    req.IsInline,
				Properties:  req.Properties,
			}
			obj, err := srv.Databases.Create(r.Context(), req.PageID, db)
			if err != nil {
				srv.Logger.Error("error creating database", "error", err)
				http.Error(w, fmt.Sprintf("Error creating database: %q", err),
					errorStatus(err))
				return
			}

			// Write response.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)

			enc := json.NewEncoder(w)
			if err := enc.Encode(obj); err != nil {
				srv.Logger.Error("error encoding create database response",
					"error", err)
				http.Error(w, "Error creating database",
					http.StatusInternalServerError)
				return
			}
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	})
}

// DatabaseResourceHandler reads, updates, archives, and unarchives a single
// database.
func DatabaseResourceHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		databaseID, action, err := parseResourcePathFromURL(r.URL.Path, "databases")
		if err != nil {
			srv.Logger.Error("error parsing database URL path",
				"error", err, "path", r.URL.Path)
			http.Error(w, "Bad request: invalid URL path",
				http.StatusBadRequest)
			return
		}

		switch action {
		case "":
			switch r.Method {
			case "GET":
				db, err := srv.Databases.Read(r.Context(), databaseID)
				if err != nil {
					srv.Logger.Error("error reading database",
						"error", err, "database_id", databaseID)
					http.Error(w, fmt.Sprintf("Error reading database: %q", err),
						errorStatus(err))
					return
				}
				writeJSON(w, srv, db, "database")
			case "PATCH":
				req := &DatabaseUpdateRequest{}
				if err := decodeRequest(r, req); err != nil {
					srv.Logger.Error("error decoding update database request",
						"error", err, "database_id", databaseID)
					http.Error(w, fmt.Sprintf("Bad request: %q", err),
						http.StatusBadRequest)
					return
				}
				if err := req.Validate(); err != nil {
					http.Error(w, fmt.Sprintf("Bad request: %q", err),
						http.StatusBadRequest)
					return
				}

				db := &notion.Database{
					Icon:        req.Icon,
					Title:       req.Title,
					Description: req.Description,
					IsInline:    req.IsInline,
					Properties:  req.Properties,
				}
				obj, err := srv.Databases.Update(r.Context(), databaseID, db)
				if err != nil {
					srv.Logger.Error("error updating database",
						"error", err, "database_id", databaseID)
					http.Error(w, fmt.Sprintf("Error updating database: %q", err),
						errorStatus(err))
					return
				}
				writeJSON(w, srv, obj, "database")
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
				obj, err = srv.Databases.Archive(r.Context(), databaseID)
			} else {
				obj, err = srv.Databases.Unarchive(r.Context(), databaseID)
			}
			if err != nil {
				srv.Logger.Error("error archiving database",
					"error", err, "database_id", databaseID, "action", action)
				http.Error(w, fmt.Sprintf("Error archiving database: %q", err),
					errorStatus(err))
				return
			}
			writeJSON(w, srv, obj, "database")
		default:
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
	})
}
