package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// DatabaseService translates database (schema container) operations into
// provider calls. Databases have no hard delete, only archive.
type DatabaseService struct {
	client *Client
	logger hclog.Logger
}

// NewDatabaseService creates a database service on top of a provider client.
func NewDatabaseService(client *Client, logger hclog.Logger) *DatabaseService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &DatabaseService{client: client, logger: logger.Named("databases")}
}

type createDatabasePayload struct {
	IsInline    bool           `json:"is_inline"`
	Parent      *parentPayload `json:"parent,omitempty"`
	Icon        *iconPayload   `json:"icon"`
	Title       []richText     `json:"title"`
	Description []richText     `json:"description"`
	Properties  map[string]any `json:"properties"`
}

// encodeDatabase builds the create/update payload. Create scopes the schema
// under a parent page; update sends the same body minus the parent.
func encodeDatabase(db *Database, parentPageID string) (*createDatabasePayload, error) {
	if db == nil {
		return nil, &MissingFieldError{Field: "database"}
	}
	if db.Icon == nil {
		return nil, &MissingFieldError{Field: "icon"}
	}
	if db.Title == "" {
		return nil, &MissingFieldError{Field: "title"}
	}
	if db.Description == "" {
		return nil, &MissingFieldError{Field: "description"}
	}

	icon, err := encodeIcon(db.Icon)
	if err != nil {
		return nil, err
	}
	props, err := encodeSchemaProperties(db.Properties)
	if err != nil {
		return nil, err
	}

	payload := &createDatabasePayload{
		IsInline:    db.IsInline,
		Icon:        icon,
		Title:       richTextOf(db.Title),
		Description: richTextOf(db.Description),
		Properties:  props,
	}
	if parentPageID != "" {
		payload.Parent = &parentPayload{Type: "page_id", PageID: parentPageID}
	}
	return payload, nil
}

// Create creates a database under the given parent page and returns the raw
// provider database object.
func (s *DatabaseService) Create(
	ctx context.Context, parentPageID string, db *Database,
) (map[string]any, error) {
	if parentPageID == "" {
		return nil, &MissingFieldError{Field: "page_id"}
	}
	payload, err := encodeDatabase(db, parentPageID)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.do(ctx, http.MethodPost, "/v1/databases", nil, payload)
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decoding create database response: %w", err)
	}
	s.logger.Info("created database", "parent_page_id", parentPageID)
	return obj, nil
}

// Read fetches a database and decodes its schema: inline flag, parent page,
// icon, title, optional description, and the full property-definition set.
func (s *DatabaseService) Read(
	ctx context.Context, databaseID string,
) (*Database, error) {
	if databaseID == "" {
		return nil, &MissingFieldError{Field: "database_id"}
	}
	raw, err := s.client.do(
		ctx, http.MethodGet, "/v1/databases/"+databaseID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeDatabase(raw)
}

// Update replaces a database's schema with the same encoding as Create,
// minus the parent reference.
func (s *DatabaseService) Update(
	ctx context.Context, databaseID string, db *Database,
) (map[string]any, error) {
	if databaseID == "" {
		return nil, &MissingFieldError{Field: "database_id"}
	}
	payload, err := encodeDatabase(db, "")
	if err != nil {
		return nil, err
	}

	raw, err := s.client.do(
		ctx, http.MethodPatch, "/v1/databases/"+databaseID, nil, payload)
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decoding update database response: %w", err)
	}
	return obj, nil
}

// Archive flips the archived flag on.
func (s *DatabaseService) Archive(
	ctx context.Context, databaseID string,
) (map[string]any, error) {
	return s.setArchived(ctx, databaseID, true)
}

// Unarchive flips the archived flag off.
func (s *DatabaseService) Unarchive(
	ctx context.Context, databaseID string,
) (map[string]any, error) {
	return s.setArchived(ctx, databaseID, false)
}

func (s *DatabaseService) setArchived(
	ctx context.Context, databaseID string, archived bool,
) (map[string]any, error) {
	if databaseID == "" {
		return nil, &MissingFieldError{Field: "database_id"}
	}
	raw, err := s.client.do(
		ctx, http.MethodPatch, "/v1/databases/"+databaseID, nil,
		archivePayload{Archived: archived})
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decoding archive database response: %w", err)
	}
	return obj, nil
}
