package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hashicorp/go-hclog"
)

// blockPageSize is the page size used when listing block children.
const blockPageSize = 100

// maxBlockListCalls caps the pagination loop. The provider contract says
// has_more eventually goes false; this guard turns a misbehaving provider
// into an error instead of an infinite loop.
const maxBlockListCalls = 1000

// PageService translates page operations into provider calls.
type PageService struct {
	client *Client
	logger hclog.Logger
}

// NewPageService creates a page service on top of a provider client.
func NewPageService(client *Client, logger hclog.Logger) *PageService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PageService{client: client, logger: logger.Named("pages")}
}

type createPagePayload struct {
	Parent     parentPayload               `json:"parent"`
	Icon       *iconPayload                `json:"icon,omitempty"`
	Properties map[string]*propertyPayload `json:"properties"`
	Children   []*blockPayload             `json:"children"`
}

type updatePagePayload struct {
	Icon       *iconPayload                `json:"icon,omitempty"`
	Properties map[string]*propertyPayload `json:"properties"`
	Children   []*blockPayload             `json:"children"`
}

type archivePayload struct {
	Archived bool `json:"archived"`
}

// Create creates a page under the given database. It returns the raw
// provider page object, unlike the read path which returns a decoded Page.
func (s *PageService) Create(
	ctx context.Context, page *Page, databaseID string,
) (map[string]any, error) {
	if page == nil {
		return nil, &MissingFieldError{Field: "page"}
	}
	if databaseID == "" {
		return nil, &MissingFieldError{Field: "database_id"}
	}
	if page.Blocks == nil {
		return nil, &MissingFieldError{Field: "blocks"}
	}

	payload := createPagePayload{
		Parent: parentPayload{DatabaseID: databaseID},
	}
	var err error
	if page.Icon != nil {
		if payload.Icon, err = encodeIcon(page.Icon); err != nil {
			return nil, err
		}
	}
	if payload.Properties, err = encodeProperties(page.Properties); err != nil {
		return nil, err
	}
	if payload.Children, err = encodeBlocks(page.Blocks); err != nil {
		return nil, err
	}

	raw, err := s.client.do(ctx, http.MethodPost, "/v1/pages", nil, payload)
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decoding create page response: %w", err)
	}
	s.logger.Info("created page", "database_id", databaseID)
	return obj, nil
}

// ReadProperties fetches a page's icon and properties in a single call. The
// returned page carries an empty block list; use Read for the full body.
func (s *PageService) ReadProperties(
	ctx context.Context, pageID string,
) (*Page, error) {
	if pageID == "" {
		return nil, &MissingFieldError{Field: "page_id"}
	}
	raw, err := s.client.do(ctx, http.MethodGet, "/v1/pages/"+pageID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// BlockPage is one page of block-children results.
type BlockPage struct {
	Blocks     []Block
	HasMore    bool
	NextCursor string
}

// ListBlocks fetches one page of a page's block children.
func (s *PageService) ListBlocks(
	ctx context.Context, pageID string, pageSize int, startCursor string,
) (*BlockPage, error) {
	if pageID == "" {
		return nil, &MissingFieldError{Field: "page_id"}
	}
	if pageSize <= 0 || pageSize > blockPageSize {
		pageSize = blockPageSize
	}

	query := url.Values{}
	query.Set("page_size", strconv.Itoa(pageSize))
	if startCursor != "" {
		query.Set("start_cursor", startCursor)
	}

	raw, err := s.client.do(
		ctx, http.MethodGet, "/v1/blocks/"+pageID+"/children", query, nil)
	if err != nil {
		return nil, err
	}

	var resp blockListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding block list response: %w", err)
	}

	page := &BlockPage{
		Blocks:  make([]Block, 0, len(resp.Results)),
		HasMore: resp.HasMore,
	}
	if resp.NextCursor != nil {
		page.NextCursor = *resp.NextCursor
	}
	for _, b := range resp.Results {
		block, err := decodeBlock(b)
		if err != nil {
			return nil, err
		}
		page.Blocks = append(page.Blocks, block)
	}
	return page, nil
}

// Read fetches a full page: properties first, then every block, following
// the cursor until the provider reports has_more=false. Blocks are fetched
// sequentially because body order is load-bearing.
func (s *PageService) Read(ctx context.Context, pageID string) (*Page, error) {
	page, err := s.ReadProperties(ctx, pageID)
	if err != nil {
		return nil, err
	}

	var blocks []Block
	cursor := ""
	for calls := 0; ; calls++ {
		if calls >= maxBlockListCalls {
			return nil, fmt.Errorf(
				"block listing for page %s did not terminate after %d calls",
				pageID, maxBlockListCalls)
		}
		bp, err := s.ListBlocks(ctx, pageID, blockPageSize, cursor)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, bp.Blocks...)
		if !bp.HasMore {
			break
		}
		cursor = bp.NextCursor
	}

	page.Blocks = blocks
	s.logger.Debug("read page", "page_id", pageID, "blocks", len(blocks))
	return page, nil
}

// Update replaces a page's icon, properties, and body in one call. This is a
// full replace, not a patch of individual fields.
func (s *PageService) Update(
	ctx context.Context, pageID string, page *Page,
) (map[string]any, error) {
	if pageID == "" {
		return nil, &MissingFieldError{Field: "page_id"}
	}
	if page == nil {
		return nil, &MissingFieldError{Field: "page"}
	}
	if page.Blocks == nil {
		return nil, &MissingFieldError{Field: "blocks"}
	}

	var payload updatePagePayload
	var err error
	if page.Icon != nil {
		if payload.Icon, err = encodeIcon(page.Icon); err != nil {
			return nil, err
		}
	}
	if payload.Properties, err = encodeProperties(page.Properties); err != nil {
		return nil, err
	}
	if payload.Children, err = encodeBlocks(page.Blocks); err != nil {
		return nil, err
	}

	raw, err := s.client.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, nil, payload)
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decoding update page response: %w", err)
	}
	return obj, nil
}

// Archive flips the archived flag on without touching content.
func (s *PageService) Archive(
	ctx context.Context, pageID string,
) (map[string]any, error) {
	return s.setArchived(ctx, pageID, true)
}

// Unarchive flips the archived flag off.
func (s *PageService) Unarchive(
	ctx context.Context, pageID string,
) (map[string]any, error) {
	return s.setArchived(ctx, pageID, false)
}

func (s *PageService) setArchived(
	ctx context.Context, pageID string, archived bool,
) (map[string]any, error) {
	if pageID == "" {
		return nil, &MissingFieldError{Field: "page_id"}
	}
	raw, err := s.client.do(
		ctx, http.MethodPatch, "/v1/pages/"+pageID, nil,
		archivePayload{Archived: archived})
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decoding archive page response: %w", err)
	}
	return obj, nil
}
