package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// searchPageSize is the default page size applied when the query leaves it
// unset.
const searchPageSize = 100

// SearchSort orders search results.
type SearchSort struct {
	Direction string `json:"direction,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SearchFilter restricts search results to one object kind.
type SearchFilter struct {
	Value    string `json:"value,omitempty"`
	Property string `json:"property,omitempty"`
}

// SearchQuery is the body of a search call.
type SearchQuery struct {
	Query       string        `json:"query,omitempty"`
	Sort        *SearchSort   `json:"sort,omitempty"`
	Filter      *SearchFilter `json:"filter,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
}

type searchResponse struct {
	Object     string            `json:"object"`
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor *string           `json:"next_cursor"`
	RequestID  string            `json:"request_id,omitempty"`
}

// objectKind is the discriminator peeked off each mixed search result.
type objectKind struct {
	Object string `json:"object"`
}

// SearchService runs provider searches. A single call per search; the caller
// resubmits with the returned cursor to page further.
type SearchService struct {
	client *Client
	logger hclog.Logger
}

// NewSearchService creates a search service on top of a provider client.
func NewSearchService(client *Client, logger hclog.Logger) *SearchService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SearchService{client: client, logger: logger.Named("search")}
}

// Search runs one search call with the caller's own bearer token and
// demultiplexes the mixed result list into pages and databases, preserving
// relative order within each group. Pages come back with empty block lists.
func (s *SearchService) Search(
	ctx context.Context, token string, query *SearchQuery,
) (*SearchResult, error) {
	if token == "" {
		return nil, &MissingFieldError{Field: "token"}
	}
	if query == nil {
		return nil, &MissingFieldError{Field: "query"}
	}
	if query.PageSize == 0 {
		query.PageSize = searchPageSize
	}

	raw, err := s.client.do(
		ctx, http.MethodPost, "/v1/search", nil, query, withToken(token))
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	result := &SearchResult{
		Pages:     []Page{},
		Databases: []Database{},
		HasMore:   resp.HasMore,
		RequestID: resp.RequestID,
	}
	if resp.NextCursor != nil {
		result.NextCursor = *resp.NextCursor
	}

	for _, item := range resp.Results {
		var kind objectKind
		if err := json.Unmarshal(item, &kind); err != nil {
			return nil, fmt.Errorf("decoding search result object: %w", err)
		}
		switch kind.Object {
		case "page":
			page, err := decodePage(item)
			if err != nil {
				return nil, err
			}
			result.Pages = append(result.Pages, *page)
		case "database":
			db, err := decodeDatabase(item)
			if err != nil {
				return nil, err
			}
			result.Databases = append(result.Databases, *db)
		default:
			return nil, fmt.Errorf("unexpected search result object %q", kind.Object)
		}
	}

	s.logger.Debug("search completed",
		"pages", len(result.Pages),
		"databases", len(result.Databases),
		"has_more", result.HasMore)
	return result, nil
}
