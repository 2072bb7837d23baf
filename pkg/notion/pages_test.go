package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPageService(t *testing.T, handler http.HandlerFunc) *PageService {
	t.Helper()
	mockServer := httptest.NewServer(handler)
	t.Cleanup(mockServer.Close)

	client, err := NewClient(&Config{
		BaseURL: mockServer.URL,
		APIKey:  "secret",
	}, hclog.NewNullLogger())
	require.NoError(t, err)
	return NewPageService(client, hclog.NewNullLogger())
}

func TestPageServiceCreate(t *testing.T) {
	t.Run("posts the encoded page", func(t *testing.T) {
		var calls int
		svc := newTestPageService(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/v1/pages", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			parent := body["parent"].(map[string]any)
			assert.Equal(t, "db-1", parent["database_id"])

			props := body["properties"].(map[string]any)
			assert.Contains(t, props, "Name")

			children := body["children"].([]any)
			assert.Len(t, children, 1)

			w.Write([]byte(`{"object": "page", "id": "page-1"}`))
		})

		obj, err := svc.Create(context.Background(), &Page{
			Icon:       &Icon{Type: IconEmoji, Value: "📘"},
			Properties: []Property{{Name: "Name", Type: PropertyTitle, Value: "t"}},
			Blocks:     []Block{{Type: BlockParagraph, Value: "body"}},
		}, "db-1")
		require.NoError(t, err)
		assert.Equal(t, "page-1", obj["id"])
		assert.Equal(t, 1, calls)
	})

	t.Run("empty properties fail before any call", func(t *testing.T) {
		var calls int
		svc := newTestPageService(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
		})

		_, err := svc.Create(context.Background(), &Page{
			Properties: []Property{},
			Blocks:     []Block{},
		}, "db-1")
		var missingErr *MissingFieldError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "properties", missingErr.Field)
		assert.Equal(t, 0, calls)
	})

	t.Run("nil blocks fail before any call", func(t *testing.T) {
		var calls int
		svc := newTestPageService(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
		})

		_, err := svc.Create(context.Background(), &Page{
			Properties: []Property{{Name: "Name", Type: PropertyTitle, Value: "t"}},
		}, "db-1")
		var missingErr *MissingFieldError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "blocks", missingErr.Field)
		assert.Equal(t, 0, calls)
	})

	t.Run("missing database ID", func(t *testing.T) {
		svc := newTestPageService(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := svc.Create(context.Background(), &Page{Blocks: []Block{}}, "")
		var missingErr *MissingFieldError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "database_id", missingErr.Field)
	})
}

func TestPageServiceRead(t *testing.T) {
	pageObject := `{
		"object": "page",
		"id": "page-1",
		"properties": {
			"Name": {"type": "title",
				"title": [{"text": {"content": "Report"}}]}
		}
	}`

	blockPage := func(texts []string, next string) string {
		results := make([]string, 0, len(texts))
		for i, s := range texts {
			results = append(results, fmt.Sprintf(
				`{"object": "block", "id": "b%d", "type": "paragraph",
					"paragraph": {"text": [{"text": {"content": %q}}]}}`, i, s))
		}
		hasMore := "false"
		cursor := "null"
		if next != "" {
			hasMore = "true"
			cursor = fmt.Sprintf("%q", next)
		}
		return fmt.Sprintf(
			`{"object": "list", "results": [%s], "has_more": %s, "next_cursor": %s}`,
			strings.Join(results, ","), hasMore, cursor)
	}

	t.Run("follows the cursor until has_more is false", func(t *testing.T) {
		var blockCalls int
		svc := newTestPageService(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v1/pages/page-1":
				w.Write([]byte(pageObject))
			case "/v1/blocks/page-1/children":
				blockCalls++
				assert.Equal(t, "100", r.URL.Query().Get("page_size"))
				switch r.URL.Query().Get("start_cursor") {
				case "":
					w.Write([]byte(blockPage([]string{"one", "two"}, "cur-2")))
				case "cur-2":
					w.Write([]byte(blockPage([]string{"three"}, "cur-3")))
				case "cur-3":
					w.Write([]byte(blockPage([]string{"four"}, "")))
				default:
					t.Errorf("unexpected cursor %q", r.URL.Query().Get("start_cursor"))
				}
			default:
				t.Errorf("unexpected path %q", r.URL.Path)
			}
		})

		page, err := svc.Read(context.Background(), "page-1")
		require.NoError(t, err)
		assert.Equal(t, 3, blockCalls)

		// Concatenation preserves provider order across pages.
		require.Len(t, page.Blocks, 4)
		assert.Equal(t, "one", page.Blocks[0].Value)
		assert.Equal(t, "two", page.Blocks[1].Value)
		assert.Equal(t, "three", page.Blocks[2].Value)
		assert.Equal(t, "four", page.Blocks[3].Value)
	})

	t.Run("single page body", func(t *testing.T) {
		svc := newTestPageService(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v1/pages/page-1":
				w.Write([]byte(pageObject))
			default:
				w.Write([]byte(blockPage([]string{"only"}, "")))
			}
		})

		page, err := svc.Read(context.Background(), "page-1")
		require.NoError(t, err)
		require.Len(t, page.Blocks, 1)
		assert.Equal(t, "only", page.Blocks[0].Value)
		require.Len(t, page.Properties, 1)
		assert.Equal(t, "Report", page.Properties[0].Value)
	})

	t.Run("provider error propagates", func(t *testing.T) {
		svc := newTestPageService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := svc.Read(context.Background(), "missing")
		var provErr *ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, http.StatusNotFound, provErr.StatusCode)
	})
}

func TestPageServiceUpdate(t *testing.T) {
	svc := newTestPageService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		assert.Equal(t, "/v1/pages/page-1", r.URL.Path)
		w.Write([]byte(`{"object": "page", "id": "page-1"}`))
	})

	obj, err := svc.Update(context.Background(), "page-1", &Page{
		Properties: []Property{{Name: "Name", Type: PropertyTitle, Value: "t"}},
		Blocks:     []Block{},
	})
	require.NoError(t, err)
	assert.Equal(t, "page-1", obj["id"])
}

func TestPageServiceArchive(t *testing.T) {
	var gotArchived *bool
	svc := newTestPageService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		var body archivePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotArchived = &body.Archived
		w.Write([]byte(`{"object": "page", "id": "page-1", "archived": true}`))
	})

	_, err := svc.Archive(context.Background(), "page-1")
	require.NoError(t, err)
	require.NotNil(t, gotArchived)
	assert.True(t, *gotArchived)

	_, err = svc.Unarchive(context.Background(), "page-1")
	require.NoError(t, err)
	assert.False(t, *gotArchived)
}
