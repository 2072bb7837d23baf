package notion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeProperty(t *testing.T) {
	t.Run("title", func(t *testing.T) {
		payload, err := encodeProperty(Property{
			Name: "Name", Type: PropertyTitle, Value: "Weekly report",
		})
		require.NoError(t, err)
		require.Len(t, payload.Title, 1)
		assert.Equal(t, "Weekly report", payload.Title[0].Text.Content)
	})

	t.Run("rich text", func(t *testing.T) {
		payload, err := encodeProperty(Property{
			Name: "Notes", Type: PropertyRichText, Value: "some notes",
		})
		require.NoError(t, err)
		require.Len(t, payload.RichText, 1)
		assert.Equal(t, "some notes", payload.RichText[0].Text.Content)
	})

	t.Run("number accepts ints and floats", func(t *testing.T) {
		payload, err := encodeProperty(Property{
			Name: "Count", Type: PropertyNumber, Value: 42,
		})
		require.NoError(t, err)
		require.NotNil(t, payload.Number)
		assert.Equal(t, float64(42), *payload.Number)

		payload, err = encodeProperty(Property{
			Name: "Score", Type: PropertyNumber, Value: 9.5,
		})
		require.NoError(t, err)
		require.NotNil(t, payload.Number)
		assert.Equal(t, 9.5, *payload.Number)
	})

	t.Run("select", func(t *testing.T) {
		payload, err := encodeProperty(Property{
			Name:  "Status",
			Type:  PropertySelect,
			Value: SelectOption{Name: "Done", Color: "green"},
		})
		require.NoError(t, err)
		require.NotNil(t, payload.Select)
		assert.Equal(t, "Done", payload.Select.Name)
		assert.Equal(t, "green", payload.Select.Color)
	})

	t.Run("multi select", func(t *testing.T) {
		payload, err := encodeProperty(Property{
			Name: "Tags",
			Type: PropertyMultiSelect,
			Value: []SelectOption{
				{Name: "a"}, {Name: "b", Color: "red"},
			},
		})
		require.NoError(t, err)
		require.Len(t, payload.MultiSelect, 2)
		assert.Equal(t, "a", payload.MultiSelect[0].Name)
		assert.Equal(t, "red", payload.MultiSelect[1].Color)
	})

	t.Run("date", func(t *testing.T) {
		payload, err := encodeProperty(Property{
			Name: "Due", Type: PropertyDate, Value: "2024-05-01",
		})
		require.NoError(t, err)
		require.NotNil(t, payload.Date)
		assert.Equal(t, "2024-05-01", payload.Date.Start)
	})

	t.Run("people", func(t *testing.T) {
		payload, err := encodeProperty(Property{
			Name: "Owners", Type: PropertyPeople, Value: []string{"u1", "u2"},
		})
		require.NoError(t, err)
		require.Len(t, payload.People, 2)
		assert.Equal(t, "user", payload.People[0].Object)
		assert.Equal(t, "u1", payload.People[0].ID)
	})

	t.Run("files encode as external references", func(t *testing.T) {
		payload, err := encodeProperty(Property{
			Name: "Attachments",
			Type: PropertyFiles,
			Value: []FileRef{
				{Name: "report.pdf", URL: "https://example.com/report.pdf"},
			},
		})
		require.NoError(t, err)
		require.Len(t, payload.Files, 1)
		assert.Equal(t, "report.pdf", payload.Files[0].Name)
		require.NotNil(t, payload.Files[0].External)
		assert.Equal(t, "https://example.com/report.pdf", payload.Files[0].External.URL)
	})

	t.Run("checkbox", func(t *testing.T) {
		payload, err := encodeProperty(Property{
			Name: "Done", Type: PropertyCheckbox, Value: true,
		})
		require.NoError(t, err)
		require.NotNil(t, payload.Checkbox)
		assert.True(t, *payload.Checkbox)
	})

	t.Run("relation", func(t *testing.T) {
		payload, err := encodeProperty(Property{
			Name: "Related", Type: PropertyRelation, Value: []string{"p1"},
		})
		require.NoError(t, err)
		require.Len(t, payload.Relation, 1)
		assert.Equal(t, "p1", payload.Relation[0].ID)
	})

	t.Run("wrong value shape", func(t *testing.T) {
		_, err := encodeProperty(Property{
			Name: "Name", Type: PropertyTitle, Value: 42,
		})
		var invalidErr *InvalidPropertyValueError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, "Name", invalidErr.Property)
		assert.Equal(t, PropertyTitle, invalidErr.Type)
	})

	t.Run("read-only types are rejected", func(t *testing.T) {
		for _, typ := range []PropertyType{
			PropertyFormula, PropertyRollup, PropertyCreatedTime,
			PropertyCreatedBy, PropertyLastEditedTime, PropertyLastEditedBy,
		} {
			_, err := encodeProperty(Property{Name: "x", Type: typ, Value: "v"})
			var unsupErr *UnsupportedPropertyError
			require.ErrorAs(t, err, &unsupErr, "type %s", typ)
			assert.Equal(t, typ, unsupErr.Type)
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := encodeProperty(Property{
			Name: "x", Type: PropertyType("bogus_type"), Value: "v",
		})
		var unsupErr *UnsupportedPropertyError
		require.ErrorAs(t, err, &unsupErr)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := encodeProperty(Property{Type: PropertyTitle, Value: "v"})
		var missingErr *MissingFieldError
		require.ErrorAs(t, err, &missingErr)
	})
}

func TestEncodeProperties(t *testing.T) {
	t.Run("empty list is rejected", func(t *testing.T) {
		_, err := encodeProperties(nil)
		var missingErr *MissingFieldError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "properties", missingErr.Field)
	})

	t.Run("keyed by property name", func(t *testing.T) {
		out, err := encodeProperties([]Property{
			{Name: "Name", Type: PropertyTitle, Value: "t"},
			{Name: "Done", Type: PropertyCheckbox, Value: false},
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.NotNil(t, out["Name"].Title)
		assert.NotNil(t, out["Done"].Checkbox)
	})
}

func TestEncodeBlock(t *testing.T) {
	t.Run("text-bearing types", func(t *testing.T) {
		tests := []struct {
			blockType BlockType
			field     func(*blockPayload) *richTextBlock
		}{
			{BlockParagraph, func(b *blockPayload) *richTextBlock { return b.Paragraph }},
			{BlockHeading1, func(b *blockPayload) *richTextBlock { return b.Heading1 }},
			{BlockHeading2, func(b *blockPayload) *richTextBlock { return b.Heading2 }},
			{BlockHeading3, func(b *blockPayload) *richTextBlock { return b.Heading3 }},
			{BlockBulletedListItem, func(b *blockPayload) *richTextBlock { return b.BulletedListItem }},
			{BlockNumberedListItem, func(b *blockPayload) *richTextBlock { return b.NumberedListItem }},
			{BlockToDo, func(b *blockPayload) *richTextBlock { return b.ToDo }},
			{BlockToggle, func(b *blockPayload) *richTextBlock { return b.Toggle }},
			{BlockQuote, func(b *blockPayload) *richTextBlock { return b.Quote }},
		}
		for _, tc := range tests {
			payload, err := encodeBlock(Block{Type: tc.blockType, Value: "hello"})
			require.NoError(t, err, "type %s", tc.blockType)
			assert.Equal(t, "block", payload.Object)
			assert.Equal(t, string(tc.blockType), payload.Type)
			body := tc.field(payload)
			require.NotNil(t, body, "type %s", tc.blockType)
			require.Len(t, body.Text, 1)
			assert.Equal(t, "hello", body.Text[0].Text.Content)
		}
	})

	t.Run("image and video", func(t *testing.T) {
		payload, err := encodeBlock(Block{
			Type: BlockImage, Value: "https://example.com/a.png",
		})
		require.NoError(t, err)
		require.NotNil(t, payload.Image)
		assert.Equal(t, "external", payload.Image.Type)
		assert.Equal(t, "https://example.com/a.png", payload.Image.External.URL)

		payload, err = encodeBlock(Block{
			Type: BlockVideo, Value: "https://example.com/a.mp4",
		})
		require.NoError(t, err)
		require.NotNil(t, payload.Video)
		assert.Equal(t, "https://example.com/a.mp4", payload.Video.External.URL)
	})

	t.Run("file carries a name", func(t *testing.T) {
		payload, err := encodeBlock(Block{
			Type:  BlockFile,
			Value: FileRef{Name: "doc.pdf", URL: "https://example.com/doc.pdf"},
		})
		require.NoError(t, err)
		require.NotNil(t, payload.File)
		assert.Equal(t, "doc.pdf", payload.File.Name)
		assert.Equal(t, "https://example.com/doc.pdf", payload.File.External.URL)
	})

	t.Run("code", func(t *testing.T) {
		payload, err := encodeBlock(Block{
			Type:  BlockCode,
			Value: CodeValue{Content: "fmt.Println()", Language: "go"},
		})
		require.NoError(t, err)
		require.NotNil(t, payload.Code)
		assert.Equal(t, "go", payload.Code.Language)
		require.Len(t, payload.Code.Text, 1)
		assert.Equal(t, "fmt.Println()", payload.Code.Text[0].Text.Content)
	})

	t.Run("wrong value shape", func(t *testing.T) {
		_, err := encodeBlock(Block{Type: BlockParagraph, Value: 42})
		var invalidErr *InvalidBlockValueError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, BlockParagraph, invalidErr.Type)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := encodeBlock(Block{Type: BlockType("bogus_type"), Value: "v"})
		var unsupErr *UnsupportedBlockTypeError
		require.ErrorAs(t, err, &unsupErr)
	})
}

func TestEncodeBlocks(t *testing.T) {
	t.Run("nil list is rejected", func(t *testing.T) {
		_, err := encodeBlocks(nil)
		var missingErr *MissingFieldError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "blocks", missingErr.Field)
	})

	t.Run("empty list is valid", func(t *testing.T) {
		out, err := encodeBlocks([]Block{})
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("order is preserved", func(t *testing.T) {
		out, err := encodeBlocks([]Block{
			{Type: BlockHeading1, Value: "first"},
			{Type: BlockParagraph, Value: "second"},
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "heading_1", out[0].Type)
		assert.Equal(t, "paragraph", out[1].Type)
	})
}

func TestEncodeIcon(t *testing.T) {
	t.Run("emoji", func(t *testing.T) {
		payload, err := encodeIcon(&Icon{Type: IconEmoji, Value: "🚀"})
		require.NoError(t, err)
		assert.Equal(t, "emoji", payload.Type)
		assert.Equal(t, "🚀", payload.Emoji)
	})

	t.Run("emoji value must contain an emoji", func(t *testing.T) {
		_, err := encodeIcon(&Icon{Type: IconEmoji, Value: "not an emoji"})
		var invalidErr *InvalidIconValueError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, IconEmoji, invalidErr.Type)
	})

	t.Run("external", func(t *testing.T) {
		payload, err := encodeIcon(&Icon{
			Type: IconExternal, Value: "https://example.com/icon.png",
		})
		require.NoError(t, err)
		require.NotNil(t, payload.External)
		assert.Equal(t, "https://example.com/icon.png", payload.External.URL)
	})

	t.Run("file", func(t *testing.T) {
		payload, err := encodeIcon(&Icon{
			Type: IconFile, Value: "https://files.example.com/icon.png",
		})
		require.NoError(t, err)
		require.NotNil(t, payload.File)
		assert.Equal(t, "https://files.example.com/icon.png", payload.File.URL)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := encodeIcon(&Icon{Type: IconType("sticker"), Value: "x"})
		var unsupErr *UnsupportedIconTypeError
		require.ErrorAs(t, err, &unsupErr)
	})

	t.Run("nil icon", func(t *testing.T) {
		_, err := encodeIcon(nil)
		var missingErr *MissingFieldError
		require.ErrorAs(t, err, &missingErr)
	})
}

func TestEncodeSchemaProperties(t *testing.T) {
	t.Run("exactly one title is required", func(t *testing.T) {
		_, err := encodeSchemaProperties([]Property{
			{Name: "Notes", Type: PropertyRichText},
		})
		var invalidErr *InvalidPropertyValueError
		require.ErrorAs(t, err, &invalidErr)

		_, err = encodeSchemaProperties([]Property{
			{Name: "A", Type: PropertyTitle},
			{Name: "B", Type: PropertyTitle},
		})
		require.ErrorAs(t, err, &invalidErr)
	})

	t.Run("number needs a format", func(t *testing.T) {
		_, err := encodeSchemaProperties([]Property{
			{Name: "Name", Type: PropertyTitle},
			{Name: "Price", Type: PropertyNumber},
		})
		var invalidErr *InvalidPropertyValueError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, "Price", invalidErr.Property)
	})

	t.Run("wire shape", func(t *testing.T) {
		out, err := encodeSchemaProperties([]Property{
			{Name: "Name", Type: PropertyTitle},
			{Name: "Price", Type: PropertyNumber, Options: NumberOptions{Format: "dollar"}},
			{Name: "Status", Type: PropertySelect, Options: []SelectOption{
				{Name: "Open", Color: "blue"},
			}},
		})
		require.NoError(t, err)

		raw, err := json.Marshal(out)
		require.NoError(t, err)

		var decoded map[string]map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &decoded))

		// Option-less definitions are an empty object under the type key.
		assert.JSONEq(t, `{}`, string(decoded["Name"]["title"]))
		assert.JSONEq(t, `{"format":"dollar"}`, string(decoded["Price"]["number"]))
		assert.JSONEq(t,
			`{"options":[{"name":"Open","color":"blue"}]}`,
			string(decoded["Status"]["select"]))
	})

	t.Run("empty list is rejected", func(t *testing.T) {
		_, err := encodeSchemaProperties(nil)
		var missingErr *MissingFieldError
		require.ErrorAs(t, err, &missingErr)
	})
}
