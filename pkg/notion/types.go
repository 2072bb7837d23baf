// Package notion maps between Notion's polymorphic wire format and a uniform
// internal object model, and exposes page, database, and search services on
// top of a thin HTTP client.
package notion

// PropertyType identifies the concrete shape of a property value. The set is
// closed: the codec fails loudly on anything it does not recognize instead of
// silently dropping data.
type PropertyType string

const (
	PropertyTitle          PropertyType = "title"
	PropertyRichText       PropertyType = "rich_text"
	PropertyNumber         PropertyType = "number"
	PropertySelect         PropertyType = "select"
	PropertyMultiSelect    PropertyType = "multi_select"
	PropertyDate           PropertyType = "date"
	PropertyPeople         PropertyType = "people"
	PropertyFiles          PropertyType = "files"
	PropertyCheckbox       PropertyType = "checkbox"
	PropertyURL            PropertyType = "url"
	PropertyEmail          PropertyType = "email"
	PropertyPhoneNumber    PropertyType = "phone_number"
	PropertyFormula        PropertyType = "formula"
	PropertyRelation       PropertyType = "relation"
	PropertyRollup         PropertyType = "rollup"
	PropertyCreatedTime    PropertyType = "created_time"
	PropertyCreatedBy      PropertyType = "created_by"
	PropertyLastEditedTime PropertyType = "last_edited_time"
	PropertyLastEditedBy   PropertyType = "last_edited_by"
)

// BlockType identifies the concrete shape of a block value.
type BlockType string

const (
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockToDo             BlockType = "to_do"
	BlockToggle           BlockType = "toggle"
	BlockQuote            BlockType = "quote"
	BlockImage            BlockType = "image"
	BlockVideo            BlockType = "video"
	BlockFile             BlockType = "file"
	BlockCode             BlockType = "code"
)

// IconType identifies how an icon value is interpreted.
type IconType string

const (
	IconEmoji    IconType = "emoji"
	IconExternal IconType = "external"
	IconFile     IconType = "file"
)

// SelectOption is a single select or multi-select choice.
type SelectOption struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// NumberOptions is the schema-level configuration of a number property.
type NumberOptions struct {
	Format string `json:"format"`
}

// FileRef is a named file reference.
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CodeValue is the payload of a code block.
type CodeValue struct {
	Content  string `json:"content"`
	Language string `json:"language"`
}

// Property is a single named field on a page or a database schema. Value's
// concrete shape is fully determined by Type; Options is set only on schema
// definitions (select/multi_select/number).
type Property struct {
	Name    string       `json:"name"`
	Type    PropertyType `json:"type"`
	Value   any          `json:"value,omitempty"`
	Options any          `json:"options,omitempty"`
}

// Block is one unit of page body content. Outbound blocks carry no ID;
// inbound blocks always do.
type Block struct {
	ID    string    `json:"id,omitempty"`
	Type  BlockType `json:"type"`
	Value any       `json:"value"`
}

// Icon decorates a page or database. Value is an emoji character or a URL
// depending on Type.
type Icon struct {
	Type  IconType `json:"type"`
	Value string   `json:"value"`
}

// Page is a Notion page. Properties must be non-empty on create/update;
// Blocks is an ordered, append-only document body.
type Page struct {
	ID         string     `json:"id,omitempty"`
	Icon       *Icon      `json:"icon,omitempty"`
	Properties []Property `json:"properties"`
	Blocks     []Block    `json:"blocks"`

	// Response-only metadata.
	ParentID       string `json:"parent_id,omitempty"`
	URL            string `json:"url,omitempty"`
	Archived       bool   `json:"archived"`
	CreatedTime    string `json:"created_time,omitempty"`
	LastEditedTime string `json:"last_edited_time,omitempty"`
	CreatedBy      string `json:"created_by,omitempty"`
	LastEditedBy   string `json:"last_edited_by,omitempty"`
	RequestID      string `json:"request_id,omitempty"`
}

// Database is a Notion schema container. Properties are definitions (Options
// set, Value nil), at least one required and exactly one of type title.
type Database struct {
	ID          string     `json:"id,omitempty"`
	Icon        *Icon      `json:"icon,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsInline    bool       `json:"is_inline"`
	Properties  []Property `json:"properties"`
	ParentID    string     `json:"parent_id,omitempty"`
	Archived    bool       `json:"archived"`
	URL         string     `json:"url,omitempty"`
	RequestID   string     `json:"request_id,omitempty"`
}

// SearchResult is the demultiplexed result of a single search call. The
// caller resubmits with NextCursor to page further.
type SearchResult struct {
	Pages      []Page     `json:"pages"`
	Databases  []Database `json:"databases"`
	HasMore    bool       `json:"has_more"`
	NextCursor string     `json:"next_cursor,omitempty"`
	RequestID  string     `json:"request_id,omitempty"`
}

// Count returns the total number of results across both groups.
func (r *SearchResult) Count() int {
	return len(r.Pages) + len(r.Databases)
}
