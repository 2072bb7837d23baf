package notion

// Wire types for the provider's JSON format. Shapes are validated once at the
// boundary by (de)serializing into these structs; nothing downstream touches
// untyped maps.

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Type      string       `json:"type,omitempty"`
	Text      *textContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// richTextOf wraps a string in a single-run rich text list.
func richTextOf(s string) []richText {
	return []richText{{Type: "text", Text: &textContent{Content: s}}}
}

// plainTextOf extracts the first run's text. An empty run list is not an
// error: the provider returns an empty array for blank fields.
func plainTextOf(runs []richText) string {
	if len(runs) == 0 {
		return ""
	}
	if runs[0].PlainText != "" {
		return runs[0].PlainText
	}
	if runs[0].Text != nil {
		return runs[0].Text.Content
	}
	return ""
}

type urlPayload struct {
	URL string `json:"url"`
}

type userPayload struct {
	Object string `json:"object,omitempty"`
	ID     string `json:"id"`
}

type idPayload struct {
	ID string `json:"id"`
}

type selectPayload struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type datePayload struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

type filePayload struct {
	Name     string      `json:"name,omitempty"`
	Type     string      `json:"type,omitempty"`
	External *urlPayload `json:"external,omitempty"`
	File     *urlPayload `json:"file,omitempty"`
}

// url resolves the file location from either storage mode.
func (f *filePayload) url() string {
	if f.External != nil {
		return f.External.URL
	}
	if f.File != nil {
		return f.File.URL
	}
	return ""
}

// propertyPayload is a page property value fragment. Exactly one of the
// type-specific fields is populated, selected by Type.
type propertyPayload struct {
	ID             string          `json:"id,omitempty"`
	Type           string          `json:"type,omitempty"`
	Title          []richText      `json:"title,omitempty"`
	RichText       []richText      `json:"rich_text,omitempty"`
	Number         *float64        `json:"number,omitempty"`
	Select         *selectPayload  `json:"select,omitempty"`
	MultiSelect    []selectPayload `json:"multi_select,omitempty"`
	Date           *datePayload    `json:"date,omitempty"`
	People         []userPayload   `json:"people,omitempty"`
	Files          []filePayload   `json:"files,omitempty"`
	Checkbox       *bool           `json:"checkbox,omitempty"`
	URL            *string         `json:"url,omitempty"`
	Email          *string         `json:"email,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	Formula        map[string]any  `json:"formula,omitempty"`
	Relation       []idPayload     `json:"relation,omitempty"`
	Rollup         map[string]any  `json:"rollup,omitempty"`
	CreatedTime    string          `json:"created_time,omitempty"`
	LastEditedTime string          `json:"last_edited_time,omitempty"`
	CreatedBy      *userPayload    `json:"created_by,omitempty"`
	LastEditedBy   *userPayload    `json:"last_edited_by,omitempty"`
}

type richTextBlock struct {
	Text []richText `json:"text"`
}

type mediaBlock struct {
	Caption  []richText  `json:"caption"`
	Type     string      `json:"type,omitempty"`
	Name     string      `json:"name,omitempty"`
	External *urlPayload `json:"external,omitempty"`
	File     *urlPayload `json:"file,omitempty"`
}

func (m *mediaBlock) url() string {
	if m.External != nil {
		return m.External.URL
	}
	if m.File != nil {
		return m.File.URL
	}
	return ""
}

type codeBlock struct {
	Text     []richText `json:"text"`
	Language string     `json:"language,omitempty"`
}

// blockPayload is one content block. Like propertyPayload, exactly one
// type-specific field is populated.
type blockPayload struct {
	Object           string         `json:"object,omitempty"`
	ID               string         `json:"id,omitempty"`
	Type             string         `json:"type"`
	Paragraph        *richTextBlock `json:"paragraph,omitempty"`
	Heading1         *richTextBlock `json:"heading_1,omitempty"`
	Heading2         *richTextBlock `json:"heading_2,omitempty"`
	Heading3         *richTextBlock `json:"heading_3,omitempty"`
	BulletedListItem *richTextBlock `json:"bulleted_list_item,omitempty"`
	NumberedListItem *richTextBlock `json:"numbered_list_item,omitempty"`
	ToDo             *richTextBlock `json:"to_do,omitempty"`
	Toggle           *richTextBlock `json:"toggle,omitempty"`
	Quote            *richTextBlock `json:"quote,omitempty"`
	Image            *mediaBlock    `json:"image,omitempty"`
	Video            *mediaBlock    `json:"video,omitempty"`
	File             *mediaBlock    `json:"file,omitempty"`
	Code             *codeBlock     `json:"code,omitempty"`
}

// richTextField returns the rich-text body for text-bearing block types, or
// nil for media/code types.
func (b *blockPayload) richTextField(t BlockType) *richTextBlock {
	switch t {
	case BlockParagraph:
		return b.Paragraph
	case BlockHeading1:
		return b.Heading1
	case BlockHeading2:
		return b.Heading2
	case BlockHeading3:
		return b.Heading3
	case BlockBulletedListItem:
		return b.BulletedListItem
	case BlockNumberedListItem:
		return b.NumberedListItem
	case BlockToDo:
		return b.ToDo
	case BlockToggle:
		return b.Toggle
	case BlockQuote:
		return b.Quote
	}
	return nil
}

type iconPayload struct {
	Type     string      `json:"type"`
	Emoji    string      `json:"emoji,omitempty"`
	External *urlPayload `json:"external,omitempty"`
	File     *urlPayload `json:"file,omitempty"`
}

type parentPayload struct {
	Type       string `json:"type,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
}

func (p *parentPayload) id() string {
	if p.DatabaseID != "" {
		return p.DatabaseID
	}
	return p.PageID
}

// pagePayload is the provider's page object.
type pagePayload struct {
	Object         string                     `json:"object"`
	ID             string                     `json:"id"`
	Icon           *iconPayload               `json:"icon,omitempty"`
	Parent         *parentPayload             `json:"parent,omitempty"`
	Archived       bool                       `json:"archived"`
	URL            string                     `json:"url,omitempty"`
	CreatedTime    string                     `json:"created_time,omitempty"`
	LastEditedTime string                     `json:"last_edited_time,omitempty"`
	CreatedBy      *userPayload               `json:"created_by,omitempty"`
	LastEditedBy   *userPayload               `json:"last_edited_by,omitempty"`
	Properties     map[string]propertyPayload `json:"properties"`
	RequestID      string                     `json:"request_id,omitempty"`
}

// numberSchema and optionsSchema are database schema option shapes.
type numberSchema struct {
	Format string `json:"format"`
}

type optionsSchema struct {
	Options []selectPayload `json:"options"`
}

// schemaPropertyPayload is a property definition in a database schema. The
// catch-all Rest field is never read: unrecognized definition types fail.
type schemaPropertyPayload struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name,omitempty"`
	Type        string         `json:"type,omitempty"`
	Number      *numberSchema  `json:"number,omitempty"`
	Select      *optionsSchema `json:"select,omitempty"`
	MultiSelect *optionsSchema `json:"multi_select,omitempty"`
}

// databasePayload is the provider's database object.
type databasePayload struct {
	Object      string                           `json:"object"`
	ID          string                           `json:"id"`
	Icon        *iconPayload                     `json:"icon,omitempty"`
	Title       []richText                       `json:"title"`
	Description []richText                       `json:"description,omitempty"`
	IsInline    bool                             `json:"is_inline"`
	Parent      *parentPayload                   `json:"parent,omitempty"`
	Archived    bool                             `json:"archived"`
	URL         string                           `json:"url,omitempty"`
	Properties  map[string]schemaPropertyPayload `json:"properties"`
	RequestID   string                           `json:"request_id,omitempty"`
}

// blockListResponse is one page of the block children listing.
type blockListResponse struct {
	Object     string         `json:"object"`
	Results    []blockPayload `json:"results"`
	HasMore    bool           `json:"has_more"`
	NextCursor *string        `json:"next_cursor"`
}
