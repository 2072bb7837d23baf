package notion

import (
	"github.com/forPelevin/gomoji"
)

// Outbound half of the wire codec: internal values to provider JSON
// fragments. Every switch is exhaustive over the closed type sets and fails
// on anything else; a silently dropped type would corrupt round-trips.

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringSliceValue(v any) ([]string, bool) {
	s, ok := v.([]string)
	return s, ok
}

// encodeProperty produces the JSON fragment for one property value.
// Provider-computed types (formula, rollup, created/edited metadata) are
// read-only and always rejected.
func encodeProperty(p Property) (*propertyPayload, error) {
	if p.Name == "" {
		return nil, &MissingFieldError{Field: "property name"}
	}

	invalid := func(expected string) error {
		return &InvalidPropertyValueError{
			Property: p.Name, Type: p.Type, Expected: expected,
		}
	}

	switch p.Type {
	case PropertyTitle:
		s, ok := stringValue(p.Value)
		if !ok {
			return nil, invalid("string")
		}
		return &propertyPayload{Title: richTextOf(s)}, nil

	case PropertyRichText:
		s, ok := stringValue(p.Value)
		if !ok {
			return nil, invalid("string")
		}
		return &propertyPayload{RichText: richTextOf(s)}, nil

	case PropertyNumber:
		n, ok := floatValue(p.Value)
		if !ok {
			return nil, invalid("number")
		}
		return &propertyPayload{Number: &n}, nil

	case PropertySelect:
		opt, ok := p.Value.(SelectOption)
		if !ok {
			return nil, invalid("select option {name, color}")
		}
		return &propertyPayload{
			Select: &selectPayload{Name: opt.Name, Color: opt.Color},
		}, nil

	case PropertyMultiSelect:
		opts, ok := p.Value.([]SelectOption)
		if !ok {
			return nil, invalid("list of select options")
		}
		sel := make([]selectPayload, 0, len(opts))
		for _, o := range opts {
			sel = append(sel, selectPayload{Name: o.Name, Color: o.Color})
		}
		return &propertyPayload{MultiSelect: sel}, nil

	case PropertyDate:
		s, ok := stringValue(p.Value)
		if !ok {
			return nil, invalid("ISO date string")
		}
		return &propertyPayload{Date: &datePayload{Start: s}}, nil

	case PropertyPeople:
		ids, ok := stringSliceValue(p.Value)
		if !ok {
			return nil, invalid("list of user ID strings")
		}
		users := make([]userPayload, 0, len(ids))
		for _, id := range ids {
			users = append(users, userPayload{Object: "user", ID: id})
		}
		return &propertyPayload{People: users}, nil

	case PropertyFiles:
		refs, ok := p.Value.([]FileRef)
		if !ok {
			return nil, invalid("list of file references {name, url}")
		}
		files := make([]filePayload, 0, len(refs))
		for _, f := range refs {
			files = append(files, filePayload{
				Name:     f.Name,
				External: &urlPayload{URL: f.URL},
			})
		}
		return &propertyPayload{Files: files}, nil

	case PropertyCheckbox:
		b, ok := p.Value.(bool)
		if !ok {
			return nil, invalid("bool")
		}
		return &propertyPayload{Checkbox: &b}, nil

	case PropertyURL:
		s, ok := stringValue(p.Value)
		if !ok {
			return nil, invalid("string")
		}
		return &propertyPayload{URL: &s}, nil

	case PropertyEmail:
		s, ok := stringValue(p.Value)
		if !ok {
			return nil, invalid("string")
		}
		return &propertyPayload{Email: &s}, nil

	case PropertyPhoneNumber:
		s, ok := stringValue(p.Value)
		if !ok {
			return nil, invalid("string")
		}
		return &propertyPayload{PhoneNumber: &s}, nil

	case PropertyRelation:
		ids, ok := stringSliceValue(p.Value)
		if !ok {
			return nil, invalid("list of page ID strings")
		}
		rel := make([]idPayload, 0, len(ids))
		for _, id := range ids {
			rel = append(rel, idPayload{ID: id})
		}
		return &propertyPayload{Relation: rel}, nil

	case PropertyFormula, PropertyRollup, PropertyCreatedTime,
		PropertyCreatedBy, PropertyLastEditedTime, PropertyLastEditedBy:
		// Provider-computed, read-only.
		return nil, &UnsupportedPropertyError{Type: p.Type}
	}

	return nil, &UnsupportedPropertyError{Type: p.Type}
}

// encodeProperties builds the properties object of a create/update payload.
// The property list must be non-empty.
func encodeProperties(props []Property) (map[string]*propertyPayload, error) {
	if len(props) == 0 {
		return nil, &MissingFieldError{Field: "properties"}
	}
	out := make(map[string]*propertyPayload, len(props))
	for _, p := range props {
		payload, err := encodeProperty(p)
		if err != nil {
			return nil, err
		}
		out[p.Name] = payload
	}
	return out, nil
}

func blockRichTextOf(s string) *richTextBlock {
	return &richTextBlock{Text: richTextOf(s)}
}

// encodeBlock produces the JSON fragment for one content block.
func encodeBlock(b Block) (*blockPayload, error) {
	payload := &blockPayload{Object: "block", Type: string(b.Type)}

	invalid := func(expected string) error {
		return &InvalidBlockValueError{Type: b.Type, Expected: expected}
	}

	switch b.Type {
	case BlockParagraph, BlockHeading1, BlockHeading2, BlockHeading3,
		BlockBulletedListItem, BlockNumberedListItem, BlockToDo,
		BlockToggle, BlockQuote:
		s, ok := stringValue(b.Value)
		if !ok {
			return nil, invalid("string")
		}
		body := blockRichTextOf(s)
		switch b.Type {
		case BlockParagraph:
			payload.Paragraph = body
		case BlockHeading1:
			payload.Heading1 = body
		case BlockHeading2:
			payload.Heading2 = body
		case BlockHeading3:
			payload.Heading3 = body
		case BlockBulletedListItem:
			payload.BulletedListItem = body
		case BlockNumberedListItem:
			payload.NumberedListItem = body
		case BlockToDo:
			payload.ToDo = body
		case BlockToggle:
			payload.Toggle = body
		case BlockQuote:
			payload.Quote = body
		}
		return payload, nil

	case BlockImage, BlockVideo:
		s, ok := stringValue(b.Value)
		if !ok {
			return nil, invalid("URL string")
		}
		media := &mediaBlock{
			Caption:  []richText{},
			Type:     "external",
			External: &urlPayload{URL: s},
		}
		if b.Type == BlockImage {
			payload.Image = media
		} else {
			payload.Video = media
		}
		return payload, nil

	case BlockFile:
		f, ok := b.Value.(FileRef)
		if !ok {
			return nil, invalid("file reference {name, url}")
		}
		payload.File = &mediaBlock{
			Caption:  []richText{},
			Type:     "external",
			Name:     f.Name,
			External: &urlPayload{URL: f.URL},
		}
		return payload, nil

	case BlockCode:
		c, ok := b.Value.(CodeValue)
		if !ok {
			return nil, invalid("code value {content, language}")
		}
		payload.Code = &codeBlock{
			Text:     richTextOf(c.Content),
			Language: c.Language,
		}
		return payload, nil
	}

	return nil, &UnsupportedBlockTypeError{Type: b.Type}
}

// encodeBlocks builds the children list of a create/update payload. An empty
// list is valid; a nil one is not.
func encodeBlocks(blocks []Block) ([]*blockPayload, error) {
	if blocks == nil {
		return nil, &MissingFieldError{Field: "blocks"}
	}
	out := make([]*blockPayload, 0, len(blocks))
	for _, b := range blocks {
		payload, err := encodeBlock(b)
		if err != nil {
			return nil, err
		}
		out = append(out, payload)
	}
	return out, nil
}

// encodeIcon produces the icon fragment. Emoji icons must actually contain
// an emoji character.
func encodeIcon(icon *Icon) (*iconPayload, error) {
	if icon == nil {
		return nil, &MissingFieldError{Field: "icon"}
	}
	switch icon.Type {
	case IconEmoji:
		if !gomoji.ContainsEmoji(icon.Value) {
			return nil, &InvalidIconValueError{
				Type: IconEmoji, Expected: "emoji character",
			}
		}
		return &iconPayload{Type: string(IconEmoji), Emoji: icon.Value}, nil
	case IconExternal:
		return &iconPayload{
			Type:     string(IconExternal),
			External: &urlPayload{URL: icon.Value},
		}, nil
	case IconFile:
		return &iconPayload{
			Type: string(IconFile),
			File: &urlPayload{URL: icon.Value},
		}, nil
	}
	return nil, &UnsupportedIconTypeError{Type: icon.Type}
}

// encodeSchemaProperty produces a database schema definition fragment.
// Number definitions need a format, select and multi_select an options list;
// every other supported type is an empty object.
func encodeSchemaProperty(p Property) (*schemaPropertyPayload, error) {
	if p.Name == "" {
		return nil, &MissingFieldError{Field: "property name"}
	}

	switch p.Type {
	case PropertyNumber:
		opts, ok := p.Options.(NumberOptions)
		if !ok {
			return nil, &InvalidPropertyValueError{
				Property: p.Name, Type: p.Type,
				Expected: "number options {format}",
			}
		}
		return &schemaPropertyPayload{
			Number: &numberSchema{Format: opts.Format},
		}, nil

	case PropertySelect, PropertyMultiSelect:
		opts, ok := p.Options.([]SelectOption)
		if !ok {
			return nil, &InvalidPropertyValueError{
				Property: p.Name, Type: p.Type,
				Expected: "list of select options",
			}
		}
		sel := make([]selectPayload, 0, len(opts))
		for _, o := range opts {
			sel = append(sel, selectPayload{Name: o.Name, Color: o.Color})
		}
		schema := &optionsSchema{Options: sel}
		if p.Type == PropertySelect {
			return &schemaPropertyPayload{Select: schema}, nil
		}
		return &schemaPropertyPayload{MultiSelect: schema}, nil

	case PropertyTitle, PropertyRichText, PropertyDate, PropertyPeople,
		PropertyFiles, PropertyCheckbox, PropertyURL, PropertyEmail,
		PropertyPhoneNumber, PropertyFormula, PropertyRelation,
		PropertyRollup, PropertyCreatedTime, PropertyCreatedBy,
		PropertyLastEditedTime, PropertyLastEditedBy:
		return &schemaPropertyPayload{}, nil
	}

	return nil, &UnsupportedPropertyError{Type: p.Type}
}

// encodeSchemaProperties builds the schema properties object of a database
// create/update payload. At least one definition is required and exactly one
// must be of type title.
func encodeSchemaProperties(props []Property) (map[string]any, error) {
	if len(props) == 0 {
		return nil, &MissingFieldError{Field: "properties"}
	}
	titles := 0
	out := make(map[string]any, len(props))
	for _, p := range props {
		if p.Type == PropertyTitle {
			titles++
		}
		payload, err := encodeSchemaProperty(p)
		if err != nil {
			return nil, err
		}
		// Definitions without options marshal as {"<type>": {}}; the
		// option-bearing ones already carry their own type key.
		if payload.Number == nil && payload.Select == nil &&
			payload.MultiSelect == nil {
			out[p.Name] = map[string]struct{}{string(p.Type): {}}
		} else {
			out[p.Name] = payload
		}
	}
	if titles != 1 {
		return nil, &InvalidPropertyValueError{
			Property: "properties", Type: PropertyTitle,
			Expected: "exactly one title property",
		}
	}
	return out, nil
}
