package notion

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Inbound half of the wire codec: provider JSON to internal values. Mirrors
// encode.go's closed switches; an unrecognized type string always fails.

// decodeProperty converts one provider property fragment into an internal
// property value.
func decodeProperty(name string, payload propertyPayload) (Property, error) {
	prop := Property{Name: name, Type: PropertyType(payload.Type)}

	switch prop.Type {
	case PropertyTitle:
		prop.Value = plainTextOf(payload.Title)
	case PropertyRichText:
		prop.Value = plainTextOf(payload.RichText)
	case PropertyNumber:
		if payload.Number != nil {
			prop.Value = *payload.Number
		}
	case PropertySelect:
		if payload.Select != nil {
			prop.Value = SelectOption{
				Name:  payload.Select.Name,
				Color: payload.Select.Color,
			}
		}
	case PropertyMultiSelect:
		opts := make([]SelectOption, 0, len(payload.MultiSelect))
		for _, o := range payload.MultiSelect {
			opts = append(opts, SelectOption{Name: o.Name, Color: o.Color})
		}
		prop.Value = opts
	case PropertyDate:
		if payload.Date != nil {
			prop.Value = payload.Date.Start
		}
	case PropertyPeople:
		ids := make([]string, 0, len(payload.People))
		for _, u := range payload.People {
			ids = append(ids, u.ID)
		}
		prop.Value = ids
	case PropertyRelation:
		ids := make([]string, 0, len(payload.Relation))
		for _, r := range payload.Relation {
			ids = append(ids, r.ID)
		}
		prop.Value = ids
	case PropertyFiles:
		refs := make([]FileRef, 0, len(payload.Files))
		for _, f := range payload.Files {
			refs = append(refs, FileRef{Name: f.Name, URL: f.url()})
		}
		prop.Value = refs
	case PropertyCheckbox:
		prop.Value = payload.Checkbox != nil && *payload.Checkbox
	case PropertyURL:
		if payload.URL != nil {
			prop.Value = *payload.URL
		}
	case PropertyEmail:
		if payload.Email != nil {
			prop.Value = *payload.Email
		}
	case PropertyPhoneNumber:
		if payload.PhoneNumber != nil {
			prop.Value = *payload.PhoneNumber
		}
	case PropertyFormula:
		// Opaque pass-through: type plus nested value, not further decoded.
		prop.Value = payload.Formula
	case PropertyRollup:
		prop.Value = payload.Rollup
	case PropertyCreatedTime:
		prop.Value = payload.CreatedTime
	case PropertyLastEditedTime:
		prop.Value = payload.LastEditedTime
	case PropertyCreatedBy:
		if payload.CreatedBy != nil {
			prop.Value = payload.CreatedBy.ID
		}
	case PropertyLastEditedBy:
		if payload.LastEditedBy != nil {
			prop.Value = payload.LastEditedBy.ID
		}
	default:
		return Property{}, &UnsupportedPropertyError{Type: prop.Type}
	}

	return prop, nil
}

// decodeBlock converts one provider block fragment. Inbound blocks always
// carry the provider-assigned ID.
func decodeBlock(payload blockPayload) (Block, error) {
	block := Block{ID: payload.ID, Type: BlockType(payload.Type)}

	switch block.Type {
	case BlockParagraph, BlockHeading1, BlockHeading2, BlockHeading3,
		BlockBulletedListItem, BlockNumberedListItem, BlockToDo,
		BlockToggle, BlockQuote:
		if body := payload.richTextField(block.Type); body != nil {
			block.Value = plainTextOf(body.Text)
		} else {
			block.Value = ""
		}
	case BlockImage:
		if payload.Image == nil {
			return Block{}, &InvalidBlockValueError{
				Type: block.Type, Expected: "media body",
			}
		}
		block.Value = payload.Image.url()
	case BlockVideo:
		if payload.Video == nil {
			return Block{}, &InvalidBlockValueError{
				Type: block.Type, Expected: "media body",
			}
		}
		block.Value = payload.Video.url()
	case BlockFile:
		if payload.File == nil {
			return Block{}, &InvalidBlockValueError{
				Type: block.Type, Expected: "file body",
			}
		}
		block.Value = FileRef{Name: payload.File.Name, URL: payload.File.url()}
	case BlockCode:
		if payload.Code == nil {
			return Block{}, &InvalidBlockValueError{
				Type: block.Type, Expected: "code body",
			}
		}
		block.Value = CodeValue{
			Content:  plainTextOf(payload.Code.Text),
			Language: payload.Code.Language,
		}
	default:
		return Block{}, &UnsupportedBlockTypeError{Type: block.Type}
	}

	return block, nil
}

// decodeIcon converts the icon fragment; a missing icon decodes to nil.
func decodeIcon(payload *iconPayload) (*Icon, error) {
	if payload == nil {
		return nil, nil
	}
	icon := &Icon{Type: IconType(payload.Type)}
	switch icon.Type {
	case IconEmoji:
		icon.Value = payload.Emoji
	case IconExternal:
		if payload.External != nil {
			icon.Value = payload.External.URL
		}
	case IconFile:
		if payload.File != nil {
			icon.Value = payload.File.URL
		}
	default:
		return nil, &UnsupportedIconTypeError{Type: icon.Type}
	}
	return icon, nil
}

// decodePage converts a provider page object. Blocks are not part of the
// page object and stay empty; the page service merges them separately.
func decodePage(raw []byte) (*Page, error) {
	var payload pagePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decoding page object: %w", err)
	}
	if payload.Object != "page" {
		return nil, fmt.Errorf("unexpected object %q, want page", payload.Object)
	}
	if payload.Properties == nil {
		return nil, &MissingFieldError{Field: "properties"}
	}

	icon, err := decodeIcon(payload.Icon)
	if err != nil {
		return nil, err
	}

	props := make([]Property, 0, len(payload.Properties))
	for name, p := range payload.Properties {
		prop, err := decodeProperty(name, p)
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
	}
	// Property order is irrelevant but map iteration is not deterministic;
	// sort by name so equal pages decode equally.
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })

	page := &Page{
		ID:             payload.ID,
		Icon:           icon,
		Properties:     props,
		Blocks:         []Block{},
		URL:            payload.URL,
		Archived:       payload.Archived,
		CreatedTime:    payload.CreatedTime,
		LastEditedTime: payload.LastEditedTime,
		RequestID:      payload.RequestID,
	}
	if payload.Parent != nil {
		page.ParentID = payload.Parent.id()
	}
	if payload.CreatedBy != nil {
		page.CreatedBy = payload.CreatedBy.ID
	}
	if payload.LastEditedBy != nil {
		page.LastEditedBy = payload.LastEditedBy.ID
	}
	return page, nil
}

// decodeSchemaProperty converts one database schema definition. Definitions
// carry options, never values.
func decodeSchemaProperty(name string, payload schemaPropertyPayload) (Property, error) {
	prop := Property{Name: name, Type: PropertyType(payload.Type)}

	switch prop.Type {
	case PropertyNumber:
		if payload.Number != nil {
			prop.Options = NumberOptions{Format: payload.Number.Format}
		}
	case PropertySelect, PropertyMultiSelect:
		schema := payload.Select
		if prop.Type == PropertyMultiSelect {
			schema = payload.MultiSelect
		}
		if schema != nil {
			opts := make([]SelectOption, 0, len(schema.Options))
			for _, o := range schema.Options {
				opts = append(opts, SelectOption{Name: o.Name, Color: o.Color})
			}
			prop.Options = opts
		}
	case PropertyTitle, PropertyRichText, PropertyDate, PropertyPeople,
		PropertyFiles, PropertyCheckbox, PropertyURL, PropertyEmail,
		PropertyPhoneNumber, PropertyFormula, PropertyRelation,
		PropertyRollup, PropertyCreatedTime, PropertyCreatedBy,
		PropertyLastEditedTime, PropertyLastEditedBy:
		// No options for these definition types.
	default:
		return Property{}, &UnsupportedPropertyError{Type: prop.Type}
	}

	return prop, nil
}

// decodeDatabase converts a provider database object into the schema-level
// internal model.
func decodeDatabase(raw []byte) (*Database, error) {
	var payload databasePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decoding database object: %w", err)
	}
	if payload.Object != "database" {
		return nil, fmt.Errorf("unexpected object %q, want database", payload.Object)
	}
	if len(payload.Properties) == 0 {
		return nil, &MissingFieldError{Field: "properties"}
	}

	icon, err := decodeIcon(payload.Icon)
	if err != nil {
		return nil, err
	}

	props := make([]Property, 0, len(payload.Properties))
	for name, p := range payload.Properties {
		prop, err := decodeSchemaProperty(name, p)
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })

	db := &Database{
		ID:          payload.ID,
		Icon:        icon,
		Title:       plainTextOf(payload.Title),
		Description: plainTextOf(payload.Description),
		IsInline:    payload.IsInline,
		Properties:  props,
		Archived:    payload.Archived,
		URL:         payload.URL,
		RequestID:   payload.RequestID,
	}
	if payload.Parent != nil {
		db.ParentID = payload.Parent.id()
	}
	return db, nil
}
