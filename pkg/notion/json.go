package notion

import (
	"encoding/json"
)

// Custom unmarshalling coerces the variant Value/Options fields into their
// concrete shapes at the boundary, so the codec downstream works on typed
// values instead of raw maps.

func (p *Property) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name    string          `json:"name"`
		Type    PropertyType    `json:"type"`
		Value   json.RawMessage `json:"value"`
		Options json.RawMessage `json:"options"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Name = aux.Name
	p.Type = aux.Type

	if len(aux.Value) > 0 && string(aux.Value) != "null" {
		value, err := decodePropertyValueJSON(aux.Name, aux.Type, aux.Value)
		if err != nil {
			return err
		}
		p.Value = value
	}
	if len(aux.Options) > 0 && string(aux.Options) != "null" {
		options, err := decodePropertyOptionsJSON(aux.Name, aux.Type, aux.Options)
		if err != nil {
			return err
		}
		p.Options = options
	}
	return nil
}

func decodePropertyValueJSON(
	name string, t PropertyType, raw json.RawMessage,
) (any, error) {
	invalid := func(expected string) error {
		return &InvalidPropertyValueError{Property: name, Type: t, Expected: expected}
	}

	switch t {
	case PropertyTitle, PropertyRichText, PropertyDate, PropertyURL,
		PropertyEmail, PropertyPhoneNumber:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalid("string")
		}
		return s, nil
	case PropertyNumber:
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, invalid("number")
		}
		return n, nil
	case PropertySelect:
		var opt SelectOption
		if err := json.Unmarshal(raw, &opt); err != nil {
			return nil, invalid("select option {name, color}")
		}
		return opt, nil
	case PropertyMultiSelect:
		var opts []SelectOption
		if err := json.Unmarshal(raw, &opts); err != nil {
			return nil, invalid("list of select options")
		}
		return opts, nil
	case PropertyPeople, PropertyRelation:
		var ids []string
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, invalid("list of ID strings")
		}
		return ids, nil
	case PropertyFiles:
		var refs []FileRef
		if err := json.Unmarshal(raw, &refs); err != nil {
			return nil, invalid("list of file references {name, url}")
		}
		return refs, nil
	case PropertyCheckbox:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, invalid("bool")
		}
		return b, nil
	}

	// Read-only and unknown types keep an opaque value; the codec rejects
	// them loudly if they ever reach an outbound encode.
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodePropertyOptionsJSON(
	name string, t PropertyType, raw json.RawMessage,
) (any, error) {
	switch t {
	case PropertyNumber:
		var opts NumberOptions
		if err := json.Unmarshal(raw, &opts); err != nil {
			return nil, &InvalidPropertyValueError{
				Property: name, Type: t, Expected: "number options {format}",
			}
		}
		return opts, nil
	case PropertySelect, PropertyMultiSelect:
		var opts []SelectOption
		if err := json.Unmarshal(raw, &opts); err != nil {
			return nil, &InvalidPropertyValueError{
				Property: name, Type: t, Expected: "list of select options",
			}
		}
		return opts, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID    string          `json:"id"`
		Type  BlockType       `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.ID = aux.ID
	b.Type = aux.Type

	if len(aux.Value) == 0 || string(aux.Value) == "null" {
		return nil
	}

	invalid := func(expected string) error {
		return &InvalidBlockValueError{Type: aux.Type, Expected: expected}
	}

	switch aux.Type {
	case BlockParagraph, BlockHeading1, BlockHeading2, BlockHeading3,
		BlockBulletedListItem, BlockNumberedListItem, BlockToDo,
		BlockToggle, BlockQuote, BlockImage, BlockVideo:
		var s string
		if err := json.Unmarshal(aux.Value, &s); err != nil {
			return invalid("string")
		}
		b.Value = s
	case BlockFile:
		var f FileRef
		if err := json.Unmarshal(aux.Value, &f); err != nil {
			return invalid("file reference {name, url}")
		}
		b.Value = f
	case BlockCode:
		var c CodeValue
		if err := json.Unmarshal(aux.Value, &c); err != nil {
			return invalid("code value {content, language}")
		}
		b.Value = c
	default:
		var v any
		if err := json.Unmarshal(aux.Value, &v); err != nil {
			return err
		}
		b.Value = v
	}
	return nil
}
