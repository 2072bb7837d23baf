package notion

import (
	"fmt"
	"strings"
)

// InvalidPropertyValueError reports a property whose runtime value does not
// match the shape its type requires. Raised before any network call.
type InvalidPropertyValueError struct {
	Property string
	Type     PropertyType
	Expected string
}

func (e *InvalidPropertyValueError) Error() string {
	return fmt.Sprintf(
		"invalid value for property %q (type %s): expected %s",
		e.Property, e.Type, e.Expected)
}

// InvalidBlockValueError reports a block whose runtime value does not match
// the shape its type requires.
type InvalidBlockValueError struct {
	Type     BlockType
	Expected string
}

func (e *InvalidBlockValueError) Error() string {
	return fmt.Sprintf(
		"invalid value for block type %s: expected %s", e.Type, e.Expected)
}

// UnsupportedPropertyError reports an attempt to encode a read-only property
// type or to encode/decode an unrecognized one.
type UnsupportedPropertyError struct {
	Type PropertyType
}

func (e *UnsupportedPropertyError) Error() string {
	return fmt.Sprintf("unsupported property type: %s", e.Type)
}

// UnsupportedBlockTypeError reports an unrecognized block type.
type UnsupportedBlockTypeError struct {
	Type BlockType
}

func (e *UnsupportedBlockTypeError) Error() string {
	return fmt.Sprintf("unsupported block type: %s", e.Type)
}

// InvalidIconValueError reports an icon whose value does not match its type,
// such as an emoji icon with no emoji in it.
type InvalidIconValueError struct {
	Type     IconType
	Expected string
}

func (e *InvalidIconValueError) Error() string {
	return fmt.Sprintf(
		"invalid value for icon type %s: expected %s", e.Type, e.Expected)
}

// UnsupportedIconTypeError reports an unrecognized icon type.
type UnsupportedIconTypeError struct {
	Type IconType
}

func (e *UnsupportedIconTypeError) Error() string {
	return fmt.Sprintf("unsupported icon type: %s", e.Type)
}

// MissingFieldError reports a nil or empty required field, detected before
// any payload is built.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// ProviderError reports a provider response with status >= 400. It carries
// the raw response so callers can surface it unchanged; there is no retry
// policy.
type ProviderError struct {
	StatusCode int
	Reason     string
	Body       []byte
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "request failed with status code %d", e.StatusCode)
	if e.Reason != "" {
		fmt.Fprintf(&b, ", reason %s", e.Reason)
	}
	if len(e.Body) > 0 {
		fmt.Fprintf(&b, ", and response data %s", e.Body)
	}
	return b.String()
}
