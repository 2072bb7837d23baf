package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/micro-tools/notebridge/pkg/notion"
)

// decodeRequest decodes a JSON request body into v.
func decodeRequest(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// parseResourcePathFromURL parses a URL path with the format
// "/api/v1/{apiPath}/{resourceID}[/{action}]" and returns the resource ID and
// the optional trailing action.
func parseResourcePathFromURL(url, apiPath string) (string, string, error) {
	// Remove API path from URL.
	url = strings.TrimPrefix(url, fmt.Sprintf("/api/v1/%s", apiPath))

	// Remove empty entries and validate path.
	urlPath := strings.Split(url, "/")
	var resultPath []string
	for _, v := range urlPath {
		// Only append non-empty values, this removes any empty strings in the
		// slice.
		if v != "" {
			resultPath = append(resultPath, v)
		}
	}

	switch len(resultPath) {
	case 1:
		return resultPath[0], "", nil
	case 2:
		return resultPath[0], resultPath[1], nil
	case 0:
		return "", "", fmt.Errorf("no resource ID set in url path")
	default:
		return "", "", fmt.Errorf("invalid URL path")
	}
}

// errorStatus maps domain errors onto HTTP status codes. Provider rejections
// keep their upstream status; codec and validation failures are the caller's
// fault.
func errorStatus(err error) int {
	var provErr *notion.ProviderError
	if errors.As(err, &provErr) {
		return provErr.StatusCode
	}

	var missingErr *notion.MissingFieldError
	if errors.As(err, &missingErr) {
		return http.StatusBadRequest
	}

	var (
		invalidProp  *notion.InvalidPropertyValueError
		invalidBlock *notion.InvalidBlockValueError
		invalidIcon  *notion.InvalidIconValueError
		unsupProp    *notion.UnsupportedPropertyError
		unsupBlock   *notion.UnsupportedBlockTypeError
		unsupIcon    *notion.UnsupportedIconTypeError
	)
	if errors.As(err, &invalidProp) || errors.As(err, &invalidBlock) ||
		errors.As(err, &invalidIcon) || errors.As(err, &unsupProp) ||
		errors.As(err, &unsupBlock) || errors.As(err, &unsupIcon) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}
