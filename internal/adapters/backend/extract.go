package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/target/storefront-admin/internal/errors"
)

// listExpr picks the item array out of the shapes list endpoints use. An
// object without a known list key yields an empty list.
const listExpr = "results || items || values || (type(@) == 'array' && @) || `[]`"

// Extract evaluates a JMESPath expression against raw JSON and decodes the
// result into out. A null result leaves out untouched.
func Extract(raw json.RawMessage, expr string, out any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeServer, "The server returned an unexpected response.")
	}
	return extractFrom(doc, expr, out)
}

func extractFrom(doc any, expr string, out any) error {
	res, err := jmespath.Search(expr, doc)
	if err != nil {
		return fmt.Errorf("evaluate %q: %w", expr, err)
	}
	if res == nil {
		return nil
	}
	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("re-encode %q: %w", expr, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeServer, "The server returned an unexpected response.")
	}
	return nil
}

// ExtractList decodes a list payload that may be a bare array or wrapped.
func ExtractList(raw json.RawMessage, out any) error {
	return Extract(raw, listExpr, out)
}

// searchString evaluates expr and renders scalar results as text.
func searchString(doc any, expr string) string {
	res, err := jmespath.Search(expr, doc)
	if err != nil || res == nil {
		return ""
	}
	switch v := res.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func searchInt(doc any, expr string) int {
	res, err := jmespath.Search(expr, doc)
	if err != nil || res == nil {
		return 0
	}
	switch v := res.(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	default:
		return 0
	}
}
