package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/target/storefront-admin/internal/errors"
)

// Envelope is the success body convention: {data, message}.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// HasData reports whether the envelope carried a non-null payload.
func (e *Envelope) HasData() bool {
	if e == nil {
		return false
	}
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// failure is the error body convention: {message, errors}.
type failure struct {
	Message string          `json:"message"`
	Detail  string          `json:"detail"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeEnvelope(body []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Envelope{}, nil
	}
	if trimmed[0] != '{' {
		return nil, apperrors.Server("The server returned an unexpected response.")
	}
	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeServer, "The server returned an unexpected response.")
	}
	return &env, nil
}

// decodeFailure builds the typed error for a non-2xx status. Bodies that are
// not the failure convention keep the status but fall back to a generic message.
func decodeFailure(status int, body []byte) *apperrors.AppError {
	var f failure
	if err := json.Unmarshal(bytes.TrimSpace(body), &f); err != nil {
		return apperrors.FromStatus(status, "", nil)
	}
	msg := f.Message
	if msg == "" {
		msg = f.Detail
	}
	return apperrors.FromStatus(status, msg, normalizeFieldErrors(f.Errors))
}

// normalizeFieldErrors accepts {field: "msg"}, {field: ["msg", ...]},
// nested objects, or a bare list, and returns field -> messages.
func normalizeFieldErrors(raw json.RawMessage) map[string][]string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	out := make(map[string][]string)
	switch t := v.(type) {
	case map[string]any:
		for field, val := range t {
			collectMessages(out, field, val)
		}
	default:
		collectMessages(out, apperrors.NonFieldErrors, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func collectMessages(out map[string][]string, field string, v any) {
	switch t := v.(type) {
	case nil:
	case string:
		out[field] = append(out[field], t)
	case []any:
		for _, item := range t {
			collectMessages(out, field, item)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectMessages(out, strings.TrimPrefix(field+"."+k, "."), t[k])
		}
	default:
		out[field] = append(out[field], fmt.Sprint(t))
	}
}
