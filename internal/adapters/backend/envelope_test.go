package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/target/storefront-admin/internal/errors"
)

func TestNormalizeFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string][]string
	}{
		{name: "list per field", raw: `{"email":["Required."]}`, want: map[string][]string{"email": {"Required."}}},
		{name: "string per field", raw: `{"email":"Required."}`, want: map[string][]string{"email": {"Required."}}},
		{name: "nested", raw: `{"attributes":{"1":["Pick a value."]}}`, want: map[string][]string{"attributes.1": {"Pick a value."}}},
		{name: "bare list", raw: `["Something went wrong."]`, want: map[string][]string{apperrors.NonFieldErrors: {"Something went wrong."}}},
		{name: "null", raw: `null`, want: nil},
		{name: "empty object", raw: `{}`, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeFieldErrors(json.RawMessage(tt.raw)))
		})
	}
}

func TestDecodeFailure_DetailFallback(t *testing.T) {
	err := decodeFailure(403, []byte(`{"detail":"Not allowed."}`))
	assert.Equal(t, "Not allowed.", err.Message)
	assert.Equal(t, apperrors.ErrCodeForbidden, err.Code)
}

func TestDecodeFailure_ValidationWithoutMessage(t *testing.T) {
	err := decodeFailure(400, []byte(`{"errors":{"name":["Required."]}}`))
	assert.Equal(t, apperrors.ErrCodeValidation, err.Code)
	assert.Equal(t, "Request failed with status 400", err.Message)
}

func TestEnvelope_HasData(t *testing.T) {
	assert.False(t, (*Envelope)(nil).HasData())
	assert.False(t, (&Envelope{Data: json.RawMessage("null")}).HasData())
	assert.True(t, (&Envelope{Data: json.RawMessage(`{}`)}).HasData())
}
