package testutil

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_RecordsRequests(t *testing.T) {
	b := NewBackend(t)
	b.Handle("POST /echo", Respond(http.StatusCreated, map[string]int{"id": 3}, "Created"))

	req, err := http.NewRequest(http.MethodPost, b.URL+"/echo?x=1", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer abc")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Created", body["message"])

	last := b.LastRequest()
	assert.Equal(t, "/echo", last.Path)
	assert.Equal(t, "x=1", last.Query)
	assert.Equal(t, "Bearer abc", last.Authorization)
	assert.JSONEq(t, `{"a":1}`, string(last.Body))
}

func TestIdentityBuilder(t *testing.T) {
	id := NewIdentity().WithID(9).WithEmail("x@example.com").NonStaff().Build()
	assert.Equal(t, json.Number("9"), id.ID)
	assert.False(t, id.IsStaff)

	stored := NewIdentity().StoredCredential("tok")
	assert.Equal(t, "tok", stored["admin_token"])
	assert.Contains(t, stored["admin_user"], `"is_staff":true`)
}
