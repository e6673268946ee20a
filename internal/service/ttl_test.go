package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/storefront-admin/internal/domain/auth"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestTokenTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	maxTTL := 24 * time.Hour

	tests := []struct {
		name  string
		token string
		want  time.Duration
	}{
		{name: "opaque token", token: "abc123", want: maxTTL},
		{name: "no token", token: "", want: maxTTL},
		{
			name:  "jwt without exp",
			token: signToken(t, jwt.MapClaims{"sub": "1"}),
			want:  maxTTL,
		},
		{
			name:  "jwt expiring soon",
			token: signToken(t, jwt.MapClaims{"exp": now.Add(2 * time.Hour).Unix()}),
			want:  2 * time.Hour,
		},
		{
			name:  "jwt outliving the cap",
			token: signToken(t, jwt.MapClaims{"exp": now.Add(90 * 24 * time.Hour).Unix()}),
			want:  maxTTL,
		},
		{
			name:  "jwt already expired",
			token: signToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
			want:  expiredGrace,
		},
	}

	ttl := TokenTTL(maxTTL, clock)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ttl(map[string]string{domainauth.TokenKey: tt.token}))
		})
	}
}

func TestTokenTTL_NoCap(t *testing.T) {
	now := time.Now()
	token := signToken(t, jwt.MapClaims{"exp": now.Add(48 * time.Hour).Unix()})

	got := TokenTTL(0, func() time.Time { return now })(map[string]string{domainauth.TokenKey: token})
	assert.Equal(t, 48*time.Hour, got.Round(time.Second))
}
