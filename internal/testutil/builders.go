package testutil

import (
	"encoding/json"
	"strconv"

	domainauth "github.com/target/storefront-admin/internal/domain/auth"
)

// IdentityBuilder provides a fluent interface for building login principals for testing.
type IdentityBuilder struct {
	id domainauth.Identity
}

// NewIdentity creates an IdentityBuilder for an active staff member.
func NewIdentity() *IdentityBuilder {
	return &IdentityBuilder{
		id: domainauth.Identity{
			ID:       "1",
			Name:     "Ada Admin",
			Email:    "ada@example.com",
			IsStaff:  true,
			IsActive: true,
		},
	}
}

// WithID sets the identity id.
func (b *IdentityBuilder) WithID(id int64) *IdentityBuilder {
	b.id.ID = json.Number(strconv.FormatInt(id, 10))
	return b
}

// WithEmail sets the email.
func (b *IdentityBuilder) WithEmail(email string) *IdentityBuilder {
	b.id.Email = email
	return b
}

// WithName sets the display name.
func (b *IdentityBuilder) WithName(name string) *IdentityBuilder {
	b.id.Name = name
	return b
}

// NonStaff clears the staff flag.
func (b *IdentityBuilder) NonStaff() *IdentityBuilder {
	b.id.IsStaff = false
	return b
}

// Build returns the identity.
func (b *IdentityBuilder) Build() domainauth.Identity {
	return b.id
}

// JSON returns the identity encoded the way it is persisted under admin_user.
func (b *IdentityBuilder) JSON() string {
	raw, err := json.Marshal(b.id)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// LoginPayload returns the data section of a successful login response.
func (b *IdentityBuilder) LoginPayload(token string) map[string]any {
	return map[string]any{
		"token": token,
		"user":  b.id,
	}
}

// StoredCredential returns both persisted keys for the identity.
func (b *IdentityBuilder) StoredCredential(token string) map[string]string {
	return map[string]string{
		domainauth.TokenKey: token,
		domainauth.UserKey:  b.JSON(),
	}
}
