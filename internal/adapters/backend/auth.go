package backend

import (
	"context"
	"net/http"

	domainauth "github.com/target/storefront-admin/internal/domain/auth"
	apperrors "github.com/target/storefront-admin/internal/errors"
	"github.com/target/storefront-admin/internal/ports"
)

// LoginEndpoint is the backend path that exchanges credentials for a token.
const LoginEndpoint = "/auth/login/"

// AuthAPI implements ports.Authenticator over a pipeline.
type AuthAPI struct {
	pipe *Pipeline
}

var _ ports.Authenticator = (*AuthAPI)(nil)

// NewAuthAPI creates an AuthAPI.
func NewAuthAPI(p *Pipeline) *AuthAPI { return &AuthAPI{pipe: p} }

// Login posts the credentials. Backend rejections are returned unchanged; a
// success without token or user is a server error.
func (a *AuthAPI) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Credential, error) {
	var cred domainauth.Credential
	if _, err := a.pipe.Do(ctx, Request{Method: http.MethodPost, Path: LoginEndpoint, Body: JSON(creds)}, &cred); err != nil {
		return domainauth.Credential{}, err
	}
	if cred.Token == "" || (cred.Identity.ID == "" && cred.Identity.Email == "") {
		return domainauth.Credential{}, apperrors.Server("The server returned a malformed login response.")
	}
	return cred, nil
}
