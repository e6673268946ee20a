package httpx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/target/storefront-admin/internal/errors"
)

func TestPresentLoginError(t *testing.T) {
	t.Run("backend 401 keeps message and fields", func(t *testing.T) {
		err := apperrors.FromStatus(http.StatusUnauthorized, "Invalid email or password", map[string][]string{
			"email": {"No active account with this email"},
		})

		fields, msg := presentLoginError(err)

		assert.Equal(t, "Invalid email or password", msg)
		assert.Equal(t, map[string]string{"email": "No active account with this email"}, fields)
	})

	t.Run("backend 401 non field errors become the banner", func(t *testing.T) {
		err := apperrors.FromStatus(http.StatusUnauthorized, "Unauthorized", map[string][]string{
			apperrors.NonFieldErrors: {"Account locked."},
		})

		fields, msg := presentLoginError(err)

		assert.Equal(t, "Account locked.", msg)
		assert.Empty(t, fields)
	})

	t.Run("backend 401 without a body message", func(t *testing.T) {
		err := &apperrors.AppError{Code: apperrors.ErrCodeAuthorization, Status: http.StatusUnauthorized}

		_, msg := presentLoginError(err)

		assert.Equal(t, errMsgLoginFailed, msg)
	})

	t.Run("other failures follow the shared presentation", func(t *testing.T) {
		_, msg := presentLoginError(apperrors.Network(errors.New("dial tcp")))
		assert.Equal(t, errMsgUnavailable, msg)

		_, msg = presentLoginError(apperrors.Authorization("You do not have admin privileges."))
		assert.Equal(t, "You do not have admin privileges.", msg)
	})
}
