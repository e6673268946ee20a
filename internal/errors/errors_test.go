package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "resource not found",
			},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to process",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to process: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "Enter a valid email address.")
	if err.Code != ErrCodeValidation {
		t.Errorf("ValidationField().Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "email" {
		t.Errorf("ValidationField().Field = %v, want email", err.Field)
	}
	if got := FieldMessages(err)["email"]; got != "Enter a valid email address." {
		t.Errorf("FieldMessages()[email] = %q", got)
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status    int
		hasFields bool
		want      ErrorCode
	}{
		{http.StatusBadRequest, true, ErrCodeValidation},
		{http.StatusUnprocessableEntity, true, ErrCodeValidation},
		{http.StatusBadRequest, false, ErrCodeBadRequest},
		{http.StatusUnauthorized, false, ErrCodeAuthorization},
		{http.StatusForbidden, false, ErrCodeForbidden},
		{http.StatusNotFound, false, ErrCodeNotFound},
		{http.StatusConflict, false, ErrCodeBadRequest},
		{http.StatusInternalServerError, false, ErrCodeServer},
		{http.StatusBadGateway, true, ErrCodeServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%t", tt.status, tt.hasFields), func(t *testing.T) {
			if got := CodeForStatus(tt.status, tt.hasFields); got != tt.want {
				t.Errorf("CodeForStatus(%d, %t) = %v, want %v", tt.status, tt.hasFields, got, tt.want)
			}
		})
	}
}

func TestFromStatus_GenericMessage(t *testing.T) {
	err := FromStatus(http.StatusBadGateway, "", nil)
	if err.Message != "Request failed with status 502" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Status != http.StatusBadGateway {
		t.Errorf("unexpected status %d", err.Status)
	}
	if !IsServer(err) {
		t.Errorf("expected server error")
	}
}

func TestFromStatus_PreservesFields(t *testing.T) {
	fields := map[string][]string{"slug": {"This slug already exists."}, "name": {"Required.", "Too short."}}
	err := FromStatus(http.StatusBadRequest, "Validation failed", fields)

	if !IsValidation(err) {
		t.Fatalf("expected validation, got %v", err.Code)
	}
	msgs := FieldMessages(err)
	if msgs["name"] != "Required." || msgs["slug"] != "This slug already exists." {
		t.Errorf("unexpected field messages %v", msgs)
	}
	names := FieldNames(err)
	if len(names) != 2 || names[0] != "name" || names[1] != "slug" {
		t.Errorf("unexpected field names %v", names)
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "nothing"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := Wrapf(nil, ErrCodeInternal, "nothing %d", 1); err != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", err)
	}
}

func TestPredicates_ThroughWrapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NotFoundf("product %d not found", 7), IsNotFound},
		{"authorization", Authorization("You do not have admin privileges."), IsAuthorization},
		{"forbidden", FromStatus(http.StatusForbidden, "", nil), IsForbidden},
		{"network", Network(errors.New("dial tcp: refused")), IsNetwork},
		{"internal", Internalf("render %s", "page"), IsInternal},
		{"validation", Validationf("bad %s", "input"), IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("predicate failed for wrapped %v", wrapped)
			}
			if tt.check(errors.New("plain")) {
				t.Errorf("predicate matched a plain error")
			}
		})
	}
}

func TestGetCodeStatusAndMessage(t *testing.T) {
	err := fmt.Errorf("load: %w", FromStatus(http.StatusNotFound, "Not found.", nil))

	if got := GetCode(err); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %v", got)
	}
	if got := GetStatus(err); got != http.StatusNotFound {
		t.Errorf("GetStatus() = %v", got)
	}
	if got := Message(err, "fallback"); got != "Not found." {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(errors.New("plain"), "fallback"); got != "fallback" {
		t.Errorf("Message() on plain error = %q", got)
	}
	if GetCode(errors.New("plain")) != "" || GetField(errors.New("plain")) != "" || GetStatus(nil) != 0 {
		t.Errorf("expected zero values for non-AppError")
	}
}
