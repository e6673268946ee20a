// Package validation holds the form checks the console runs before a
// request reaches the backend. The backend stays authoritative; these only
// catch what can be caught without a round trip.
package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"

	"github.com/target/storefront-admin/internal/util/slug"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Required validates that a field is not empty and does not exceed maxLen characters.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Optional validates that an optional field does not exceed maxLen characters if provided.
func Optional(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// MinLength validates a non-empty value has at least minLen characters.
// Empty values pass; pair it with Required when the field is mandatory.
func MinLength(fieldName string, minLen int) Validator {
	return func(v string) string {
		if v == "" {
			return ""
		}
		if utf8.RuneCountInString(v) < minLen {
			return fmt.Sprintf("%s must be at least %d characters.", fieldName, minLen)
		}
		return ""
	}
}

// Email validates a bare address such as "ada@example.com".
func Email(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v || !strings.Contains(v[strings.LastIndex(v, "@"):], ".") {
			return "Enter a valid email address."
		}
		return ""
	}
}

// IntRange validates that an optional field is an integer between minVal and maxVal.
func IntRange(fieldName string, minVal, maxVal int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fieldName + " must be a whole number."
		}
		if i < minVal || i > maxVal {
			return fmt.Sprintf("%s must be between %d and %d.", fieldName, minVal, maxVal)
		}
		return ""
	}
}

// NonNegativeInt validates an optional whole number that is zero or more.
func NonNegativeInt(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fieldName + " must be a whole number."
		}
		if i < 0 {
			return fieldName + " cannot be negative."
		}
		return ""
	}
}

var decimalRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// Decimal validates an optional non-negative amount with at most two decimals.
func Decimal(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !decimalRe.MatchString(v) {
			return fieldName + " must be a number with at most two decimals."
		}
		return ""
	}
}

// RequiredDecimal is Decimal for mandatory amounts.
func RequiredDecimal(fieldName string) Validator {
	check := Decimal(fieldName)
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return fieldName + " is required."
		}
		return check(v)
	}
}

// Slug validates an optional slug. Blank slugs are derived from the name later.
func Slug(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" || slug.Valid(v) {
			return ""
		}
		return fieldName + " may contain only lowercase letters, numbers and hyphens."
	}
}

// Website validates an optional http(s) URL whose host is a registrable
// domain under the public suffix list.
func Website(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		p, err := url.Parse(v)
		if err != nil || (p.Scheme != "http" && p.Scheme != "https") || p.Hostname() == "" {
			return "Enter a valid http(s) URL."
		}
		host := strings.ToLower(p.Hostname())
		if _, err := publicsuffix.EffectiveTLDPlusOne(host); err != nil {
			return "Enter a URL with a real domain name."
		}
		if _, icann := publicsuffix.PublicSuffix(host); !icann {
			return "Enter a URL with a real domain name."
		}
		return ""
	}
}

// Date validates an optional YYYY-MM-DD date.
func Date(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return fieldName + " must be a date (YYYY-MM-DD)."
		}
		return ""
	}
}

// OneOf validates that a field matches one of the provided options (case-insensitive).
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		for _, opt := range options {
			if strings.EqualFold(v, opt) {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(options, ", "))
	}
}

// Pattern validates that a field matches the provided regular expression.
func Pattern(fieldName string, re *regexp.Regexp) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !re.MatchString(v) {
			return fieldName + " has an invalid format."
		}
		return ""
	}
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors map[string]string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if err := v(value); err != "" {
			fv.errors[field] = err
			break
		}
	}
	return fv
}

// Check records msg for field when cond is false and the field has no error yet.
func (fv *FieldValidator) Check(cond bool, field, msg string) *FieldValidator {
	if !cond {
		if _, exists := fv.errors[field]; !exists {
			fv.errors[field] = msg
		}
	}
	return fv
}

// Valid reports whether no errors were recorded.
func (fv *FieldValidator) Valid() bool { return len(fv.errors) == 0 }

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}
