package uiutil

import (
	"strconv"
	"strings"
	"time"
)

const (
	FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"
	DateLayout             = "Jan 2, 2006"
	// DateInputLayout is the value format of <input type="date">.
	DateInputLayout = "2006-01-02"
)

// FriendlyRelativeTime returns a human-friendly description of how long ago t occurred.
// Times in the future are treated as "just now" to avoid confusing negative durations.
func FriendlyRelativeTime(t time.Time) string {
	diff := time.Since(t)
	if diff < 0 {
		return "just now"
	}

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return strconv.Itoa(mins) + " minutes ago"
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return strconv.Itoa(hours) + " hours ago"
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return strconv.Itoa(days) + " days ago"
	default:
		return FormatFriendlyDateTime(t)
	}
}

// FormatFriendlyDateTime returns a consistent, user-friendly local timestamp representation.
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

// FormatDate renders the calendar date of t, or "" when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// DateInputValue normalises a date for a date input. It accepts a time, a
// time pointer, or a string in date or RFC 3339 form; anything else yields "".
func DateInputValue(v any) string {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(DateInputLayout)
	case *time.Time:
		if x == nil {
			return ""
		}
		return DateInputValue(*x)
	case string:
		return ParseDateInput(x)
	default:
		return ""
	}
}

// ParseDateInput returns s as YYYY-MM-DD when it starts with a valid date,
// or "" otherwise.
func ParseDateInput(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < len(DateInputLayout) {
		return ""
	}
	head := s[:len(DateInputLayout)]
	if _, err := time.Parse(DateInputLayout, head); err != nil {
		return ""
	}
	return head
}
