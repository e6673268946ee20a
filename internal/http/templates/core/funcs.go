package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/target/storefront-admin/internal/domain/model"
	"github.com/target/storefront-admin/internal/http/uiutil"
	"github.com/target/storefront-admin/internal/util"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	NavSection         func(string) string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"friendlyTime": friendlyTime,
		"timeTag":      timeTag,
		"dateOnly":     dateOnly,
		"dateInput":    uiutil.DateInputValue,
		"slice":        func(nums ...int) []int { return nums },
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"contains":     strings.Contains,
		"formatNumber": formatNumberTemplate,
		"money":        Money,
		"statusClass":  StatusClass,
		"humanize":     Humanize,
		"truncateText": TruncateText,
		"strLen":       StrLen,
		"hasID":        HasID,
		"derefID":      DerefID,
		"dict":         Dict,
		"navActive": func(current, item string) bool {
			if deps.NavSection != nil {
				current = deps.NavSection(current)
			}
			return current == item
		},
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped above.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func asTime(ts any) time.Time {
	switch v := ts.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

func friendlyTime(ts any) string {
	return uiutil.FormatFriendlyDateTime(asTime(ts))
}

func dateOnly(ts any) string {
	return uiutil.FormatDate(asTime(ts))
}

func timeTag(ts any) template.HTML {
	t0 := asTime(ts)
	if t0.IsZero() {
		return ""
	}
	friendly := uiutil.FormatFriendlyDateTime(t0)
	dt := t0.UTC().Format(time.RFC3339)
	title := uiutil.FriendlyRelativeTime(t0)
	// #nosec G203 - constructed from escaped values only
	return template.HTML(
		fmt.Sprintf(
			"<time datetime=\"%s\" title=\"%s\">%s</time>",
			dt,
			template.HTMLEscapeString(title),
			template.HTMLEscapeString(friendly),
		),
	)
}

// Money formats a decimal, string or float amount with two decimals and
// thousands separators. Empty amounts render as "-".
func Money(v any) string {
	switch x := v.(type) {
	case model.Decimal:
		if x.IsZero() {
			return "-"
		}
		return util.FormatMoney(string(x))
	case string:
		return util.FormatMoney(x)
	case float64:
		return util.FormatMoney(strconv.FormatFloat(x, 'f', -1, 64))
	case int:
		return util.FormatMoney(strconv.Itoa(x))
	case int64:
		return util.FormatMoney(strconv.FormatInt(x, 10))
	default:
		return "-"
	}
}

// StatusClass maps order, payment and active states to badge classes.
func StatusClass(status string) string {
	switch strings.ToLower(status) {
	case model.OrderStatusDelivered, model.PaymentStatusPaid, "active":
		return "badge-success"
	case model.OrderStatusShipped:
		return "badge-info"
	case model.OrderStatusProcessing:
		return "badge-primary"
	case model.OrderStatusPending, model.PaymentStatusUnpaid:
		return "badge-warning"
	case model.OrderStatusCancelled, model.PaymentStatusFailed:
		return "badge-danger"
	case model.PaymentStatusRefunded, "inactive":
		return "badge-secondary"
	default:
		return "badge-light"
	}
}

// Humanize turns a snake_case value into a title ("new_arrivals" -> "New Arrivals").
func Humanize(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// HasID reports whether id is in ids; used to pre-select multi-select options.
func HasID(ids []int64, id int64) bool {
	return slices.Contains(ids, id)
}

// Dict builds a map from alternating keys and values so a template can pass
// several values to a partial.
func Dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[key] = kv[i+1]
	}
	return m, nil
}

// DerefID returns the pointed-to id, or 0.
func DerefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// formatNumberTemplate formats any integer type with comma separators for thousands.
func formatNumberTemplate(v any) string {
	switch x := v.(type) {
	case int:
		return util.GroupThousands(strconv.Itoa(x))
	case int64:
		return util.GroupThousands(strconv.FormatInt(x, 10))
	case int32:
		return util.GroupThousands(strconv.FormatInt(int64(x), 10))
	case uint:
		return util.GroupThousands(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return util.GroupThousands(strconv.FormatUint(x, 10))
	default:
		return fmt.Sprint(v)
	}
}

// TruncateText truncates a string to a maximum number of runes (not bytes).
// The maxLen parameter can be any numeric type for template flexibility.
func TruncateText(s string, maxLen any) string {
	n, ok := toIntSafe(maxLen)
	if !ok || n <= 0 {
		return s
	}
	return uiutil.TruncateWithEllipsis(s, n)
}

func toIntSafe(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}

// StrLen returns the length of a string.
func StrLen(s string) int {
	return len(s)
}
