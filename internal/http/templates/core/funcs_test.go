package core

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/storefront-admin/internal/domain/model"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "1,234.50", Money(model.Decimal("1234.5")))
	assert.Equal(t, "-", Money(model.Decimal("")))
	assert.Equal(t, "19.90", Money("19.9"))
	assert.Equal(t, "19.99", Money(19.99))
	assert.Equal(t, "0.00", Money(0))
	assert.Equal(t, "-", Money(nil))
}

func TestStatusClass(t *testing.T) {
	tests := map[string]string{
		"delivered":  "badge-success",
		"PAID":       "badge-success",
		"shipped":    "badge-info",
		"processing": "badge-primary",
		"pending":    "badge-warning",
		"cancelled":  "badge-danger",
		"refunded":   "badge-secondary",
		"inactive":   "badge-secondary",
		"on_hold":    "badge-light",
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusClass(status), status)
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "New Arrivals", Humanize("new_arrivals"))
	assert.Equal(t, "Custom", Humanize("custom"))
	assert.Equal(t, "", Humanize(""))
}

func TestDict(t *testing.T) {
	m, err := Dict("Name", "Acme", "ID", 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Name": "Acme", "ID": 3}, m)

	_, err = Dict("Name")
	require.Error(t, err)

	_, err = Dict(1, "x")
	require.Error(t, err)
}

func TestIDHelpers(t *testing.T) {
	assert.True(t, HasID([]int64{1, 4, 9}, 4))
	assert.False(t, HasID(nil, 4))

	id := int64(12)
	assert.Equal(t, int64(12), DerefID(&id))
	assert.Equal(t, int64(0), DerefID(nil))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "Wireless…", TruncateText("Wireless headphones", 9))
	assert.Equal(t, "short", TruncateText("short", int64(10)))
	assert.Equal(t, "unchanged", TruncateText("unchanged", "7"))
	assert.Equal(t, "unchanged", TruncateText("unchanged", 0))
}

func TestFormatNumberTemplate(t *testing.T) {
	assert.Equal(t, "1,234", formatNumberTemplate(1234))
	assert.Equal(t, "1,000,000", formatNumberTemplate(int64(1000000)))
	assert.Equal(t, "n/a", formatNumberTemplate("n/a"))
}

func TestTimeTag(t *testing.T) {
	assert.Equal(t, template.HTML(""), timeTag(time.Time{}))
	assert.Equal(t, template.HTML(""), timeTag((*time.Time)(nil)))

	ts := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	assert.Contains(t, string(timeTag(ts)), `datetime="2024-03-05T14:30:00Z"`)
}

func TestFuncs_RenderThroughTemplate(t *testing.T) {
	var tmpl *template.Template
	funcs := Funcs(Deps{
		Template:           &tmpl,
		ContentTemplateFor: func(page string) string { return page + "-content" },
		NavSection: func(page string) string {
			if page == "brand-form" {
				return "brands"
			}
			return page
		},
	})
	tmpl = template.Must(template.New("root").Funcs(funcs).Parse(
		`{{define "brands-content"}}<b>{{.Name}}</b>{{end}}` +
			`{{renderSection "brands" (dict "Name" "Acme")}}|{{navActive "brand-form" "brands"}}|{{money "5"}}|{{toJSON .}}`,
	))

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "root", []int{1, 2}))

	assert.Equal(t, "<b>Acme</b>|true|5.00|[1,2]", buf.String())
}

func TestRenderSection_Uninitialized(t *testing.T) {
	funcs := Funcs(Deps{ContentTemplateFor: func(p string) string { return p }})
	render, ok := funcs["renderSection"].(func(string, any) (template.HTML, error))
	require.True(t, ok)

	_, err := render("brands", nil)
	require.Error(t, err)
}
