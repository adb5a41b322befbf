package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// AlertRow is one rendered alert listing entry.
type AlertRow struct {
	Level     string
	MessageID string
	Message   string
	Dismissed bool
}

// AlertActions names the form targets for dismissing and restoring alerts.
type AlertActions struct {
	DismissURL string
	RestoreURL string
}

// AlertsPage renders the alert listing body with per-row dismiss controls.
func AlertsPage(page PageContext, rows []AlertRow, actions AlertActions) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		if len(rows) == 0 {
			b.WriteString(`<p class="mt-4 opacity-70">`)
			b.WriteString(templ.EscapeString(T(page.Loc, "alerts.none")))
			b.WriteString(`</p>`)
			_, err := io.WriteString(w, b.String())
			return err
		}

		b.WriteString(`<div class="mt-4 overflow-x-auto"><table class="table table-zebra table-sm"><thead><tr><th>`)
		b.WriteString(templ.EscapeString(T(page.Loc, "alerts.level")))
		b.WriteString(`</th><th>`)
		b.WriteString(templ.EscapeString(T(page.Loc, "alerts.message")))
		b.WriteString(`</th><th></th></tr></thead><tbody>`)
		for _, row := range rows {
			writeAlertRow(&b, page, row, actions)
		}
		b.WriteString(`</tbody></table></div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// AlertDetail renders one alert with its dismiss state and actions.
func AlertDetail(page PageContext, row AlertRow, actions AlertActions, backURL string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<div class="mt-4 card bg-base-200"><div class="card-body"><p><span class="badge `)
		b.WriteString(alertBadgeClass(row.Level))
		b.WriteString(`">`)
		b.WriteString(templ.EscapeString(row.Level))
		b.WriteString(`</span></p><p>`)
		b.WriteString(templ.EscapeString(row.Message))
		b.WriteString(`</p><p class="text-xs opacity-70">`)
		b.WriteString(templ.EscapeString(row.MessageID))
		if row.Dismissed {
			b.WriteString(` · `)
			b.WriteString(templ.EscapeString(T(page.Loc, "alerts.dismissed")))
		}
		b.WriteString(`</p><div class="card-actions">`)
		writeAlertActionForm(&b, page, row, actions)
		b.WriteString(`<a class="btn btn-ghost btn-sm" href="`)
		b.WriteString(templ.EscapeString(backURL))
		b.WriteString(`">`)
		b.WriteString(templ.EscapeString(T(page.Loc, "core.action.back")))
		b.WriteString(`</a></div></div></div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeAlertRow(b *strings.Builder, page PageContext, row AlertRow, actions AlertActions) {
	b.WriteString(`<tr`)
	if row.Dismissed {
		b.WriteString(` class="opacity-50"`)
	}
	b.WriteString(`><td><span class="badge `)
	b.WriteString(alertBadgeClass(row.Level))
	b.WriteString(`">`)
	b.WriteString(templ.EscapeString(row.Level))
	b.WriteString(`</span></td><td>`)
	b.WriteString(templ.EscapeString(row.Message))
	if row.Dismissed {
		b.WriteString(` <span class="text-xs opacity-70">(`)
		b.WriteString(templ.EscapeString(T(page.Loc, "alerts.dismissed")))
		b.WriteString(`)</span>`)
	}
	b.WriteString(`</td><td>`)
	writeAlertActionForm(b, page, row, actions)
	b.WriteString(`</td></tr>`)
}

func writeAlertActionForm(b *strings.Builder, page PageContext, row AlertRow, actions AlertActions) {
	action := actions.DismissURL
	label := T(page.Loc, "alerts.dismiss")
	if row.Dismissed {
		action = actions.RestoreURL
		label = T(page.Loc, "alerts.restore")
	}
	if action == "" {
		return
	}
	b.WriteString(`<form method="POST" action="`)
	b.WriteString(templ.EscapeString(action))
	b.WriteString(`"><input type="hidden" name="message_id" value="`)
	b.WriteString(templ.EscapeString(row.MessageID))
	b.WriteString(`"/><button class="btn btn-ghost btn-xs" type="submit">`)
	b.WriteString(templ.EscapeString(label))
	b.WriteString(`</button></form>`)
}
