package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// DashboardView holds the data rendered on the console landing page.
type DashboardView struct {
	Hostname string
	Version  string
	Node     string
	// ShowConsoleWarning surfaces the banner about the unprotected local
	// console menu.
	ShowConsoleWarning bool
	// ShowWizardPrompt surfaces the initial-setup prompt on first sign-in.
	ShowWizardPrompt bool
	WizardURL        string
	// AlertLevel is the worst active alert level label.
	AlertLevel string
	AlertCount int
	AlertsURL  string
}

// Dashboard renders the landing page body.
func Dashboard(page PageContext, view DashboardView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		if view.ShowConsoleWarning {
			b.WriteString(`<div class="alert alert-warning mt-4" role="alert"><span>`)
			b.WriteString(templ.EscapeString(T(page.Loc, "dashboard.console_warning")))
			b.WriteString(`</span></div>`)
		}
		if view.ShowWizardPrompt {
			b.WriteString(`<div class="alert alert-info mt-4"><span>`)
			b.WriteString(templ.EscapeString(T(page.Loc, "dashboard.wizard_prompt")))
			b.WriteString(`</span><a class="btn btn-primary btn-sm" href="`)
			b.WriteString(templ.EscapeString(view.WizardURL))
			b.WriteString(`">`)
			b.WriteString(templ.EscapeString(T(page.Loc, "dashboard.wizard_start")))
			b.WriteString(`</a></div>`)
		}

		b.WriteString(`<section class="mt-4 grid gap-4 md:grid-cols-2">`)

		b.WriteString(`<div class="card bg-base-200"><div class="card-body"><h2 class="card-title">`)
		b.WriteString(templ.EscapeString(T(page.Loc, "dashboard.system_info")))
		b.WriteString(`</h2><dl class="grid grid-cols-2 gap-1 text-sm">`)
		writeInfoRow(&b, T(page.Loc, "dashboard.hostname"), view.Hostname)
		writeInfoRow(&b, T(page.Loc, "dashboard.version"), view.Version)
		writeInfoRow(&b, T(page.Loc, "dashboard.node"), view.Node)
		b.WriteString(`</dl></div></div>`)

		b.WriteString(`<div class="card bg-base-200"><div class="card-body"><h2 class="card-title">`)
		b.WriteString(templ.EscapeString(T(page.Loc, "alerts.title")))
		b.WriteString(`</h2>`)
		if view.AlertCount == 0 {
			b.WriteString(`<p class="text-sm opacity-70">`)
			b.WriteString(templ.EscapeString(T(page.Loc, "alerts.none")))
			b.WriteString(`</p>`)
		} else {
			b.WriteString(`<p class="text-sm"><span class="badge `)
			b.WriteString(alertBadgeClass(view.AlertLevel))
			b.WriteString(`">`)
			b.WriteString(templ.EscapeString(view.AlertLevel))
			b.WriteString(`</span> `)
			b.WriteString(strconv.Itoa(view.AlertCount))
			b.WriteString(`</p>`)
		}
		if view.AlertsURL != "" {
			b.WriteString(`<div class="card-actions"><a class="btn btn-sm" href="`)
			b.WriteString(templ.EscapeString(view.AlertsURL))
			b.WriteString(`">`)
			b.WriteString(templ.EscapeString(T(page.Loc, "alerts.title")))
			b.WriteString(`</a></div>`)
		}
		b.WriteString(`</div></div>`)

		b.WriteString(`</section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeInfoRow(b *strings.Builder, label string, value string) {
	b.WriteString(`<dt class="opacity-70">`)
	b.WriteString(templ.EscapeString(label))
	b.WriteString(`</dt><dd>`)
	b.WriteString(templ.EscapeString(value))
	b.WriteString(`</dd>`)
}

// alertBadgeClass maps an alert level label to its badge style.
func alertBadgeClass(level string) string {
	switch level {
	case "CRIT":
		return "badge-error"
	case "WARN":
		return "badge-warning"
	default:
		return "badge-success"
	}
}
