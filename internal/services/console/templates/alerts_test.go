package templates

import (
	"context"
	"strings"
	"testing"
)

func TestAlertsPageEmpty(t *testing.T) {
	page := PageContext{Lang: "en", Loc: keyLocalizer{}}

	got := renderComponent(t, func(w *strings.Builder) error {
		return AlertsPage(page, nil, AlertActions{}).Render(context.Background(), w)
	})

	if !strings.Contains(got, "alerts.none") {
		t.Fatalf("empty alert list should show the empty message: %q", got)
	}
	if strings.Contains(got, "<table") {
		t.Fatalf("empty alert list should not render a table: %q", got)
	}
}

func TestAlertsPageRowsAndActions(t *testing.T) {
	page := PageContext{Lang: "en", Loc: keyLocalizer{}}
	rows := []AlertRow{
		{Level: "WARN", MessageID: "smart-disk-0", Message: "SMART warning on ada0"},
		{Level: "CRIT", MessageID: "pool-degraded", Message: "Pool tank is degraded", Dismissed: true},
	}
	actions := AlertActions{DismissURL: "/alerts/dismiss/", RestoreURL: "/alerts/restore/"}

	got := renderComponent(t, func(w *strings.Builder) error {
		return AlertsPage(page, rows, actions).Render(context.Background(), w)
	})

	if !strings.Contains(got, "badge-warning") || !strings.Contains(got, "badge-error") {
		t.Fatalf("alert rows missing level badges: %q", got)
	}
	if !strings.Contains(got, `action="/alerts/dismiss/"`) {
		t.Fatalf("active row should post to the dismiss URL: %q", got)
	}
	if !strings.Contains(got, `action="/alerts/restore/"`) {
		t.Fatalf("dismissed row should post to the restore URL: %q", got)
	}
	if !strings.Contains(got, `name="message_id" value="smart-disk-0"`) {
		t.Fatalf("dismiss form missing message id: %q", got)
	}
	if !strings.Contains(got, `<tr class="opacity-50">`) {
		t.Fatalf("dismissed row should be dimmed: %q", got)
	}
	if !strings.Contains(got, "alerts.restore") {
		t.Fatalf("dismissed row should offer restore: %q", got)
	}
}

func TestAlertsPageWithoutActionURLs(t *testing.T) {
	page := PageContext{Lang: "en", Loc: keyLocalizer{}}
	rows := []AlertRow{{Level: "WARN", MessageID: "m1", Message: "msg"}}

	got := renderComponent(t, func(w *strings.Builder) error {
		return AlertsPage(page, rows, AlertActions{}).Render(context.Background(), w)
	})

	if strings.Contains(got, "<form") {
		t.Fatalf("rows without action URLs should not render forms: %q", got)
	}
}

func TestAlertDetail(t *testing.T) {
	page := PageContext{Lang: "en", Loc: keyLocalizer{}}
	row := AlertRow{Level: "CRIT", MessageID: "pool-degraded", Message: "Pool tank is degraded", Dismissed: true}
	actions := AlertActions{DismissURL: "/alerts/dismiss/", RestoreURL: "/alerts/restore/"}

	got := renderComponent(t, func(w *strings.Builder) error {
		return AlertDetail(page, row, actions, "/alerts/").Render(context.Background(), w)
	})

	if !strings.Contains(got, "badge-error") {
		t.Fatalf("detail missing level badge: %q", got)
	}
	if !strings.Contains(got, "Pool tank is degraded") {
		t.Fatalf("detail missing message: %q", got)
	}
	if !strings.Contains(got, "alerts.dismissed") {
		t.Fatalf("detail should mark the dismissed state: %q", got)
	}
	if !strings.Contains(got, `action="/alerts/restore/"`) {
		t.Fatalf("dismissed alert should offer restore: %q", got)
	}
	if !strings.Contains(got, `href="/alerts/"`) || !strings.Contains(got, "core.action.back") {
		t.Fatalf("detail missing back link: %q", got)
	}
}
