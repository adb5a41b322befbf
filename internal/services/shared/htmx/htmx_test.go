package htmx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func consolePage(markup string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}

func TestIsHTMXRequest(t *testing.T) {
	t.Parallel()

	if IsHTMXRequest(nil) {
		t.Fatal("IsHTMXRequest(nil) = true, want false")
	}

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "absent", header: "", want: false},
		{name: "true", header: "true", want: true},
		{name: "uppercase", header: "TRUE", want: true},
		{name: "false", header: "false", want: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set(RequestHeader, tc.header)
			}
			if got := IsHTMXRequest(r); got != tc.want {
				t.Fatalf("IsHTMXRequest() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTitleTagEscapes(t *testing.T) {
	t.Parallel()
	got := TitleTag(`Alerts <Console>`)
	want := "<title>Alerts &lt;Console&gt;</title>"
	if got != want {
		t.Fatalf("TitleTag(...) = %q, want %q", got, want)
	}
	if got := TitleTag("  "); got != "" {
		t.Fatalf("TitleTag(blank) = %q, want empty", got)
	}
}

func TestRenderPageFullNavigation(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RenderPage(w, r, consolePage("<html><main>dashboard</main></html>"), "Dashboard")

	body := w.Body.String()
	if !strings.Contains(body, "<html>") {
		t.Fatalf("full navigation body = %q, want whole document", body)
	}
	if strings.Contains(body, "<title>Dashboard</title>") {
		t.Fatal("full navigation must not get an injected title")
	}
}

func TestRenderPagePartialExtractsMainRegion(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestHeader, "true")

	RenderPage(w, r, consolePage(`<html><main class="page">dashboard</main></html>`), "Dashboard")

	body := w.Body.String()
	if want := "<title>Dashboard</title>dashboard"; body != want {
		t.Fatalf("partial body = %q, want %q", body, want)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("Content-Type = %q, want text/html", ct)
	}
}

func TestRenderPagePartialWithoutMainUsesWholeBody(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestHeader, "true")

	RenderPage(w, r, consolePage("<p>loading</p>"), "")

	if got := w.Body.String(); got != "<p>loading</p>" {
		t.Fatalf("partial body = %q, want unmodified markup", got)
	}
}

func TestRenderPagePartialKeepsExistingTitle(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestHeader, "true")

	RenderPage(w, r, consolePage("<main><title>Alerts</title>rows</main>"), "Ignored")

	body := w.Body.String()
	if strings.Count(body, "<title") != 1 {
		t.Fatalf("partial body = %q, want exactly one title element", body)
	}
	if !strings.Contains(body, "<title>Alerts</title>") {
		t.Fatalf("partial body = %q, want the component's own title kept", body)
	}
}

func TestRenderPageNilComponentWritesNothing(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RenderPage(w, r, nil, "Dashboard")

	if w.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", w.Body.String())
	}
}

func TestMergeHeadersAccumulatesCookiesOnly(t *testing.T) {
	t.Parallel()
	src := http.Header{}
	src.Add("Set-Cookie", "wd_lang=en")
	src.Add("Set-Cookie", "wd_token=abc")
	src.Add("Content-Type", "text/plain")
	src.Add("Content-Type", "text/html")

	dst := http.Header{}
	mergeHeaders(dst, src)

	if got := len(dst.Values("Set-Cookie")); got != 2 {
		t.Fatalf("Set-Cookie count = %d, want 2", got)
	}
	if got := len(dst.Values("Content-Type")); got != 1 {
		t.Fatalf("Content-Type count = %d, want 1", got)
	}
	if got := dst.Get("Content-Type"); got != "text/html" {
		t.Fatalf("Content-Type = %q, want last value to win", got)
	}
}
