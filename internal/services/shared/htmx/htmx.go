// Package htmx renders console pages for both full navigations and
// htmx-driven partial updates from the same component.
package htmx

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RequestHeader marks requests issued by the htmx client library.
const RequestHeader = "HX-Request"

// IsHTMXRequest reports whether the request asks for a partial update.
func IsHTMXRequest(r *http.Request) bool {
	return r != nil && strings.EqualFold(r.Header.Get(RequestHeader), "true")
}

// TitleTag formats an escaped <title> element, empty for a blank title.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// RenderPage writes the page component. Full navigations get the component
// as-is; htmx requests get only its <main> region with a <title> element
// prepended so the client can swap the document title along with the body.
func RenderPage(w http.ResponseWriter, r *http.Request, page templ.Component, title string) {
	if page == nil {
		return
	}
	if !IsHTMXRequest(r) {
		templ.Handler(page).ServeHTTP(w, r)
		return
	}

	rec := &recorder{header: http.Header{}, status: http.StatusOK}
	templ.Handler(page).ServeHTTP(rec, r)

	body := rec.buf.Bytes()
	if region, ok := mainRegion(body); ok {
		body = region
	}
	body = injectTitle(body, title)

	mergeHeaders(w.Header(), rec.header)
	if rec.status != http.StatusOK {
		w.WriteHeader(rec.status)
	}
	_, _ = w.Write(body)
}

// recorder buffers a component render so the partial body can be carved
// out before anything reaches the real connection.
type recorder struct {
	header http.Header
	status int
	wrote  bool
	buf    bytes.Buffer
}

func (rec *recorder) Header() http.Header { return rec.header }

func (rec *recorder) WriteHeader(status int) {
	if !rec.wrote {
		rec.wrote = true
		rec.status = status
	}
}

func (rec *recorder) Write(p []byte) (int, error) { return rec.buf.Write(p) }

// mainRegion returns the markup between the page's <main> tags.
func mainRegion(body []byte) ([]byte, bool) {
	open := bytes.Index(body, []byte("<main"))
	if open < 0 {
		return nil, false
	}
	gt := bytes.IndexByte(body[open:], '>')
	if gt < 0 {
		return nil, false
	}
	inner := body[open+gt+1:]
	close := bytes.Index(inner, []byte("</main>"))
	if close < 0 {
		return nil, false
	}
	return inner[:close], true
}

// injectTitle prepends a title element unless the fragment already has one.
func injectTitle(body []byte, title string) []byte {
	tag := TitleTag(title)
	if tag == "" || bytes.Contains(bytes.ToLower(body), []byte("<title")) {
		return body
	}
	return append([]byte(tag), body...)
}

// mergeHeaders copies buffered headers onto the live response. Set-Cookie
// accumulates; everything else overwrites so single-valued headers stay
// single-valued.
func mergeHeaders(dst, src http.Header) {
	for key, values := range src {
		if strings.EqualFold(key, "Set-Cookie") {
			for _, value := range values {
				dst.Add(key, value)
			}
			continue
		}
		for _, value := range values {
			dst.Set(key, value)
		}
	}
}
