// Package static embeds the console's stylesheet and script for HTTP
// serving. Assets are addressed under /static/ with a cache-busting tag
// appended by the page chrome.
package static

import "embed"

// FS exposes console static assets for HTTP serving.
//
//go:embed css js
var FS embed.FS
