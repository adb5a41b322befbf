package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/brinedeck/wardroom/internal/platform/branding"
	"github.com/brinedeck/wardroom/internal/platform/icons"
	"github.com/brinedeck/wardroom/internal/services/shared/i18nhttp"
)

// ChromeLayoutOptions configures the shared console page chrome.
type ChromeLayoutOptions struct {
	// Title is the raw page title. The brand suffix is appended automatically.
	Title string
	// Lang is the rendered html lang attribute.
	Lang string
	// AppName is the brand name shown in the header.
	AppName string
	// Loc localizes chrome strings.
	Loc Localizer
	// Breadcrumbs renders the page trail under the header when non-empty.
	Breadcrumbs []BreadcrumbItem
	// UserName is the signed-in operator shown next to the sign-out control.
	UserName string
	// LogoutURL is the sign-out form target. Empty hides the control.
	LogoutURL string
	// HelpURL links the help page from the header. Empty hides the control.
	HelpURL string
	// AlertsURL links the alert listing from the header. Empty hides the control.
	AlertsURL string
	// AlertLevel labels the alert badge. Empty renders the icon without a badge.
	AlertLevel string
	// Languages populates the header language dropdown when non-empty.
	Languages []LanguageOption
	// CurrentPath and CurrentQuery locate the page for language switch links.
	CurrentPath  string
	CurrentQuery string
	// CacheTag busts browser caches for static assets across upgrades.
	CacheTag string
	// Stylesheets are extra stylesheet URLs appended after the core sheet.
	Stylesheets []string
	// Scripts are extra script URLs appended after the core script.
	Scripts []string
	// Heading overrides the h1 derived from Title.
	Heading string
	// Body is the page content rendered inside <main>.
	Body templ.Component
}

// ComposePageTitle appends the brand suffix to a page title, normalizing
// titles that already carry a hyphenated brand suffix.
func ComposePageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return branding.AppName
	}
	pipeSuffix := " | " + branding.AppName
	if strings.HasSuffix(title, pipeSuffix) {
		return title
	}
	hyphenSuffix := " - " + branding.AppName
	if strings.HasSuffix(title, hyphenSuffix) {
		return strings.TrimSuffix(title, hyphenSuffix) + pipeSuffix
	}
	return title + pipeSuffix
}

func pageHeadingFromTitle(title string, appName string) string {
	title = strings.TrimSpace(title)
	title = strings.TrimSuffix(title, " | "+appName)
	title = strings.TrimSuffix(title, " - "+appName)
	return strings.TrimSpace(title)
}

// chromeWriter accumulates the first write error so markup code stays flat.
type chromeWriter struct {
	w   io.Writer
	err error
}

func (cw *chromeWriter) raw(s string) {
	if cw.err != nil {
		return
	}
	_, cw.err = io.WriteString(cw.w, s)
}

func (cw *chromeWriter) text(s string) {
	cw.raw(templ.EscapeString(s))
}

func (cw *chromeWriter) attr(s string) {
	cw.raw(templ.EscapeString(s))
}

// ChromeLayout renders the full console page shell: head with static assets,
// header with menu mount point and operator controls, breadcrumbs, heading,
// and the page body inside <main>.
func ChromeLayout(opts ChromeLayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		appName := strings.TrimSpace(opts.AppName)
		if appName == "" {
			appName = branding.AppName
		}
		fullTitle := ComposePageTitle(opts.Title)
		heading := strings.TrimSpace(opts.Heading)
		if heading == "" {
			heading = pageHeadingFromTitle(fullTitle, appName)
		}

		cw := &chromeWriter{w: w}
		cw.raw(`<!DOCTYPE html><html lang="`)
		cw.attr(opts.Lang)
		cw.raw(`"><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/><title>`)
		cw.text(fullTitle)
		cw.raw(`</title><link rel="stylesheet" href="`)
		cw.attr(assetURL("/static/css/console.css", opts.CacheTag))
		cw.raw(`"/>`)
		for _, sheet := range opts.Stylesheets {
			cw.raw(`<link rel="stylesheet" href="`)
			cw.attr(sheet)
			cw.raw(`"/>`)
		}
		cw.raw(`<script src="`)
		cw.attr(assetURL("/static/js/console.js", opts.CacheTag))
		cw.raw(`" defer></script>`)
		for _, script := range opts.Scripts {
			cw.raw(`<script src="`)
			cw.attr(script)
			cw.raw(`" defer></script>`)
		}
		cw.raw(`</head><body class="min-h-screen bg-base-100">`)
		cw.raw(icons.LucideSprite())

		cw.raw(`<header class="navbar bg-base-200"><div class="flex-1"><a class="btn btn-ghost text-lg" href="/" hx-get="/" hx-target="main" hx-push-url="true">`)
		cw.text(appName)
		cw.raw(`</a></div><nav class="flex-none" id="console-menu" data-menu-url="/menu.json/"></nav><div class="flex-none gap-1">`)
		if opts.AlertsURL != "" {
			cw.raw(`<a class="btn btn-ghost btn-sm" href="`)
			cw.attr(opts.AlertsURL)
			cw.raw(`" data-nav-item="true"><svg class="h-4 w-4"><use href="#`)
			cw.attr(icons.LucideSymbolID(icons.LucideNameOrDefault(icons.IDAlert)))
			cw.raw(`"></use></svg>`)
			if opts.AlertLevel != "" {
				cw.raw(`<span class="badge badge-sm badge-warning">`)
				cw.text(opts.AlertLevel)
				cw.raw(`</span>`)
			}
			cw.raw(`</a>`)
		}
		if opts.HelpURL != "" {
			cw.raw(`<a class="btn btn-ghost btn-sm" href="`)
			cw.attr(opts.HelpURL)
			cw.raw(`" data-nav-item="true"><svg class="h-4 w-4"><use href="#`)
			cw.attr(icons.LucideSymbolID(icons.LucideNameOrDefault(icons.IDHelp)))
			cw.raw(`"></use></svg></a>`)
		}
		if len(opts.Languages) > 0 {
			cw.raw(`<div class="dropdown dropdown-end"><button class="btn btn-ghost btn-sm" aria-label="`)
			cw.attr(T(opts.Loc, "nav.language"))
			cw.raw(`">`)
			cw.text(ActiveLanguageLabel(opts.Languages))
			cw.raw(`</button><ul class="dropdown-content menu menu-sm bg-base-200 rounded-box z-10">`)
			for _, lang := range opts.Languages {
				cw.raw(`<li><a`)
				if lang.Active {
					cw.raw(` class="active"`)
				}
				cw.raw(` href="`)
				cw.attr(i18nhttp.LanguageURL(opts.CurrentPath, opts.CurrentQuery, lang.Tag))
				cw.raw(`">`)
				cw.text(lang.Label)
				cw.raw(`</a></li>`)
			}
			cw.raw(`</ul></div>`)
		}
		if opts.UserName != "" {
			cw.raw(`<span class="px-2 text-sm">`)
			cw.text(opts.UserName)
			cw.raw(`</span>`)
		}
		if opts.LogoutURL != "" {
			cw.raw(`<form method="POST" action="`)
			cw.attr(opts.LogoutURL)
			cw.raw(`"><button class="btn btn-ghost btn-sm" type="submit">`)
			cw.text(T(opts.Loc, "nav.sign_out"))
			cw.raw(`</button></form>`)
		}
		cw.raw(`</div></header>`)

		if len(opts.Breadcrumbs) > 0 {
			cw.raw(`<nav class="breadcrumbs text-sm px-4"><ul>`)
			for _, crumb := range opts.Breadcrumbs {
				if crumb.URL != "" {
					cw.raw(`<li><a href="`)
					cw.attr(crumb.URL)
					cw.raw(`">`)
					cw.text(crumb.Label)
					cw.raw(`</a></li>`)
					continue
				}
				cw.raw(`<li>`)
				cw.text(crumb.Label)
				cw.raw(`</li>`)
			}
			cw.raw(`</ul></nav>`)
		}

		cw.raw(`<main class="p-4"><h1 class="mb-0">`)
		cw.text(heading)
		cw.raw(`</h1>`)
		if cw.err != nil {
			return cw.err
		}
		if opts.Body != nil {
			if err := opts.Body.Render(ctx, w); err != nil {
				return err
			}
		}
		cw.raw(`</main><footer class="footer p-4 text-xs opacity-70"><span>`)
		cw.text(branding.Vendor + " " + appName + " " + branding.Version())
		cw.raw(`</span></footer></body></html>`)
		return cw.err
	})
}

func assetURL(path string, cacheTag string) string {
	if cacheTag == "" {
		return path
	}
	return path + "?v=" + cacheTag
}
