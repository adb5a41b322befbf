package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// HelpLink is one documentation resource listed on the help page.
type HelpLink struct {
	Label string
	URL   string
}

// Help renders the help page body with documentation resources and the
// language switcher.
func Help(page PageContext, links []HelpLink) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<p class="max-w-prose">`)
		b.WriteString(templ.EscapeString(T(page.Loc, "help.intro")))
		b.WriteString(`</p>`)
		if len(links) > 0 {
			b.WriteString(`<ul class="mt-4 list-disc pl-6">`)
			for _, link := range links {
				b.WriteString(`<li><a class="link" href="`)
				b.WriteString(templ.EscapeString(link.URL))
				b.WriteString(`" target="_blank" rel="noreferrer">`)
				b.WriteString(templ.EscapeString(link.Label))
				b.WriteString(`</a></li>`)
			}
			b.WriteString(`</ul>`)
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		return LanguageSwitcher(page).Render(ctx, w)
	})
}
