package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	sharedtemplates "github.com/brinedeck/wardroom/internal/services/shared/templates"
)

// LoadingSpinner renders the shared loading ring for inline swaps.
func LoadingSpinner() templ.Component {
	return sharedtemplates.Loading()
}

// LazyLoad renders a placeholder that fetches url once the page settles.
func LazyLoad(url string, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div hx-get="`+templ.EscapeString(url)+`" hx-trigger="load" hx-swap="outerHTML">`); err != nil {
			return err
		}
		if err := sharedtemplates.LoadingWithMessage(message).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
