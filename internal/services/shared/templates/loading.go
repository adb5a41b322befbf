package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Loading renders the shared loading ring without a message.
func Loading() templ.Component {
	return LoadingWithMessage("")
}

// LoadingWithMessage renders the loading ring with screen-reader-only text.
func LoadingWithMessage(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="flex items-center justify-center p-6"><span class="loading loading-ring loading-md"></span>`); err != nil {
			return err
		}
		if message != "" {
			if _, err := io.WriteString(w, `<span class="sr-only">`+templ.EscapeString(message)+`</span>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
