package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// DataGridView holds the data needed to render a model grid shell. Rows are
// fetched client-side from GridURL as JSON so the page stays responsive while
// the store answers.
type DataGridView struct {
	Title   string
	GridURL string
	Columns []string
	// RefreshSeconds re-polls the grid endpoint when positive.
	RefreshSeconds int
}

// DataGrid renders the grid table shell for a registered model page.
func DataGrid(page PageContext, view DataGridView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<section class="mt-4 overflow-x-auto" data-grid-url="`)
		b.WriteString(templ.EscapeString(view.GridURL))
		b.WriteString(`"`)
		if view.RefreshSeconds > 0 {
			b.WriteString(` data-refresh-seconds="`)
			b.WriteString(strconv.Itoa(view.RefreshSeconds))
			b.WriteString(`"`)
		}
		b.WriteString(`><table class="table table-zebra table-sm"><thead><tr>`)
		for _, column := range view.Columns {
			b.WriteString(`<th>`)
			b.WriteString(templ.EscapeString(column))
			b.WriteString(`</th>`)
		}
		b.WriteString(`</tr></thead><tbody data-grid-body><tr><td colspan="`)
		b.WriteString(strconv.Itoa(maxInt(len(view.Columns), 1)))
		b.WriteString(`" class="text-center opacity-70">`)
		b.WriteString(templ.EscapeString(T(page.Loc, "grid.loading")))
		b.WriteString(`</td></tr></tbody></table></section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
