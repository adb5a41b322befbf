package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/brinedeck/wardroom/internal/services/console/gridfilter"
	"github.com/brinedeck/wardroom/internal/services/console/site"
	"github.com/brinedeck/wardroom/internal/services/console/storage"
)

// GridSource adapts the storage layer's datagrid reads to the registry's
// data source contract. Filter expressions are translated to bound SQL
// against the declared column kinds, so a handler only ever queries the
// columns its registration names.
type GridSource struct {
	store      storage.GridStore
	table      string
	columns    []string
	translator *gridfilter.Translator
}

// NewGridSource builds a data source over one table. columns fixes the
// display order; kinds declares which of them accept filter expressions.
func NewGridSource(store storage.GridStore, table string, columns []string, kinds gridfilter.Columns) (*GridSource, error) {
	if store == nil {
		return nil, fmt.Errorf("grid source for %s: store is required", table)
	}
	if table == "" {
		return nil, fmt.Errorf("grid source: table is required")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("grid source for %s: at least one column is required", table)
	}
	translator, err := gridfilter.NewTranslator(kinds)
	if err != nil {
		return nil, fmt.Errorf("grid source for %s: %w", table, err)
	}
	return &GridSource{
		store:      store,
		table:      table,
		columns:    append([]string(nil), columns...),
		translator: translator,
	}, nil
}

// Columns lists the grid columns in display order.
func (g *GridSource) Columns() []string {
	return append([]string(nil), g.columns...)
}

// Rows fetches one page of rows. The order and page size are validated by
// the caller; the filter is validated here by translation.
func (g *GridSource) Rows(ctx context.Context, q site.RowQuery) ([][]string, error) {
	grid := storage.GridQuery{
		Table:   g.table,
		Columns: g.columns,
		OrderBy: q.OrderBy,
		Limit:   q.PageSize,
	}
	if filter := strings.TrimSpace(q.Filter); filter != "" {
		cond, err := g.translator.Translate(filter)
		if err != nil {
			return nil, fmt.Errorf("translate filter: %w", err)
		}
		grid.Where = cond.Clause
		grid.Args = cond.Params
	}
	return g.store.GridRows(ctx, grid)
}
