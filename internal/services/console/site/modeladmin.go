package site

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/brinedeck/wardroom/internal/platform/grpc/pagination"
	"github.com/brinedeck/wardroom/internal/services/console/pathparts"
	"github.com/brinedeck/wardroom/internal/services/console/routepath"
)

const (
	defaultGridPageSize = 25
	maxGridPageSize     = 200
)

// RowQuery narrows a datagrid read.
type RowQuery struct {
	// Filter is a list-filter expression, e.g. `hostname = "wardroom"`.
	Filter string
	// OrderBy is a validated column name, optionally prefixed with "-" for
	// descending order.
	OrderBy string
	// PageSize caps the number of rows returned.
	PageSize int
}

// DataSource supplies datagrid rows for a model admin.
type DataSource interface {
	// Columns lists column names in display order.
	Columns() []string
	// Rows returns up to q.PageSize rows matching q, one cell per column.
	Rows(ctx context.Context, q RowQuery) ([][]string, error)
}

// PageRenderer draws a handler's index page.
type PageRenderer func(w http.ResponseWriter, r *http.Request, admin *ModelAdmin)

// Config carries per-registration options. The zero value derives every
// field from the model type.
type Config struct {
	// Name overrides the diagnostic handler name used in logs and errors.
	Name string
	// AppLabel and ModuleName override the URL segments derived from the
	// model's package path and type name.
	AppLabel   string
	ModuleName string
	// VerboseName labels the handler's pages and menu entries.
	VerboseName string
	// Icon names the navigation tree icon.
	Icon string
	// MenuHidden keeps the handler out of the navigation tree.
	MenuHidden bool
	// Fields selects and orders the datagrid columns. Empty means every
	// column the data source reports.
	Fields []string
	// RefreshSeconds sets the datagrid auto-refresh interval. Zero disables
	// auto-refresh.
	RefreshSeconds int
	// Source backs the grid endpoint. Handlers without a source serve an
	// empty grid.
	Source DataSource
	// Render overrides the index page, used by standalone handlers.
	Render PageRenderer
	// Cacheable opts the handler's responses out of the no-store policy.
	Cacheable bool
	// CSRFExempt opts the handler's mutating endpoints out of same-origin
	// enforcement.
	CSRFExempt bool
}

// ModelAdmin serves the management pages for one registered model, or a
// standalone page when no model backs it. Everything under its URL prefix
// is dispatched through its own route table.
type ModelAdmin struct {
	site       *Site
	model      reflect.Type
	cfg        Config
	name       string
	appLabel   string
	moduleName string
}

func newModelAdmin(s *Site, model reflect.Type, cfg Config, name string) *ModelAdmin {
	admin := &ModelAdmin{
		site:       s,
		model:      model,
		cfg:        cfg,
		name:       name,
		appLabel:   cfg.AppLabel,
		moduleName: cfg.ModuleName,
	}
	if model != nil {
		if admin.appLabel == "" {
			admin.appLabel = packageLabel(model.PkgPath())
		}
		if admin.moduleName == "" {
			admin.moduleName = strings.ToLower(model.Name())
		}
	}
	return admin
}

// packageLabel returns the final segment of a package path.
func packageLabel(pkgPath string) string {
	if idx := strings.LastIndex(pkgPath, "/"); idx >= 0 {
		return pkgPath[idx+1:]
	}
	return pkgPath
}

// Name returns the handler's diagnostic name.
func (a *ModelAdmin) Name() string { return a.name }

// AppLabel returns the first URL segment the handler is mounted under.
func (a *ModelAdmin) AppLabel() string { return a.appLabel }

// ModuleName returns the second URL segment the handler is mounted under.
func (a *ModelAdmin) ModuleName() string { return a.moduleName }

// Model returns the registered model type, or nil for standalone handlers.
func (a *ModelAdmin) Model() reflect.Type { return a.model }

// Site returns the registry the handler belongs to.
func (a *ModelAdmin) Site() *Site { return a.site }

// Prefix returns the handler's URL prefix, e.g. "/system/settings/".
func (a *ModelAdmin) Prefix() string {
	return routepath.ModelPrefix(a.appLabel, a.moduleName)
}

// VerboseName returns the display label for pages and menu entries.
func (a *ModelAdmin) VerboseName() string {
	if a.cfg.VerboseName != "" {
		return a.cfg.VerboseName
	}
	if a.model != nil {
		return a.model.Name()
	}
	return a.name
}

// Icon returns the navigation tree icon name.
func (a *ModelAdmin) Icon() string { return a.cfg.Icon }

// MenuHidden reports whether the handler stays out of the navigation tree.
func (a *ModelAdmin) MenuHidden() bool { return a.cfg.MenuHidden }

// Cacheable reports whether the handler's responses may be cached.
func (a *ModelAdmin) Cacheable() bool { return a.cfg.Cacheable }

// CSRFExempt reports whether same-origin enforcement is skipped.
func (a *ModelAdmin) CSRFExempt() bool { return a.cfg.CSRFExempt }

// RefreshSeconds returns the datagrid auto-refresh interval.
func (a *ModelAdmin) RefreshSeconds() int { return a.cfg.RefreshSeconds }

// Columns returns the datagrid columns: Config.Fields when set, otherwise
// whatever the data source reports.
func (a *ModelAdmin) Columns() []string {
	if len(a.cfg.Fields) > 0 {
		return append([]string(nil), a.cfg.Fields...)
	}
	if a.cfg.Source != nil {
		return a.cfg.Source.Columns()
	}
	return nil
}

type adminRouteDescriptor struct {
	length   int
	literals map[int]string
	handle   func(*ModelAdmin, http.ResponseWriter, *http.Request, PageRenderer)
}

func (d adminRouteDescriptor) matches(parts []string) bool {
	if len(parts) != d.length {
		return false
	}
	for index, value := range d.literals {
		if parts[index] != value {
			return false
		}
	}
	return true
}

var adminRouteDescriptors = []adminRouteDescriptor{
	{
		length: 0,
		handle: func(admin *ModelAdmin, w http.ResponseWriter, r *http.Request, renderIndex PageRenderer) {
			admin.handleIndex(w, r, renderIndex)
		},
	},
	{
		length:   1,
		literals: map[int]string{0: "grid"},
		handle: func(admin *ModelAdmin, w http.ResponseWriter, r *http.Request, _ PageRenderer) {
			admin.handleGrid(w, r)
		},
	},
}

// Handler returns the handler's internal route table, rooted at its URL
// prefix. renderIndex draws the index page unless Config.Render overrides it.
func (a *ModelAdmin) Handler(renderIndex PageRenderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, a.Prefix())
		parts := pathparts.Split(path)
		if !dispatchAdminPath(a, w, r, parts, renderIndex) {
			http.NotFound(w, r)
		}
	})
}

func dispatchAdminPath(admin *ModelAdmin, w http.ResponseWriter, r *http.Request, parts []string, renderIndex PageRenderer) bool {
	return dispatchMostSpecificAdminPath(adminRouteDescriptors, admin, w, r, parts, renderIndex)
}

func dispatchMostSpecificAdminPath(
	descriptors []adminRouteDescriptor,
	admin *ModelAdmin,
	w http.ResponseWriter,
	r *http.Request,
	parts []string,
	renderIndex PageRenderer,
) bool {
	bestIndex := -1
	bestSpecificity := -1
	for index, descriptor := range descriptors {
		if !descriptor.matches(parts) {
			continue
		}
		specificity := len(descriptor.literals)
		if specificity > bestSpecificity {
			bestSpecificity = specificity
			bestIndex = index
		}
	}
	if bestIndex < 0 {
		return false
	}
	descriptors[bestIndex].handle(admin, w, r, renderIndex)
	return true
}

func (a *ModelAdmin) handleIndex(w http.ResponseWriter, r *http.Request, renderIndex PageRenderer) {
	render := a.cfg.Render
	if render == nil {
		render = renderIndex
	}
	if render == nil {
		http.NotFound(w, r)
		return
	}
	render(w, r, a)
}

// gridPage is the datagrid JSON payload.
type gridPage struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

func (a *ModelAdmin) handleGrid(w http.ResponseWriter, r *http.Request) {
	columns := a.Columns()
	if a.cfg.Source == nil {
		writeGridPage(w, gridPage{Columns: columns, Rows: [][]string{}})
		return
	}

	query := r.URL.Query()
	orderBy, err := pagination.NormalizeOrderBy(query.Get("order_by"), pagination.OrderByConfig{
		Default: "-id",
		Allowed: gridOrderColumns(columns),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	requested, _ := strconv.Atoi(query.Get("page_size"))
	pageSize := pagination.ClampPageSize(requested, pagination.PageSizeConfig{
		Default: defaultGridPageSize,
		Max:     maxGridPageSize,
	})

	rows, err := a.cfg.Source.Rows(r.Context(), RowQuery{
		Filter:   query.Get("filter"),
		OrderBy:  orderBy,
		PageSize: pageSize,
	})
	if err != nil {
		log.Printf("site: %s grid query failed: %v", a.name, err)
		http.Error(w, "grid query failed", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = [][]string{}
	}
	writeGridPage(w, gridPage{Columns: columns, Rows: rows, Total: len(rows)})
}

// gridOrderColumns lists the order_by values a grid accepts: every column
// ascending and descending, with id always available.
func gridOrderColumns(columns []string) []string {
	allowed := make([]string, 0, 2*len(columns)+2)
	allowed = append(allowed, "id", "-id")
	for _, column := range columns {
		if column == "id" {
			continue
		}
		allowed = append(allowed, column, "-"+column)
	}
	return allowed
}

func writeGridPage(w http.ResponseWriter, page gridPage) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(page); err != nil {
		log.Printf("site: encode grid response: %v", err)
	}
}
