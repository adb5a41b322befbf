package console

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/brinedeck/wardroom/internal/platform/branding"
	platformerrors "github.com/brinedeck/wardroom/internal/platform/errors"
	errcatalog "github.com/brinedeck/wardroom/internal/platform/errors/i18n"
	"github.com/brinedeck/wardroom/internal/platform/requestctx"
	"github.com/brinedeck/wardroom/internal/services/console/alerts"
	"github.com/brinedeck/wardroom/internal/services/console/hooks"
	"github.com/brinedeck/wardroom/internal/services/console/i18n"
	"github.com/brinedeck/wardroom/internal/services/console/navtree"
	"github.com/brinedeck/wardroom/internal/services/console/routepath"
	"github.com/brinedeck/wardroom/internal/services/console/site"
	"github.com/brinedeck/wardroom/internal/services/console/storage"
	"github.com/brinedeck/wardroom/internal/services/console/templates"
	"github.com/brinedeck/wardroom/internal/services/shared/htmx"
	"github.com/brinedeck/wardroom/internal/services/shared/route"
	sharedtemplates "github.com/brinedeck/wardroom/internal/services/shared/templates"
)

// TokenGenerator mints middleware tokens for the browser session.
type TokenGenerator interface {
	GenerateToken(ctx context.Context, userID string) (string, error)
}

// Handler routes console requests: the utility views plus one mount per
// registered model admin.
type Handler struct {
	site         *site.Site
	store        storage.Store
	hooks        *hooks.Pool
	alerts       *alerts.Service
	tokens       TokenGenerator
	introspector TokenIntrospector
	loginURL     string
	helpLinks    []templates.HelpLink
}

// HandlerConfig wires the console handler's collaborators. Site is the only
// required field; everything else degrades to a reduced console.
type HandlerConfig struct {
	Site   *site.Site
	Store  storage.Store
	Hooks  *hooks.Pool
	Alerts *alerts.Service
	Tokens TokenGenerator
	// Auth enables session introspection on every route. A nil Auth leaves
	// the console open, which is only acceptable behind the local console
	// socket.
	Auth      *AuthConfig
	HelpLinks []templates.HelpLink
}

// NewHandler builds the console HTTP handler with its middleware chain.
func NewHandler(cfg HandlerConfig) http.Handler {
	h := &Handler{
		site:      cfg.Site,
		store:     cfg.Store,
		hooks:     cfg.Hooks,
		alerts:    cfg.Alerts,
		tokens:    cfg.Tokens,
		helpLinks: cfg.HelpLinks,
	}
	if h.site == nil {
		h.site = site.New()
	}
	if h.hooks == nil {
		h.hooks = hooks.NewPool()
	}
	if cfg.Auth != nil {
		h.introspector = newHTTPIntrospector(cfg.Auth.IntrospectURL, cfg.Auth.ResourceSecret)
		h.loginURL = cfg.Auth.LoginURL
	} else {
		log.Printf("console auth disabled: no introspection endpoint configured")
	}
	return h.routes()
}

// routes builds the console URL table. Utility views mount first, then one
// subtree per registered model admin. Every entry passes through wrap.
func (h *Handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(routepath.Root, h.wrap(http.HandlerFunc(h.handleDashboard), viewOptions{}))
	mux.Handle(routepath.MiddlewareToken, h.wrap(http.HandlerFunc(h.handleMiddlewareToken), viewOptions{}))
	mux.Handle(routepath.Help, h.wrap(http.HandlerFunc(h.handleHelp), viewOptions{cacheable: true}))
	mux.Handle(routepath.MenuJSON, h.wrap(http.HandlerFunc(h.handleMenuJSON), viewOptions{}))
	mux.Handle(routepath.AlertStatus, h.wrap(http.HandlerFunc(h.handleAlertStatus), viewOptions{}))
	mux.Handle(routepath.Alert, h.wrap(http.HandlerFunc(h.handleAlertPage), viewOptions{}))
	mux.Handle(routepath.AlertDismiss, h.wrap(http.HandlerFunc(h.handleAlertDismiss), viewOptions{}))
	mux.Handle(routepath.AlertRestore, h.wrap(http.HandlerFunc(h.handleAlertRestore), viewOptions{}))
	mux.Handle(routepath.AccountLogout, h.wrap(http.HandlerFunc(h.handleLogout), viewOptions{}))
	mux.Handle(routepath.Language, h.wrap(http.HandlerFunc(h.handleLanguage), viewOptions{csrfExempt: true}))
	for _, admin := range h.site.Entries() {
		mux.Handle(admin.Prefix(), h.wrap(admin.Handler(h.renderModelIndex), viewOptions{
			cacheable:  admin.Cacheable(),
			csrfExempt: admin.CSRFExempt(),
		}))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAuthExempt(r.URL.Path) && route.EnsureTrailingSlash(w, r) {
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), tag.String()
}

func (h *Handler) pageContext(lang string, loc *message.Printer, r *http.Request) templates.PageContext {
	return templates.PageContext{
		Lang:         lang,
		Loc:          loc,
		CurrentPath:  r.URL.Path,
		CurrentQuery: r.URL.RawQuery,
	}
}

// renderPage draws a page body inside the shared chrome, answering HTMX
// navigations with the main fragment only.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, page templates.PageContext, title string, alertLevel string, body templ.Component) {
	full := sharedtemplates.ChromeLayout(sharedtemplates.ChromeLayoutOptions{
		Title:        title,
		Lang:         page.Lang,
		AppName:      branding.AppName,
		Loc:          page.Loc,
		Breadcrumbs:  sharedtemplates.BuildPathBreadcrumbs(r.URL.Path, page.Loc),
		UserName:     requestctx.UsernameFromContext(r.Context()),
		LogoutURL:    routepath.AccountLogout,
		HelpURL:      routepath.Help,
		AlertsURL:    routepath.Alert,
		AlertLevel:   alertLevel,
		Languages:    sharedtemplates.LanguageOptions(i18n.Supported(), page.Lang, page.Loc),
		CurrentPath:  page.CurrentPath,
		CurrentQuery: page.CurrentQuery,
		CacheTag:     branding.CacheHash(),
		Stylesheets:  h.hooks.Stylesheets(),
		Scripts:      h.hooks.Scripts(),
		Body:         body,
	})
	htmx.RenderPage(w, r, full, sharedtemplates.ComposePageTitle(title))
}

// handleDashboard renders the landing page. A hook plugin may take over the
// whole response; otherwise the system summary renders with every lookup
// falling back to its zero value on failure.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routepath.Root {
		http.NotFound(w, r)
		return
	}
	if h.hooks.OverrideIndex(w, r) {
		return
	}

	loc, lang := h.localizer(w, r)
	page := h.pageContext(lang, loc, r)
	ctx := r.Context()

	view := templates.DashboardView{Version: branding.Version()}
	if h.alerts != nil {
		view.Node = h.alerts.Node()
	}
	if h.store != nil {
		if advanced, err := h.store.LatestAdvanced(ctx); err != nil {
			log.Printf("console dashboard advanced lookup: %v", err)
		} else {
			view.ShowConsoleWarning = advanced.ConsoleMsg
		}
		if gc, err := h.store.LatestGlobalConfiguration(ctx); err != nil {
			log.Printf("console dashboard hostname lookup: %v", err)
		} else {
			view.Hostname = gc.Hostname
		}
		if settings, err := h.store.LatestSettings(ctx); err != nil {
			log.Printf("console dashboard settings lookup: %v", err)
		} else if !settings.WizardShown {
			view.ShowWizardPrompt = true
			view.WizardURL = routepath.ModelPrefix("system", "settings")
			if err := h.store.MarkWizardShown(ctx); err != nil {
				log.Printf("console mark wizard shown: %v", err)
			}
		}
	}

	alertLevel := ""
	if h.alerts != nil {
		if current, err := h.alerts.Current(ctx); err != nil {
			log.Printf("console dashboard alerts lookup: %v", err)
		} else {
			for _, alert := range current {
				if !alert.Dismissed {
					view.AlertCount++
				}
			}
			view.AlertLevel = alerts.Worst(current).String()
			view.AlertsURL = routepath.Alert
			if view.AlertCount > 0 {
				alertLevel = view.AlertLevel
			}
		}
	}

	h.renderPage(w, r, page, templates.T(loc, "dashboard.title"), alertLevel, templates.Dashboard(page, view))
}

// tokenResponse is the middleware token payload.
type tokenResponse struct {
	Token string `json:"token"`
}

// handleMiddlewareToken asks the control plane for a fresh middleware token
// and returns it as JSON. Failures are request failures, never retried.
func (h *Handler) handleMiddlewareToken(w http.ResponseWriter, r *http.Request) {
	if h.tokens == nil {
		http.Error(w, "token service unavailable", http.StatusInternalServerError)
		return
	}
	token, err := h.tokens.GenerateToken(r.Context(), requestctx.UserIDFromContext(r.Context()))
	if err != nil {
		log.Printf("console middleware token: %v", err)
		http.Error(w, localizedErrorMessage(r, err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tokenResponse{Token: token}); err != nil {
		log.Printf("console encode middleware token: %v", err)
	}
}

// localizedErrorMessage resolves an operator-facing message in the viewer's
// locale, keyed by the structured code carried on control-plane errors.
func localizedErrorMessage(r *http.Request, err error) string {
	tag, _ := i18n.ResolveTag(r)
	catalog := errcatalog.GetCatalog(tag.String())

	var coded *platformerrors.Error
	if errors.As(err, &coded) {
		return catalog.Format(string(coded.Code), coded.Metadata)
	}
	return catalog.Format(errcatalog.CodeUnknown, nil)
}

// handleHelp renders the static help page.
func (h *Handler) handleHelp(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	page := h.pageContext(lang, loc, r)
	h.renderPage(w, r, page, templates.T(loc, "help.title"), "", templates.Help(page, h.helpLinks))
}

// handleMenuJSON serves the navigation tree consumed by the shell's menu
// widget. Generation failures degrade to an empty 200 body so the shell
// renders without a menu instead of erroring.
func (h *Handler) handleMenuJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	topMenu := h.hooks.TopMenu()
	extras := make([]navtree.MenuEntry, 0, len(topMenu))
	for _, entry := range topMenu {
		extras = append(extras, navtree.MenuEntry{Label: entry.Label, URL: entry.URL, Icon: entry.Icon})
	}

	root, err := navtree.Generate(h.site, extras...)
	if err != nil {
		log.Printf("console menu generation failed: %v", err)
		return
	}
	if err := json.NewEncoder(w).Encode(root); err != nil {
		log.Printf("console encode menu: %v", err)
	}
}

// handleAlertStatus reports the worst non-dismissed alert level as plain
// text for the shell's status light.
func (h *Handler) handleAlertStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if h.alerts == nil {
		_, _ = w.Write([]byte(alerts.LevelOK.String()))
		return
	}
	level, err := h.alerts.Status(r.Context())
	if err != nil {
		log.Printf("console alert status: %v", err)
		http.Error(w, "alert status check failed", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(level.String()))
}

// handleAlertPage renders the alert listing, or one alert's detail when the
// id query parameter names it.
func (h *Handler) handleAlertPage(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	page := h.pageContext(lang, loc, r)
	title := templates.T(loc, "alerts.title")

	var current []alerts.Alert
	if h.alerts != nil {
		var err error
		current, err = h.alerts.Current(r.Context())
		if err != nil {
			log.Printf("console alert page: %v", err)
			http.Error(w, "alert lookup failed", http.StatusInternalServerError)
			return
		}
	}

	rows := make([]templates.AlertRow, 0, len(current))
	for _, alert := range current {
		rows = append(rows, templates.AlertRow{
			Level:     alert.Level.String(),
			MessageID: alert.MessageID,
			Message:   alert.Message,
			Dismissed: alert.Dismissed,
		})
	}
	actions := templates.AlertActions{
		DismissURL: routepath.AlertDismiss,
		RestoreURL: routepath.AlertRestore,
	}
	level := alerts.Worst(current)
	alertLevel := ""
	if level > alerts.LevelOK {
		alertLevel = level.String()
	}

	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		for _, row := range rows {
			if row.MessageID == id {
				h.renderPage(w, r, page, title, alertLevel, templates.AlertDetail(page, row, actions, routepath.Alert))
				return
			}
		}
		http.NotFound(w, r)
		return
	}

	h.renderPage(w, r, page, title, alertLevel, templates.AlertsPage(page, rows, actions))
}

// handleAlertDismiss records a dismissal for the posted message id.
func (h *Handler) handleAlertDismiss(w http.ResponseWriter, r *http.Request) {
	h.handleAlertAction(w, r, func(ctx context.Context, messageID string) error {
		return h.alerts.Dismiss(ctx, messageID)
	})
}

// handleAlertRestore lifts a dismissal for the posted message id.
func (h *Handler) handleAlertRestore(w http.ResponseWriter, r *http.Request) {
	h.handleAlertAction(w, r, func(ctx context.Context, messageID string) error {
		return h.alerts.Restore(ctx, messageID)
	})
}

func (h *Handler) handleAlertAction(w http.ResponseWriter, r *http.Request, action func(context.Context, string) error) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.alerts == nil {
		http.Error(w, "alerts are not configured", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	messageID := strings.TrimSpace(r.FormValue("message_id"))
	if messageID == "" {
		http.Error(w, "message_id is required", http.StatusBadRequest)
		return
	}
	if err := action(r.Context(), messageID); err != nil {
		log.Printf("console alert action for %s: %v", messageID, err)
		http.Error(w, "alert update failed", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, routepath.Alert, http.StatusSeeOther)
}

// handleLogout clears the session cookie and hands the operator back to the
// login page.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	clearSessionCookie(w, r)
	target := h.loginURL
	if target == "" {
		target = routepath.Root
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleLanguage persists a language choice and bounces back to the page
// that offered the switch. Only same-site targets are honored.
func (h *Handler) handleLanguage(w http.ResponseWriter, r *http.Request) {
	tag := i18n.NormalizeTag(r.URL.Query().Get(i18n.LangParam))
	i18n.SetLanguageCookie(w, tag)

	next := r.URL.Query().Get("next")
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = routepath.Root
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// renderModelIndex draws the default datagrid page for a registered model.
// Admins with a Config.Render override never reach this.
func (h *Handler) renderModelIndex(w http.ResponseWriter, r *http.Request, admin *site.ModelAdmin) {
	loc, lang := h.localizer(w, r)
	page := h.pageContext(lang, loc, r)
	view := templates.DataGridView{
		Title:          admin.VerboseName(),
		GridURL:        routepath.ModelGrid(admin.AppLabel(), admin.ModuleName()),
		Columns:        admin.Columns(),
		RefreshSeconds: admin.RefreshSeconds(),
	}
	h.renderPage(w, r, page, admin.VerboseName(), "", templates.DataGrid(page, view))
}
