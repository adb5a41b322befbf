package routepath

import (
	"net/url"
	"strings"
)

const (
	Root = "/"
)

const (
	StaticPrefix = "/static/"
)

const (
	MiddlewareToken = "/middleware_token/"
	Help            = "/help/"
	MenuJSON        = "/menu.json/"
)

const (
	Alert        = "/alert/"
	AlertStatus  = "/alert/status/"
	AlertDismiss = "/alert/dismiss/"
	AlertRestore = "/alert/restore/"
)

const (
	AccountLogout = "/account/logout/"
	Language      = "/lang/"
)

// ModelPrefix returns the route prefix owning a registered model's admin
// pages, e.g. /system/settings/.
func ModelPrefix(appLabel string, moduleName string) string {
	return "/" + escapeSegment(appLabel) + "/" + escapeSegment(moduleName) + "/"
}

// ModelGrid returns the datagrid rows endpoint under a model prefix.
func ModelGrid(appLabel string, moduleName string) string {
	return ModelPrefix(appLabel, moduleName) + "grid/"
}

// StaticAsset returns a static asset path carrying a cache-busting tag.
func StaticAsset(name string, cacheHash string) string {
	path := StaticPrefix + strings.TrimPrefix(strings.TrimSpace(name), "/")
	if cacheHash == "" {
		return path
	}
	return path + "?v=" + url.QueryEscape(cacheHash)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
