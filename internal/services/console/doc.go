// Package console implements the appliance's web management interface.
//
// Data models register with the site registry at startup; every registered
// model gets its management pages mounted under /<app-label>/<module-name>/.
// The package also serves the site-wide utility views (dashboard, menu tree,
// alert pages, middleware tokens, help) and gates everything behind operator
// session introspection.
package console
