// Package hooks lets optional appliance plugins extend the console: a plugin
// can take over the dashboard, contribute stylesheets and scripts, or add
// top-menu entries. Capabilities are discovered by interface assertion, so a
// plugin implements only what it needs.
package hooks

import (
	"net/http"
	"sync"
)

// Plugin is the base contract every registered plugin satisfies.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string
}

// IndexOverrider lets a plugin replace the dashboard response.
type IndexOverrider interface {
	// OverrideIndex writes a full response and reports true, or reports
	// false to let the default dashboard render.
	OverrideIndex(w http.ResponseWriter, r *http.Request) bool
}

// StylesheetProvider contributes extra stylesheet URLs to every page.
type StylesheetProvider interface {
	Stylesheets() []string
}

// ScriptProvider contributes extra script URLs to every page.
type ScriptProvider interface {
	Scripts() []string
}

// MenuEntry is a plugin-contributed top menu item.
type MenuEntry struct {
	Label string
	URL   string
	Icon  string
}

// MenuProvider contributes entries to the top menu.
type MenuProvider interface {
	TopMenu() []MenuEntry
}

// Pool holds the plugins registered during startup wiring. Reads during
// request handling take the read lock only.
type Pool struct {
	mu      sync.RWMutex
	plugins []Plugin
}

// NewPool returns an empty plugin pool.
func NewPool() *Pool {
	return &Pool{}
}

// Register appends a plugin. Nil plugins are ignored.
func (p *Pool) Register(plugin Plugin) {
	if plugin == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plugins = append(p.plugins, plugin)
}

// OverrideIndex offers the request to each index-overriding plugin in
// registration order. The first plugin that writes a response wins.
func (p *Pool) OverrideIndex(w http.ResponseWriter, r *http.Request) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, plugin := range p.plugins {
		overrider, ok := plugin.(IndexOverrider)
		if !ok {
			continue
		}
		if overrider.OverrideIndex(w, r) {
			return true
		}
	}
	return false
}

// Stylesheets collects plugin stylesheet URLs in registration order.
func (p *Pool) Stylesheets() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var urls []string
	for _, plugin := range p.plugins {
		provider, ok := plugin.(StylesheetProvider)
		if !ok {
			continue
		}
		urls = append(urls, provider.Stylesheets()...)
	}
	return urls
}

// Scripts collects plugin script URLs in registration order.
func (p *Pool) Scripts() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var urls []string
	for _, plugin := range p.plugins {
		provider, ok := plugin.(ScriptProvider)
		if !ok {
			continue
		}
		urls = append(urls, provider.Scripts()...)
	}
	return urls
}

// TopMenu collects plugin menu entries in registration order.
func (p *Pool) TopMenu() []MenuEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var entries []MenuEntry
	for _, plugin := range p.plugins {
		provider, ok := plugin.(MenuProvider)
		if !ok {
			continue
		}
		entries = append(entries, provider.TopMenu()...)
	}
	return entries
}
