// Package navtree builds the navigation tree served to the console shell.
// Registered model admins are grouped by app, sorted, and serialized as the
// nested node structure the tree widget consumes.
package navtree

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/brinedeck/wardroom/internal/platform/branding"
	"github.com/brinedeck/wardroom/internal/services/console/site"
)

// Node is one entry in the navigation tree.
type Node struct {
	ID       string  `json:"id"`
	Label    string  `json:"name"`
	Icon     string  `json:"icon,omitempty"`
	URL      string  `json:"url,omitempty"`
	Type     string  `json:"type"`
	Children []*Node `json:"children,omitempty"`
}

const (
	nodeTypeRoot = "root"
	nodeTypeApp  = "app"
	nodeTypeView = "view"
)

var titleCaser = cases.Title(language.English)

// MenuEntry is an extra top-level menu item contributed outside the
// registry, typically by a console plugin.
type MenuEntry struct {
	Label string
	URL   string
	Icon  string
}

// Generate assembles the tree for the current registry contents: one app
// node per app label, one leaf per visible handler. Handlers marked
// MenuHidden are skipped. Two handlers claiming the same URL prefix are a
// wiring bug and fail generation. Extras are appended after the app nodes
// in the order given.
func Generate(s *site.Site, extras ...MenuEntry) (*Node, error) {
	root := &Node{
		ID:    "root",
		Label: branding.AppName,
		Type:  nodeTypeRoot,
	}
	if s == nil {
		appendExtras(root, extras)
		return root, nil
	}

	apps := make(map[string][]*site.ModelAdmin)
	seen := make(map[string]string)
	for _, admin := range s.Entries() {
		if admin.MenuHidden() {
			continue
		}
		prefix := admin.Prefix()
		if owner, dup := seen[prefix]; dup {
			return nil, fmt.Errorf("navtree: %s and %s both claim %s", owner, admin.Name(), prefix)
		}
		seen[prefix] = admin.Name()
		apps[admin.AppLabel()] = append(apps[admin.AppLabel()], admin)
	}

	labels := make([]string, 0, len(apps))
	for label := range apps {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		admins := apps[label]
		sort.Slice(admins, func(i, j int) bool {
			return admins[i].VerboseName() < admins[j].VerboseName()
		})

		appNode := &Node{
			ID:    label,
			Label: titleCaser.String(label),
			Type:  nodeTypeApp,
		}
		for _, admin := range admins {
			appNode.Children = append(appNode.Children, &Node{
				ID:    label + "_" + admin.ModuleName(),
				Label: admin.VerboseName(),
				Icon:  admin.Icon(),
				URL:   admin.Prefix(),
				Type:  nodeTypeView,
			})
		}
		root.Children = append(root.Children, appNode)
	}
	appendExtras(root, extras)
	return root, nil
}

func appendExtras(root *Node, extras []MenuEntry) {
	for i, extra := range extras {
		root.Children = append(root.Children, &Node{
			ID:    fmt.Sprintf("extra_%d", i),
			Label: extra.Label,
			Icon:  extra.Icon,
			URL:   extra.URL,
			Type:  nodeTypeView,
		})
	}
}
