package icons

import "strings"

// ID identifies a core icon independent of how clients render it.
type ID string

const (
	// IDUnspecified is the zero value and never appears in the catalog.
	IDUnspecified ID = ""
	// IDGeneric is the default icon for uncategorized entries.
	IDGeneric ID = "generic"
	// IDDashboard marks the console landing page.
	IDDashboard ID = "dashboard"
	// IDSystem marks system configuration areas.
	IDSystem ID = "system"
	// IDNetwork marks network configuration areas.
	IDNetwork ID = "network"
	// IDSettings marks general settings screens.
	IDSettings ID = "settings"
	// IDAdvanced marks advanced configuration screens.
	IDAdvanced ID = "advanced"
	// IDStorage marks storage and dataset areas.
	IDStorage ID = "storage"
	// IDAlert marks alert listings and badges.
	IDAlert ID = "alert"
	// IDHelp marks help and documentation surfaces.
	IDHelp ID = "help"
	// IDUser marks the signed-in operator.
	IDUser ID = "user"
	// IDLogOut marks sign-out actions.
	IDLogOut ID = "log-out"
	// IDWizard marks the initial setup wizard.
	IDWizard ID = "wizard"
	// IDGrid marks tabular data views.
	IDGrid ID = "grid"
)

// Definition describes a core icon entry.
type Definition struct {
	ID          ID
	Name        string
	Description string
}

var catalog = []Definition{
	{
		ID:          IDGeneric,
		Name:        "Generic",
		Description: "Default icon for uncategorized entries.",
	},
	{
		ID:          IDDashboard,
		Name:        "Dashboard",
		Description: "Console landing page and status overview.",
	},
	{
		ID:          IDSystem,
		Name:        "System",
		Description: "System configuration areas.",
	},
	{
		ID:          IDNetwork,
		Name:        "Network",
		Description: "Network configuration areas.",
	},
	{
		ID:          IDSettings,
		Name:        "Settings",
		Description: "General settings screens.",
	},
	{
		ID:          IDAdvanced,
		Name:        "Advanced",
		Description: "Advanced configuration screens.",
	},
	{
		ID:          IDStorage,
		Name:        "Storage",
		Description: "Storage and dataset areas.",
	},
	{
		ID:          IDAlert,
		Name:        "Alert",
		Description: "Alert listings and status badges.",
	},
	{
		ID:          IDHelp,
		Name:        "Help",
		Description: "Help and documentation surfaces.",
	},
	{
		ID:          IDUser,
		Name:        "User",
		Description: "The signed-in operator.",
	},
	{
		ID:          IDLogOut,
		Name:        "Log Out",
		Description: "Sign-out actions.",
	},
	{
		ID:          IDWizard,
		Name:        "Wizard",
		Description: "Initial setup wizard.",
	},
	{
		ID:          IDGrid,
		Name:        "Grid",
		Description: "Tabular data views.",
	},
}

// Catalog returns a copy of the icon catalog definitions.
func Catalog() []Definition {
	result := make([]Definition, len(catalog))
	copy(result, catalog)
	return result
}

// Parse normalizes a raw icon identifier, falling back to IDGeneric for
// unknown values so stored configuration never breaks rendering.
func Parse(raw string) ID {
	id := ID(strings.TrimSpace(strings.ToLower(raw)))
	for _, def := range catalog {
		if def.ID == id {
			return id
		}
	}
	return IDGeneric
}

// CatalogMarkdown renders the icon catalog as markdown.
func CatalogMarkdown() string {
	var builder strings.Builder
	builder.WriteString("# Icon Catalog\n\n")
	builder.WriteString("| Icon ID | Name | Description |\n")
	builder.WriteString("| --- | --- | --- |\n")
	for _, def := range catalog {
		builder.WriteString("| ")
		builder.WriteString(string(def.ID))
		builder.WriteString(" | ")
		builder.WriteString(def.Name)
		builder.WriteString(" | ")
		builder.WriteString(def.Description)
		builder.WriteString(" |\n")
	}
	return builder.String()
}
