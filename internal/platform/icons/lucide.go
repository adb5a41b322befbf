package icons

const lucideSymbolPrefix = "lucide-"

var lucideIconNames = map[ID]string{
	IDGeneric:   "sparkle",
	IDDashboard: "gauge",
	IDSystem:    "server",
	IDNetwork:   "network",
	IDSettings:  "settings",
	IDAdvanced:  "wrench",
	IDStorage:   "database",
	IDAlert:     "triangle-alert",
	IDHelp:      "circle-help",
	IDUser:      "circle-user",
	IDLogOut:    "log-out",
	IDWizard:    "wand-sparkles",
	IDGrid:      "table",
}

// LucideName returns the Lucide icon name for a core icon identifier.
func LucideName(id ID) (string, bool) {
	name, ok := lucideIconNames[id]
	return name, ok
}

// LucideNameOrDefault provides a stable Lucide name even when the icon ID is unknown.
func LucideNameOrDefault(id ID) string {
	if name, ok := lucideIconNames[id]; ok {
		return name
	}
	return "sparkle"
}

// LucideSymbolID returns the sprite symbol ID for a Lucide icon name.
func LucideSymbolID(name string) string {
	return lucideSymbolPrefix + name
}

// LucideSprite returns the SVG sprite markup for core Lucide icons.
func LucideSprite() string {
	return lucideSprite
}
