// Package system holds the appliance's system-level configuration models.
// Rows are append-only; the newest row by id is the active configuration.
package system

// Settings is the general system configuration.
type Settings struct {
	ID          int64
	Language    string
	Timezone    string
	WizardShown bool
}

// Advanced is the advanced system configuration.
type Advanced struct {
	ID            int64
	ConsoleMsg    bool
	SerialConsole bool
}
