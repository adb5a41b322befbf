// Package sqlite provides SQLite-backed console persistence.
//
// It stores appliance configuration and alert dismissals only; control-plane
// state lives with the core daemon so the console cannot bypass its rules.
package sqlite
