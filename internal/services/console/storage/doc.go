// Package storage defines persistence contracts for the console's appliance
// state.
//
// Console code uses these interfaces to keep view handlers testable and avoid
// depending on a concrete SQLite schema from presentation logic.
package storage
