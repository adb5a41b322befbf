// Package i18n provides localization helpers for the console UI.
//
// It decouples interface text from handler logic so console screens can
// evolve language by language without changing route behavior.
package i18n
