// Package icons names the icons console surfaces refer to.
//
// Menu builders and handlers traffic in stable icon ids from the
// catalog; the web layer maps each id onto a sprite at render time.
// Keeping that mapping here lets the theme change without touching
// handler code.
package icons
