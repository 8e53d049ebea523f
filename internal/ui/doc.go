// Package ui holds the color themes shared by the report table, the
// progress spinner and the TUI dashboard. Themes are global and switched
// once at startup by InitTheme.
package ui
