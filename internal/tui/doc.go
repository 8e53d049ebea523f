// Package tui implements the --tui live dashboard: one row per
// (strategy, backend) combination filled in as the sweep runs, an overall
// progress bar, and host CPU/memory sparklines.
package tui
