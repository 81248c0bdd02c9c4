// Package viz is the terminal front end of the pendulum chain.
//
// The chain is drawn on a braille [Canvas] (2×4 dots per cell) next to a
// lipgloss side panel carrying the same controls as the desktop window.
// [Run] starts the bubbletea program and blocks until the user quits.
package viz
