// Package ui renders the non-interactive output of the cupcraft CLI.
//
// The wizard itself lives in internal/wizard/tui. This package covers the
// commands that print and exit: the catalog menu, price quotes, counter
// scans and order results. Output is styled with Lip Gloss and sized to the
// terminal via golang.org/x/term, falling back to MinTerminalWidth when
// stdout is not a terminal.
//
// # Components
//
//   - Header: command banner with title and parameters
//   - Result: success, failure or warning box with ordered details
//   - RenderMenu: the full catalog grouped by section
//
// Example:
//
//	fmt.Println(ui.RenderCommandHeader(ui.HeaderConfig{
//	    Title:   "Quote",
//	    Command: "cupcraft quote",
//	    Params:  []ui.Detail{{Key: "Bean", Value: "Arabica"}},
//	}))
package ui
