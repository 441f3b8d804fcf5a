// Package tui provides terminal user interface components for portman.
//
// This package uses the Bubble Tea framework for the interactive project
// picker behind `portman pick`.
//
// # Project Picker
//
// The picker lists projects grouped by the parent of their directory:
//
//	result, err := tui.RunPicker(reg.Projects())
//	switch result.Action {
//	case tui.ActionSelect:
//	    // Print result.Project's port and URL
//	case tui.ActionDelete:
//	    // Delete result.Project
//	case tui.ActionUnlink:
//	    // Unlink result.Project's linked port
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// When stdout is not a terminal, SimplePicker renders a plain listing instead.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
