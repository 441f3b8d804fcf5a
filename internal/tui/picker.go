// Package tui provides terminal user interface components for portman
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/portman/internal/registry"
)

// Action is what the user chose to do with the selected project.
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionDelete
	ActionUnlink
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action  Action
	Project registry.NamedProject
}

type projectItem struct {
	project registry.NamedProject
}

func (i projectItem) Title() string       { return i.project.Name }
func (i projectItem) FilterValue() string { return i.project.Name }

// Description summarizes the ports and directory, e.g. ":3001 | linked :3000 | ~/code/web".
func (i projectItem) Description() string {
	p := i.project
	parts := []string{fmt.Sprintf(":%d", p.Port)}
	if p.LinkedPort != 0 {
		parts = append(parts, fmt.Sprintf("linked :%d", p.LinkedPort))
	}
	if p.Directory != "" {
		parts = append(parts, truncatePath(p.Directory, 30))
	}
	return strings.Join(parts, " | ")
}

// truncatePath keeps the tail of path within maxLen characters.
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// URL returns the address Caddy serves the project at.
func URL(name string) string {
	return fmt.Sprintf("https://%s.localhost", name)
}

type keyMap struct {
	Select key.Binding
	Delete key.Binding
	Unlink key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Select")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Delete")),
	Unlink: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "Unlink")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "Quit")),
}

func (k keyMap) helpLine() string {
	filter := key.NewBinding(key.WithHelp("/", "Filter"))
	var parts []string
	for _, b := range []key.Binding{k.Select, k.Delete, k.Unlink, filter, k.Quit} {
		parts = append(parts, fmt.Sprintf("[%s] %s", b.Help().Key, b.Help().Desc))
	}
	return strings.Join(parts, "  ")
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the project picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a picker over projects grouped by parent directory.
func NewPicker(projects []registry.NamedProject) Model {
	l := list.New(buildGroupedItems(projects), newGroupedDelegate(), 80, 20)
	l.Title = "portman - Select Project"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	skipHeaders(&l, 1)
	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.list.SetSize(size.Width, size.Height-4)
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(keyMsg, keys.Select):
			return m.finish(ActionSelect)
		case key.Matches(keyMsg, keys.Delete):
			return m.finish(ActionDelete)
		case key.Matches(keyMsg, keys.Unlink):
			if item, ok := m.list.SelectedItem().(projectItem); ok && item.project.LinkedPort != 0 {
				return m.finish(ActionUnlink)
			}
		case key.Matches(keyMsg, keys.Quit):
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if isKey && isHeaderSelected(&m.list) {
		skipHeaders(&m.list, navigationDirection(keyMsg))
	}
	return m, cmd
}

// finish records action for the selected project and exits.
func (m Model) finish(action Action) (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(projectItem)
	if !ok {
		return m, nil
	}
	m.result = PickerResult{Action: action, Project: item.project}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View() + "\n" + helpStyle.Render(keys.helpLine())
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive picker. It returns ActionNone without
// starting the UI when there are no projects.
func RunPicker(projects []registry.NamedProject) (PickerResult, error) {
	if len(projects) == 0 {
		return PickerResult{Action: ActionNone}, nil
	}

	final, err := tea.NewProgram(NewPicker(projects), tea.WithAltScreen()).Run()
	if err != nil {
		return PickerResult{}, err
	}
	return final.(Model).Result(), nil
}

// SimplePicker renders a plain listing for non-interactive output.
func SimplePicker(projects []registry.NamedProject) string {
	var sb strings.Builder

	sb.WriteString("portman - Projects\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(projects) == 0 {
		sb.WriteString("No projects found.\nCreate one with: portman create\n")
		return sb.String()
	}

	for i, p := range projects {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, p.Name, URL(p.Name))
		fmt.Fprintf(&sb, "   Port: %d", p.Port)
		if p.LinkedPort != 0 {
			fmt.Fprintf(&sb, " | Linked: %d", p.LinkedPort)
		}
		if p.Directory != "" {
			sb.WriteString(" | Directory: " + truncatePath(p.Directory, 40))
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}
