package tui

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/portman/internal/registry"
)

// noDirectoryGroup labels projects that are not activated by a directory.
const noDirectoryGroup = "(no directory)"

// headerItem is a non-selectable group separator in the picker list.
type headerItem struct {
	label string
}

func (h headerItem) FilterValue() string { return "" }
func (h headerItem) Title() string       { return h.label }
func (h headerItem) Description() string { return "" }

func isHeader(item list.Item) bool {
	_, ok := item.(headerItem)
	return ok
}

// groupKey returns the grouping key for a project: the parent of its directory.
func groupKey(p registry.NamedProject) string {
	if p.Directory == "" {
		return noDirectoryGroup
	}
	return filepath.Dir(p.Directory)
}

// compareGroupKeys orders groups by path with undirected projects last.
func compareGroupKeys(a, b string) int {
	aLoose, bLoose := a == noDirectoryGroup, b == noDirectoryGroup
	switch {
	case aLoose && !bLoose:
		return 1
	case bLoose && !aLoose:
		return -1
	}
	return cmp.Compare(a, b)
}

// buildGroupedItems groups projects by parent directory and returns list
// items with headerItem separators.
func buildGroupedItems(projects []registry.NamedProject) []list.Item {
	if len(projects) == 0 {
		return nil
	}

	groups := make(map[string][]registry.NamedProject)
	for _, p := range projects {
		key := groupKey(p)
		groups[key] = append(groups[key], p)
	}
	keys := slices.SortedFunc(maps.Keys(groups), compareGroupKeys)

	items := make([]list.Item, 0, len(projects)+len(keys))
	for _, key := range keys {
		items = append(items, headerItem{label: shortenGroupKey(key)})
		for _, p := range groups[key] {
			items = append(items, projectItem{project: p})
		}
	}
	return items
}

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("241")).
	PaddingLeft(2)

// groupedDelegate renders headers itself and delegates projects to the
// default list delegate.
type groupedDelegate struct {
	list.DefaultDelegate
}

func newGroupedDelegate() groupedDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = selectedStyle
	d.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return groupedDelegate{DefaultDelegate: d}
}

func (d groupedDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d groupedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if h, ok := item.(headerItem); ok {
		fmt.Fprint(w, headerStyle.Render(h.label))
		return
	}
	d.DefaultDelegate.Render(w, m, index, item)
}

// skipHeaders moves the cursor off a header to the nearest project, looking
// in direction (1 down, -1 up) before the opposite one.
func skipHeaders(l *list.Model, direction int) {
	items := l.Items()
	idx := l.Index()
	if idx < 0 || idx >= len(items) || !isHeader(items[idx]) {
		return
	}

	for _, step := range []int{direction, -direction} {
		for i := idx + step; i >= 0 && i < len(items); i += step {
			if !isHeader(items[i]) {
				l.Select(i)
				return
			}
		}
	}
}

func isHeaderSelected(l *list.Model) bool {
	return isHeader(l.SelectedItem())
}

// navigationDirection returns -1 for keys that move the cursor up.
func navigationDirection(msg tea.KeyMsg) int {
	switch msg.String() {
	case "up", "k", "pgup", "home", "g":
		return -1
	}
	return 1
}

// shortenGroupKey keeps the last two components of an absolute path.
func shortenGroupKey(path string) string {
	dir := filepath.Dir(path)
	if !filepath.IsAbs(path) || dir == "/" || dir == path {
		return path
	}
	return filepath.Join(filepath.Base(dir), filepath.Base(path))
}
