package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const helpKeyWidth = 10

// helpSection groups bindings under a heading in the help overlay.
type helpSection struct {
	title    string
	bindings []key.Binding
}

func (k keyMap) helpSections() []helpSection {
	return []helpSection{
		{"Navigation", []key.Binding{k.Tab, k.Up, k.Down, k.Top, k.Bottom, k.Escape}},
		{"Photos", []key.Binding{k.Preview, k.Favorite, k.Rename, k.Edit, k.AddToAlbum, k.Delete, k.Upload, k.Search}},
		{"Albums", []key.Binding{k.NewAlbum, k.RenameAlbum, k.DeleteAlbum}},
		{"Filter editor", []key.Binding{k.Left, k.Right, k.Undo, k.Reset, k.Commit}},
		{"General", []key.Binding{k.DarkMode, k.CycleTheme, k.Logs, k.Help, k.Quit}},
	}
}

// renderHelp renders the help overlay with sections split over two columns.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(helpKeyWidth)

	renderSection := func(s helpSection) string {
		lines := []string{styles.AccentText.Bold(true).Render(s.title)}
		for _, b := range s.bindings {
			h := b.Help()
			lines = append(lines, keyStyle.Render(h.Key)+styles.Text.Render(h.Desc))
		}
		return strings.Join(lines, "\n")
	}

	sections := m.keys.helpSections()
	var left, right []string
	for i, s := range sections {
		if i < 2 {
			left = append(left, renderSection(s))
		} else {
			right = append(right, renderSection(s))
		}
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(30).Render(strings.Join(left, "\n\n")),
		strings.Join(right, "\n\n"),
	)

	content := styles.Text.Bold(true).Render("Keyboard Shortcuts") + "\n" +
		styles.FaintText.Render(strings.Repeat("─", 56)) + "\n\n" +
		columns + "\n\n" +
		styles.FaintText.Render("press any key to close")
	return renderOverlay(m.theme, m.width, m.height, content, 64, m.theme.Accent)
}
