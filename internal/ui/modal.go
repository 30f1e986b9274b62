package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// inputModal asks for one line of text.
type inputModal struct {
	title  string
	hint   string
	input  textinput.Model
	submit func(value string) tea.Cmd
}

func newInputModal(title, hint, placeholder, value string, submit func(string) tea.Cmd) *inputModal {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Width = 48
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return &inputModal{title: title, hint: hint, input: ti, submit: submit}
}

func (im *inputModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Escape):
			return im, nil, true
		case key.Matches(msg, keys.Commit):
			return im, im.submit(im.input.Value()), true
		}
	}
	var cmd tea.Cmd
	im.input, cmd = im.input.Update(msg)
	return im, cmd, false
}

func (im *inputModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(im.title))
	b.WriteString("\n\n")
	b.WriteString(im.input.View())
	b.WriteString("\n\n")
	if im.hint != "" {
		b.WriteString(styles.MutedText.Render(im.hint))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("enter confirm · esc cancel"))
	return renderOverlay(theme, width, height, b.String(), 56, theme.BorderFocus)
}

// confirmModal asks a yes/no question before a destructive action.
type confirmModal struct {
	title   string
	body    string
	confirm tea.Cmd
}

func (cm *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return cm, nil, false
	}
	switch msgKey.String() {
	case "y", "Y", "enter":
		return cm, cm.confirm, true
	case "n", "N", "esc", "q":
		return cm, nil, true
	}
	return cm, nil, false
}

func (cm *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.DangerText.Render(cm.title) + "\n\n" +
		styles.Text.Render(cm.body) + "\n\n" +
		styles.FaintText.Render("y confirm · n cancel")
	return renderOverlay(theme, width, height, content, 48, theme.Danger)
}

// alertModal shows a message until any key is pressed.
type alertModal struct {
	title string
	body  string
}

func (am *alertModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	_, ok := msg.(tea.KeyMsg)
	return am, nil, ok
}

func (am *alertModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.DangerText.Render(am.title) + "\n\n" +
		styles.Text.Render(am.body) + "\n\n" +
		styles.FaintText.Render("press any key")
	return renderOverlay(theme, width, height, content, 56, theme.Danger)
}

// pickOption is one row of a pickerModal.
type pickOption struct {
	id    string
	label string
}

// pickerModal chooses one option from a list.
type pickerModal struct {
	title   string
	options []pickOption
	index   int
	choose  func(id string) tea.Cmd
}

func (pm *pickerModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return pm, nil, false
	}
	switch {
	case key.Matches(msgKey, keys.Escape):
		return pm, nil, true
	case key.Matches(msgKey, keys.Up):
		if pm.index > 0 {
			pm.index--
		}
	case key.Matches(msgKey, keys.Down):
		if pm.index < len(pm.options)-1 {
			pm.index++
		}
	case key.Matches(msgKey, keys.Commit):
		if len(pm.options) == 0 {
			return pm, nil, true
		}
		return pm, pm.choose(pm.options[pm.index].id), true
	}
	return pm, nil, false
}

func (pm *pickerModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(pm.title))
	b.WriteString("\n\n")
	if len(pm.options) == 0 {
		b.WriteString(styles.MutedText.Render("No albums yet. Press n to create one."))
		b.WriteString("\n")
	}
	for i, opt := range pm.options {
		line := padRight(truncate(opt.label, 40), 42)
		if i == pm.index {
			b.WriteString(styles.Selected.Render("› " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("j/k move · enter choose · esc cancel"))
	return renderOverlay(theme, width, height, b.String(), 50, theme.BorderFocus)
}

// renderOverlay centers content in a rounded modal box over the full screen.
func renderOverlay(theme Theme, width, height int, content string, boxWidth int, border string) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
