package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	DarkMode   key.Binding
	Logs       key.Binding
	Tab        key.Binding
	Escape     key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Photo actions
	Preview    key.Binding
	Favorite   key.Binding
	Rename     key.Binding
	Edit       key.Binding
	AddToAlbum key.Binding
	Delete     key.Binding
	Upload     key.Binding
	Search     key.Binding

	// Album actions
	NewAlbum    key.Binding
	RenameAlbum key.Binding
	DeleteAlbum key.Binding

	// Filter editor
	Left   key.Binding
	Right  key.Binding
	Undo   key.Binding
	Reset  key.Binding
	Commit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "Q"),
			key.WithHelp("Q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		DarkMode: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Toggle dark mode"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log view"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch pane"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / back"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		// Photo actions
		Preview: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Preview photo"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favorite"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rename photo"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit filters"),
		),
		AddToAlbum: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add to album"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete photo"),
		),
		Upload: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Upload files"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Stock search"),
		),

		// Album actions
		NewAlbum: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New album"),
		),
		RenameAlbum: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Rename album"),
		),
		DeleteAlbum: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Delete album"),
		),

		// Filter editor
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Increase"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Undo last save"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "Reset filters"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Save"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	sections := k.helpSections()
	groups := make([][]key.Binding, 0, len(sections))
	for _, s := range sections {
		groups = append(groups, s.bindings)
	}
	return groups
}
