package ui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/gallery"
)

// renderMain renders header, content and command bar.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// renderContent renders the main content area based on current screen.
func (m Model) renderContent() string {
	switch m.screen {
	case screenPreview:
		return m.renderPreview()
	case screenResults:
		return m.renderResults()
	case screenLogs:
		return m.renderLogs()
	default:
		return m.renderGallery()
	}
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	s := m.snapshot.State

	mode := "light"
	if s.DarkMode {
		mode = "dark"
	}
	parts := []string{
		bg.Render("folio", styles.Logo),
		bg.Render(gallery.Title(s, m.view), styles.Text.Bold(true)),
		bg.Render(fmt.Sprintf("%d photos", len(s.Photos)), styles.MutedText),
		bg.Render(fmt.Sprintf("%d albums", len(s.Albums)), styles.MutedText),
		bg.Render(mode, styles.FaintText),
	}
	if m.snapshot.LastError != nil {
		parts = append(parts, bg.Render("SAVE FAILED "+truncate(m.snapshot.LastError.Error(), 60), styles.DangerText))
	}
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints and the latest status message.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	switch m.screen {
	case screenPreview:
		commands = []cmd{{"esc", "Back"}, {"j/k", "Prev/Next"}, {"f", "Favorite"}, {"e", "Edit"}}
	case screenResults:
		commands = []cmd{{"enter", "Import"}, {"s", "New search"}, {"j/k", "Navigate"}, {"esc", "Back"}}
	case screenLogs:
		commands = []cmd{{"j/k", "Scroll"}, {"L", "Close"}, {"esc", "Back"}}
	default:
		commands = []cmd{
			{"tab", "Pane"}, {"enter", "Open"}, {"f", "Fav"}, {"e", "Edit"},
			{"a", "Album+"}, {"x", "Delete"}, {"o", "Upload"}, {"s", "Search"}, {"?", "More"},
		}
	}

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+bg.Render(":", styles.FaintText)+bg.Render(c.desc, styles.MutedText))
	}

	if m.status != "" && time.Since(m.statusAt) < StatusTTL {
		style := styles.SuccessText
		if m.statusError {
			style = styles.DangerText
		}
		segments = append(segments, bg.Render(truncate(m.status, 60), style))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+bg.Render(":", styles.FaintText)+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(bg.Join(segments, "  "))
}

// renderGallery renders sidebar, photo list and, on wide terminals, details.
func (m Model) renderGallery() string {
	height := m.bodyHeight()
	sidebarWidth := min(LayoutSidebarWidth, m.width/3)
	listWidth := m.width - sidebarWidth
	detailWidth := 0
	if m.width >= LayoutDetailWidth {
		detailWidth = LayoutDetailPaneWidth
		listWidth -= detailWidth
	}

	sidebar := m.renderTitledBox("Views", m.renderSidebar(sidebarWidth-2, height-2), sidebarWidth, height, m.focus == paneSidebar)
	title := fmt.Sprintf("%s (%d)", gallery.Title(m.snapshot.State, m.view), len(m.entries))
	list := m.renderTitledBox(title, m.renderPhotoList(listWidth-2, height-2), listWidth, height, m.focus == panePhotos)
	if detailWidth == 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, list)
	}
	details := m.renderTitledBox("Details", m.renderDetails(detailWidth-4), detailWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, list, details)
}

func (m Model) renderSidebar(width, rows int) string {
	styles := m.theme.Styles()
	items := m.sidebarItems()
	lines := make([]string, 0, len(items)+1)
	selectedLine := 0
	for i, item := range items {
		if i == 2 {
			lines = append(lines, styles.FaintText.Render(" Albums"))
		}
		if i == m.sidebarIndex {
			selectedLine = len(lines)
		}
		count := fmt.Sprintf("%d", item.count)
		label := truncate(item.label, max(width-len(count)-3, 1))
		line := " " + padRight(label, max(width-len(count)-2, 0)) + count
		switch {
		case i == m.sidebarIndex && m.focus == paneSidebar:
			lines = append(lines, styles.Selected.Width(width).Render(line))
		case item.view.Token() == m.view.Token():
			lines = append(lines, styles.AccentText.Bold(true).Render(line))
		default:
			lines = append(lines, styles.Text.Render(line))
		}
	}
	if len(items) == 2 {
		lines = append(lines, "", styles.FaintText.Render(" No albums. n to create."))
	}
	return strings.Join(window(lines, selectedLine, rows), "\n")
}

func (m Model) renderPhotoList(width, rows int) string {
	styles := m.theme.Styles()
	if len(m.entries) == 0 {
		msg := "No photos yet. Press o to upload or s to search."
		if _, ok := m.view.(gallery.Favorites); ok {
			msg = "No favorites yet. Press f on a photo."
		}
		return styles.MutedText.Render(" " + msg)
	}

	_, favoritesView := m.view.(gallery.Favorites)
	lines := make([]string, 0, len(m.entries))
	for i, e := range m.entries {
		marker := "  "
		if e.Photo.Favorite {
			marker = "♥ "
		}
		tag := ""
		if favoritesView && e.AlbumID != "" {
			if album, ok := m.snapshot.State.Album(e.AlbumID); ok {
				tag = " [" + album.Title + "]"
			}
		}
		if !e.Photo.EffectiveFilters().IsDefault() {
			tag += " ◐"
		}
		title := truncate(displayTitle(e.Photo), max(width-len([]rune(tag))-4, 4))
		line := " " + marker + title + tag
		if i == m.photoIndex {
			style := styles.Selected.Width(width)
			if m.focus != panePhotos {
				style = styles.SurfaceAlt.Width(width)
			}
			lines = append(lines, style.Render(line))
			continue
		}
		if e.Photo.Favorite {
			lines = append(lines, styles.FavoriteText.Render(" "+marker)+styles.Text.Render(title)+styles.MutedText.Render(tag))
			continue
		}
		lines = append(lines, styles.Text.Render(line))
	}
	return strings.Join(window(lines, m.photoIndex, rows), "\n")
}

func (m Model) renderDetails(width int) string {
	styles := m.theme.Styles()
	entry, ok := m.selectedEntry()
	if !ok {
		return styles.MutedText.Render("Select a photo")
	}
	p := entry.Photo

	row := func(label, value string, style lipgloss.Style) string {
		return styles.FaintText.Render(padRight(label, 10)) + style.Render(truncate(value, max(width-10, 4)))
	}
	favorite := "No"
	if p.Favorite {
		favorite = "Yes"
	}
	lines := []string{
		styles.Text.Bold(true).Render(truncate(displayTitle(p), width)),
		"",
		row("ID", p.ID, styles.MutedText),
		row("Source", sourceLabel(p), styles.Text),
		row("Favorite", favorite, styles.FavoriteText),
	}
	if entry.AlbumID != "" {
		if album, ok := m.snapshot.State.Album(entry.AlbumID); ok {
			lines = append(lines, row("Album", album.Title, styles.AccentText))
		}
	}
	if p.TakenAt != nil {
		lines = append(lines, row("Taken", p.TakenAt.Format("2006-01-02 15:04"), styles.Text))
	}
	lines = append(lines, "", styles.FaintText.Render("Filters"))
	f := p.EffectiveFilters()
	if f.IsDefault() {
		lines = append(lines, styles.MutedText.Render("  none"))
	} else {
		for _, part := range strings.Fields(f.CSS()) {
			lines = append(lines, styles.InfoText.Render("  "+part))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPreview() string {
	styles := m.theme.Styles()
	p := m.preview.entry.Photo
	title := displayTitle(p)
	if p.Favorite {
		title = "♥ " + title
	}

	var body string
	switch {
	case m.preview.err != nil:
		body = styles.DangerText.Render("Could not load image: " + m.preview.err.Error())
	case m.preview.loading:
		body = styles.MutedText.Render("Loading preview...")
	default:
		body = m.preview.blocks
	}
	var footer []string
	if m.preview.label != "" {
		footer = append(footer, styles.MutedText.Render(m.preview.label))
	}
	if f := p.EffectiveFilters(); !f.IsDefault() {
		footer = append(footer, styles.InfoText.Render(f.CSS()))
	}
	content := body
	if len(footer) > 0 {
		content += "\n\n" + strings.Join(footer, "\n")
	}
	return m.renderTitledBox(title, content, m.width, m.bodyHeight(), true)
}

func (m Model) renderResults() string {
	styles := m.theme.Styles()
	width := m.width - 2
	rows := m.bodyHeight() - 2
	title := fmt.Sprintf("Stock results: %s (%d)", m.results.term, len(m.results.hits))
	if len(m.results.hits) == 0 {
		return m.renderTitledBox(title, styles.MutedText.Render(" No results."), m.width, m.bodyHeight(), true)
	}

	lines := make([]string, 0, len(m.results.hits))
	for i, h := range m.results.hits {
		meta := fmt.Sprintf("%d×%d  ♥ %d  by %s", h.ImageWidth, h.ImageHeight, h.Likes, h.User)
		name := truncate(h.Title(), max(width-len([]rune(meta))-4, 8))
		line := " " + padRight(name, max(width-len([]rune(meta))-3, 0)) + meta
		if i == m.results.index {
			lines = append(lines, styles.Selected.Width(width).Render(line))
			continue
		}
		lines = append(lines, styles.Text.Render(line))
	}
	return m.renderTitledBox(title, strings.Join(window(lines, m.results.index, rows), "\n"), m.width, m.bodyHeight(), true)
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := "Logs"
	content := m.logViewport.View()
	switch {
	case m.logPath == "":
		content = styles.MutedText.Render(" File logging is disabled.")
	case m.logErr != nil:
		content = styles.DangerText.Render(" " + m.logErr.Error())
	default:
		title = "Logs · " + truncateMiddle(m.logPath, max(m.width-20, 10))
		if m.logViewport.TotalLineCount() == 0 {
			content = styles.MutedText.Render(" No log entries yet.")
		}
	}
	return m.renderTitledBox(title, content, m.width, m.bodyHeight(), true)
}

// renderTitledBox draws a bordered box with the title embedded in the top border.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)
	lines := make([]string, 0, boxHeight+2)
	lines = append(lines, topBorder)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+bg.FillLine(line, innerWidth)+bg.Render("│", borderStyle))
	}
	lines = append(lines, bottomBorder)
	return strings.Join(lines, "\n")
}

// window returns at most rows lines around the selected index.
func window(lines []string, selected, rows int) []string {
	if rows <= 0 || len(lines) <= rows {
		return lines
	}
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	end := min(start+rows, len(lines))
	return lines[start:end]
}

// sourceLabel describes where a photo's image comes from.
func sourceLabel(p gallery.Photo) string {
	if p.IsEmbedded() {
		media := strings.TrimPrefix(p.URL, "data:")
		if i := strings.IndexAny(media, ";,"); i >= 0 {
			media = media[:i]
		}
		return "embedded " + media
	}
	if u, err := url.Parse(p.URL); err == nil && u.Host != "" {
		return u.Host
	}
	return p.URL
}
