package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/gallery"
)

// filterField describes one slider of the filter editor.
type filterField struct {
	label string
	min   float64
	max   float64
	step  float64
	fine  float64
	unit  string
	value func(f *gallery.Filters) *float64
}

var filterFields = []filterField{
	{"Grayscale", 0, 100, 5, 1, "%", func(f *gallery.Filters) *float64 { return &f.Grayscale }},
	{"Blur", 0, 10, 0.5, 0.1, "px", func(f *gallery.Filters) *float64 { return &f.Blur }},
	{"Brightness", 0, 200, 5, 1, "%", func(f *gallery.Filters) *float64 { return &f.Brightness }},
	{"Contrast", 0, 200, 5, 1, "%", func(f *gallery.Filters) *float64 { return &f.Contrast }},
	{"Saturation", 0, 200, 5, 1, "%", func(f *gallery.Filters) *float64 { return &f.Saturation }},
}

const sliderWidth = 24

// filterHistory holds the filters a photo had before each save in this
// session. It is shared between the model and the open editor.
type filterHistory struct {
	stack []gallery.Filters
}

func (h *filterHistory) push(f gallery.Filters) {
	h.stack = append(h.stack, f)
}

func (h *filterHistory) pop() (gallery.Filters, bool) {
	if len(h.stack) == 0 {
		return gallery.Filters{}, false
	}
	last := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return last, true
}

func (h *filterHistory) len() int {
	return len(h.stack)
}

// saveFiltersMsg is emitted when the editor saves a draft.
type saveFiltersMsg struct {
	entry    gallery.Entry
	previous gallery.Filters
	next     gallery.Filters
}

// filtersModal edits the filters of one photo. Changes stay in the draft
// until saved; undo restores the filters from before the last save.
type filtersModal struct {
	entry   gallery.Entry
	draft   gallery.Filters
	field   int
	history *filterHistory
}

func newFiltersModal(entry gallery.Entry, history *filterHistory) *filtersModal {
	return &filtersModal{
		entry:   entry,
		draft:   entry.Photo.EffectiveFilters(),
		history: history,
	}
}

func (fm *filtersModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return fm, nil, false
	}
	switch {
	case key.Matches(msgKey, keys.Escape):
		return fm, nil, true
	case key.Matches(msgKey, keys.Commit):
		saved := saveFiltersMsg{entry: fm.entry, previous: fm.entry.Photo.EffectiveFilters(), next: fm.draft}
		return fm, func() tea.Msg { return saved }, true
	case key.Matches(msgKey, keys.Up):
		fm.field = (fm.field + len(filterFields) - 1) % len(filterFields)
	case key.Matches(msgKey, keys.Down):
		fm.field = (fm.field + 1) % len(filterFields)
	case key.Matches(msgKey, keys.Left):
		fm.adjust(-filterFields[fm.field].step)
	case key.Matches(msgKey, keys.Right):
		fm.adjust(filterFields[fm.field].step)
	case msgKey.String() == "shift+left", msgKey.String() == "H":
		fm.adjust(-filterFields[fm.field].fine)
	case msgKey.String() == "shift+right", msgKey.String() == "L":
		fm.adjust(filterFields[fm.field].fine)
	case key.Matches(msgKey, keys.Undo):
		if prev, ok := fm.history.pop(); ok {
			fm.draft = prev
		}
	case key.Matches(msgKey, keys.Reset):
		fm.draft = gallery.DefaultFilters()
	}
	return fm, nil, false
}

func (fm *filtersModal) adjust(delta float64) {
	f := filterFields[fm.field]
	v := f.value(&fm.draft)
	*v = math.Round(math.Max(f.min, math.Min(f.max, *v+delta))*10) / 10
}

func (fm *filtersModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	title := fm.entry.Photo.Title
	if strings.TrimSpace(title) == "" {
		title = fm.entry.Photo.ID
	}
	b.WriteString(styles.Text.Bold(true).Render("Edit Photo"))
	b.WriteString(styles.MutedText.Render("  " + truncate(title, 30)))
	b.WriteString("\n\n")

	for i, f := range filterFields {
		v := *f.value(&fm.draft)
		label := padRight(f.label, 11)
		value := fmt.Sprintf("%6s%s", formatValue(v), f.unit)
		bar := slider(v, f.min, f.max, sliderWidth)
		if i == fm.field {
			b.WriteString(styles.AccentText.Bold(true).Render("› " + label))
			b.WriteString(styles.AccentText.Render(bar))
		} else {
			b.WriteString(styles.Text.Render("  " + label))
			b.WriteString(styles.FaintText.Render(bar))
		}
		b.WriteString(styles.Text.Render(value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fm.draft.CSS()))
	b.WriteString("\n\n")

	undo := "u undo"
	if n := fm.history.len(); n > 0 {
		b.WriteString(styles.WarningText.Render(fmt.Sprintf("%s (%d)", undo, n)))
	} else {
		b.WriteString(styles.FaintText.Render(undo))
	}
	b.WriteString(styles.FaintText.Render(" · 0 reset · enter save · esc cancel"))
	return renderOverlay(theme, width, height, b.String(), 60, theme.BorderFocus)
}

// slider draws a horizontal gauge for v in [min, max].
func slider(v, lo, hi float64, width int) string {
	if hi <= lo || width <= 0 {
		return ""
	}
	pos := int(math.Round((v - lo) / (hi - lo) * float64(width-1)))
	pos = max(0, min(width-1, pos))
	return strings.Repeat("━", pos) + "●" + strings.Repeat("─", width-1-pos)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
