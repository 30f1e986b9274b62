package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/gallery"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/pixabay"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/render"
	"github.com/five82/folio/internal/state"
	"github.com/five82/folio/internal/upload"
)

// screen is the content shown below the header.
type screen int

const (
	screenGallery screen = iota
	screenPreview
	screenResults
	screenLogs
)

const missingKeyStatus = "Stock search needs PIXABAY_API_KEY"

// pane is the focused column of the gallery screen.
type pane int

const (
	paneSidebar pane = iota
	panePhotos
)

// Options configures the UI. Store is required.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Loader    *render.Loader
	Search    pixabay.Searcher
	Upload    *upload.Service
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	loader    *render.Loader
	searcher  pixabay.Searcher
	uploader  *upload.Service
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	keys      keyMap

	// Store subscription
	updates <-chan state.Snapshot
	cancel  func()

	// UI state
	theme  Theme
	screen screen
	focus  pane
	width  int
	height int
	ready  bool

	// Data state
	snapshot     state.Snapshot
	view         gallery.View
	entries      []gallery.Entry
	sidebarIndex int
	photoIndex   int

	// Overlays
	modal    Modal
	showHelp bool

	// Footer status
	status      string
	statusError bool
	statusAt    time.Time

	preview previewState
	results searchState
	history map[string]*filterHistory

	logViewport viewport.Model
	logErr      error
}

// previewState holds the photo shown on the preview screen.
type previewState struct {
	entry   gallery.Entry
	key     string
	seq     int
	loading bool
	blocks  string
	label   string
	err     error
}

// searchState holds the last successful stock search.
type searchState struct {
	term  string
	hits  []pixabay.Hit
	index int
}

// sidebarItem is one selectable view in the sidebar.
type sidebarItem struct {
	label string
	view  gallery.View
	count int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	p := opts.Prefs
	if p == (prefs.Prefs{}) {
		p = prefs.Default()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	view, err := gallery.ParseView(p.LastView)
	if err != nil {
		view = gallery.AllPhotos{}
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		loader:    opts.Loader,
		searcher:  opts.Search,
		uploader:  opts.Upload,
		prefs:     p,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		keys:      DefaultKeyMap(),
		view:      view,
		focus:     panePhotos,
		history:   make(map[string]*filterHistory),
		cancel:    func() {},
	}
	if opts.Store != nil {
		m.snapshot = opts.Store.Snapshot()
		m.updates, m.cancel = opts.Store.Subscribe()
	}
	m.theme = GetTheme(p.Theme(m.darkMode()), m.darkMode())
	m.refreshEntries()
	return m
}

// Close stops the store subscription.
func (m Model) Close() {
	m.cancel()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store), waitForSnapshot(m.updates))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(m.width-2, m.bodyHeight()-2)
		} else {
			m.logViewport.Width = m.width - 2
			m.logViewport.Height = m.bodyHeight() - 2
		}
		m.ready = true
		return m, nil

	case snapshotMsg:
		var next tea.Cmd
		if msg.live {
			next = waitForSnapshot(m.updates)
		}
		if msg.snap.Version < m.snapshot.Version {
			return m, next
		}
		reload := m.applySnapshot(msg.snap)
		return m, tea.Batch(next, reload)

	case opDoneMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("%s failed: %v", msg.op, msg.err), true)
		} else if msg.note != "" {
			m.setStatus(msg.note, false)
		}
		return m, nil

	case saveFiltersMsg:
		m.historyFor(msg.entry).push(msg.previous)
		return m, m.run("edit filters", "Filters saved", func(ctx context.Context) error {
			return m.store.UpdatePhotoInAlbum(ctx, msg.entry.AlbumID, msg.entry.Photo.ID, gallery.SetFilters(msg.next))
		})

	case previewMsg:
		if msg.key != m.preview.key || msg.seq != m.preview.seq {
			return m, nil
		}
		m.preview.loading = false
		m.preview.blocks = msg.blocks
		m.preview.label = msg.label
		m.preview.err = msg.err
		return m, nil

	case searchMsg:
		if msg.err != nil {
			// The list keeps showing the previous results.
			if errors.Is(msg.err, pixabay.ErrMissingAPIKey) {
				m.setStatus(missingKeyStatus, true)
			}
			return m, nil
		}
		m.results = searchState{term: msg.term, hits: msg.hits}
		m.screen = screenResults
		return m, nil

	case uploadTitleMsg:
		return m.promptUploadTitle(msg)

	case uploadMsg:
		if msg.err != nil {
			m.modal = &alertModal{title: "Upload failed", body: msg.err.Error()}
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Uploaded %d photo(s)", len(msg.photos)), false)
		return m, nil

	case logsMsg:
		m.logErr = msg.err
		if msg.err == nil {
			atBottom := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
			m.logViewport.SetContent(strings.Join(msg.lines, "\n"))
			if atBottom {
				m.logViewport.GotoBottom()
			}
		}
		return m, nil

	case tickMsg:
		if m.screen != screenLogs {
			return m, nil
		}
		return m, tea.Batch(readLogsCmd(m.logPath), tickCmd(LogRefreshInterval))
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd, done := m.modal.Update(msg, m.keys)
	if done {
		m.modal = nil
	} else {
		m.modal = next
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if key.Matches(msg, m.keys.Quit) && (m.modal == nil || msg.Type == tea.KeyCtrlC) {
		return m, tea.Quit
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.DarkMode):
		return m, m.run("toggle dark mode", "", m.store.ToggleDarkMode)

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		if m.screen == screenLogs {
			m.screen = screenGallery
			return m, nil
		}
		m.screen = screenLogs
		return m, tea.Batch(readLogsCmd(m.logPath), tickCmd(LogRefreshInterval))
	}

	switch m.screen {
	case screenPreview:
		return m.handlePreviewKey(msg)
	case screenResults:
		return m.handleResultsKey(msg)
	case screenLogs:
		return m.handleLogsKey(msg)
	}
	return m.handleGalleryKey(msg)
}

func (m Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		if m.focus == paneSidebar {
			m.focus = panePhotos
		} else {
			m.focus = paneSidebar
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.move(-1 << 30)
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.move(1 << 30)
		return m, nil

	case key.Matches(msg, m.keys.Preview):
		if m.focus == paneSidebar {
			items := m.sidebarItems()
			if m.sidebarIndex < len(items) {
				m.selectView(items[m.sidebarIndex].view)
			}
			m.focus = panePhotos
			return m, nil
		}
		return m.openPreview()

	case key.Matches(msg, m.keys.Upload):
		return m.promptUpload()
	case key.Matches(msg, m.keys.Search):
		return m.promptSearch()
	case key.Matches(msg, m.keys.NewAlbum):
		return m.promptNewAlbum()
	case key.Matches(msg, m.keys.RenameAlbum):
		return m.promptRenameAlbum()
	case key.Matches(msg, m.keys.DeleteAlbum):
		return m.confirmDeleteAlbum()
	}

	entry, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Favorite):
		// Favorite always targets the top-level photo.
		return m, m.run("favorite", "", func(ctx context.Context) error {
			return m.store.ToggleFavorite(ctx, entry.Photo.ID)
		})
	case key.Matches(msg, m.keys.Rename):
		return m.promptRename(entry)
	case key.Matches(msg, m.keys.Edit):
		m.modal = newFiltersModal(entry, m.historyFor(entry))
		return m, nil
	case key.Matches(msg, m.keys.AddToAlbum):
		return m.pickAlbum(entry)
	case key.Matches(msg, m.keys.Delete):
		return m.confirmDelete(entry)
	}
	return m, nil
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Preview):
		m.screen = screenGallery
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return m.openPreview()
	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return m.openPreview()
	case key.Matches(msg, m.keys.Favorite):
		id := m.preview.entry.Photo.ID
		return m, m.run("favorite", "", func(ctx context.Context) error {
			return m.store.ToggleFavorite(ctx, id)
		})
	case key.Matches(msg, m.keys.Edit):
		m.modal = newFiltersModal(m.preview.entry, m.historyFor(m.preview.entry))
		return m, nil
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.screen = screenGallery
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.results.index > 0 {
			m.results.index--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.results.index < len(m.results.hits)-1 {
			m.results.index++
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		return m.promptSearch()
	case key.Matches(msg, m.keys.Preview):
		if m.results.index >= len(m.results.hits) {
			return m, nil
		}
		albumID := ""
		if v, ok := m.view.(gallery.AlbumView); ok {
			albumID = v.ID
		}
		return m, m.importCmd(m.results.hits[m.results.index], albumID)
	}
	return m, nil
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.screen = screenGallery
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// Photo actions

func (m Model) openPreview() (tea.Model, tea.Cmd) {
	entry, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}
	m.screen = screenPreview
	cmd := m.loadPreview(entry)
	return m, cmd
}

// loadPreview starts rendering entry. Results of earlier requests are
// dropped by sequence number.
func (m *Model) loadPreview(entry gallery.Entry) tea.Cmd {
	cols, rows := m.previewSize()
	m.preview = previewState{entry: entry, key: entryKey(entry), seq: m.preview.seq + 1, loading: true}
	return m.previewCmd(entry, m.preview.seq, cols, rows)
}

func (m Model) promptRename(entry gallery.Entry) (tea.Model, tea.Cmd) {
	m.modal = newInputModal("Rename photo", "", "Title", entry.Photo.Title, func(value string) tea.Cmd {
		return m.run("rename", "Photo renamed", func(ctx context.Context) error {
			return m.store.UpdatePhotoInAlbum(ctx, entry.AlbumID, entry.Photo.ID, gallery.SetTitle(strings.TrimSpace(value)))
		})
	})
	return m, nil
}

func (m Model) pickAlbum(entry gallery.Entry) (tea.Model, tea.Cmd) {
	options := make([]pickOption, 0, len(m.snapshot.State.Albums))
	for _, a := range m.snapshot.State.Albums {
		options = append(options, pickOption{id: a.ID, label: fmt.Sprintf("%s (%d)", a.Title, len(a.Photos))})
	}
	photo := entry.Photo
	m.modal = &pickerModal{
		title:   "Add to album",
		options: options,
		choose: func(albumID string) tea.Cmd {
			return m.run("add to album", "Added to album", func(ctx context.Context) error {
				return m.store.AddPhotoToAlbum(ctx, albumID, photo)
			})
		},
	}
	return m, nil
}

func (m Model) confirmDelete(entry gallery.Entry) (tea.Model, tea.Cmd) {
	name := displayTitle(entry.Photo)
	if album, ok := m.view.(gallery.AlbumView); ok {
		// Inside an album only that album's copy is removed.
		m.modal = &confirmModal{
			title: "Remove photo",
			body:  fmt.Sprintf("Remove %q from %s?", name, gallery.Title(m.snapshot.State, album)),
			confirm: m.run("remove photo", "Photo removed from album", func(ctx context.Context) error {
				return m.store.RemovePhotoFromAlbum(ctx, album.ID, entry.Photo.ID)
			}),
		}
		return m, nil
	}
	m.modal = &confirmModal{
		title: "Delete photo",
		body:  fmt.Sprintf("Delete %q from your photos?", name),
		confirm: m.run("delete photo", "Photo deleted", func(ctx context.Context) error {
			return m.store.RemovePhoto(ctx, entry.Photo.ID)
		}),
	}
	return m, nil
}

func (m Model) promptUpload() (tea.Model, tea.Cmd) {
	albumID := ""
	hint := "Files are added to All Photos."
	if v, ok := m.view.(gallery.AlbumView); ok {
		albumID = v.ID
		hint = fmt.Sprintf("Files are added to All Photos and %s.", gallery.Title(m.snapshot.State, v))
	}
	m.modal = newInputModal("Upload photos", hint, "~/Pictures/a.jpg \"b c.png\"", "", func(value string) tea.Cmd {
		paths := splitPaths(value)
		if len(paths) == 0 {
			return nil
		}
		for i, p := range paths {
			if expanded, err := config.ExpandPath(p); err == nil {
				paths[i] = expanded
			}
		}
		next := uploadTitleMsg{paths: paths, albumID: albumID}
		return func() tea.Msg { return next }
	})
	return m, nil
}

// promptUploadTitle asks for an optional title once the paths are known.
func (m Model) promptUploadTitle(msg uploadTitleMsg) (tea.Model, tea.Cmd) {
	hint := fmt.Sprintf("%d file(s). Leave empty to use each file name.", len(msg.paths))
	m.modal = newInputModal("Photo title", hint, "Title (optional)", "", func(value string) tea.Cmd {
		return m.uploadCmd(msg.paths, strings.TrimSpace(value), msg.albumID)
	})
	return m, nil
}

func (m Model) promptSearch() (tea.Model, tea.Cmd) {
	if m.searcher == nil || !m.searcher.HasKey() {
		m.setStatus(missingKeyStatus, true)
		return m, nil
	}
	m.modal = newInputModal("Search stock photos", "Results come from Pixabay.", "mountains", m.results.term, func(value string) tea.Cmd {
		term := strings.TrimSpace(value)
		if term == "" {
			return nil
		}
		return m.searchCmd(term)
	})
	return m, nil
}

// Album actions

func (m Model) promptNewAlbum() (tea.Model, tea.Cmd) {
	m.modal = newInputModal("New album", "", "Album title", "", func(value string) tea.Cmd {
		return m.run("create album", "Album created", func(ctx context.Context) error {
			_, err := m.store.AddAlbum(ctx, value)
			return err
		})
	})
	return m, nil
}

func (m Model) promptRenameAlbum() (tea.Model, tea.Cmd) {
	album, ok := m.targetAlbum()
	if !ok {
		m.setStatus("Select an album first", true)
		return m, nil
	}
	m.modal = newInputModal("Rename album", "", "Album title", album.Title, func(value string) tea.Cmd {
		return m.run("rename album", "Album renamed", func(ctx context.Context) error {
			return m.store.UpdateAlbum(ctx, album.ID, value)
		})
	})
	return m, nil
}

func (m Model) confirmDeleteAlbum() (tea.Model, tea.Cmd) {
	album, ok := m.targetAlbum()
	if !ok {
		m.setStatus("Select an album first", true)
		return m, nil
	}
	m.modal = &confirmModal{
		title: "Delete album",
		body:  fmt.Sprintf("Delete %q and the %d photo(s) it holds? Photos in All Photos stay.", album.Title, len(album.Photos)),
		confirm: m.run("delete album", "Album deleted", func(ctx context.Context) error {
			return m.store.RemoveAlbum(ctx, album.ID)
		}),
	}
	return m, nil
}

// targetAlbum is the album highlighted in the sidebar, or the current view's
// album when the photo list has focus.
func (m Model) targetAlbum() (gallery.Album, bool) {
	view := m.view
	if m.focus == paneSidebar {
		items := m.sidebarItems()
		if m.sidebarIndex < len(items) {
			view = items[m.sidebarIndex].view
		}
	}
	v, ok := view.(gallery.AlbumView)
	if !ok {
		return gallery.Album{}, false
	}
	return m.snapshot.State.Album(v.ID)
}

// State helpers

func (m *Model) applySnapshot(snap state.Snapshot) tea.Cmd {
	darkChanged := snap.State.DarkMode != m.snapshot.State.DarkMode
	m.snapshot = snap
	if darkChanged {
		m.theme = GetTheme(m.prefs.Theme(snap.State.DarkMode), snap.State.DarkMode)
	}
	if v, ok := m.view.(gallery.AlbumView); ok {
		if _, exists := snap.State.Album(v.ID); !exists {
			m.view = gallery.AllPhotos{}
		}
	}
	m.refreshEntries()

	if m.screen != screenPreview {
		return nil
	}
	for _, e := range m.entries {
		if entryKey(e) != m.preview.key {
			continue
		}
		stale := e.Photo.URL != m.preview.entry.Photo.URL ||
			e.Photo.EffectiveFilters() != m.preview.entry.Photo.EffectiveFilters()
		m.preview.entry = e
		if !stale {
			return nil
		}
		return m.loadPreview(e)
	}
	m.screen = screenGallery
	return nil
}

func (m *Model) refreshEntries() {
	if m.view == nil {
		m.view = gallery.AllPhotos{}
	}
	m.entries = gallery.Select(m.snapshot.State, m.view)
	if m.photoIndex >= len(m.entries) {
		m.photoIndex = len(m.entries) - 1
	}
	if m.photoIndex < 0 {
		m.photoIndex = 0
	}
	items := m.sidebarItems()
	if m.sidebarIndex >= len(items) {
		m.sidebarIndex = len(items) - 1
	}
}

func (m *Model) selectView(v gallery.View) {
	if m.view != nil && m.view.Token() == v.Token() {
		return
	}
	m.view = v
	m.photoIndex = 0
	m.refreshEntries()
	m.prefs.LastView = v.Token()
	m.savePrefs()
}

func (m *Model) cycleTheme() {
	dark := m.darkMode()
	next := NextTheme(m.theme.Name, dark)
	m.theme = GetTheme(next, dark)
	m.prefs = m.prefs.WithTheme(dark, next)
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		logging.Component(m.ctx, "ui").Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs failed")
	}
}

func (m *Model) move(delta int) {
	if m.focus == paneSidebar && m.screen == screenGallery {
		m.sidebarIndex = clampIndex(m.sidebarIndex+delta, len(m.sidebarItems()))
		return
	}
	m.photoIndex = clampIndex(m.photoIndex+delta, len(m.entries))
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
	m.statusAt = time.Now()
}

func (m Model) historyFor(entry gallery.Entry) *filterHistory {
	k := entryKey(entry)
	h, ok := m.history[k]
	if !ok {
		h = &filterHistory{}
		m.history[k] = h
	}
	return h
}

func (m Model) selectedEntry() (gallery.Entry, bool) {
	if m.photoIndex < 0 || m.photoIndex >= len(m.entries) {
		return gallery.Entry{}, false
	}
	return m.entries[m.photoIndex], true
}

func (m Model) sidebarItems() []sidebarItem {
	s := m.snapshot.State
	items := []sidebarItem{
		{label: "All Photos", view: gallery.AllPhotos{}, count: len(s.Photos)},
		{label: "Favorites", view: gallery.Favorites{}, count: len(gallery.FavoritePhotos(s))},
	}
	for _, a := range s.Albums {
		items = append(items, sidebarItem{label: a.Title, view: gallery.AlbumView{ID: a.ID}, count: len(a.Photos)})
	}
	return items
}

func (m Model) darkMode() bool {
	return m.snapshot.State.DarkMode
}

func (m Model) bodyHeight() int {
	return max(m.height-2, 3)
}

func (m Model) previewSize() (int, int) {
	return max(m.width-4, 10), max(m.bodyHeight()-5, 4)
}

func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return max(0, min(n-1, i))
}

func displayTitle(p gallery.Photo) string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	return "Untitled"
}

// Run starts the UI and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	var programOpts []tea.ProgramOption
	programOpts = append(programOpts, tea.WithAltScreen())
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
