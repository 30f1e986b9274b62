// Package ui provides the terminal user interface for folio.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns only presentation state; the
// gallery itself lives in state.Store. Every edit is sent to the store from a
// tea.Cmd, and the model redraws when the store publishes a new snapshot on
// its subscription channel.
//
// # Package Structure
//
//   - app.go: Model, Options, Update loop, key handling and Run
//   - commands.go: Messages and tea.Cmd constructors (store ops, preview, search, upload, logs)
//   - views.go: Header, sidebar, photo list, details, preview, results and log rendering
//   - modal.go: Modal interface plus input, confirm, alert and picker dialogs
//   - filters.go: Filter editor with per-photo save history
//   - keys.go / help.go: Key bindings and the help overlay
//   - theme.go: Dark and light palettes
//
// # Screens
//
//   - Gallery: Sidebar (All Photos, Favorites, albums), photo list, details pane
//   - Preview: Half-block rendering of the selected photo with filters applied
//   - Results: Stock photo search results ready to import
//   - Logs: Formatted tail of the JSON log file
//
// # Event Flow
//
//  1. New takes a snapshot and subscribes to the store
//  2. Init arms the subscription; each published snapshot re-arms it
//  3. Keys open modals or return commands that call store operations
//  4. The store persists, then publishes; the model rebuilds its entries
//  5. Failed operations surface in the command bar; a failed upload opens an alert
//
// # Location Rules
//
//   - Delete in an album view removes the album's copy only; elsewhere it
//     removes the top-level photo
//   - Favorite always toggles the top-level photo
//   - Rename and filter edits go through UpdatePhotoInAlbum with the entry's
//     album, which keeps the album copy and the top-level photo in step
//
// # Themes
//
// The store's dark mode flag selects between the dark and light theme sets.
// T cycles within the active set and remembers the choice per mode in prefs,
// together with the last selected view.
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context:   ctx,
//		Store:     store,
//		Loader:    render.NewLoader(),
//		Search:    pixabayClient,
//		Upload:    upload.New(store, cfg.Upload.MaxDimension),
//		Prefs:     p,
//		PrefsPath: prefsPath,
//		LogPath:   cfg.Log.File,
//	})
package ui
