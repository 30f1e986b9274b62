// Package app provides the composition root for the Folio application.
//
// # Overview
//
// This package wires together configuration, logging, storage, state
// management, the stock photo client, uploads, and the UI. Both the TUI and
// the CLI subcommands start from Open so they see the same store and the
// same persisted gallery.
//
// # Architecture
//
// Open follows a fixed initialization order:
//
//  1. Load a .env file, then ~/.config/folio/config.toml with env overrides
//  2. Initialize the zerolog logger (JSON file, optional stderr console)
//  3. Open the kv backend named by storage.backend, or memory when ephemeral
//  4. Load the three persisted slots through persist.Adapter
//  5. Create the state.Store with the adapter as its persister
//  6. Build the pixabay client, upload service and image loader
//
// A stored slot that cannot be decoded stops Open with an error naming the
// slot. Folio never starts on corrupted state and never overwrites it with
// defaults.
//
// # Components
//
//   - app.go: Options, Open, Close, Run and RunTUI
//   - ops.go: album lookup, add, import, export and list used by the CLI
//
// # Data Flow
//
//	┌──────────────┐
//	│   Open()     │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read config.toml and env
//	       ├─────> logging.Init()     Configure zerolog
//	       ├─────> kv.Open()          dir, sqlite, redis or memory
//	       ├─────> persist.Load()     Decode photos, albums, darkMode
//	       ├─────> state.New()        Serialised store
//	       └─────> pixabay/upload/render services
//
//	Run():
//	┌─────────────────────────────────────────┐
//	│ Open() ─> prefs.Load() ─> ui.Run()      │
//	│ Close() releases store and log file     │
//	└─────────────────────────────────────────┘
//
// # Logging
//
// The TUI owns the terminal, so Run always disables console logging and
// writes only to the log file. CLI subcommands set Options.Console to get
// human readable lines on stderr.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("folio failed: %v", err)
//	}
//
// # Dependencies
//
//   - config: config file, .env and environment overrides
//   - logging: zerolog setup
//   - kv, persist: storage backends and slot encoding
//   - state: serialised gallery store
//   - pixabay, upload, render: stock search, file import, image decoding
//   - ui: terminal user interface
package app
