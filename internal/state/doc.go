// Package state provides the thread-safe gallery container for folio.
//
// # Overview
//
// The Store holds the single live gallery.State. Every mutation goes through
// Dispatch, which applies a pure gallery.Action, hands the changed slots to a
// Persister and only then publishes the new snapshot. The UI, CLI commands
// and the upload pipeline all share one Store.
//
// # Architecture
//
//	Callers (UI / CLI):            Store:                       Persister:
//	┌──────────────────┐          ┌──────────────────────┐     ┌──────────────┐
//	│ store.AddAlbum() │─────────→│ action.Apply(state)  │     │              │
//	│ store.Dispatch() │          │      ↓ slots         │     │              │
//	│                  │          │ persister.Persist() ─┼────→│ kv.Set(...)  │
//	│                  │          │      ↓ ok            │     │              │
//	│ <-Subscribe()    │←─────────│ swap + publish       │     │              │
//	└──────────────────┘          └──────────────────────┘     └──────────────┘
//
// # Core Types
//
// Store:
//   - Owns the current state, a version counter and LastError
//   - Serialises Dispatch calls with a sync.RWMutex
//   - Snapshot and the read helpers take the read lock only
//
// Snapshot:
//   - Deep copy of the state plus Version, LastUpdated and LastError
//   - Safe to keep and mutate; changes never reach the Store
//
// Persister:
//   - Observer invoked with the next state and the changed gallery.Slots
//   - internal/persist adapts a kv.Store to this interface
//
// # Dispatch Semantics
//
//	// Rejected action: error returned, nothing written, nothing published
//	store.AddAlbum(ctx, "")           → gallery.ErrEmptyTitle
//
//	// No-op action: nil error, nothing written, nothing published
//	store.RemovePhoto(ctx, "missing") → nil
//
//	// Persist failure: error returned, state unchanged, LastError set
//	store.ToggleDarkMode(ctx)         → "toggleDarkMode: persist darkMode: ..."
//
//	// Success: persisted, Version++, LastError cleared, subscribers notified
//
// Persistence runs while the write lock is held, so storage order always
// matches state order.
//
// # Subscriptions
//
// Subscribe returns a channel with a buffer of one. When a reader falls
// behind, the stale snapshot is replaced by the newest one; readers never
// block Dispatch. Cancel is idempotent and closes the channel.
//
//	updates, cancel := store.Subscribe()
//	defer cancel()
//	for snap := range updates {
//		render(snap)
//	}
//
// # Testing Considerations
//
// New accepts a nil Persister for in-memory stores. PersisterFunc adapts a
// plain function, which keeps fakes short in tests.
package state
