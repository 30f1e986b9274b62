package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/folio/internal/gallery"
	"github.com/five82/folio/internal/logging"
)

// Persister writes the changed slots of a state to durable storage.
type Persister interface {
	Persist(ctx context.Context, s gallery.State, slots gallery.Slots) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, s gallery.State, slots gallery.Slots) error

// Persist calls f.
func (f PersisterFunc) Persist(ctx context.Context, s gallery.State, slots gallery.Slots) error {
	return f(ctx, s, slots)
}

// Snapshot is an immutable view of the gallery at a point in time.
type Snapshot struct {
	State       gallery.State
	Version     uint64
	LastUpdated time.Time
	LastError   error
}

// Store serialises gallery transitions, persists their effects and publishes
// snapshots to subscribers.
type Store struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	persister Persister

	subMu  sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
}

// New returns a store holding initial. A nil persister keeps state in memory only.
func New(initial gallery.State, persister Persister) *Store {
	return &Store{
		snapshot:  Snapshot{State: initial.Clone(), LastUpdated: time.Now()},
		persister: persister,
		subs:      make(map[int]chan Snapshot),
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.State = s.snapshot.State.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Dispatch applies a, persists the changed slots and publishes the result.
// A rejected action or a persistence failure leaves the state unchanged.
func (s *Store) Dispatch(ctx context.Context, a gallery.Action) error {
	logger := logging.FromContext(ctx)

	s.mu.Lock()
	next, slots, err := a.Apply(s.snapshot.State)
	if err != nil {
		s.mu.Unlock()
		logger.Debug().Str("action", a.Name).Err(err).Msg("action rejected")
		return err
	}
	if slots.Empty() {
		s.mu.Unlock()
		logger.Debug().Str("action", a.Name).Msg("action changed nothing")
		return nil
	}

	if s.persister != nil {
		if err := s.persister.Persist(ctx, next, slots); err != nil {
			err = fmt.Errorf("%s: persist %s: %w", a.Name, slots, err)
			s.snapshot.LastError = err
			s.mu.Unlock()
			logger.Error().Str("action", a.Name).Stringer("slots", slots).Err(err).Msg("persist failed")
			return err
		}
	}

	s.snapshot.State = next
	s.snapshot.Version++
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.LastError = nil
	published := s.snapshot
	published.State = next.Clone()
	// Publish under the write lock so subscribers see versions in order.
	s.publish(published)
	s.mu.Unlock()

	logger.Debug().
		Str("action", a.Name).
		Stringer("slots", slots).
		Uint64("version", published.Version).
		Msg("state updated")
	return nil
}

// Subscribe returns a channel that receives the latest snapshot after every
// change. Slow readers only see the newest snapshot. Call cancel to stop.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Drop the stale snapshot so the newest one is delivered.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// ErrPhotoNotFound is returned by lookups for a missing photo.
var ErrPhotoNotFound = errors.New("photo not found")

// AddPhoto appends a photo to the top-level pool.
func (s *Store) AddPhoto(ctx context.Context, p gallery.Photo) error {
	return s.Dispatch(ctx, gallery.AddPhoto(p))
}

// RemovePhoto deletes a top-level photo.
func (s *Store) RemovePhoto(ctx context.Context, photoID string) error {
	return s.Dispatch(ctx, gallery.RemovePhoto(photoID))
}

// AddAlbum creates an empty album and returns it.
func (s *Store) AddAlbum(ctx context.Context, title string) (gallery.Album, error) {
	album := gallery.NewAlbum(title)
	if err := s.Dispatch(ctx, gallery.CreateAlbum(album)); err != nil {
		return gallery.Album{}, err
	}
	return album, nil
}

// RemoveAlbum deletes an album and the photo copies it holds.
func (s *Store) RemoveAlbum(ctx context.Context, albumID string) error {
	return s.Dispatch(ctx, gallery.RemoveAlbum(albumID))
}

// UpdateAlbum renames an album.
func (s *Store) UpdateAlbum(ctx context.Context, albumID, title string) error {
	return s.Dispatch(ctx, gallery.UpdateAlbum(albumID, title))
}

// ToggleFavorite flips the favorite flag of a top-level photo.
func (s *Store) ToggleFavorite(ctx context.Context, photoID string) error {
	return s.Dispatch(ctx, gallery.ToggleFavorite(photoID))
}

// ToggleDarkMode flips the display flag.
func (s *Store) ToggleDarkMode(ctx context.Context) error {
	return s.Dispatch(ctx, gallery.ToggleDarkMode())
}

// AddPhotoToAlbum copies a photo into an album.
func (s *Store) AddPhotoToAlbum(ctx context.Context, albumID string, p gallery.Photo) error {
	return s.Dispatch(ctx, gallery.AddPhotoToAlbum(albumID, p))
}

// RemovePhotoFromAlbum deletes a photo copy from one album.
func (s *Store) RemovePhotoFromAlbum(ctx context.Context, albumID, photoID string) error {
	return s.Dispatch(ctx, gallery.RemovePhotoFromAlbum(albumID, photoID))
}

// UpdatePhotoInAlbum edits the album copy and the top-level photo together.
func (s *Store) UpdatePhotoInAlbum(ctx context.Context, albumID, photoID string, u gallery.PhotoUpdate) error {
	return s.Dispatch(ctx, gallery.UpdatePhotoInAlbum(albumID, photoID, u))
}

// FavoritePhotos lists every favorited photo in the current state.
func (s *Store) FavoritePhotos() []gallery.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gallery.FavoritePhotos(s.snapshot.State)
}

// Select resolves a view against the current state.
func (s *Store) Select(v gallery.View) []gallery.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gallery.Select(s.snapshot.State, v)
}

// Photo returns the top-level photo with the given id, or the copy held by
// albumID when it is not empty.
func (s *Store) Photo(albumID, photoID string) (gallery.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if albumID != "" {
		if album, ok := s.snapshot.State.Album(albumID); ok {
			if p, ok := album.Photo(photoID); ok {
				return p, nil
			}
		}
		return gallery.Photo{}, fmt.Errorf("%w: %s in album %s", ErrPhotoNotFound, photoID, albumID)
	}
	if p, ok := s.snapshot.State.Photo(photoID); ok {
		return p, nil
	}
	return gallery.Photo{}, fmt.Errorf("%w: %s", ErrPhotoNotFound, photoID)
}
