package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/five82/folio/internal/gallery"
	"github.com/five82/folio/internal/kv"
	"github.com/five82/folio/internal/logging"
)

// Storage keys, one per persisted slot.
const (
	KeyPhotos   = "photos"
	KeyAlbums   = "albums"
	KeyDarkMode = "darkMode"
)

// DefaultPhotos returns the photos shown on first launch.
func DefaultPhotos() []gallery.Photo {
	return []gallery.Photo{
		{ID: "1", URL: "https://images.unsplash.com/photo-1472214103451-9374bd1c798e", Title: "Forest"},
		{ID: "2", URL: "https://images.unsplash.com/photo-1470071459604-3b5ec3a7fe05", Title: "Mountains", Favorite: true},
		{ID: "3", URL: "https://images.unsplash.com/photo-1447752875215-b2761acb3c5d", Title: "Forest Path"},
		{ID: "4", URL: "https://images.unsplash.com/photo-1433086966358-54859d0ed716", Title: "Waterfall"},
	}
}

// DefaultState is the state of a fresh installation.
func DefaultState() gallery.State {
	return gallery.State{Photos: DefaultPhotos(), Albums: []gallery.Album{}}
}

// Adapter maps gallery state slots to JSON values in a kv.Store.
type Adapter struct {
	store kv.Store
}

// New returns an adapter over store.
func New(store kv.Store) *Adapter {
	return &Adapter{store: store}
}

// Load reads every slot. Missing or empty keys fall back to their defaults;
// a value that does not decode is an error naming the slot.
func (a *Adapter) Load(ctx context.Context) (gallery.State, error) {
	s := DefaultState()

	photos := DefaultPhotos()
	found, err := a.load(ctx, KeyPhotos, &photos)
	if err != nil {
		return gallery.State{}, err
	}
	if photos == nil {
		photos = []gallery.Photo{}
	}
	s.Photos = photos

	albums := []gallery.Album{}
	if _, err := a.load(ctx, KeyAlbums, &albums); err != nil {
		return gallery.State{}, err
	}
	if albums == nil {
		albums = []gallery.Album{}
	}
	for i := range albums {
		if albums[i].Photos == nil {
			albums[i].Photos = []gallery.Photo{}
		}
	}
	s.Albums = albums

	if _, err := a.load(ctx, KeyDarkMode, &s.DarkMode); err != nil {
		return gallery.State{}, err
	}

	logging.FromContext(ctx).Debug().
		Bool("seeded", !found).
		Int("photos", len(s.Photos)).
		Int("albums", len(s.Albums)).
		Bool("dark_mode", s.DarkMode).
		Msg("gallery loaded")
	return s, nil
}

func (a *Adapter) load(ctx context.Context, key string, dst any) (bool, error) {
	data, err := a.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) || (err == nil && len(data) == 0) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// slotWrite is one encoded slot value and the bytes it replaces.
type slotWrite struct {
	key   string
	value []byte
	prior []byte
}

// Persist writes the slots named by slots. It implements state.Persister.
// The write is all or nothing: when a slot fails, slots already written are
// restored to their previous bytes.
func (a *Adapter) Persist(ctx context.Context, s gallery.State, slots gallery.Slots) error {
	writes, err := a.encode(s, slots)
	if err != nil {
		return err
	}
	for i := range writes {
		prior, err := a.store.Get(ctx, writes[i].key)
		if err != nil && !errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("read %s: %w", writes[i].key, err)
		}
		// A missing key is restored as an empty value, which Load reads as absent.
		writes[i].prior = prior
	}

	for i, w := range writes {
		if err := a.store.Set(ctx, w.key, w.value); err != nil {
			err = fmt.Errorf("write %s: %w", w.key, err)
			return errors.Join(err, a.restore(ctx, writes[:i]))
		}
	}
	return nil
}

func (a *Adapter) encode(s gallery.State, slots gallery.Slots) ([]slotWrite, error) {
	var writes []slotWrite
	add := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		writes = append(writes, slotWrite{key: key, value: data})
		return nil
	}
	if slots.Has(gallery.SlotPhotos) {
		photos := s.Photos
		if photos == nil {
			photos = []gallery.Photo{}
		}
		if err := add(KeyPhotos, photos); err != nil {
			return nil, err
		}
	}
	if slots.Has(gallery.SlotAlbums) {
		albums := s.Albums
		if albums == nil {
			albums = []gallery.Album{}
		}
		if err := add(KeyAlbums, albums); err != nil {
			return nil, err
		}
	}
	if slots.Has(gallery.SlotDarkMode) {
		if err := add(KeyDarkMode, s.DarkMode); err != nil {
			return nil, err
		}
	}
	return writes, nil
}

// restore puts back the prior bytes of slots written before a failure.
func (a *Adapter) restore(ctx context.Context, written []slotWrite) error {
	var errs []error
	for _, w := range written {
		prior := w.prior
		if prior == nil {
			prior = []byte{}
		}
		if err := a.store.Set(ctx, w.key, prior); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", w.key, err))
		}
	}
	if len(errs) > 0 {
		logging.FromContext(ctx).Error().Err(errors.Join(errs...)).Msg("restore after failed write")
	}
	return errors.Join(errs...)
}
