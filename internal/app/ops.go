package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/five82/folio/internal/gallery"
	"github.com/five82/folio/internal/pixabay"
	"github.com/five82/folio/internal/render"
)

// ErrAlbumNotFound is returned when an album reference matches nothing.
var ErrAlbumNotFound = errors.New("album not found")

// ErrNoSuchHit is returned when an import index is outside the results.
var ErrNoSuchHit = errors.New("no search result at that index")

// FindAlbum resolves ref as an album id first, then as a case-insensitive title.
func (a *App) FindAlbum(ref string) (gallery.Album, error) {
	ref = strings.TrimSpace(ref)
	s := a.Store.Snapshot().State
	if album, ok := s.Album(ref); ok {
		return album, nil
	}
	for _, album := range s.Albums {
		if strings.EqualFold(album.Title, ref) {
			return album, nil
		}
	}
	return gallery.Album{}, fmt.Errorf("%w: %s", ErrAlbumNotFound, ref)
}

// AddFiles uploads local images, optionally into the album named by albumRef.
func (a *App) AddFiles(ctx context.Context, paths []string, title, albumRef string) ([]gallery.Photo, error) {
	albumID, err := a.albumID(albumRef)
	if err != nil {
		return nil, err
	}
	return a.Upload.Files(ctx, paths, title, albumID)
}

// SearchStock returns stock photo hits for term.
func (a *App) SearchStock(ctx context.Context, term string) ([]pixabay.Hit, error) {
	hits, err := a.Search.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	return hits, nil
}

// Import adds the hit at the 1-based index to the gallery, and to the
// album named by albumRef when it is not empty.
func (a *App) Import(ctx context.Context, hits []pixabay.Hit, index int, albumRef string) (gallery.Photo, error) {
	if index < 1 || index > len(hits) {
		return gallery.Photo{}, fmt.Errorf("%w: %d of %d", ErrNoSuchHit, index, len(hits))
	}
	albumID, err := a.albumID(albumRef)
	if err != nil {
		return gallery.Photo{}, err
	}

	photo := hits[index-1].Photo(uuid.NewString())
	if err := a.Store.AddPhoto(ctx, photo); err != nil {
		return gallery.Photo{}, fmt.Errorf("import photo: %w", err)
	}
	if albumID != "" {
		if err := a.Store.AddPhotoToAlbum(ctx, albumID, photo); err != nil {
			return gallery.Photo{}, fmt.Errorf("import photo: %w", err)
		}
	}
	log.Info().Str("photo_id", photo.ID).Str("album_id", albumID).Msg("stock photo imported")
	return photo, nil
}

// Export writes the photo's image with its filters applied to out. The
// top-level photo is used unless albumRef names an album holding a copy.
func (a *App) Export(ctx context.Context, photoID, albumRef, out string) error {
	albumID, err := a.albumID(albumRef)
	if err != nil {
		return err
	}
	photo, err := a.Store.Photo(albumID, photoID)
	if err != nil {
		return err
	}
	img, err := a.Loader.Image(ctx, photo.URL)
	if err != nil {
		return fmt.Errorf("load %s: %w", photoID, err)
	}
	if err := render.Export(img, photo, out); err != nil {
		return err
	}
	log.Info().Str("photo_id", photoID).Str("path", out).Msg("photo exported")
	return nil
}

// List returns the entries of the view named by token.
func (a *App) List(token string) (string, []gallery.Entry, error) {
	view, err := gallery.ParseView(token)
	if err != nil {
		album, findErr := a.FindAlbum(token)
		if findErr != nil {
			return "", nil, err
		}
		view = gallery.AlbumView{ID: album.ID}
	}
	s := a.Store.Snapshot().State
	return gallery.Title(s, view), gallery.Select(s, view), nil
}

func (a *App) albumID(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", nil
	}
	album, err := a.FindAlbum(ref)
	if err != nil {
		return "", err
	}
	return album.ID, nil
}
