package gallery

import (
	"fmt"
	"strings"
)

// View selects which photos the gallery shows. The set of views is closed:
// AllPhotos, Favorites and AlbumView.
type View interface {
	// Token returns the string form accepted by ParseView.
	Token() string
	isView()
}

// AllPhotos shows the top-level photo pool.
type AllPhotos struct{}

// Favorites shows every favorited photo, top-level and inside albums.
type Favorites struct{}

// AlbumView shows the photos held by one album.
type AlbumView struct {
	ID string
}

const (
	tokenAll       = "all"
	tokenFavorites = "favorites"
	albumPrefix    = "album:"
)

func (AllPhotos) Token() string   { return tokenAll }
func (Favorites) Token() string   { return tokenFavorites }
func (v AlbumView) Token() string { return albumPrefix + v.ID }

func (AllPhotos) isView() {}
func (Favorites) isView() {}
func (AlbumView) isView() {}

// ParseView maps "all", "favorites" and "album:<id>" to a View.
func ParseView(token string) (View, error) {
	trimmed := strings.TrimSpace(token)
	switch {
	case trimmed == tokenAll:
		return AllPhotos{}, nil
	case trimmed == tokenFavorites:
		return Favorites{}, nil
	case strings.HasPrefix(trimmed, albumPrefix):
		id := strings.TrimSpace(strings.TrimPrefix(trimmed, albumPrefix))
		if id == "" {
			return nil, fmt.Errorf("%w: %q has no album id", ErrUnknownView, token)
		}
		return AlbumView{ID: id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, token)
	}
}

// Entry is a photo tagged with the album it was selected from. AlbumID is
// empty for top-level photos.
type Entry struct {
	AlbumID string
	Photo   Photo
}

// Select returns the photos shown by v, in display order. An unknown album
// yields an empty result.
func Select(s State, v View) []Entry {
	switch view := v.(type) {
	case AllPhotos:
		entries := make([]Entry, 0, len(s.Photos))
		for _, p := range s.Photos {
			entries = append(entries, Entry{Photo: p.Clone()})
		}
		return entries
	case Favorites:
		return FavoritePhotos(s)
	case AlbumView:
		album, ok := s.Album(view.ID)
		if !ok {
			return []Entry{}
		}
		entries := make([]Entry, 0, len(album.Photos))
		for _, p := range album.Photos {
			entries = append(entries, Entry{AlbumID: album.ID, Photo: p.Clone()})
		}
		return entries
	default:
		return []Entry{}
	}
}

// FavoritePhotos lists favorited top-level photos first, then favorited
// copies in each album, in store order.
func FavoritePhotos(s State) []Entry {
	entries := []Entry{}
	for _, p := range s.Photos {
		if p.Favorite {
			entries = append(entries, Entry{Photo: p.Clone()})
		}
	}
	for _, a := range s.Albums {
		for _, p := range a.Photos {
			if p.Favorite {
				entries = append(entries, Entry{AlbumID: a.ID, Photo: p.Clone()})
			}
		}
	}
	return entries
}

// Title returns the heading shown for v.
func Title(s State, v View) string {
	switch view := v.(type) {
	case AllPhotos:
		return "All Photos"
	case Favorites:
		return "Favorite Photos"
	case AlbumView:
		if album, ok := s.Album(view.ID); ok && album.Title != "" {
			return album.Title
		}
	}
	return "Photos"
}
