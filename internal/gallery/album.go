package gallery

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Album is a named, ordered collection of independently owned photo copies.
type Album struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Photos    []Photo   `json:"photos"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAlbum builds an empty album with a random id and the current time.
// The title is trimmed; blank titles are rejected when the album is added.
func NewAlbum(title string) Album {
	return Album{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Photos:    []Photo{},
		CreatedAt: time.Now(),
	}
}

// Clone returns a deep copy of a.
func (a Album) Clone() Album {
	dup := a
	dup.Photos = clonePhotos(a.Photos)
	if dup.Photos == nil {
		dup.Photos = []Photo{}
	}
	return dup
}

// Photo returns the album's copy of the photo with the given id.
func (a Album) Photo(id string) (Photo, bool) {
	for _, p := range a.Photos {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return Photo{}, false
}

func (a Album) hasPhoto(id string) bool {
	_, ok := a.Photo(id)
	return ok
}
