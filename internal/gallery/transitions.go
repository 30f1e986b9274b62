package gallery

import (
	"fmt"
	"strings"
)

// Action is a named, pure state transition. Apply never mutates its input;
// it returns the next state and the slots that changed. An action that
// changes nothing returns NoSlots and the input state.
type Action struct {
	Name  string
	apply func(State) (State, Slots, error)
}

// Apply runs the transition against s.
func (a Action) Apply(s State) (State, Slots, error) {
	if a.apply == nil {
		return s, NoSlots, nil
	}
	next, slots, err := a.apply(s)
	if err != nil {
		return s, NoSlots, fmt.Errorf("%s: %w", a.Name, err)
	}
	if slots.Empty() {
		return s, NoSlots, nil
	}
	return next, slots, nil
}

// AddPhoto appends p to the top-level photo list.
func AddPhoto(p Photo) Action {
	p = p.Clone()
	return Action{Name: "addPhoto", apply: func(s State) (State, Slots, error) {
		if err := ValidatePhoto(p); err != nil {
			return s, NoSlots, err
		}
		if _, ok := s.Photo(p.ID); ok {
			return s, NoSlots, fmt.Errorf("%w: %s", ErrDuplicatePhoto, p.ID)
		}
		next := shallow(s)
		next.Photos = append(clonePhotos(s.Photos), p.Clone())
		return next, SlotPhotos, nil
	}}
}

// RemovePhoto removes the first top-level photo with the given id.
func RemovePhoto(photoID string) Action {
	return Action{Name: "removePhoto", apply: func(s State) (State, Slots, error) {
		photos, removed := removeFirst(s.Photos, photoID)
		if !removed {
			return s, NoSlots, nil
		}
		next := shallow(s)
		next.Photos = photos
		return next, SlotPhotos, nil
	}}
}

// AddAlbum creates an empty album with a random id and the current time.
func AddAlbum(title string) Action {
	return CreateAlbum(NewAlbum(title))
}

// CreateAlbum appends album as given. Its title must not be blank.
func CreateAlbum(album Album) Action {
	album = album.Clone()
	album.Title = strings.TrimSpace(album.Title)
	return Action{Name: "addAlbum", apply: func(s State) (State, Slots, error) {
		if album.Title == "" {
			return s, NoSlots, ErrEmptyTitle
		}
		if _, ok := s.Album(album.ID); ok {
			return s, NoSlots, fmt.Errorf("%w: %s", ErrDuplicateAlbum, album.ID)
		}
		next := shallow(s)
		next.Albums = append(cloneAlbums(s.Albums), album.Clone())
		return next, SlotAlbums, nil
	}}
}

// RemoveAlbum deletes the album and every photo copy it holds. Top-level
// photos are untouched.
func RemoveAlbum(albumID string) Action {
	return Action{Name: "removeAlbum", apply: func(s State) (State, Slots, error) {
		idx := albumIndex(s.Albums, albumID)
		if idx < 0 {
			return s, NoSlots, nil
		}
		albums := cloneAlbums(s.Albums)
		next := shallow(s)
		next.Albums = append(albums[:idx], albums[idx+1:]...)
		return next, SlotAlbums, nil
	}}
}

// UpdateAlbum replaces the album's title.
func UpdateAlbum(albumID, title string) Action {
	title = strings.TrimSpace(title)
	return Action{Name: "updateAlbum", apply: func(s State) (State, Slots, error) {
		if title == "" {
			return s, NoSlots, ErrEmptyTitle
		}
		idx := albumIndex(s.Albums, albumID)
		if idx < 0 || s.Albums[idx].Title == title {
			return s, NoSlots, nil
		}
		next := shallow(s)
		next.Albums = cloneAlbums(s.Albums)
		next.Albums[idx].Title = title
		return next, SlotAlbums, nil
	}}
}

// ToggleFavorite flips the favorite flag of the top-level photo. Copies held
// by albums keep their own flag.
func ToggleFavorite(photoID string) Action {
	return Action{Name: "toggleFavorite", apply: func(s State) (State, Slots, error) {
		idx := photoIndex(s.Photos, photoID)
		if idx < 0 {
			return s, NoSlots, nil
		}
		next := shallow(s)
		next.Photos = clonePhotos(s.Photos)
		next.Photos[idx].Favorite = !next.Photos[idx].Favorite
		return next, SlotPhotos, nil
	}}
}

// ToggleDarkMode flips the display flag.
func ToggleDarkMode() Action {
	return Action{Name: "toggleDarkMode", apply: func(s State) (State, Slots, error) {
		next := shallow(s)
		next.DarkMode = !s.DarkMode
		return next, SlotDarkMode, nil
	}}
}

// AddPhotoToAlbum appends an independent copy of p to the album. The
// top-level pool is not changed.
func AddPhotoToAlbum(albumID string, p Photo) Action {
	p = p.Clone()
	return Action{Name: "addPhotoToAlbum", apply: func(s State) (State, Slots, error) {
		if err := ValidatePhoto(p); err != nil {
			return s, NoSlots, err
		}
		idx := albumIndex(s.Albums, albumID)
		if idx < 0 {
			return s, NoSlots, nil
		}
		if s.Albums[idx].hasPhoto(p.ID) {
			return s, NoSlots, fmt.Errorf("%w: %s in album %s", ErrDuplicatePhoto, p.ID, albumID)
		}
		next := shallow(s)
		next.Albums = cloneAlbums(s.Albums)
		next.Albums[idx].Photos = append(next.Albums[idx].Photos, p.Clone())
		return next, SlotAlbums, nil
	}}
}

// RemovePhotoFromAlbum removes the photo copy from that album only.
func RemovePhotoFromAlbum(albumID, photoID string) Action {
	return Action{Name: "removePhotoFromAlbum", apply: func(s State) (State, Slots, error) {
		idx := albumIndex(s.Albums, albumID)
		if idx < 0 {
			return s, NoSlots, nil
		}
		photos, removed := removeFirst(s.Albums[idx].Photos, photoID)
		if !removed {
			return s, NoSlots, nil
		}
		next := shallow(s)
		next.Albums = cloneAlbums(s.Albums)
		next.Albums[idx].Photos = photos
		return next, SlotAlbums, nil
	}}
}

// UpdatePhotoInAlbum merges u into the album's copy of the photo and into the
// top-level photo with the same id. It is the only transition that keeps the
// two copies in step. An empty albumID updates the top-level photo only.
func UpdatePhotoInAlbum(albumID, photoID string, u PhotoUpdate) Action {
	return Action{Name: "updatePhotoInAlbum", apply: func(s State) (State, Slots, error) {
		if u.IsEmpty() {
			return s, NoSlots, nil
		}
		if u.Filters != nil {
			if err := ValidateFilters(*u.Filters); err != nil {
				return s, NoSlots, err
			}
		}

		next := shallow(s)
		var slots Slots

		if idx := albumIndex(s.Albums, albumID); albumID != "" && idx >= 0 {
			if pi := photoIndex(s.Albums[idx].Photos, photoID); pi >= 0 {
				merged := u.merge(s.Albums[idx].Photos[pi])
				if err := ValidatePhoto(merged); err != nil {
					return s, NoSlots, err
				}
				next.Albums = cloneAlbums(s.Albums)
				next.Albums[idx].Photos[pi] = merged
				slots |= SlotAlbums
			}
		}

		if pi := photoIndex(s.Photos, photoID); pi >= 0 {
			merged := u.merge(s.Photos[pi])
			if err := ValidatePhoto(merged); err != nil {
				return s, NoSlots, err
			}
			next.Photos = clonePhotos(s.Photos)
			next.Photos[pi] = merged
			slots |= SlotPhotos
		}
		return next, slots, nil
	}}
}

// shallow copies the top-level fields so callers can replace one slice
// without aliasing the other.
func shallow(s State) State {
	return State{Photos: s.Photos, Albums: s.Albums, DarkMode: s.DarkMode}
}

func removeFirst(photos []Photo, id string) ([]Photo, bool) {
	idx := photoIndex(photos, id)
	if idx < 0 {
		return photos, false
	}
	out := make([]Photo, 0, len(photos)-1)
	out = append(out, clonePhotos(photos[:idx])...)
	out = append(out, clonePhotos(photos[idx+1:])...)
	return out, true
}

func photoIndex(photos []Photo, id string) int {
	for i, p := range photos {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func albumIndex(albums []Album, id string) int {
	for i, a := range albums {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func cloneAlbums(albums []Album) []Album {
	if albums == nil {
		return nil
	}
	dup := make([]Album, len(albums))
	for i, a := range albums {
		dup[i] = a.Clone()
	}
	return dup
}
