package gallery

import "strings"

// State is the full persisted gallery: top-level photos, albums and the
// dark-mode display flag.
type State struct {
	Photos   []Photo
	Albums   []Album
	DarkMode bool
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{DarkMode: s.DarkMode, Photos: clonePhotos(s.Photos)}
	if s.Albums != nil {
		out.Albums = make([]Album, len(s.Albums))
		for i, a := range s.Albums {
			out.Albums[i] = a.Clone()
		}
	}
	return out
}

// Photo returns the top-level photo with the given id.
func (s State) Photo(id string) (Photo, bool) {
	for _, p := range s.Photos {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return Photo{}, false
}

// Album returns the album with the given id.
func (s State) Album(id string) (Album, bool) {
	for _, a := range s.Albums {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return Album{}, false
}

// Slots is a bit set naming the persisted parts of State touched by a transition.
type Slots uint8

const (
	SlotPhotos Slots = 1 << iota
	SlotAlbums
	SlotDarkMode

	NoSlots  Slots = 0
	AllSlots       = SlotPhotos | SlotAlbums | SlotDarkMode
)

// Has reports whether every slot in other is set in s.
func (s Slots) Has(other Slots) bool {
	return other != 0 && s&other == other
}

// Empty reports whether no slot is set.
func (s Slots) Empty() bool {
	return s == 0
}

func (s Slots) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	if s.Has(SlotPhotos) {
		parts = append(parts, "photos")
	}
	if s.Has(SlotAlbums) {
		parts = append(parts, "albums")
	}
	if s.Has(SlotDarkMode) {
		parts = append(parts, "darkMode")
	}
	return strings.Join(parts, ",")
}

func clonePhotos(photos []Photo) []Photo {
	if photos == nil {
		return nil
	}
	dup := make([]Photo, len(photos))
	for i, p := range photos {
		dup[i] = p.Clone()
	}
	return dup
}
