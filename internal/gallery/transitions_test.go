package gallery

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func samplePhotos() []Photo {
	return []Photo{
		{ID: "1", URL: "https://example.com/1.jpg", Title: "Forest"},
		{ID: "2", URL: "https://example.com/2.jpg", Title: "Mountains", Favorite: true},
		{ID: "3", URL: "https://example.com/3.jpg", Title: "Forest Path"},
		{ID: "4", URL: "https://example.com/4.jpg", Title: "Waterfall"},
	}
}

func sampleState() State {
	return State{Photos: samplePhotos(), Albums: []Album{}}
}

func mustApply(t *testing.T, s State, a Action) (State, Slots) {
	t.Helper()
	next, slots, err := a.Apply(s)
	if err != nil {
		t.Fatalf("%s returned error: %v", a.Name, err)
	}
	return next, slots
}

func TestAddPhoto_AppendsAndReportsPhotos(t *testing.T) {
	s := sampleState()
	p := Photo{ID: "5", URL: "data:image/png;base64,AAAA", Title: "Upload"}

	next, slots := mustApply(t, s, AddPhoto(p))
	if slots != SlotPhotos {
		t.Fatalf("slots = %v, want photos", slots)
	}
	if len(next.Photos) != 5 || next.Photos[4].ID != "5" {
		t.Fatalf("photos = %#v, want 5 with id 5 last", next.Photos)
	}
	if len(s.Photos) != 4 {
		t.Fatalf("input state mutated: %d photos", len(s.Photos))
	}
}

func TestAddPhoto_RejectsDuplicateAndInvalid(t *testing.T) {
	s := sampleState()

	_, _, err := AddPhoto(Photo{ID: "1", URL: "https://example.com/x.jpg"}).Apply(s)
	if !errors.Is(err, ErrDuplicatePhoto) {
		t.Fatalf("duplicate error = %v, want ErrDuplicatePhoto", err)
	}

	cases := []struct {
		name  string
		photo Photo
	}{
		{"missing id", Photo{URL: "https://example.com/x.jpg"}},
		{"missing url", Photo{ID: "9"}},
		{"unsupported source", Photo{ID: "9", URL: "file:///tmp/x.jpg"}},
		{"filter out of range", Photo{ID: "9", URL: "https://example.com/x.jpg", Filters: &Filters{Grayscale: 101, Brightness: 100, Contrast: 100, Saturation: 100}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, slots, err := AddPhoto(tc.photo).Apply(s)
			if !errors.Is(err, ErrInvalidPhoto) {
				t.Fatalf("error = %v, want ErrInvalidPhoto", err)
			}
			if !slots.Empty() || len(next.Photos) != 4 {
				t.Fatalf("rejected add changed state: slots=%v photos=%d", slots, len(next.Photos))
			}
		})
	}
}

func TestRemovePhoto_MissingIsNoop(t *testing.T) {
	s := sampleState()

	next, slots := mustApply(t, s, RemovePhoto("nope"))
	if !slots.Empty() {
		t.Fatalf("slots = %v, want none", slots)
	}
	if !reflect.DeepEqual(next, s) {
		t.Fatalf("state changed on missing id")
	}

	next, slots = mustApply(t, s, RemovePhoto("2"))
	if slots != SlotPhotos || len(next.Photos) != 3 {
		t.Fatalf("remove: slots=%v photos=%d, want photos/3", slots, len(next.Photos))
	}
	if _, ok := next.Photo("2"); ok {
		t.Fatalf("photo 2 still present after remove")
	}
}

func TestAddAlbum_EmptyTitleRejected(t *testing.T) {
	s := sampleState()
	for _, title := range []string{"", "   ", "\t\n"} {
		next, slots, err := AddAlbum(title).Apply(s)
		if !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("AddAlbum(%q) error = %v, want ErrEmptyTitle", title, err)
		}
		if !slots.Empty() || len(next.Albums) != 0 {
			t.Fatalf("AddAlbum(%q) created an album", title)
		}
	}
}

func TestAddAlbum_CreatesEmptyAlbum(t *testing.T) {
	before := time.Now()
	next, slots := mustApply(t, sampleState(), AddAlbum("  Trip  "))
	if slots != SlotAlbums {
		t.Fatalf("slots = %v, want albums", slots)
	}
	if len(next.Albums) != 1 {
		t.Fatalf("albums = %d, want 1", len(next.Albums))
	}
	a := next.Albums[0]
	if a.Title != "Trip" || a.ID == "" || len(a.Photos) != 0 || a.Photos == nil {
		t.Fatalf("album = %#v, want trimmed title, id, empty photo list", a)
	}
	if a.CreatedAt.Before(before) {
		t.Fatalf("CreatedAt = %v, want >= %v", a.CreatedAt, before)
	}
}

func TestCreateAlbum_DuplicateID(t *testing.T) {
	s, _ := mustApply(t, sampleState(), CreateAlbum(Album{ID: "a", Title: "One"}))
	_, _, err := CreateAlbum(Album{ID: "a", Title: "Two"}).Apply(s)
	if !errors.Is(err, ErrDuplicateAlbum) {
		t.Fatalf("error = %v, want ErrDuplicateAlbum", err)
	}
}

func TestRemoveAlbum_RemovesOnlyThatAlbum(t *testing.T) {
	s := sampleState()
	s, _ = mustApply(t, s, CreateAlbum(Album{ID: "a", Title: "A"}))
	s, _ = mustApply(t, s, CreateAlbum(Album{ID: "b", Title: "B"}))
	fav := Photo{ID: "9", URL: "https://example.com/9.jpg", Favorite: true}
	s, _ = mustApply(t, s, AddPhotoToAlbum("a", fav))
	s, _ = mustApply(t, s, AddPhotoToAlbum("b", samplePhotos()[0]))

	next, slots := mustApply(t, s, RemoveAlbum("a"))
	if slots != SlotAlbums {
		t.Fatalf("slots = %v, want albums", slots)
	}
	if len(next.Albums) != 1 || next.Albums[0].ID != "b" || len(next.Albums[0].Photos) != 1 {
		t.Fatalf("albums = %#v, want only b with its photo", next.Albums)
	}
	for _, e := range FavoritePhotos(next) {
		if e.Photo.ID == "9" {
			t.Fatalf("photo from removed album still reachable via favorites")
		}
	}
	if len(next.Photos) != 4 {
		t.Fatalf("removing an album touched the top-level pool")
	}

	_, slots = mustApply(t, next, RemoveAlbum("missing"))
	if !slots.Empty() {
		t.Fatalf("missing album remove slots = %v, want none", slots)
	}
}

func TestUpdateAlbum(t *testing.T) {
	s, _ := mustApply(t, sampleState(), CreateAlbum(Album{ID: "a", Title: "A"}))

	next, slots := mustApply(t, s, UpdateAlbum("a", "Renamed"))
	if slots != SlotAlbums || next.Albums[0].Title != "Renamed" {
		t.Fatalf("rename: slots=%v title=%q", slots, next.Albums[0].Title)
	}
	if _, _, err := UpdateAlbum("a", " ").Apply(s); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("blank rename error = %v, want ErrEmptyTitle", err)
	}
	if _, slots := mustApply(t, s, UpdateAlbum("zzz", "X")); !slots.Empty() {
		t.Fatalf("missing album rename slots = %v, want none", slots)
	}
}

func TestToggleFavorite_IsItsOwnInverse(t *testing.T) {
	s := sampleState()
	for _, id := range []string{"1", "2"} {
		orig, _ := s.Photo(id)
		once, _ := mustApply(t, s, ToggleFavorite(id))
		p, _ := once.Photo(id)
		if p.Favorite == orig.Favorite {
			t.Fatalf("toggle did not flip photo %s", id)
		}
		twice, _ := mustApply(t, once, ToggleFavorite(id))
		p, _ = twice.Photo(id)
		if p.Favorite != orig.Favorite {
			t.Fatalf("double toggle of %s = %v, want %v", id, p.Favorite, orig.Favorite)
		}
	}
	if _, slots := mustApply(t, s, ToggleFavorite("missing")); !slots.Empty() {
		t.Fatalf("missing toggle slots = %v, want none", slots)
	}
}

func TestToggleDarkMode(t *testing.T) {
	next, slots := mustApply(t, sampleState(), ToggleDarkMode())
	if !next.DarkMode || slots != SlotDarkMode {
		t.Fatalf("dark mode = %v slots = %v, want true/darkMode", next.DarkMode, slots)
	}
	next, _ = mustApply(t, next, ToggleDarkMode())
	if next.DarkMode {
		t.Fatalf("second toggle left dark mode on")
	}
}

func TestAlbumCopyIsIndependent(t *testing.T) {
	s := sampleState()
	s, _ = mustApply(t, s, AddAlbum("Trip"))
	albumID := s.Albums[0].ID
	photoX := samplePhotos()[0]

	s, slots := mustApply(t, s, AddPhotoToAlbum(albumID, photoX))
	if slots != SlotAlbums {
		t.Fatalf("slots = %v, want albums only", slots)
	}
	if len(s.Photos) != 4 {
		t.Fatalf("AddPhotoToAlbum changed the top-level pool")
	}
	if got, ok := s.Albums[0].Photo(photoX.ID); !ok || got.Title != photoX.Title {
		t.Fatalf("album does not contain photoX: %#v", s.Albums[0].Photos)
	}

	s, _ = mustApply(t, s, ToggleFavorite(photoX.ID))
	top, _ := s.Photo(photoX.ID)
	inAlbum, _ := s.Albums[0].Photo(photoX.ID)
	if !top.Favorite {
		t.Fatalf("top-level copy not favorited")
	}
	if inAlbum.Favorite {
		t.Fatalf("album copy favorited by top-level toggle")
	}

	s, _ = mustApply(t, s, RemovePhoto(photoX.ID))
	if _, ok := s.Albums[0].Photo(photoX.ID); !ok {
		t.Fatalf("removing top-level photo cascaded into album")
	}
}

func TestAddPhotoToAlbum_MissingAlbumAndDuplicate(t *testing.T) {
	s, _ := mustApply(t, sampleState(), CreateAlbum(Album{ID: "a", Title: "A"}))
	p := samplePhotos()[1]

	if _, slots := mustApply(t, s, AddPhotoToAlbum("missing", p)); !slots.Empty() {
		t.Fatalf("missing album slots = %v, want none", slots)
	}
	s, _ = mustApply(t, s, AddPhotoToAlbum("a", p))
	if _, _, err := AddPhotoToAlbum("a", p).Apply(s); !errors.Is(err, ErrDuplicatePhoto) {
		t.Fatalf("duplicate add error = %v, want ErrDuplicatePhoto", err)
	}
}

func TestRemovePhotoFromAlbum_OnlyThatAlbum(t *testing.T) {
	s := sampleState()
	s, _ = mustApply(t, s, CreateAlbum(Album{ID: "a", Title: "A"}))
	s, _ = mustApply(t, s, CreateAlbum(Album{ID: "b", Title: "B"}))
	p := samplePhotos()[2]
	s, _ = mustApply(t, s, AddPhotoToAlbum("a", p))
	s, _ = mustApply(t, s, AddPhotoToAlbum("b", p))

	next, slots := mustApply(t, s, RemovePhotoFromAlbum("a", p.ID))
	if slots != SlotAlbums {
		t.Fatalf("slots = %v, want albums", slots)
	}
	if _, ok := next.Albums[0].Photo(p.ID); ok {
		t.Fatalf("photo still in album a")
	}
	if _, ok := next.Albums[1].Photo(p.ID); !ok {
		t.Fatalf("photo removed from album b too")
	}
	if _, ok := next.Photo(p.ID); !ok {
		t.Fatalf("photo removed from top-level pool")
	}
	if _, slots := mustApply(t, next, RemovePhotoFromAlbum("a", p.ID)); !slots.Empty() {
		t.Fatalf("second remove slots = %v, want none", slots)
	}
}

func TestUpdatePhotoInAlbum_SyncsBothCopies(t *testing.T) {
	s := sampleState()
	s, _ = mustApply(t, s, CreateAlbum(Album{ID: "a", Title: "A"}))
	shared := samplePhotos()[0]
	s, _ = mustApply(t, s, AddPhotoToAlbum("a", shared))

	f := Filters{Grayscale: 50, Blur: 1.5, Brightness: 120, Contrast: 90, Saturation: 110}
	u := PhotoUpdate{Title: ptr("Edited"), Filters: &f}
	next, slots := mustApply(t, s, UpdatePhotoInAlbum("a", shared.ID, u))
	if slots != SlotPhotos|SlotAlbums {
		t.Fatalf("slots = %v, want photos,albums", slots)
	}
	top, _ := next.Photo(shared.ID)
	inAlbum, _ := next.Albums[0].Photo(shared.ID)
	if !reflect.DeepEqual(top, inAlbum) {
		t.Fatalf("copies differ after update:\n top   %#v\n album %#v", top, inAlbum)
	}
	if top.Title != "Edited" || top.Filters == nil || *top.Filters != f {
		t.Fatalf("update not applied: %#v", top)
	}

	// Mutating the caller's filters must not reach the stored state.
	f.Grayscale = 0
	again, _ := next.Photo(shared.ID)
	if again.Filters.Grayscale != 50 {
		t.Fatalf("stored filters alias caller value")
	}
}

func TestUpdatePhotoInAlbum_AlbumOnlyPhoto(t *testing.T) {
	s, _ := mustApply(t, sampleState(), CreateAlbum(Album{ID: "a", Title: "A"}))
	only := Photo{ID: "album-only", URL: "https://example.com/a.jpg", Title: "Old"}
	s, _ = mustApply(t, s, AddPhotoToAlbum("a", only))

	next, slots := mustApply(t, s, UpdatePhotoInAlbum("a", only.ID, SetTitle("New")))
	if slots != SlotAlbums {
		t.Fatalf("slots = %v, want albums only", slots)
	}
	got, _ := next.Albums[0].Photo(only.ID)
	if got.Title != "New" {
		t.Fatalf("album copy title = %q, want New", got.Title)
	}
	if !reflect.DeepEqual(next.Photos, s.Photos) {
		t.Fatalf("top-level pool changed")
	}
}

func TestUpdatePhotoInAlbum_TopLevelOnlyAndInvalid(t *testing.T) {
	s := sampleState()

	next, slots := mustApply(t, s, UpdatePhotoInAlbum("", "3", SetTitle("Path")))
	if slots != SlotPhotos {
		t.Fatalf("slots = %v, want photos", slots)
	}
	if p, _ := next.Photo("3"); p.Title != "Path" {
		t.Fatalf("title = %q, want Path", p.Title)
	}

	bad := Filters{Blur: 11, Brightness: 100, Contrast: 100, Saturation: 100}
	if _, _, err := UpdatePhotoInAlbum("", "3", SetFilters(bad)).Apply(s); !errors.Is(err, ErrInvalidPhoto) {
		t.Fatalf("invalid filters error = %v, want ErrInvalidPhoto", err)
	}
	if _, slots := mustApply(t, s, UpdatePhotoInAlbum("", "missing", SetTitle("x"))); !slots.Empty() {
		t.Fatalf("missing photo slots = %v, want none", slots)
	}
	if _, slots := mustApply(t, s, UpdatePhotoInAlbum("", "3", PhotoUpdate{})); !slots.Empty() {
		t.Fatalf("empty update slots = %v, want none", slots)
	}
}

func TestUpdatePhotoInAlbum_ClearFilters(t *testing.T) {
	s := sampleState()
	s, _ = mustApply(t, s, UpdatePhotoInAlbum("", "1", SetFilters(Filters{Grayscale: 100, Brightness: 100, Contrast: 100, Saturation: 100})))

	next, _ := mustApply(t, s, UpdatePhotoInAlbum("", "1", PhotoUpdate{ClearFilters: true}))
	if p, _ := next.Photo("1"); p.Filters != nil {
		t.Fatalf("filters = %#v, want nil", p.Filters)
	}
}

func TestSlotsString(t *testing.T) {
	cases := map[Slots]string{
		NoSlots:                 "none",
		SlotPhotos:              "photos",
		SlotPhotos | SlotAlbums: "photos,albums",
		AllSlots:                "photos,albums,darkMode",
		SlotDarkMode:            "darkMode",
	}
	for slots, want := range cases {
		if got := slots.String(); got != want {
			t.Fatalf("Slots(%d).String() = %q, want %q", slots, got, want)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
