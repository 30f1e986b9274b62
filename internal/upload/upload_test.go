package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/folio/internal/gallery"
	"github.com/five82/folio/internal/render"
	"github.com/five82/folio/internal/state"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.NRGBA{R: 10, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func newService(t *testing.T, maxDim int) (*Service, *state.Store) {
	t.Helper()
	store := state.New(gallery.State{Photos: []gallery.Photo{}, Albums: []gallery.Album{}}, nil)
	svc := New(store, maxDim)
	n := 0
	svc.newID = func() string {
		n++
		return "up-" + string(rune('0'+n))
	}
	return svc, store
}

func TestConvert_EmbedsDataURI(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "beach.png", 10, 6)
	svc, _ := newService(t, 0)

	p, err := svc.Convert(path, "")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if p.ID != "up-1" || p.Title != "beach.png" || p.Favorite || p.TakenAt != nil {
		t.Fatalf("photo = %#v", p)
	}
	if !strings.HasPrefix(p.URL, "data:image/png;base64,") {
		t.Fatalf("url prefix = %q, want png data uri", p.URL[:24])
	}
	_, data, err := render.DecodeDataURI(p.URL)
	if err != nil {
		t.Fatalf("DecodeDataURI: %v", err)
	}
	original, _ := os.ReadFile(path)
	if !bytes.Equal(data, original) {
		t.Fatalf("small image should be embedded unchanged")
	}
	if err := gallery.ValidatePhoto(p); err != nil {
		t.Fatalf("converted photo invalid: %v", err)
	}

	titled, _ := svc.Convert(path, "  Beach day ")
	if titled.Title != "Beach day" {
		t.Fatalf("title = %q, want Beach day", titled.Title)
	}
}

func TestConvert_DownscalesLargeImages(t *testing.T) {
	path := writePNG(t, t.TempDir(), "wide.png", 400, 100)
	svc, _ := newService(t, 100)

	p, err := svc.Convert(path, "")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	_, data, _ := render.DecodeDataURI(p.URL)
	w, h, err := render.Dimensions(data)
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 100 || h != 25 {
		t.Fatalf("downscaled = %dx%d, want 100x25", w, h)
	}
}

func TestConvert_RejectsNonImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello, not an image"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	svc, _ := newService(t, 0)
	if _, err := svc.Convert(path, ""); !errors.Is(err, ErrNotImage) {
		t.Fatalf("Convert error = %v, want ErrNotImage", err)
	}
	if _, err := svc.Convert(filepath.Join(t.TempDir(), "missing.png"), ""); err == nil {
		t.Fatalf("Convert(missing) returned nil error")
	}
}

func TestFiles_StopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "a.png", 4, 4)
	bad := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(bad, []byte("plain text"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	never := writePNG(t, dir, "c.png", 4, 4)

	svc, store := newService(t, 0)
	added, err := svc.Files(context.Background(), []string{good, bad, never}, "", "")
	if err == nil || !strings.HasPrefix(err.Error(), "upload failed:") {
		t.Fatalf("Files error = %v, want upload failed", err)
	}
	if len(added) != 1 || added[0].Title != "a.png" {
		t.Fatalf("added = %#v, want only a.png", added)
	}
	photos := store.Snapshot().State.Photos
	if len(photos) != 1 || photos[0].Title != "a.png" {
		t.Fatalf("store photos = %#v, want a.png kept", photos)
	}
}

func TestFiles_AddsToAlbum(t *testing.T) {
	dir := t.TempDir()
	svc, store := newService(t, 0)
	ctx := context.Background()

	album, err := store.AddAlbum(ctx, "Trip")
	if err != nil {
		t.Fatalf("AddAlbum: %v", err)
	}
	paths := []string{writePNG(t, dir, "x.png", 2, 2), writePNG(t, dir, "y.png", 2, 2)}
	added, err := svc.Files(ctx, paths, "Holiday", album.ID)
	if err != nil {
		t.Fatalf("Files returned error: %v", err)
	}
	if len(added) != 2 || added[0].Title != "Holiday" || added[1].Title != "Holiday" {
		t.Fatalf("added = %#v, want two titled Holiday", added)
	}
	snap := store.Snapshot().State
	if len(snap.Photos) != 2 || len(snap.Albums[0].Photos) != 2 {
		t.Fatalf("photos=%d album photos=%d, want 2/2", len(snap.Photos), len(snap.Albums[0].Photos))
	}
}
