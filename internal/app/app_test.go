package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/gallery"
	"github.com/five82/folio/internal/pixabay"
	"github.com/five82/folio/internal/render"
)

type testEnv struct {
	dir      string
	storeDir string
	opts     Options
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	for _, key := range []string{config.EnvBackend, config.EnvStoragePath, config.EnvRedisURL, config.EnvPixabayKey, config.EnvLogLevel} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	configPath := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("[storage]\nbackend = \"dir\"\npath = %q\n\n[log]\nlevel = \"debug\"\nfile = %q\n",
		storeDir, filepath.Join(dir, "folio.log"))
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return testEnv{
		dir:      dir,
		storeDir: storeDir,
		opts: Options{
			ConfigPath: configPath,
			EnvPath:    filepath.Join(dir, "missing.env"),
			PrefsPath:  filepath.Join(dir, "prefs.toml"),
		},
	}
}

func (e testEnv) open(t *testing.T) *App {
	t.Helper()
	a, err := Open(context.Background(), e.opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestOpen_SeedsDefaultsAndPersists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.open(t)
	if got := len(a.Store.Snapshot().State.Photos); got != 4 {
		t.Fatalf("seeded photos = %d, want 4", got)
	}
	if _, err := a.Store.AddAlbum(ctx, "Trip"); err != nil {
		t.Fatalf("AddAlbum: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := env.open(t)
	albums := reopened.Store.Snapshot().State.Albums
	if len(albums) != 1 || albums[0].Title != "Trip" {
		t.Fatalf("albums after reopen = %+v, want Trip", albums)
	}
}

func TestOpen_EphemeralWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	env.opts.Ephemeral = true

	a := env.open(t)
	if a.Config.Storage.Backend != "memory" {
		t.Fatalf("backend = %q, want memory", a.Config.Storage.Backend)
	}
	if _, err := a.Store.AddAlbum(context.Background(), "Trip"); err != nil {
		t.Fatalf("AddAlbum: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.storeDir, "albums.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("albums.json stat err = %v, want not exist", err)
	}
}

func TestOpen_CorruptSlotFails(t *testing.T) {
	env := newTestEnv(t)
	if err := os.MkdirAll(env.storeDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(env.storeDir, "albums.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write slot: %v", err)
	}

	_, err := Open(context.Background(), env.opts)
	if err == nil || !strings.Contains(err.Error(), "albums") {
		t.Fatalf("Open error = %v, want albums decode failure", err)
	}
}

func TestOpen_InvalidConfigFails(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv(config.EnvBackend, "floppy")
	if _, err := Open(context.Background(), env.opts); err == nil {
		t.Fatalf("Open with unknown backend succeeded")
	}
}

func TestFindAlbum(t *testing.T) {
	a := newTestEnv(t).open(t)
	album, err := a.Store.AddAlbum(context.Background(), "Summer Trip")
	if err != nil {
		t.Fatalf("AddAlbum: %v", err)
	}

	for _, ref := range []string{album.ID, "summer trip", "  Summer Trip "} {
		got, err := a.FindAlbum(ref)
		if err != nil || got.ID != album.ID {
			t.Fatalf("FindAlbum(%q) = %+v, %v", ref, got, err)
		}
	}
	if _, err := a.FindAlbum("winter"); !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("FindAlbum(winter) err = %v, want ErrAlbumNotFound", err)
	}
}

func TestImport(t *testing.T) {
	a := newTestEnv(t).open(t)
	ctx := context.Background()
	album, err := a.Store.AddAlbum(ctx, "Stock")
	if err != nil {
		t.Fatalf("AddAlbum: %v", err)
	}
	hits := []pixabay.Hit{
		{ID: 7, Tags: "lake, dusk", LargeImageURL: "https://cdn.pixabay.com/7.jpg"},
	}

	if _, err := a.Import(ctx, hits, 0, ""); !errors.Is(err, ErrNoSuchHit) {
		t.Fatalf("Import(0) err = %v, want ErrNoSuchHit", err)
	}
	if _, err := a.Import(ctx, hits, 1, "missing"); !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("Import into missing album err = %v, want ErrAlbumNotFound", err)
	}

	photo, err := a.Import(ctx, hits, 1, "stock")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if photo.Title != "lake, dusk" || photo.URL != "https://cdn.pixabay.com/7.jpg" {
		t.Fatalf("imported photo = %+v", photo)
	}
	if _, err := a.Store.Photo("", photo.ID); err != nil {
		t.Fatalf("top-level photo missing: %v", err)
	}
	if _, err := a.Store.Photo(album.ID, photo.ID); err != nil {
		t.Fatalf("album copy missing: %v", err)
	}
}

func TestExport_WritesFilteredImage(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(t)
	ctx := context.Background()

	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	photo := gallery.Photo{ID: "red", URL: render.EncodeDataURI("image/png", buf.Bytes()), Title: "Red"}
	if err := a.Store.AddPhoto(ctx, photo); err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}

	out := filepath.Join(env.dir, "red.png")
	if err := a.Export(ctx, "red", "", out); err != nil {
		t.Fatalf("Export: %v", err)
	}
	file, err := os.Open(out)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if cfg.Width != 6 || cfg.Height != 4 {
		t.Fatalf("export size = %dx%d, want 6x4", cfg.Width, cfg.Height)
	}

	if err := a.Export(ctx, "nope", "", out); err == nil {
		t.Fatalf("Export of missing photo succeeded")
	}
}

func TestList(t *testing.T) {
	a := newTestEnv(t).open(t)
	if _, err := a.Store.AddAlbum(context.Background(), "Trip"); err != nil {
		t.Fatalf("AddAlbum: %v", err)
	}

	tests := []struct {
		token     string
		wantTitle string
		wantCount int
	}{
		{"all", "All Photos", 4},
		{"favorites", "Favorite Photos", 1},
		{"Trip", "Trip", 0},
	}
	for _, tt := range tests {
		title, entries, err := a.List(tt.token)
		if err != nil {
			t.Fatalf("List(%q): %v", tt.token, err)
		}
		if title != tt.wantTitle || len(entries) != tt.wantCount {
			t.Fatalf("List(%q) = %q, %d entries, want %q, %d", tt.token, title, len(entries), tt.wantTitle, tt.wantCount)
		}
	}
	if _, _, err := a.List("bogus"); !errors.Is(err, gallery.ErrUnknownView) {
		t.Fatalf("List(bogus) err = %v, want ErrUnknownView", err)
	}
}
