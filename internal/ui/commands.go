package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/five82/folio/internal/gallery"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/logtail"
	"github.com/five82/folio/internal/pixabay"
	"github.com/five82/folio/internal/render"
	"github.com/five82/folio/internal/state"
)

// snapshotMsg carries a store snapshot. Live snapshots come from the
// subscription and re-arm it.
type snapshotMsg struct {
	snap state.Snapshot
	live bool
}

// opDoneMsg reports the outcome of a store operation.
type opDoneMsg struct {
	op   string
	note string
	err  error
}

// previewMsg carries a rendered preview.
type previewMsg struct {
	key    string
	seq    int
	blocks string
	label  string
	err    error
}

// searchMsg carries stock search results.
type searchMsg struct {
	term string
	hits []pixabay.Hit
	err  error
}

// uploadTitleMsg carries chosen upload paths to the title prompt.
type uploadTitleMsg struct {
	paths   []string
	albumID string
}

// uploadMsg reports an upload batch.
type uploadMsg struct {
	photos []gallery.Photo
	err    error
}

// logsMsg carries formatted log lines.
type logsMsg struct {
	lines []string
	err   error
}

type tickMsg time.Time

var errNoLoader = errors.New("preview unavailable")

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: store.Snapshot()}
	}
}

// waitForSnapshot blocks until the store publishes a change.
func waitForSnapshot(updates <-chan state.Snapshot) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg{snap: snap, live: true}
	}
}

// run executes a store operation off the update loop.
func (m Model) run(op, note string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, note: note, err: fn(ctx)}
	}
}

func (m Model) previewCmd(entry gallery.Entry, seq, cols, rows int) tea.Cmd {
	ctx, loader := m.ctx, m.loader
	key := entryKey(entry)
	return func() tea.Msg {
		if loader == nil {
			return previewMsg{key: key, seq: seq, err: errNoLoader}
		}
		ctx, cancel := context.WithTimeout(ctx, PreviewTimeout)
		defer cancel()

		img, err := loader.Image(ctx, entry.Photo.URL)
		if err != nil {
			logging.Component(ctx, "ui").Warn().Err(err).Str("photo_id", entry.Photo.ID).Msg("preview failed")
			return previewMsg{key: key, seq: seq, err: err}
		}
		bounds := img.Bounds()
		// Filters run on a reduced copy; the preview needs at most two pixels per cell.
		small := render.Thumbnail(img, cols*2, rows*4)
		filtered := render.Apply(small, entry.Photo.EffectiveFilters())
		return previewMsg{
			key:    key,
			seq:    seq,
			blocks: render.Blocks(filtered, cols, rows),
			label:  render.DimensionsLabel(bounds.Dx(), bounds.Dy()),
		}
	}
}

func (m Model) searchCmd(term string) tea.Cmd {
	ctx, searcher := m.ctx, m.searcher
	return func() tea.Msg {
		if searcher == nil || !searcher.HasKey() {
			return searchMsg{term: term, err: pixabay.ErrMissingAPIKey}
		}
		ctx, cancel := context.WithTimeout(ctx, SearchTimeout)
		defer cancel()

		hits, err := searcher.Search(ctx, term)
		if err != nil {
			logging.Component(ctx, "ui").Warn().Err(err).Str("term", term).Msg("stock search failed")
		}
		return searchMsg{term: term, hits: hits, err: err}
	}
}

func (m Model) importCmd(hit pixabay.Hit, albumID string) tea.Cmd {
	store := m.store
	photo := hit.Photo(uuid.NewString())
	return m.run("import", fmt.Sprintf("Imported %q", photo.Title), func(ctx context.Context) error {
		if err := store.AddPhoto(ctx, photo); err != nil {
			return err
		}
		if albumID != "" {
			return store.AddPhotoToAlbum(ctx, albumID, photo)
		}
		return nil
	})
}

func (m Model) uploadCmd(paths []string, title, albumID string) tea.Cmd {
	ctx, svc := m.ctx, m.uploader
	return func() tea.Msg {
		if svc == nil {
			return uploadMsg{err: errors.New("upload unavailable")}
		}
		photos, err := svc.Files(ctx, paths, title, albumID)
		return uploadMsg{photos: photos, err: err}
	}
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsMsg{}
		}
		lines, err := logtail.Read(path, LogTailLines)
		if err != nil {
			return logsMsg{err: err}
		}
		return logsMsg{lines: logtail.FormatLines(lines)}
	}
}

// entryKey identifies a photo at one location.
func entryKey(e gallery.Entry) string {
	return e.AlbumID + "/" + e.Photo.ID
}
