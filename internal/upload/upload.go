package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"github.com/five82/folio/internal/gallery"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/render"
)

// ErrNotImage is returned for files whose content is not an image.
var ErrNotImage = errors.New("file is not an image")

// DefaultMaxDimension bounds the longest side of an uploaded image.
const DefaultMaxDimension = 2000

const jpegQuality = 85

func init() {
	exif.RegisterParsers(mknote.All...)
}

// Sink receives converted photos. *state.Store satisfies it.
type Sink interface {
	AddPhoto(ctx context.Context, p gallery.Photo) error
	AddPhotoToAlbum(ctx context.Context, albumID string, p gallery.Photo) error
}

// Service converts local files into embedded photos.
type Service struct {
	sink         Sink
	maxDimension int
	newID        func() string
}

// New returns a service adding photos to sink. A maxDimension of zero uses
// DefaultMaxDimension.
func New(sink Sink, maxDimension int) *Service {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Service{sink: sink, maxDimension: maxDimension, newID: uuid.NewString}
}

// Files converts each path in order and adds it to the top-level pool, and
// to albumID as well when it is not empty. The first failure stops the batch;
// photos added before it stay added.
func (s *Service) Files(ctx context.Context, paths []string, title, albumID string) ([]gallery.Photo, error) {
	logger := logging.FromContext(ctx)
	added := make([]gallery.Photo, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return added, fmt.Errorf("upload failed: %w", err)
		}
		p, err := s.Convert(path, title)
		if err != nil {
			logger.Warn().Str("file", path).Err(err).Msg("upload rejected")
			return added, fmt.Errorf("upload failed: %w", err)
		}
		if err := s.sink.AddPhoto(ctx, p); err != nil {
			return added, fmt.Errorf("upload failed: %w", err)
		}
		if albumID != "" {
			if err := s.sink.AddPhotoToAlbum(ctx, albumID, p); err != nil {
				return added, fmt.Errorf("upload failed: %w", err)
			}
		}
		added = append(added, p)
		logger.Info().Str("file", path).Str("photo_id", p.ID).Msg("photo uploaded")
	}
	return added, nil
}

// Convert reads one file and builds a photo with its content embedded as a
// data URI. An empty title uses the file's base name.
func (s *Service) Convert(path, title string) (gallery.Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gallery.Photo{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	mediaType := http.DetectContentType(data)
	if !strings.HasPrefix(mediaType, "image/") {
		return gallery.Photo{}, fmt.Errorf("%s: %w (%s)", filepath.Base(path), ErrNotImage, mediaType)
	}

	takenAt := exifTime(data)

	data, mediaType, err = s.downscale(data, mediaType)
	if err != nil {
		return gallery.Photo{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = filepath.Base(path)
	}
	return gallery.Photo{
		ID:      s.newID(),
		URL:     render.EncodeDataURI(mediaType, data),
		Title:   title,
		TakenAt: takenAt,
	}, nil
}

// downscale re-encodes images whose longest side exceeds the limit. Other
// images are returned as they are.
func (s *Service) downscale(data []byte, mediaType string) ([]byte, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Formats the decoder does not know are embedded untouched.
		return data, mediaType, nil
	}
	if cfg.Width <= s.maxDimension && cfg.Height <= s.maxDimension {
		return data, mediaType, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	resized := imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}

func exifTime(data []byte) *time.Time {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	t, err := x.DateTime()
	if err != nil || t.IsZero() {
		return nil
	}
	return &t
}
