package render

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/five82/folio/internal/gallery"
)

// Export writes img with the photo's filters applied. The file format is
// chosen from the extension of path (.jpg, .png, .gif, .tif, .bmp).
func Export(img image.Image, p gallery.Photo, path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	out := Apply(img, p.EffectiveFilters())
	if err := imaging.Save(out, path, imaging.JPEGQuality(90)); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
