package render

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/five82/folio/internal/gallery"
)

// Apply returns a copy of img with the filters applied in CSS order:
// grayscale, blur, brightness, contrast, saturation. Neutral values are skipped.
func Apply(img image.Image, f gallery.Filters) *image.NRGBA {
	out := imaging.Clone(img)

	switch {
	case f.Grayscale >= 100:
		out = imaging.Grayscale(out)
	case f.Grayscale > 0:
		out = imaging.Overlay(out, imaging.Grayscale(out), image.Pt(0, 0), f.Grayscale/100)
	}
	if f.Blur > 0 {
		out = imaging.Blur(out, f.Blur)
	}
	if f.Brightness != 100 {
		out = imaging.AdjustBrightness(out, clamp(f.Brightness-100, -100, 100))
	}
	if f.Contrast != 100 {
		out = imaging.AdjustContrast(out, clamp(f.Contrast-100, -100, 100))
	}
	if f.Saturation != 100 {
		out = imaging.AdjustSaturation(out, clamp(f.Saturation-100, -100, 500))
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
