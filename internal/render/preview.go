package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

// Thumbnail scales img down to fit within maxWidth x maxHeight, keeping the
// aspect ratio. Images already inside the box are returned unchanged.
func Thumbnail(img image.Image, maxWidth, maxHeight int) image.Image {
	if maxWidth <= 0 || maxHeight <= 0 {
		return img
	}
	return resize.Thumbnail(uint(maxWidth), uint(maxHeight), img, resize.Lanczos3)
}

// Blocks renders img as terminal text using upper half blocks, two pixel rows
// per line. The result fits within cols x rows cells.
func Blocks(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	scaled := fitCells(img, cols, rows)
	b := scaled.Bounds()

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hex(scaled.At(x, y))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(top))
			if y+1 < b.Max.Y {
				style = style.Background(lipgloss.Color(hex(scaled.At(x, y+1))))
			}
			sb.WriteString(style.Render("▀"))
		}
	}
	return sb.String()
}

// fitCells scales img so one pixel maps to half a terminal cell. Cells are
// roughly twice as tall as wide, so a cols x 2*rows pixel box keeps the
// aspect ratio of the photo on screen.
func fitCells(img image.Image, cols, rows int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}
	maxW, maxH := cols, rows*2
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))
	return resize.Resize(uint(nw), uint(nh), img, resize.Bilinear)
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// Dimensions reports the natural size of an encoded image without decoding
// its pixels.
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// DimensionsLabel formats a size the way the preview pane shows it.
func DimensionsLabel(width, height int) string {
	return fmt.Sprintf("Original dimensions: %d × %d pixels", width, height)
}
