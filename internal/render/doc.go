// Package render turns gallery photos into pixels: it loads photo sources,
// applies visual filters and draws terminal previews.
//
// # Sources
//
// Loader.Bytes accepts base64 data URIs (uploads) and http(s) URLs (seed
// photos, stock imports). Remote images are cached in memory, up to 16
// entries, oldest evicted first.
//
// # Filters
//
// Apply mirrors the CSS filter chain with disintegration/imaging. Percentages
// map to imaging's signed adjustments as value - 100:
//
//	grayscale(G%)   Overlay of the grayscale image at opacity G/100
//	blur(Bpx)       Blur with sigma B
//	brightness(B%)  AdjustBrightness(B - 100)
//	contrast(C%)    AdjustContrast(C - 100)
//	saturate(S%)    AdjustSaturation(S - 100)
//
// # Preview
//
// Thumbnail downsizes with nfnt/resize. Blocks prints an image as rows of "▀"
// glyphs with the upper pixel as foreground and the lower pixel as background,
// styled through lipgloss so the output respects the terminal's color profile.
package render
