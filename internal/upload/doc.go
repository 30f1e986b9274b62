// Package upload converts local image files into gallery photos.
//
// Each file is read fully and sniffed with http.DetectContentType; anything
// that is not image/* is rejected with ErrNotImage. Images whose longest side
// exceeds the configured maximum (2000 px by default) are scaled down with
// imaging.Fit and re-encoded as PNG or JPEG. The capture time is read from
// EXIF when present. The result is embedded in the photo URL as a base64 data
// URI, so uploads survive without the original file.
//
// Files processes a batch in order and stops at the first failure:
//
//	added, err := svc.Files(ctx, []string{"a.jpg", "b.png"}, "", "")
//	// err: "upload failed: b.png: file is not an image (text/plain; charset=utf-8)"
//	// added holds a.jpg's photo, which stays in the gallery
package upload
