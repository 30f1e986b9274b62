// Package pixabay provides a small HTTP client for the Pixabay image search API.
//
// Only the photo search endpoint is used:
//
//	GET /api/?key=KEY&q=TERM&image_type=photo&pretty=true
//
// The response's hits are returned in API order. Hit.Photo turns a result
// into a gallery.Photo that references the large image URL (falling back to
// the webformat URL) and uses the tags as its title.
//
// # Error Handling
//
// Following the rest of folio's HTTP code, errors are wrapped by stage:
//
//   - "create request: ..."
//   - "execute request: ..." (the API key is redacted from the URL)
//   - "api /api/ returned status N"
//   - "decode response: ..."
//
// Search without a key returns ErrMissingAPIKey before any request is made.
// An empty term returns no hits without a request.
package pixabay
