// Package gallery holds the photo gallery domain model and its state transitions.
//
// # Overview
//
// The gallery is three pieces of state: the top-level photo pool, an ordered
// list of albums, and a dark-mode display flag. Together they form a State,
// which is also the unit of persistence.
//
// # Data Model
//
// Photo:
//   - ID: opaque, caller supplied, never changed after creation
//   - URL: remote http(s) URL or an image data URI
//   - Title, Favorite: user editable
//   - Filters: optional CSS-style adjustments (grayscale, blur, brightness,
//     contrast, saturation)
//   - TakenAt: optional capture time read from EXIF on upload
//
// Album:
//   - ID, Title, CreatedAt
//   - Photos: independent copies, not references into the top-level pool
//
// A photo added to an album is copied. Favoriting the top-level photo does not
// touch the album copy, and deleting one copy does not delete the other.
// UpdatePhotoInAlbum is the single transition that writes both copies, so
// title and filter edits stay in step wherever the photo is edited from.
//
// # Transitions
//
// Every mutation is an Action. Apply is pure: it never mutates the input
// State and returns the next State plus the Slots that changed:
//
//	next, slots, err := gallery.ToggleFavorite("2").Apply(current)
//	// slots == gallery.SlotPhotos
//
// Actions aimed at a missing photo or album are no-ops. They return the input
// state and NoSlots, never an error, so stale ids from the UI are harmless.
//
// Actions return errors for input the gallery refuses to record:
//
//   - ErrEmptyTitle: blank album title on create or rename
//   - ErrDuplicatePhoto: photo id already present at the target location
//   - ErrDuplicateAlbum: album id already taken
//   - ErrInvalidPhoto: missing id/url, unsupported source, filter out of range
//
// # Views
//
// View is a closed set: AllPhotos, Favorites, AlbumView. Select resolves a
// view to Entries, each tagged with the album id it came from (empty for the
// top-level pool). An unknown album resolves to an empty list.
//
//	view, err := gallery.ParseView("album:" + id)
//	entries := gallery.Select(state, view)
//
// FavoritePhotos returns top-level favorites first, then each album's
// favorites in album order.
//
// # Filters
//
// Filters mirrors the CSS filter functions and their ranges:
//
//	grayscale   0..100 %   default 0
//	blur        0..10 px   default 0
//	brightness  0..200 %   default 100
//	contrast    0..200 %   default 100
//	saturation  0..200 %   default 100
//
// Validation uses go-playground/validator struct tags; error messages use the
// json field names.
package gallery
