package pixabay

import (
	"strconv"
	"strings"

	"github.com/five82/folio/internal/gallery"
)

// SearchResponse is the body returned by /api/.
type SearchResponse struct {
	Total     int   `json:"total"`
	TotalHits int   `json:"totalHits"`
	Hits      []Hit `json:"hits"`
}

// Hit is one search result.
type Hit struct {
	ID            int64  `json:"id"`
	PageURL       string `json:"pageURL"`
	Tags          string `json:"tags"`
	PreviewURL    string `json:"previewURL"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	ImageWidth    int    `json:"imageWidth"`
	ImageHeight   int    `json:"imageHeight"`
	Views         int    `json:"views"`
	Downloads     int    `json:"downloads"`
	Likes         int    `json:"likes"`
	User          string `json:"user"`
}

// ImageURL returns the best available full-size URL.
func (h Hit) ImageURL() string {
	if url := strings.TrimSpace(h.LargeImageURL); url != "" {
		return url
	}
	return strings.TrimSpace(h.WebformatURL)
}

// Title returns the hit's tags, or a generic name when it has none.
func (h Hit) Title() string {
	if tags := strings.TrimSpace(h.Tags); tags != "" {
		return tags
	}
	return "Pixabay #" + strconv.FormatInt(h.ID, 10)
}

// Photo converts the hit to a gallery photo with the given id.
func (h Hit) Photo(id string) gallery.Photo {
	return gallery.Photo{
		ID:    id,
		URL:   h.ImageURL(),
		Title: h.Title(),
	}
}
