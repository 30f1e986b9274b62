package gallery

import (
	"fmt"
	"strings"
	"time"
)

// Photo is a single image in the top-level pool or copied into an album.
type Photo struct {
	ID       string     `json:"id" validate:"required"`
	URL      string     `json:"url" validate:"required,photosource"`
	Title    string     `json:"title"`
	Favorite bool       `json:"favorite"`
	Filters  *Filters   `json:"filters,omitempty"`
	TakenAt  *time.Time `json:"takenAt,omitempty"`
}

// Filters holds the CSS-style visual adjustments applied when a photo is shown.
type Filters struct {
	Grayscale  float64 `json:"grayscale" validate:"gte=0,lte=100"`
	Blur       float64 `json:"blur" validate:"gte=0,lte=10"`
	Brightness float64 `json:"brightness" validate:"gte=0,lte=200"`
	Contrast   float64 `json:"contrast" validate:"gte=0,lte=200"`
	Saturation float64 `json:"saturation" validate:"gte=0,lte=200"`
}

// DefaultFilters returns the neutral filter settings.
func DefaultFilters() Filters {
	return Filters{Brightness: 100, Contrast: 100, Saturation: 100}
}

// IsDefault reports whether f leaves the image unchanged.
func (f Filters) IsDefault() bool {
	return f == DefaultFilters()
}

// CSS renders the filters as a CSS filter property value.
func (f Filters) CSS() string {
	return fmt.Sprintf("grayscale(%s%%) blur(%spx) brightness(%s%%) contrast(%s%%) saturate(%s%%)",
		formatNumber(f.Grayscale),
		formatNumber(f.Blur),
		formatNumber(f.Brightness),
		formatNumber(f.Contrast),
		formatNumber(f.Saturation))
}

// EffectiveFilters returns the photo's filters or the defaults when none are set.
func (p Photo) EffectiveFilters() Filters {
	if p.Filters == nil {
		return DefaultFilters()
	}
	return *p.Filters
}

// IsEmbedded reports whether the photo source is an inline data URI.
func (p Photo) IsEmbedded() bool {
	return strings.HasPrefix(p.URL, "data:")
}

// Clone returns a deep copy of p.
func (p Photo) Clone() Photo {
	dup := p
	if p.Filters != nil {
		f := *p.Filters
		dup.Filters = &f
	}
	if p.TakenAt != nil {
		t := *p.TakenAt
		dup.TakenAt = &t
	}
	return dup
}

// PhotoUpdate is a partial update. Nil fields are left unchanged.
type PhotoUpdate struct {
	Title        *string
	Favorite     *bool
	URL          *string
	Filters      *Filters
	ClearFilters bool
}

// IsEmpty reports whether the update carries no changes.
func (u PhotoUpdate) IsEmpty() bool {
	return u.Title == nil && u.Favorite == nil && u.URL == nil && u.Filters == nil && !u.ClearFilters
}

// merge returns p with u applied. The id is never touched.
func (u PhotoUpdate) merge(p Photo) Photo {
	out := p.Clone()
	if u.Title != nil {
		out.Title = *u.Title
	}
	if u.Favorite != nil {
		out.Favorite = *u.Favorite
	}
	if u.URL != nil {
		out.URL = *u.URL
	}
	if u.ClearFilters {
		out.Filters = nil
	}
	if u.Filters != nil {
		f := *u.Filters
		out.Filters = &f
	}
	return out
}

// SetTitle is a convenience for building a title-only update.
func SetTitle(title string) PhotoUpdate {
	return PhotoUpdate{Title: &title}
}

// SetFilters is a convenience for building a filters-only update.
func SetFilters(f Filters) PhotoUpdate {
	return PhotoUpdate{Filters: &f}
}

func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
