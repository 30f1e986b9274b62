package gallery

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFiltersCSS(t *testing.T) {
	tests := []struct {
		name string
		f    Filters
		want string
	}{
		{"defaults", DefaultFilters(), "grayscale(0%) blur(0px) brightness(100%) contrast(100%) saturate(100%)"},
		{"fractional", Filters{Grayscale: 12.5, Blur: 0.25, Brightness: 150, Contrast: 99.9, Saturation: 0}, "grayscale(12.5%) blur(0.25px) brightness(150%) contrast(99.9%) saturate(0%)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.CSS(); got != tt.want {
				t.Fatalf("CSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEffectiveFilters(t *testing.T) {
	p := Photo{ID: "1", URL: "https://example.com/1.jpg"}
	if !p.EffectiveFilters().IsDefault() {
		t.Fatalf("unset filters should resolve to defaults")
	}
	f := Filters{Grayscale: 100, Brightness: 100, Contrast: 100, Saturation: 100}
	p.Filters = &f
	if p.EffectiveFilters().IsDefault() {
		t.Fatalf("grayscale filter reported as default")
	}
}

func TestPhotoClone_DeepCopies(t *testing.T) {
	when := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	f := DefaultFilters()
	p := Photo{ID: "1", URL: "https://example.com/1.jpg", Filters: &f, TakenAt: &when}

	dup := p.Clone()
	dup.Filters.Blur = 3
	*dup.TakenAt = when.Add(time.Hour)

	if p.Filters.Blur != 0 {
		t.Fatalf("clone shares filters with original")
	}
	if !p.TakenAt.Equal(when) {
		t.Fatalf("clone shares TakenAt with original")
	}
}

func TestValidatePhoto_Messages(t *testing.T) {
	err := ValidatePhoto(Photo{URL: "ftp://host/x"})
	if !errors.Is(err, ErrInvalidPhoto) {
		t.Fatalf("error = %v, want ErrInvalidPhoto", err)
	}
	msg := err.Error()
	for _, want := range []string{"id is required", "url must be an http(s) URL or an image data URI"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestValidateFilters_Ranges(t *testing.T) {
	ok := []Filters{
		DefaultFilters(),
		{Grayscale: 100, Blur: 10, Brightness: 200, Contrast: 200, Saturation: 200},
		{},
	}
	for _, f := range ok {
		if err := ValidateFilters(f); err != nil {
			t.Fatalf("ValidateFilters(%+v) = %v, want nil", f, err)
		}
	}

	err := ValidateFilters(Filters{Grayscale: -1, Blur: 10.5, Brightness: 100, Contrast: 201, Saturation: 100})
	if !errors.Is(err, ErrInvalidPhoto) {
		t.Fatalf("error = %v, want ErrInvalidPhoto", err)
	}
	msg := err.Error()
	for _, want := range []string{"grayscale must be at least 0", "blur must be at most 10", "contrast must be at most 200"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestValidatePhoto_DataURI(t *testing.T) {
	p := Photo{ID: "x", URL: "data:image/jpeg;base64,/9j/"}
	if err := ValidatePhoto(p); err != nil {
		t.Fatalf("ValidatePhoto(data uri) = %v, want nil", err)
	}
	if !p.IsEmbedded() {
		t.Fatalf("IsEmbedded() = false, want true")
	}
	p.URL = "data:text/plain;base64,aGk="
	if err := ValidatePhoto(p); !errors.Is(err, ErrInvalidPhoto) {
		t.Fatalf("non-image data uri error = %v, want ErrInvalidPhoto", err)
	}
}

func TestPhotoUpdate_IsEmpty(t *testing.T) {
	if !(PhotoUpdate{}).IsEmpty() {
		t.Fatalf("zero update should be empty")
	}
	if SetTitle("").IsEmpty() {
		t.Fatalf("title update reported empty")
	}
	if (PhotoUpdate{ClearFilters: true}).IsEmpty() {
		t.Fatalf("clear-filters update reported empty")
	}
}
