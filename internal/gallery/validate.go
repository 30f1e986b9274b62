package gallery

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrEmptyTitle is returned when an album title is blank.
	ErrEmptyTitle = errors.New("album title is empty")
	// ErrDuplicatePhoto is returned when a photo id is already present at the target location.
	ErrDuplicatePhoto = errors.New("photo already exists")
	// ErrDuplicateAlbum is returned when an album id is already taken.
	ErrDuplicateAlbum = errors.New("album already exists")
	// ErrInvalidPhoto is returned when a photo or update fails validation.
	ErrInvalidPhoto = errors.New("invalid photo")
	// ErrUnknownView is returned by ParseView for unrecognised tokens.
	ErrUnknownView = errors.New("unknown view")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report json names so errors match the persisted format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("photosource", func(fl validator.FieldLevel) bool {
		src := strings.TrimSpace(fl.Field().String())
		return strings.HasPrefix(src, "http://") ||
			strings.HasPrefix(src, "https://") ||
			strings.HasPrefix(src, "data:image/")
	})
	return v
}

// ValidatePhoto checks the photo's id, source and filter ranges.
func ValidatePhoto(p Photo) error {
	return structError(validate.Struct(p))
}

// ValidateFilters checks that every filter parameter is within its range.
func ValidateFilters(f Filters) error {
	return structError(validate.Struct(f))
}

func structError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidPhoto, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" "+describe(fe))
	}
	sort.Strings(fields)
	return fmt.Errorf("%w: %s", ErrInvalidPhoto, strings.Join(fields, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "photosource":
		return "must be an http(s) URL or an image data URI"
	default:
		return "is invalid"
	}
}
