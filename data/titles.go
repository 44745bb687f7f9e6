package data

import (
	"time"

	"github.com/emzola/critica/internal/validator"
)

// Title defines a reviewable work (a film, book, album and so on). On read,
// the category and genres are embedded as full objects and Rating carries the
// arithmetic mean of the title's review scores, or nil when no reviews exist.
type Title struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Year        int32     `json:"year"`
	Description string    `json:"description,omitempty"`
	Rating      *float64  `json:"rating"`
	Category    *Category `json:"category"`
	Genres      []Genre   `json:"genre"`
	Version     int32     `json:"-"`
}

// ValidateTitle checks the fields of a title before it is persisted. Years
// have no lower bound: works older than the Gregorian calendar are legal.
func ValidateTitle(v *validator.Validator, title *Title) {
	v.Check(title.Name != "", "name", "must be provided")
	v.Check(len(title.Name) <= 256, "name", "must not be more than 256 bytes long")
	v.Check(title.Year != 0, "year", "must be provided")
	v.Check(title.Year <= int32(time.Now().Year()), "year", "must not be in the future")
}

// ValidateGenreSlugs checks the genre slug references supplied on a title
// write. An empty genre list is rejected.
func ValidateGenreSlugs(v *validator.Validator, slugs []string) {
	v.Check(len(slugs) >= 1, "genre", "must contain at least 1 genre")
	v.Check(validator.Unique(slugs), "genre", "must not contain duplicate values")
}
