package data

import (
	"github.com/emzola/critica/internal/validator"
)

// Genre defines a genre model. Titles and genres are linked many-to-many.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func ValidateGenre(v *validator.Validator, genre *Genre) {
	ValidateNameSlug(v, genre.Name, genre.Slug)
}
