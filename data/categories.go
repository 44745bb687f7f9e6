package data

import (
	"github.com/emzola/critica/internal/validator"
)

// Category defines a category model. A title belongs to at most one category
// (e.g. "film", "book", "music").
type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ValidateNameSlug checks the name/slug pair shared by categories and genres.
func ValidateNameSlug(v *validator.Validator, name, slug string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(len(name) <= 256, "name", "must not be more than 256 bytes long")
	v.Check(slug != "", "slug", "must be provided")
	v.Check(len(slug) <= 50, "slug", "must not be more than 50 bytes long")
	v.Check(validator.Matches(slug, validator.SlugRX), "slug", "must contain only letters, digits, hyphens and underscores")
}

func ValidateCategory(v *validator.Validator, category *Category) {
	ValidateNameSlug(v, category.Name, category.Slug)
}
