package service

import (
	"errors"

	"github.com/emzola/critica/data"
	"github.com/emzola/critica/internal/validator"
	"github.com/emzola/critica/repository"
)

type titles interface {
	CreateTitle(name string, year int32, description, categorySlug string, genreSlugs []string) (*data.Title, error)
	GetTitle(titleID int64) (*data.Title, error)
	UpdateTitle(titleID int64, name *string, year *int32, description, categorySlug *string, genreSlugs []string) (*data.Title, error)
	DeleteTitle(titleID int64) error
	ListTitles(name, categorySlug, genreSlug string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error)
}

// resolveCategorySlug resolves a category slug reference on a title write. An
// unknown slug is reported as a validation failure, not a 404: the category
// is part of the request payload, not the request path.
func (s *service) resolveCategorySlug(v *validator.Validator, slug string) *data.Category {
	if slug == "" {
		return nil
	}
	category, err := s.repo.GetCategoryBySlug(slug)
	if err != nil {
		v.AddError("category", "unknown category slug "+slug)
		return nil
	}
	return category
}

// resolveGenreSlugs resolves the genre slug references on a title write.
func (s *service) resolveGenreSlugs(v *validator.Validator, slugs []string) []data.Genre {
	genres := make([]data.Genre, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.repo.GetGenreBySlug(slug)
		if err != nil {
			v.AddError("genre", "unknown genre slug "+slug)
			continue
		}
		genres = append(genres, *genre)
	}
	return genres
}

// CreateTitle service creates a new title. The category and genres are
// referenced by slug and embedded as full objects on the returned title.
func (s *service) CreateTitle(name string, year int32, description, categorySlug string, genreSlugs []string) (*data.Title, error) {
	title := &data.Title{
		Name:        name,
		Year:        year,
		Description: description,
	}
	v := validator.New()
	data.ValidateTitle(v, title)
	data.ValidateGenreSlugs(v, genreSlugs)
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	title.Category = s.resolveCategorySlug(v, categorySlug)
	title.Genres = s.resolveGenreSlugs(v, genreSlugs)
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateTitle(title)
	if err != nil {
		return nil, err
	}
	return title, nil
}

// GetTitle service retrieves the details of a title, including its genres and
// average review score.
func (s *service) GetTitle(titleID int64) (*data.Title, error) {
	title, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	title.Genres, err = s.repo.GetAllGenresForTitle(title.ID)
	if err != nil {
		return nil, err
	}
	return title, nil
}

// UpdateTitle service partially updates a title. Genre slugs, when provided,
// replace the whole genre set.
func (s *service) UpdateTitle(titleID int64, name *string, year *int32, description, categorySlug *string, genreSlugs []string) (*data.Title, error) {
	title, err := s.GetTitle(titleID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		title.Name = *name
	}
	if year != nil {
		title.Year = *year
	}
	if description != nil {
		title.Description = *description
	}
	v := validator.New()
	data.ValidateTitle(v, title)
	if categorySlug != nil {
		title.Category = s.resolveCategorySlug(v, *categorySlug)
	}
	if genreSlugs != nil {
		data.ValidateGenreSlugs(v, genreSlugs)
		if v.Valid() {
			title.Genres = s.resolveGenreSlugs(v, genreSlugs)
		}
	}
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateTitle(title)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return title, nil
}

// DeleteTitle service deletes a title together with its reviews and comments.
func (s *service) DeleteTitle(titleID int64) error {
	err := s.repo.DeleteTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// ListTitles service retrieves a paginated list of titles annotated with
// their average review score. The list can be filtered by name substring,
// category slug, genre slug and exact year.
func (s *service) ListTitles(name, categorySlug, genreSlug string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	titles, metadata, err := s.repo.GetAllTitles(name, categorySlug, genreSlug, year, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	for _, title := range titles {
		title.Genres, err = s.repo.GetAllGenresForTitle(title.ID)
		if err != nil {
			return nil, data.Metadata{}, err
		}
	}
	return titles, metadata, nil
}
