package service

import (
	"errors"

	"github.com/emzola/critica/data"
	"github.com/emzola/critica/internal/validator"
	"github.com/emzola/critica/repository"
)

type categories interface {
	CreateCategory(name, slug string) (*data.Category, error)
	ListCategories(search string, filters data.Filters) ([]*data.Category, data.Metadata, error)
	DeleteCategory(slug string) error
}

// CreateCategory service creates a new category.
func (s *service) CreateCategory(name, slug string) (*data.Category, error) {
	category := &data.Category{
		Name: name,
		Slug: slug,
	}
	v := validator.New()
	if data.ValidateCategory(v, category); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateCategory(category)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("slug", "a category with this slug already exists")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	return category, nil
}

// ListCategories service retrieves a paginated list of all categories.
func (s *service) ListCategories(search string, filters data.Filters) ([]*data.Category, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	categories, metadata, err := s.repo.GetAllCategories(search, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return categories, metadata, nil
}

// DeleteCategory service deletes a category by its slug. Titles in the
// category are kept and fall back to a null category.
func (s *service) DeleteCategory(slug string) error {
	err := s.repo.DeleteCategory(slug)
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
