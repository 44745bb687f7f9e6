package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTaxonomy(t *testing.T, s *service) {
	t.Helper()
	_, err := s.CreateCategory("Films", "films")
	require.NoError(t, err)
	_, err = s.CreateGenre("Drama", "drama")
	require.NoError(t, err)
	_, err = s.CreateGenre("Science Fiction", "sci-fi")
	require.NoError(t, err)
}

func TestCreateTitle(t *testing.T) {
	s, _ := newTestService(t)
	seedTaxonomy(t, s)

	title, err := s.CreateTitle("Solaris", 1972, "Tarkovsky's adaptation", "films", []string{"drama", "sci-fi"})
	require.NoError(t, err)
	require.NotNil(t, title.Category)
	assert.Equal(t, "films", title.Category.Slug)
	assert.Len(t, title.Genres, 2)
	assert.Nil(t, title.Rating, "a fresh title has no rating")

	// Unknown slugs are validation failures, not server errors
	_, err = s.CreateTitle("Stalker", 1979, "", "books", []string{"thriller"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "category")
	assert.Contains(t, validationErr.Fields, "genre")

	// Empty genre list is rejected
	_, err = s.CreateTitle("Stalker", 1979, "", "films", nil)
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "genre")
}

func TestUpdateTitle(t *testing.T) {
	s, _ := newTestService(t)
	seedTaxonomy(t, s)
	title, err := s.CreateTitle("Solaris", 1972, "", "films", []string{"drama"})
	require.NoError(t, err)

	newGenres := []string{"sci-fi"}
	updated, err := s.UpdateTitle(title.ID, nil, nil, nil, nil, newGenres)
	require.NoError(t, err)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "sci-fi", updated.Genres[0].Slug, "a genre list replaces the previous set")
	assert.Equal(t, "Solaris", updated.Name, "omitted fields are untouched")

	name := ""
	_, err = s.UpdateTitle(title.ID, &name, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrFailedValidation)

	_, err = s.UpdateTitle(999, nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteTitle(t *testing.T) {
	s, _ := newTestService(t)
	seedTaxonomy(t, s)
	title, err := s.CreateTitle("Solaris", 1972, "", "films", []string{"drama"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTitle(title.ID))
	assert.ErrorIs(t, s.DeleteTitle(title.ID), ErrRecordNotFound)
}
