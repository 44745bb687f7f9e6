package service

import (
	"errors"
	"testing"

	"github.com/emzola/critica/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTitleAndUsers(t *testing.T, s *service) (titleID int64, author, other, moderator *data.User) {
	t.Helper()
	seedTaxonomy(t, s)
	title, err := s.CreateTitle("Solaris", 1972, "", "films", []string{"drama"})
	require.NoError(t, err)
	author, err = s.CreateUser("author", "author@example.com", "", "", "", data.RoleUser)
	require.NoError(t, err)
	other, err = s.CreateUser("other", "other@example.com", "", "", "", data.RoleUser)
	require.NoError(t, err)
	moderator, err = s.CreateUser("mod", "mod@example.com", "", "", "", data.RoleModerator)
	require.NoError(t, err)
	return title.ID, author, other, moderator
}

func TestCreateReview(t *testing.T) {
	s, _ := newTestService(t)
	titleID, author, _, _ := seedTitleAndUsers(t, s)

	review, err := s.CreateReview(titleID, author, "a slow meditation", 9)
	require.NoError(t, err)
	assert.Equal(t, author.Username, review.Author)

	// One review per user per title
	_, err = s.CreateReview(titleID, author, "changed my mind", 5)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "title")

	// Score bounds
	_, err = s.CreateReview(titleID, author, "text", 11)
	require.ErrorIs(t, err, ErrFailedValidation)

	// Missing parent title
	_, err = s.CreateReview(999, author, "text", 5)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCreateReviewExistenceCheckFailure(t *testing.T) {
	s, repo := newTestService(t)
	titleID, _, other, _ := seedTitleAndUsers(t, s)

	// A failure in the duplicate pre-check is a server fault, not a
	// "you have already reviewed this title" rejection.
	repo.reviewExistsErr = errors.New("connection reset")
	_, err := s.CreateReview(titleID, other, "text", 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFailedValidation)
	assert.EqualError(t, err, "connection reset")
}

func TestUpdateReviewPermissions(t *testing.T) {
	s, _ := newTestService(t)
	titleID, author, other, moderator := seedTitleAndUsers(t, s)
	review, err := s.CreateReview(titleID, author, "a slow meditation", 9)
	require.NoError(t, err)

	newScore := int8(7)
	_, err = s.UpdateReview(titleID, review.ID, other, nil, &newScore)
	assert.ErrorIs(t, err, ErrNotPermitted)

	updated, err := s.UpdateReview(titleID, review.ID, author, nil, &newScore)
	require.NoError(t, err)
	assert.Equal(t, int8(7), updated.Score)

	newText := "moderated"
	updated, err = s.UpdateReview(titleID, review.ID, moderator, &newText, nil)
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Text)
}

func TestDeleteReviewPermissions(t *testing.T) {
	s, _ := newTestService(t)
	titleID, author, other, moderator := seedTitleAndUsers(t, s)
	review, err := s.CreateReview(titleID, author, "a slow meditation", 9)
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteReview(titleID, review.ID, other), ErrNotPermitted)
	require.NoError(t, s.DeleteReview(titleID, review.ID, moderator))
	assert.ErrorIs(t, s.DeleteReview(titleID, review.ID, author), ErrRecordNotFound)
}

func TestReviewScopedToTitle(t *testing.T) {
	s, _ := newTestService(t)
	titleID, author, _, _ := seedTitleAndUsers(t, s)
	secondTitle, err := s.CreateTitle("Stalker", 1979, "", "films", []string{"drama"})
	require.NoError(t, err)
	review, err := s.CreateReview(titleID, author, "a slow meditation", 9)
	require.NoError(t, err)

	// A review is only addressable underneath its own title
	_, err = s.GetReview(secondTitle.ID, review.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestComments(t *testing.T) {
	s, _ := newTestService(t)
	titleID, author, other, moderator := seedTitleAndUsers(t, s)
	review, err := s.CreateReview(titleID, author, "a slow meditation", 9)
	require.NoError(t, err)

	comment, err := s.CreateComment(titleID, review.ID, other, "disagree entirely")
	require.NoError(t, err)
	assert.Equal(t, other.Username, comment.Author)

	// Missing parent review
	_, err = s.CreateComment(titleID, 999, other, "text")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	// Only the author, a moderator or an admin may mutate
	newText := "edited"
	_, err = s.UpdateComment(titleID, review.ID, comment.ID, author, &newText)
	assert.ErrorIs(t, err, ErrNotPermitted)
	updated, err := s.UpdateComment(titleID, review.ID, comment.ID, other, &newText)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	require.NoError(t, s.DeleteComment(titleID, review.ID, comment.ID, moderator))
	_, err = s.GetComment(titleID, review.ID, comment.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
