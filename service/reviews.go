package service

import (
	"errors"

	"github.com/emzola/critica/data"
	"github.com/emzola/critica/internal/validator"
	"github.com/emzola/critica/repository"
)

type reviews interface {
	CreateReview(titleID int64, author *data.User, text string, score int8) (*data.Review, error)
	GetReview(titleID, reviewID int64) (*data.Review, error)
	UpdateReview(titleID, reviewID int64, user *data.User, text *string, score *int8) (*data.Review, error)
	DeleteReview(titleID, reviewID int64, user *data.User) error
	ListReviews(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error)
}

// CreateReview service creates a review for a title. A user can hold at most
// one review per title.
func (s *service) CreateReview(titleID int64, author *data.User, text string, score int8) (*data.Review, error) {
	_, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	review := &data.Review{
		TitleID:  titleID,
		AuthorID: author.ID,
		Author:   author.Username,
		Text:     text,
		Score:    score,
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	exists, err := s.repo.ReviewExistsForUser(author.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		v.AddError("title", "you have already reviewed this title")
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.CreateReview(review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("title", "you have already reviewed this title")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	return review, nil
}

// GetReview service retrieves a single review belonging to a title.
func (s *service) GetReview(titleID, reviewID int64) (*data.Review, error) {
	review, err := s.repo.GetReview(titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return review, nil
}

// UpdateReview service partially updates a review. Only the review's author,
// a moderator or an admin may update it.
func (s *service) UpdateReview(titleID, reviewID int64, user *data.User, text *string, score *int8) (*data.Review, error) {
	review, err := s.GetReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !user.CanModify(review.AuthorID) {
		return nil, ErrNotPermitted
	}
	if text != nil {
		review.Text = *text
	}
	if score != nil {
		review.Score = *score
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateReview(review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return review, nil
}

// DeleteReview service deletes a review together with its comments. Only the
// review's author, a moderator or an admin may delete it.
func (s *service) DeleteReview(titleID, reviewID int64, user *data.User) error {
	review, err := s.GetReview(titleID, reviewID)
	if err != nil {
		return err
	}
	if !user.CanModify(review.AuthorID) {
		return ErrNotPermitted
	}
	err = s.repo.DeleteReview(titleID, reviewID)
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

// ListReviews service retrieves a paginated list of the reviews for a title.
func (s *service) ListReviews(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	_, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, data.Metadata{}, ErrRecordNotFound
		default:
			return nil, data.Metadata{}, err
		}
	}
	reviews, metadata, err := s.repo.GetAllReviews(titleID, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return reviews, metadata, nil
}
