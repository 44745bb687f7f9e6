package service

import (
	"errors"

	"github.com/emzola/critica/data"
	"github.com/emzola/critica/internal/validator"
	"github.com/emzola/critica/repository"
)

type comments interface {
	CreateComment(titleID, reviewID int64, author *data.User, text string) (*data.Comment, error)
	GetComment(titleID, reviewID, commentID int64) (*data.Comment, error)
	UpdateComment(titleID, reviewID, commentID int64, user *data.User, text *string) (*data.Comment, error)
	DeleteComment(titleID, reviewID, commentID int64, user *data.User) error
	ListComments(titleID, reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error)
}

// CreateComment service creates a comment on a review.
func (s *service) CreateComment(titleID, reviewID int64, author *data.User, text string) (*data.Comment, error) {
	_, err := s.GetReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment := &data.Comment{
		ReviewID: reviewID,
		TitleID:  titleID,
		AuthorID: author.ID,
		Author:   author.Username,
		Text:     text,
	}
	v := validator.New()
	if data.ValidateComment(v, comment); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.CreateComment(comment)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment service retrieves a single comment belonging to a review.
func (s *service) GetComment(titleID, reviewID, commentID int64) (*data.Comment, error) {
	_, err := s.GetReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment, err := s.repo.GetComment(reviewID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return comment, nil
}

// UpdateComment service partially updates a comment. Only the comment's
// author, a moderator or an admin may update it.
func (s *service) UpdateComment(titleID, reviewID, commentID int64, user *data.User, text *string) (*data.Comment, error) {
	comment, err := s.GetComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !user.CanModify(comment.AuthorID) {
		return nil, ErrNotPermitted
	}
	if text != nil {
		comment.Text = *text
	}
	v := validator.New()
	if data.ValidateComment(v, comment); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateComment(comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return comment, nil
}

// DeleteComment service deletes a comment. Only the comment's author, a
// moderator or an admin may delete it.
func (s *service) DeleteComment(titleID, reviewID, commentID int64, user *data.User) error {
	comment, err := s.GetComment(titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !user.CanModify(comment.AuthorID) {
		return ErrNotPermitted
	}
	err = s.repo.DeleteComment(reviewID, commentID)
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

// ListComments service retrieves a paginated list of the comments on a review.
func (s *service) ListComments(titleID, reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	_, err := s.GetReview(titleID, reviewID)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	comments, metadata, err := s.repo.GetAllComments(reviewID, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return comments, metadata, nil
}
