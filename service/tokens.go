package service

import (
	"errors"
	"time"

	"github.com/emzola/critica/data"
	"github.com/emzola/critica/internal/validator"
	"github.com/emzola/critica/repository"
)

type tokens interface {
	CreateAccessToken(username string, confirmationCode string) (*data.Token, error)
	DeleteAccessTokens(userID int64) error
}

// CreateAccessToken service exchanges a confirmation code for a new
// authentication token. The confirmation code is single use: all outstanding
// codes for the user are deleted once the exchange succeeds.
func (s *service) CreateAccessToken(username string, confirmationCode string) (*data.Token, error) {
	v := validator.New()
	data.ValidateUsername(v, username)
	data.ValidateTokenPlaintext(v, confirmationCode)
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	// An unknown username is a not-found condition, not a credentials
	// failure: signup is open, so usernames are not secret
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	codeUser, err := s.repo.GetUserForToken(data.ScopeConfirmation, confirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("confirmation_code", "invalid or expired confirmation code")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	if codeUser.ID != user.ID {
		v.AddError("confirmation_code", "invalid or expired confirmation code")
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.DeleteAllTokensForUser(data.ScopeConfirmation, user.ID)
	if err != nil {
		return nil, err
	}
	token, err := s.repo.CreateNewToken(user.ID, 24*time.Hour, data.ScopeAuthentication)
	if err != nil {
		return nil, err
	}
	return token, nil
}

// DeleteAccessTokens deletes all authentication tokens for a user.
func (s *service) DeleteAccessTokens(userID int64) error {
	err := s.repo.DeleteAllTokensForUser(data.ScopeAuthentication, userID)
	if err != nil {
		return err
	}
	return nil
}
