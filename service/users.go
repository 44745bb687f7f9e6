package service

import (
	"errors"
	"time"

	"github.com/emzola/critica/data"
	"github.com/emzola/critica/internal/mailer"
	"github.com/emzola/critica/internal/validator"
	"github.com/emzola/critica/repository"
)

type users interface {
	SignupUser(username, email string) (*data.User, error)
	CreateUser(username, email, firstName, lastName, bio string, role data.Role) (*data.User, error)
	GetUser(username string) (*data.User, error)
	UpdateUser(username string, email, firstName, lastName, bio *string, role *data.Role) (*data.User, error)
	DeleteUser(username string) error
	ListUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error)
	GetUserForToken(tokenScope string, tokenPlaintext string) (*data.User, error)
}

// SignupUser service registers a new user and emails them a confirmation
// code. Signing up again with the same username and email pair resends a
// fresh code instead of failing, so the operation can be retried safely.
func (s *service) SignupUser(username, email string) (*data.User, error) {
	v := validator.New()
	data.ValidateUsername(v, username)
	data.ValidateEmail(v, email)
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	user, err := s.repo.GetUserByUsername(username)
	switch {
	case err == nil:
		if user.Email != email {
			v.AddError("username", "a user with this username already exists")
			return nil, s.failedValidation(v.Errors)
		}
	case errors.Is(err, repository.ErrRecordNotFound):
		if _, err := s.repo.GetUserByEmail(email); err == nil {
			v.AddError("email", "a user with this email address already exists")
			return nil, s.failedValidation(v.Errors)
		} else if !errors.Is(err, repository.ErrRecordNotFound) {
			return nil, err
		}
		user = &data.User{
			Username: username,
			Email:    email,
			Role:     data.RoleUser,
		}
		err = s.repo.CreateUser(user)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrDuplicateUsername):
				v.AddError("username", "a user with this username already exists")
				return nil, s.failedValidation(v.Errors)
			case errors.Is(err, repository.ErrDuplicateEmail):
				v.AddError("email", "a user with this email address already exists")
				return nil, s.failedValidation(v.Errors)
			default:
				return nil, err
			}
		}
	default:
		return nil, err
	}
	// Invalidate previously issued codes before generating a new one
	err = s.repo.DeleteAllTokensForUser(data.ScopeConfirmation, user.ID)
	if err != nil {
		return nil, err
	}
	token, err := s.repo.CreateNewToken(user.ID, 3*24*time.Hour, data.ScopeConfirmation)
	if err != nil {
		return nil, err
	}
	// Send confirmation code email in a background goroutine to speed up
	// response time
	s.background(func() {
		data := map[string]string{
			"username":         user.Username,
			"confirmationCode": token.Plaintext,
		}
		mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err := mailer.Send(user.Email, "user_confirmation.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return user, nil
}

// CreateUser service creates a new user account with an explicit role.
func (s *service) CreateUser(username, email, firstName, lastName, bio string, role data.Role) (*data.User, error) {
	if role == "" {
		role = data.RoleUser
	}
	user := &data.User{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Bio:       bio,
		Role:      role,
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			v.AddError("username", "a user with this username already exists")
			return nil, s.failedValidation(v.Errors)
		case errors.Is(err, repository.ErrDuplicateEmail):
			v.AddError("email", "a user with this email address already exists")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	return user, nil
}

// GetUser service retrieves the details of a user by username.
func (s *service) GetUser(username string) (*data.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// UpdateUser service partially updates a user's profile.
func (s *service) UpdateUser(username string, email, firstName, lastName, bio *string, role *data.Role) (*data.User, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, err
	}
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
	if role != nil {
		user.Role = *role
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			v.AddError("email", "a user with this email address already exists")
			return nil, s.failedValidation(v.Errors)
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return user, nil
}

// DeleteUser service deletes a user account by username.
func (s *service) DeleteUser(username string) error {
	err := s.repo.DeleteUser(username)
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

// ListUsers service retrieves a paginated list of user accounts, optionally
// filtered by a username search term.
func (s *service) ListUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	users, metadata, err := s.repo.GetAllUsers(search, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return users, metadata, nil
}

// GetUserForToken service retrieves the user associated with an unexpired
// token of the given scope.
func (s *service) GetUserForToken(tokenScope string, tokenPlaintext string) (*data.User, error) {
	v := validator.New()
	if data.ValidateTokenPlaintext(v, tokenPlaintext); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	user, err := s.repo.GetUserForToken(tokenScope, tokenPlaintext)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}
