package service

import (
	"io"
	"sync"
	"testing"

	"github.com/emzola/critica/config"
	"github.com/emzola/critica/data"
	"github.com/emzola/critica/internal/jsonlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*service, *mockRepo) {
	t.Helper()
	repo := newMockRepo()
	var wg sync.WaitGroup
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	return New(config.Config{}, &wg, logger, repo), repo
}

func TestSignupUser(t *testing.T) {
	s, repo := newTestService(t)

	user, err := s.SignupUser("reader", "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, data.RoleUser, user.Role)
	assert.Len(t, repo.tokens, 1)
	assert.Equal(t, data.ScopeConfirmation, repo.tokens[0].Scope)

	// Same username and email pair: no failure, a fresh code is issued
	again, err := s.SignupUser("reader", "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Len(t, repo.tokens, 1, "previous confirmation codes are invalidated")

	// Username taken by a different email
	_, err = s.SignupUser("reader", "other@example.com")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "username")

	// Email taken by a different username
	_, err = s.SignupUser("other", "reader@example.com")
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")

	// Reserved username
	_, err = s.SignupUser("me", "me@example.com")
	require.ErrorIs(t, err, ErrFailedValidation)
}

func TestCreateUser(t *testing.T) {
	s, _ := newTestService(t)

	user, err := s.CreateUser("mod", "mod@example.com", "", "", "", data.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, data.RoleModerator, user.Role)

	// Role defaults to user when omitted
	user, err = s.CreateUser("plain", "plain@example.com", "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, data.RoleUser, user.Role)

	_, err = s.CreateUser("mod", "second@example.com", "", "", "", data.RoleUser)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "username")
}

func TestUpdateUser(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.CreateUser("reader", "reader@example.com", "", "", "", data.RoleUser)
	require.NoError(t, err)

	bio := "writes about films"
	role := data.RoleModerator
	user, err := s.UpdateUser("reader", nil, nil, nil, &bio, &role)
	require.NoError(t, err)
	assert.Equal(t, bio, user.Bio)
	assert.Equal(t, data.RoleModerator, user.Role)

	_, err = s.UpdateUser("ghost", nil, nil, nil, &bio, nil)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteUser(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.CreateUser("reader", "reader@example.com", "", "", "", data.RoleUser)
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser("reader"))
	assert.ErrorIs(t, s.DeleteUser("reader"), ErrRecordNotFound)
}
