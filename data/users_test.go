package data

import (
	"testing"

	"github.com/emzola/critica/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  string
	}{
		{name: "valid", username: "some.user_name@x+y-z"},
		{name: "empty", username: "", wantErr: "must be provided"},
		{name: "reserved me", username: "me", wantErr: "the username 'me' is reserved"},
		{name: "illegal characters", username: "ev!l us#r", wantErr: "contains prohibited characters: ! #"},
		{name: "repeated illegal character reported once", username: "a!!b", wantErr: "contains prohibited characters: !"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateUsername(v, tt.username)
			if tt.wantErr == "" {
				assert.True(t, v.Valid())
				return
			}
			assert.Equal(t, tt.wantErr, v.Errors["username"])
		})
	}
}

func TestUserPermissionPredicates(t *testing.T) {
	author := &User{ID: 7, Role: RoleUser}
	other := &User{ID: 8, Role: RoleUser}
	moderator := &User{ID: 9, Role: RoleModerator}
	admin := &User{ID: 10, Role: RoleAdmin}
	superuser := &User{ID: 11, Role: RoleUser, IsSuperuser: true}
	staff := &User{ID: 12, Role: RoleUser, IsStaff: true}

	assert.True(t, admin.IsAdmin())
	assert.True(t, superuser.IsAdmin(), "superuser status grants admin rights regardless of role")
	assert.True(t, staff.IsAdmin(), "staff status grants admin rights regardless of role")
	assert.False(t, moderator.IsAdmin())
	assert.True(t, moderator.IsModerator())
	assert.False(t, admin.IsModerator())

	assert.True(t, author.CanModify(7), "authors may modify their own records")
	assert.False(t, other.CanModify(7))
	assert.True(t, moderator.CanModify(7))
	assert.True(t, admin.CanModify(7))
	assert.True(t, superuser.CanModify(7))
	assert.False(t, AnonymousUser.CanModify(7))
	assert.True(t, AnonymousUser.IsAnonymous())
	assert.False(t, author.IsAnonymous())
}

func TestValidateUser(t *testing.T) {
	v := validator.New()
	ValidateUser(v, &User{Username: "reader", Email: "reader@example.com", Role: RoleUser})
	assert.True(t, v.Valid())

	v = validator.New()
	ValidateUser(v, &User{Username: "reader", Email: "not-an-email", Role: Role("owner")})
	assert.Equal(t, "must be a valid email address", v.Errors["email"])
	assert.Equal(t, "must be one of 'user', 'moderator' or 'admin'", v.Errors["role"])
}
