package data

import (
	"regexp"
	"strings"
	"time"

	"github.com/emzola/critica/internal/validator"
)

// Role is the set of permission roles a user can hold.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// usernameIllegalRX matches every character outside the allowed username
// alphabet.
var usernameIllegalRX = regexp.MustCompile(`[^A-Za-z0-9_.@+-]`)

// AnonymousUser represents an unauthenticated caller.
var AnonymousUser = &User{}

// User defines a user model.
type User struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Role        Role      `json:"role"`
	IsSuperuser bool      `json:"-"`
	IsStaff     bool      `json:"-"`
	Version     int32     `json:"-"`
}

// IsAnonymous checks whether a user instance is the anonymous user.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// IsAdmin reports whether the user holds admin rights, either through the
// admin role or through superuser/staff status.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser || u.IsStaff
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// CanModify reports whether the user may mutate a resource authored by
// authorID: the author themselves, a moderator or an admin.
func (u *User) CanModify(authorID int64) bool {
	if u.IsAnonymous() {
		return false
	}
	return u.ID == authorID || u.IsModerator() || u.IsAdmin()
}

// ValidateUsername checks a username against the reserved token "me" and the
// allowed character set, reporting the exact offending characters.
func ValidateUsername(v *validator.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(len(username) <= 150, "username", "must not be more than 150 bytes long")
	if username == "me" {
		v.AddError("username", "the username 'me' is reserved")
		return
	}
	illegal := usernameIllegalRX.FindAllString(username, -1)
	if len(illegal) > 0 {
		seen := make(map[string]bool)
		var symbols []string
		for _, s := range illegal {
			if !seen[s] {
				seen[s] = true
				symbols = append(symbols, s)
			}
		}
		v.AddError("username", "contains prohibited characters: "+strings.Join(symbols, ""))
	}
}

func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(len(email) <= 254, "email", "must not be more than 254 bytes long")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
}

func ValidateRole(v *validator.Validator, role Role) {
	v.Check(validator.In(string(role), string(RoleUser), string(RoleModerator), string(RoleAdmin)), "role", "must be one of 'user', 'moderator' or 'admin'")
}

func ValidateUser(v *validator.Validator, user *User) {
	ValidateUsername(v, user.Username)
	ValidateEmail(v, user.Email)
	ValidateRole(v, user.Role)
	v.Check(len(user.FirstName) <= 150, "first_name", "must not be more than 150 bytes long")
	v.Check(len(user.LastName) <= 150, "last_name", "must not be more than 150 bytes long")
}
