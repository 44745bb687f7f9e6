package dto

import "github.com/emzola/critica/data"

// SignupRequestBody defines a request body for SignupUser service.
type SignupRequestBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateUserRequestBody defines a request body for CreateUser service
// (admin-only user management).
type CreateUserRequestBody struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
	Role      data.Role `json:"role"`
}

// UpdateUserRequestBody defines a request body for UpdateUser service. On the
// /users/me endpoint the Role field is ignored.
type UpdateUserRequestBody struct {
	Email     *string    `json:"email"`
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	Bio       *string    `json:"bio"`
	Role      *data.Role `json:"role"`
}

// QsListUsers defines the query strings used for listing users.
type QsListUsers struct {
	Search  string
	Filters data.Filters
}
