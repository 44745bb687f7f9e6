package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/critica/data/dto"
	"github.com/emzola/critica/internal/validator"
	"github.com/emzola/critica/service"
)

// ListUsers godoc
// @Summary List all user accounts
// @Description This endpoint lists all user accounts. Admin only
// @Tags users
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param search query string false "Filter users by username substring"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param page_size query int false "Query string param for pagination (max 100)"
// @Param sort query string false "Sort by ascending or descending order. Asc: id, username, created_at. Desc: -id, -username, -created_at"
// @Success 200 {array} data.User
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 500
// @Router /v1/users [get]
func (h *Handler) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListUsers
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Search = h.readString(qs, "search", "")
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "username")
	qsInput.Filters.SortSafeList = []string{"id", "username", "created_at", "-id", "-username", "-created_at"}
	users, metadata, err := h.service.ListUsers(qsInput.Search, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"users": users, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateUser godoc
// @Summary Create a new user account
// @Description This endpoint creates a user account with an explicit role. Admin only
// @Tags users
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreateUserRequestBody true "JSON payload required to create a user"
// @Success 201 {object} data.User
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 500
// @Router /v1/users [post]
func (h *Handler) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.CreateUser(requestBody.Username, requestBody.Email, requestBody.FirstName, requestBody.LastName, requestBody.Bio, requestBody.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/users/%s", user.Username))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"user": user}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowUser godoc
// @Summary Show details of a user account
// @Description This endpoint shows a user account. The special username "me" resolves to the caller; any other username is admin only
// @Tags users
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param username path string true "Username of account to show"
// @Success 200 {object} data.User
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/users/{username} [get]
func (h *Handler) showUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readSlugParam(r, "username")
	caller := h.contextGetUser(r)
	if username == "me" {
		err := h.encodeJSON(w, http.StatusOK, envelope{"user": caller}, nil)
		if err != nil {
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if !caller.IsAdmin() {
		h.notPermittedResponse(w, r)
		return
	}
	user, err := h.service.GetUser(username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateUser godoc
// @Summary Update a user account
// @Description This endpoint partially updates a user account. On "me" the role field is silently ignored; any other username is admin only
// @Tags users
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param username path string true "Username of account to update"
// @Param body body dto.UpdateUserRequestBody true "JSON payload required to update a user"
// @Success 200 {object} data.User
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /v1/users/{username} [patch]
func (h *Handler) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readSlugParam(r, "username")
	caller := h.contextGetUser(r)
	var requestBody dto.UpdateUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if username == "me" {
		// A caller may not change their own role
		requestBody.Role = nil
		username = caller.Username
	} else if !caller.IsAdmin() {
		h.notPermittedResponse(w, r)
		return
	}
	user, err := h.service.UpdateUser(username, requestBody.Email, requestBody.FirstName, requestBody.LastName, requestBody.Bio, requestBody.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	h.evictCachedUser(username)
	err = h.encodeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteUser godoc
// @Summary Delete a user account
// @Description This endpoint deletes a user account together with their reviews, comments and tokens. Admin only; "me" is not deletable
// @Tags users
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param username path string true "Username of account to delete"
// @Success 204
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 405
// @Failure 500
// @Router /v1/users/{username} [delete]
func (h *Handler) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readSlugParam(r, "username")
	caller := h.contextGetUser(r)
	if username == "me" {
		h.methodNotAllowed(w, r)
		return
	}
	if !caller.IsAdmin() {
		h.notPermittedResponse(w, r)
		return
	}
	err := h.service.DeleteUser(username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	h.evictCachedUser(username)
	w.WriteHeader(http.StatusNoContent)
}
