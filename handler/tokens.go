package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/critica/data/dto"
	"github.com/emzola/critica/service"
)

// SignupUser godoc
// @Summary Sign up a new user
// @Description This endpoint registers a user and emails them a confirmation code. Repeating the same username and email pair resends a fresh code
// @Tags auth
// @Accept  json
// @Produce json
// @Param body body dto.SignupRequestBody true "JSON payload required to sign up"
// @Success 200 {object} data.User
// @Failure 400
// @Failure 500
// @Router /v1/auth/signup [post]
func (h *Handler) signupUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.SignupRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.SignupUser(requestBody.Username, requestBody.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
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

// CreateAccessToken godoc
// @Summary Create a new authentication token
// @Description This endpoint exchanges a confirmation code for a bearer authentication token
// @Tags auth
// @Accept  json
// @Produce json
// @Param body body dto.CreateAccessTokenRequestBody true "JSON payload required to create an authentication token"
// @Success 200 {object} data.Token
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /v1/auth/token [post]
func (h *Handler) createAccessTokenHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateAccessTokenRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	token, err := h.service.CreateAccessToken(requestBody.Username, requestBody.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"authentication_token": token}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteAccessToken godoc
// @Summary Delete the caller's authentication tokens
// @Description This endpoint invalidates all of the caller's bearer tokens
// @Tags auth
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Success 204
// @Failure 403
// @Failure 500
// @Router /v1/auth/token [delete]
func (h *Handler) deleteAccessTokenHandler(w http.ResponseWriter, r *http.Request) {
	user := h.contextGetUser(r)
	err := h.service.DeleteAccessTokens(user.ID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.evictCachedUser(user.Username)
	w.WriteHeader(http.StatusNoContent)
}
