package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/critica/data/dto"
	"github.com/emzola/critica/internal/validator"
	"github.com/emzola/critica/service"
)

// readCommentPathParams pulls the title and review id parameters shared by all
// comment endpoints.
func (h *Handler) readCommentPathParams(r *http.Request) (titleID, reviewID int64, err error) {
	titleID, err = h.readIDParam(r, "titleId")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = h.readIDParam(r, "reviewId")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// ListComments godoc
// @Summary List the comments on a review
// @Description This endpoint lists all comments posted on a review
// @Tags comments
// @Accept  json
// @Produce json
// @Param titleId path int true "ID of reviewed title"
// @Param reviewId path int true "ID of review whose comments to list"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param page_size query int false "Query string param for pagination (max 100)"
// @Param sort query string false "Sort by ascending or descending order. Asc: id, pub_date. Desc: -id, -pub_date"
// @Success 200 {array} data.Comment
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /v1/titles/{titleId}/reviews/{reviewId}/comments [get]
func (h *Handler) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, err := h.readCommentPathParams(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var qsInput dto.QsListComments
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "pub_date")
	qsInput.Filters.SortSafeList = []string{"id", "pub_date", "-id", "-pub_date"}
	comments, metadata, err := h.service.ListComments(titleID, reviewID, qsInput.Filters)
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
	err = h.encodeJSON(w, http.StatusOK, envelope{"comments": comments, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateComment godoc
// @Summary Create a new comment
// @Description This endpoint posts a comment on a review
// @Tags comments
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param titleId path int true "ID of reviewed title"
// @Param reviewId path int true "ID of review to comment on"
// @Param body body dto.CreateCommentRequestBody true "JSON payload required to create a comment"
// @Success 201 {object} data.Comment
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/titles/{titleId}/reviews/{reviewId}/comments [post]
func (h *Handler) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, err := h.readCommentPathParams(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.CreateCommentRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	comment, err := h.service.CreateComment(titleID, reviewID, user, requestBody.Text)
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
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/titles/%d/reviews/%d/comments/%d", titleID, reviewID, comment.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"comment": comment}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowComment godoc
// @Summary Show details of a comment
// @Description This endpoint shows the details of a specific comment
// @Tags comments
// @Accept  json
// @Produce json
// @Param titleId path int true "ID of reviewed title"
// @Param reviewId path int true "ID of commented review"
// @Param commentId path int true "ID of comment to show"
// @Success 200 {object} data.Comment
// @Failure 404
// @Failure 500
// @Router /v1/titles/{titleId}/reviews/{reviewId}/comments/{commentId} [get]
func (h *Handler) showCommentHandler(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, err := h.readCommentPathParams(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	commentID, err := h.readIDParam(r, "commentId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	comment, err := h.service.GetComment(titleID, reviewID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"comment": comment}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateComment godoc
// @Summary Update a comment
// @Description This endpoint partially updates a comment. Only the author, a moderator or an admin may update it
// @Tags comments
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param titleId path int true "ID of reviewed title"
// @Param reviewId path int true "ID of commented review"
// @Param commentId path int true "ID of comment to update"
// @Param body body dto.UpdateCommentRequestBody true "JSON payload required to update a comment"
// @Success 200 {object} data.Comment
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /v1/titles/{titleId}/reviews/{reviewId}/comments/{commentId} [patch]
func (h *Handler) updateCommentHandler(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, err := h.readCommentPathParams(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	commentID, err := h.readIDParam(r, "commentId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateCommentRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	comment, err := h.service.UpdateComment(titleID, reviewID, commentID, user, requestBody.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"comment": comment}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description This endpoint deletes a comment. Only the author, a moderator or an admin may delete it
// @Tags comments
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param titleId path int true "ID of reviewed title"
// @Param reviewId path int true "ID of commented review"
// @Param commentId path int true "ID of comment to delete"
// @Success 204
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/titles/{titleId}/reviews/{reviewId}/comments/{commentId} [delete]
func (h *Handler) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, err := h.readCommentPathParams(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	commentID, err := h.readIDParam(r, "commentId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	err = h.service.DeleteComment(titleID, reviewID, commentID, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
