package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/critica/data/dto"
	"github.com/emzola/critica/internal/validator"
	"github.com/emzola/critica/service"
)

// ListGenres godoc
// @Summary List all genres
// @Description This endpoint lists all genres
// @Tags genres
// @Accept  json
// @Produce json
// @Param search query string false "Filter genres by name substring"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param page_size query int false "Query string param for pagination (max 100)"
// @Param sort query string false "Sort by ascending or descending order. Asc: name, slug, id. Desc: -name, -slug, -id"
// @Success 200 {array} data.Genre
// @Failure 400
// @Failure 500
// @Router /v1/genres [get]
func (h *Handler) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListGenres
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Search = h.readString(qs, "search", "")
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "name")
	qsInput.Filters.SortSafeList = []string{"id", "name", "slug", "-id", "-name", "-slug"}
	genres, metadata, err := h.service.ListGenres(qsInput.Search, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"genres": genres, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateGenre godoc
// @Summary Create a new genre
// @Description This endpoint creates a new genre
// @Tags genres
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreateGenreRequestBody true "JSON payload required to create a genre"
// @Success 201 {object} data.Genre
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 500
// @Router /v1/genres [post]
func (h *Handler) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateGenreRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	genre, err := h.service.CreateGenre(requestBody.Name, requestBody.Slug)
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
	headers.Set("Location", fmt.Sprintf("/v1/genres/%s", genre.Slug))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"genre": genre}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteGenre godoc
// @Summary Delete a genre
// @Description This endpoint deletes a genre and detaches it from all titles
// @Tags genres
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param slug path string true "Slug of genre to delete"
// @Success 204
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/genres/{slug} [delete]
func (h *Handler) deleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	slug := h.readSlugParam(r, "slug")
	err := h.service.DeleteGenre(slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
