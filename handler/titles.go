package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/critica/data/dto"
	"github.com/emzola/critica/internal/validator"
	"github.com/emzola/critica/service"
)

// ListTitles godoc
// @Summary List all titles
// @Description This endpoint lists all titles, each annotated with its average review score
// @Tags titles
// @Accept  json
// @Produce json
// @Param name query string false "Filter titles by name substring"
// @Param category query string false "Filter titles by category slug"
// @Param genre query string false "Filter titles by genre slug"
// @Param year query int false "Filter titles by exact year"
// @Param page query int false "Query string param for pagination (min 1)"
// @Param page_size query int false "Query string param for pagination (max 100)"
// @Param sort query string false "Sort by ascending or descending order. Asc: id, name, year. Desc: -id, -name, -year"
// @Success 200 {array} data.Title
// @Failure 400
// @Failure 500
// @Router /v1/titles [get]
func (h *Handler) listTitlesHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListTitles
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Name = h.readString(qs, "name", "")
	qsInput.Category = h.readString(qs, "category", "")
	qsInput.Genre = h.readString(qs, "genre", "")
	qsInput.Year = h.readInt(qs, "year", 0, v)
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "id")
	qsInput.Filters.SortSafeList = []string{"id", "name", "year", "-id", "-name", "-year"}
	titles, metadata, err := h.service.ListTitles(qsInput.Name, qsInput.Category, qsInput.Genre, qsInput.Year, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"titles": titles, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateTitle godoc
// @Summary Create a new title
// @Description This endpoint creates a new title. Category and genres are referenced by slug
// @Tags titles
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreateTitleRequestBody true "JSON payload required to create a title"
// @Success 201 {object} data.Title
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 500
// @Router /v1/titles [post]
func (h *Handler) createTitleHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateTitleRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	title, err := h.service.CreateTitle(requestBody.Name, requestBody.Year, requestBody.Description, requestBody.Category, requestBody.Genre)
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
	headers.Set("Location", fmt.Sprintf("/v1/titles/%d", title.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"title": title}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowTitle godoc
// @Summary Show details of a title
// @Description This endpoint shows the details of a specific title, including its average review score
// @Tags titles
// @Accept  json
// @Produce json
// @Param titleId path int true "ID of title to show"
// @Success 200 {object} data.Title
// @Failure 404
// @Failure 500
// @Router /v1/titles/{titleId} [get]
func (h *Handler) showTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	title, err := h.service.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"title": title}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateTitle godoc
// @Summary Update a title
// @Description This endpoint partially updates a title. A genre list replaces the previous set
// @Tags titles
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param titleId path int true "ID of title to update"
// @Param body body dto.UpdateTitleRequestBody true "JSON payload required to update a title"
// @Success 200 {object} data.Title
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /v1/titles/{titleId} [patch]
func (h *Handler) updateTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateTitleRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	title, err := h.service.UpdateTitle(titleID, requestBody.Name, requestBody.Year, requestBody.Description, requestBody.Category, requestBody.Genre)
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
	err = h.encodeJSON(w, http.StatusOK, envelope{"title": title}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteTitle godoc
// @Summary Delete a title
// @Description This endpoint deletes a title together with its reviews and comments
// @Tags titles
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param titleId path int true "ID of title to delete"
// @Success 204
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/titles/{titleId} [delete]
func (h *Handler) deleteTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteTitle(titleID)
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
