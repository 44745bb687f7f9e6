package dto

import "github.com/emzola/critica/data"

// CreateCategoryRequestBody defines a request body for CreateCategory service.
type CreateCategoryRequestBody struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// QsListCategories defines the query strings used for listing categories.
type QsListCategories struct {
	Search  string
	Filters data.Filters
}
