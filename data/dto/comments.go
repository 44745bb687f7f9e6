package dto

import "github.com/emzola/critica/data"

// CreateCommentRequestBody defines a request body for CreateComment service.
// The author and parent review are inferred from the request context.
type CreateCommentRequestBody struct {
	Text string `json:"text"`
}

// UpdateCommentRequestBody defines a request body for UpdateComment service.
type UpdateCommentRequestBody struct {
	Text *string `json:"text"`
}

// QsListComments defines the query strings used for listing comments.
type QsListComments struct {
	Filters data.Filters
}
