package dto

import "github.com/emzola/critica/data"

// CreateReviewRequestBody defines a request body for CreateReview service.
// The author and title are inferred from the request context, never from the
// body.
type CreateReviewRequestBody struct {
	Text  string `json:"text"`
	Score int8   `json:"score"`
}

// UpdateReviewRequestBody defines a request body for UpdateReview service.
type UpdateReviewRequestBody struct {
	Text  *string `json:"text"`
	Score *int8   `json:"score"`
}

// QsListReviews defines the query strings used for listing reviews.
type QsListReviews struct {
	Filters data.Filters
}
