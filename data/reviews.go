package data

import (
	"time"

	"github.com/emzola/critica/internal/validator"
)

// Review defines a review model. A user can review a given title at most
// once; the pair (title, author) is unique.
type Review struct {
	ID        int64     `json:"id"`
	TitleID   int64     `json:"title_id"`
	AuthorID  int64     `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int8      `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
	Version   int32     `json:"-"`
}

func ValidateReview(v *validator.Validator, review *Review) {
	v.Check(review.Text != "", "text", "must be provided")
	v.Check(review.Score >= 1, "score", "must be at least 1")
	v.Check(review.Score <= 10, "score", "must not be greater than 10")
}
