package data

import (
	"time"

	"github.com/emzola/critica/internal/validator"
)

// Comment defines a comment left on a review. The title reference is
// denormalized from the parent review.
type Comment struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"review_id"`
	TitleID   int64     `json:"title_id"`
	AuthorID  int64     `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
	Version   int32     `json:"-"`
}

func ValidateComment(v *validator.Validator, comment *Comment) {
	v.Check(comment.Text != "", "text", "must be provided")
	v.Check(len(comment.Text) <= 2000, "text", "must not be more than 2000 bytes long")
}
