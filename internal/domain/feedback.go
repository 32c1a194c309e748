package domain

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a user's rating and comment on a product. A user may
// leave more than one entry for the same product.
type Feedback struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Rating    int       `json:"rate" db:"rating"`
	Body      string    `json:"feedback" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FeedbackWithAuthor attaches the submitter's display name for listings.
type FeedbackWithAuthor struct {
	Feedback
	AuthorName string `json:"user_name"`
}
