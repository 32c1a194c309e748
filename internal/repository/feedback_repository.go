package repository

import (
	"context"
	"database/sql"
	"fmt"

	"souq-api/internal/domain"

	"github.com/google/uuid"
)

// FeedbackRepository defines the interface for feedback data access
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.FeedbackWithAuthor, error)
}

type feedbackRepository struct {
	db *sql.DB
}

// NewFeedbackRepository creates a new instance of FeedbackRepository
func NewFeedbackRepository(db *sql.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create inserts a feedback entry. No uniqueness constraint: a user
// may review the same product more than once.
func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	query := `
		INSERT INTO feedback (id, user_id, product_id, rating, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		feedback.ID,
		feedback.UserID,
		feedback.ProductID,
		feedback.Rating,
		feedback.Body,
		feedback.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	return nil
}

// ListByProduct retrieves a product's feedback with submitter names,
// newest first
func (r *feedbackRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.FeedbackWithAuthor, error) {
	query := `
		SELECT f.id, f.user_id, f.product_id, f.rating, f.body, f.created_at, u.name
		FROM feedback f
		JOIN users u ON u.id = f.user_id
		WHERE f.product_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	entries := []*domain.FeedbackWithAuthor{}
	for rows.Next() {
		entry := &domain.FeedbackWithAuthor{}
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.ProductID,
			&entry.Rating,
			&entry.Body,
			&entry.CreatedAt,
			&entry.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return entries, nil
}
