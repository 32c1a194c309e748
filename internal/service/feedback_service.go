package service

import (
	"context"
	"errors"
	"time"

	"souq-api/internal/domain"
	"souq-api/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

// FeedbackService defines the interface for feedback business logic
type FeedbackService interface {
	Submit(ctx context.Context, userID, productID uuid.UUID, rating int, body string) (*domain.Feedback, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]*domain.FeedbackWithAuthor, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

// NewFeedbackService creates a new instance of FeedbackService
func NewFeedbackService(feedbackRepo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo}
}

// Submit stores a rating and comment tied to the caller. Multiple
// entries per (user, product) are allowed.
func (s *feedbackService) Submit(ctx context.Context, userID, productID uuid.UUID, rating int, body string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrRatingOutOfRange
	}

	feedback := &domain.Feedback{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	return feedback, nil
}

// ListForProduct returns a product's feedback newest-first with
// submitter names attached
func (s *feedbackService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]*domain.FeedbackWithAuthor, error) {
	return s.feedbackRepo.ListByProduct(ctx, productID)
}
