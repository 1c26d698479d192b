package services

import (
	"context"
	"time"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService lists adoption reviews and handles replies. Reviews
// themselves are only created by the workflow transitions.
type ReviewService struct {
	reviews ReviewStore
}

func NewReviewService(reviews ReviewStore) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) ListReviewsByPet(ctx context.Context, petID primitive.ObjectID) ([]models.Review, error) {
	return s.reviews.ListReviewsByPet(ctx, petID)
}

// ReplyToReview appends a nested reply from either party.
func (s *ReviewService) ReplyToReview(ctx context.Context, reviewID, userID primitive.ObjectID, comment string) error {
	if comment == "" {
		return apperr.Invalid("reply comment is required")
	}
	if _, err := s.reviews.GetReviewByID(ctx, reviewID); err != nil {
		return err
	}
	return s.reviews.AddReply(ctx, reviewID, models.ReviewReply{
		UserID:    userID,
		Comment:   comment,
		CreatedAt: time.Now(),
	})
}
