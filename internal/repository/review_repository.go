package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		collection: db.Collection("reviews"),
	}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review: %v", err)
	}
	review.ID = result.InsertedID.(primitive.ObjectID)
	return review, nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("review not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review: %v", err)
	}
	return &review, nil
}

func (r *ReviewRepository) ListReviewsByPet(ctx context.Context, petID primitive.ObjectID) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"pet_id": petID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %v", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %v", err)
	}
	return reviews, nil
}

// AddReply appends a nested reply to a review.
func (r *ReviewRepository) AddReply(ctx context.Context, reviewID primitive.ObjectID, reply models.ReviewReply) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": reviewID},
		bson.M{"$push": bson.M{"replies": reply}},
	)
	if err != nil {
		return fmt.Errorf("failed to add reply: %v", err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("review not found")
	}
	return nil
}
