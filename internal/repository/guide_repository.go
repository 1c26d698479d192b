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
)

type GuideRepository struct {
	collection *mongo.Collection
}

func NewGuideRepository(db *mongo.Database) *GuideRepository {
	return &GuideRepository{
		collection: db.Collection("training_guides"),
	}
}

func (r *GuideRepository) CreateGuide(ctx context.Context, guide *models.TrainingGuide) (*models.TrainingGuide, error) {
	guide.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, guide)
	if err != nil {
		return nil, fmt.Errorf("failed to insert training guide: %v", err)
	}
	guide.ID = result.InsertedID.(primitive.ObjectID)
	return guide, nil
}

func (r *GuideRepository) GetGuideByID(ctx context.Context, id primitive.ObjectID) (*models.TrainingGuide, error) {
	var guide models.TrainingGuide
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&guide)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("training guide not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find training guide: %v", err)
	}
	return &guide, nil
}

// ListGuides returns guides, optionally filtered by pet type.
func (r *GuideRepository) ListGuides(ctx context.Context, petType string) ([]models.TrainingGuide, error) {
	filter := bson.M{}
	if petType != "" {
		filter["pet_type"] = petType
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch training guides: %v", err)
	}
	defer cursor.Close(ctx)

	var guides []models.TrainingGuide
	if err := cursor.All(ctx, &guides); err != nil {
		return nil, fmt.Errorf("failed to decode training guides: %v", err)
	}
	return guides, nil
}
