package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pawhub/pawhub-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BlockRepository struct {
	collection *mongo.Collection
}

func NewBlockRepository(db *mongo.Database) *BlockRepository {
	return &BlockRepository{
		collection: db.Collection("block_relationships"),
	}
}

func (r *BlockRepository) CreateBlock(ctx context.Context, blockerID, blockedID primitive.ObjectID) error {
	block := &models.BlockRelationship{
		BlockerID: blockerID,
		BlockedID: blockedID,
		CreatedAt: time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, block)
	if err != nil {
		return fmt.Errorf("failed to insert block relationship: %v", err)
	}
	return nil
}

// BlockExists reports whether blocker has already blocked blocked.
func (r *BlockRepository) BlockExists(ctx context.Context, blockerID, blockedID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"blocker_id": blockerID,
		"blocked_id": blockedID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check block relationship: %v", err)
	}
	return count > 0, nil
}

// DeleteBlock removes the block relationship(s) from blocker to blocked.
func (r *BlockRepository) DeleteBlock(ctx context.Context, blockerID, blockedID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{
		"blocker_id": blockerID,
		"blocked_id": blockedID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete block relationship: %v", err)
	}
	return nil
}
