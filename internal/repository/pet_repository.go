package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PetRepository struct {
	collection *mongo.Collection
}

func NewPetRepository(db *mongo.Database) *PetRepository {
	return &PetRepository{
		collection: db.Collection("pets"),
	}
}

// CreatePet inserts a new listing. Status starts as Pending until an admin
// approves it.
func (r *PetRepository) CreatePet(ctx context.Context, pet *models.Pet) (*models.Pet, error) {
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = time.Now()
	pet.Status = models.PetPending

	result, err := r.collection.InsertOne(ctx, pet)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert pet into database")
		return nil, fmt.Errorf("failed to insert pet: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	pet.ID = insertedID

	logrus.WithField("petID", pet.ID.Hex()).Info("Pet inserted successfully")
	return pet, nil
}

func (r *PetRepository) GetPetByID(ctx context.Context, id primitive.ObjectID) (*models.Pet, error) {
	var pet models.Pet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("pet not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pet by id: %v", err)
	}
	return &pet, nil
}

// UpdateStatus sets a pet's lifecycle status.
func (r *PetRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PetStatus) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"petID":  id.Hex(),
			"status": status,
			"error":  err,
		}).Error("Failed to update pet status")
		return fmt.Errorf("failed to update pet status: %v", err)
	}
	return nil
}

// SetAdoptionOutcome finalizes a delivery: status becomes Delivered and the
// listing contact is rewritten to the adopter's.
func (r *PetRepository) SetAdoptionOutcome(ctx context.Context, id primitive.ObjectID, email, phone string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":     models.PetDelivered,
			"email":      email,
			"phone":      phone,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to finalize adoption: %v", err)
	}
	return nil
}

func (r *PetRepository) DeletePet(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete pet: %v", err)
	}
	return nil
}

// ListPets returns pets with the given status, optionally filtered by type
// and area.
func (r *PetRepository) ListPets(ctx context.Context, status models.PetStatus, petType, area string) ([]models.Pet, error) {
	filter := bson.M{"status": status}
	if petType != "" {
		filter["type"] = petType
	}
	if area != "" {
		filter["area"] = area
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pets: %v", err)
	}
	defer cursor.Close(ctx)

	var pets []models.Pet
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %v", err)
	}
	return pets, nil
}

// ListPetsByUser returns every listing posted by the given user.
func (r *PetRepository) ListPetsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Pet, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"posted_by": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user pets: %v", err)
	}
	defer cursor.Close(ctx)

	var pets []models.Pet
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %v", err)
	}
	return pets, nil
}

// GetPetsByIDs fetches pet details for a list of ObjectIDs (wishlist view).
func (r *PetRepository) GetPetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Pet, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pets by IDs: %v", err)
	}
	defer cursor.Close(ctx)

	var pets []models.Pet
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}
