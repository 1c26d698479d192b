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
)

type AdoptFormRepository struct {
	collection *mongo.Collection
}

func NewAdoptFormRepository(db *mongo.Database) *AdoptFormRepository {
	return &AdoptFormRepository{
		collection: db.Collection("adopt_forms"),
	}
}

func (r *AdoptFormRepository) CreateForm(ctx context.Context, form *models.AdoptForm) (*models.AdoptForm, error) {
	form.CreatedAt = time.Now()
	form.Status = "pending"

	result, err := r.collection.InsertOne(ctx, form)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert adopt form")
		return nil, fmt.Errorf("failed to insert adopt form: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	form.ID = insertedID

	return form, nil
}

func (r *AdoptFormRepository) GetFormByID(ctx context.Context, id primitive.ObjectID) (*models.AdoptForm, error) {
	var form models.AdoptForm
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&form)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("adopt form not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find adopt form: %v", err)
	}
	return &form, nil
}

// GetFormByPetAndAdopter returns the application one adopter filed for one
// pet. The delivered transition reads the adopter's contact from it.
func (r *AdoptFormRepository) GetFormByPetAndAdopter(ctx context.Context, petID, adopterID primitive.ObjectID) (*models.AdoptForm, error) {
	var form models.AdoptForm
	err := r.collection.FindOne(ctx, bson.M{"pet_id": petID, "adopter_id": adopterID}).Decode(&form)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("adopt form not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find adopt form: %v", err)
	}
	return &form, nil
}

func (r *AdoptFormRepository) ListFormsByPet(ctx context.Context, petID primitive.ObjectID) ([]models.AdoptForm, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"pet_id": petID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch adopt forms: %v", err)
	}
	defer cursor.Close(ctx)

	var forms []models.AdoptForm
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, fmt.Errorf("failed to decode adopt forms: %v", err)
	}
	return forms, nil
}

func (r *AdoptFormRepository) ListFormsByAdopter(ctx context.Context, adopterID primitive.ObjectID) ([]models.AdoptForm, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"adopter_id": adopterID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch adopt forms: %v", err)
	}
	defer cursor.Close(ctx)

	var forms []models.AdoptForm
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, fmt.Errorf("failed to decode adopt forms: %v", err)
	}
	return forms, nil
}

// DeleteFormsByPet removes every application for a pet (adoption finalized).
func (r *AdoptFormRepository) DeleteFormsByPet(ctx context.Context, petID primitive.ObjectID) error {
	result, err := r.collection.DeleteMany(ctx, bson.M{"pet_id": petID})
	if err != nil {
		return fmt.Errorf("failed to delete adopt forms for pet: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"petID":   petID.Hex(),
		"deleted": result.DeletedCount,
	}).Info("Deleted adopt forms for pet")
	return nil
}

// DeleteFormsByPetAndAdopter removes one adopter's application(s) for a pet
// (cancelled or blocked).
func (r *AdoptFormRepository) DeleteFormsByPetAndAdopter(ctx context.Context, petID, adopterID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"pet_id": petID, "adopter_id": adopterID})
	if err != nil {
		return fmt.Errorf("failed to delete adopt forms for adopter: %v", err)
	}
	return nil
}

func (r *AdoptFormRepository) DeleteForm(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete adopt form: %v", err)
	}
	return nil
}

func (r *AdoptFormRepository) UpdateFormStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update adopt form status: %v", err)
	}
	return nil
}
