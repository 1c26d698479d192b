package services

import (
	"context"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuideService serves training guide content pages.
type GuideService struct {
	guides GuideStore
}

func NewGuideService(guides GuideStore) *GuideService {
	return &GuideService{guides: guides}
}

func (s *GuideService) CreateGuide(ctx context.Context, guide *models.TrainingGuide) (*models.TrainingGuide, error) {
	if guide.Title == "" || guide.PetType == "" {
		return nil, apperr.Invalid("title and pet type are required")
	}
	return s.guides.CreateGuide(ctx, guide)
}

func (s *GuideService) GetGuide(ctx context.Context, id primitive.ObjectID) (*models.TrainingGuide, error) {
	return s.guides.GetGuideByID(ctx, id)
}

func (s *GuideService) ListGuides(ctx context.Context, petType string) ([]models.TrainingGuide, error) {
	return s.guides.ListGuides(ctx, petType)
}
