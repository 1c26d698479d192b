package services

import (
	"context"

	"github.com/pawhub/pawhub-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces consumed by the services. The repository package provides
// the MongoDB implementations; tests provide in-memory ones.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByVerifyToken(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	AddToWishlist(ctx context.Context, userID, petID primitive.ObjectID) error
	RemoveFromWishlist(ctx context.Context, userID, petID primitive.ObjectID) error
}

type PetStore interface {
	CreatePet(ctx context.Context, pet *models.Pet) (*models.Pet, error)
	GetPetByID(ctx context.Context, id primitive.ObjectID) (*models.Pet, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PetStatus) error
	SetAdoptionOutcome(ctx context.Context, id primitive.ObjectID, email, phone string) error
	DeletePet(ctx context.Context, id primitive.ObjectID) error
	ListPets(ctx context.Context, status models.PetStatus, petType, area string) ([]models.Pet, error)
	ListPetsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Pet, error)
	GetPetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Pet, error)
}

type AdoptFormStore interface {
	CreateForm(ctx context.Context, form *models.AdoptForm) (*models.AdoptForm, error)
	GetFormByID(ctx context.Context, id primitive.ObjectID) (*models.AdoptForm, error)
	GetFormByPetAndAdopter(ctx context.Context, petID, adopterID primitive.ObjectID) (*models.AdoptForm, error)
	ListFormsByPet(ctx context.Context, petID primitive.ObjectID) ([]models.AdoptForm, error)
	ListFormsByAdopter(ctx context.Context, adopterID primitive.ObjectID) ([]models.AdoptForm, error)
	DeleteFormsByPet(ctx context.Context, petID primitive.ObjectID) error
	DeleteFormsByPetAndAdopter(ctx context.Context, petID, adopterID primitive.ObjectID) error
	DeleteForm(ctx context.Context, id primitive.ObjectID) error
	UpdateFormStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

type ChatStore interface {
	CreateChat(ctx context.Context, chat *models.Chat) (*models.Chat, error)
	GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error)
	UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from []models.ChatStatus, to models.ChatStatus) (bool, error)
	DeleteChatsForAdoption(ctx context.Context, petID, adopteeID, adopterID primitive.ObjectID) error
	BlockChatsBetween(ctx context.Context, userA, userB primitive.ObjectID) ([]primitive.ObjectID, error)
	ListChatsByAdopter(ctx context.Context, adopterID primitive.ObjectID, statuses []models.ChatStatus) ([]models.Chat, error)
	ListChatsByAdoptee(ctx context.Context, adopteeID primitive.ObjectID, statuses []models.ChatStatus) ([]models.Chat, error)
}

type MessageStore interface {
	CreateMessage(ctx context.Context, msg *models.Message) (*models.Message, error)
	ListMessagesByChat(ctx context.Context, chatID primitive.ObjectID) ([]models.Message, error)
	DeleteMessagesByChat(ctx context.Context, chatID primitive.ObjectID) error
	DeleteMessagesByChats(ctx context.Context, chatIDs []primitive.ObjectID) error
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error
	DeleteExpiredNotifications(ctx context.Context) error
}

type ReviewStore interface {
	CreateReview(ctx context.Context, review *models.Review) (*models.Review, error)
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	ListReviewsByPet(ctx context.Context, petID primitive.ObjectID) ([]models.Review, error)
	AddReply(ctx context.Context, reviewID primitive.ObjectID, reply models.ReviewReply) error
}

type BlockStore interface {
	CreateBlock(ctx context.Context, blockerID, blockedID primitive.ObjectID) error
	BlockExists(ctx context.Context, blockerID, blockedID primitive.ObjectID) (bool, error)
	DeleteBlock(ctx context.Context, blockerID, blockedID primitive.ObjectID) error
}

type GuideStore interface {
	CreateGuide(ctx context.Context, guide *models.TrainingGuide) (*models.TrainingGuide, error)
	GetGuideByID(ctx context.Context, id primitive.ObjectID) (*models.TrainingGuide, error)
	ListGuides(ctx context.Context, petType string) ([]models.TrainingGuide, error)
}

// Txn runs a function inside one transactional unit.
type Txn interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
