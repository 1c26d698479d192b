package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/pawhub/pawhub-server/pkg/email"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService encapsulates the business logic for user operations.
type UserService struct {
	users UserStore
	pets  PetStore

	// sendMail is swapped out in tests.
	sendMail func(to, subject, body string) error
}

// NewUserService creates a new instance of UserService.
func NewUserService(users UserStore, pets PetStore) *UserService {
	return &UserService{
		users:    users,
		pets:     pets,
		sendMail: email.SendEmail,
	}
}

// RegisterUser registers a new user after hashing their password.
func (s *UserService) RegisterUser(ctx context.Context, user *models.User) (*models.User, error) {
	logrus.Info("Registering new user")

	if user.Email == "" || user.Username == "" || user.HashedPassword == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, apperr.Invalid("missing required user fields")
	}

	if !emailRegex.MatchString(user.Email) {
		logrus.WithField("email", user.Email).Warn("Invalid email format during registration")
		return nil, apperr.Invalid("invalid email format")
	}

	// Check if the email is already registered
	existingUser, _ := s.users.GetUserByEmail(ctx, user.Email)
	if existingUser != nil {
		logrus.WithField("email", user.Email).Warn("Email already in use")
		return nil, apperr.Conflict("email already in use")
	}

	// Hash the user's password.
	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(user.HashedPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user.HashedPassword = string(hashedPwd)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if user.Role == "" {
		user.Role = "user"
	}

	user.VerifyToken = uuid.NewString()
	user.IsVerified = false

	createdUser, err := s.users.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	// Registration stands even when the verification mail cannot go out.
	emailBody := fmt.Sprintf("Welcome to PawHub!\n\nYour email verification token: %s", createdUser.VerifyToken)
	if err := s.sendMail(createdUser.Email, "Email Verification", emailBody); err != nil {
		logrus.WithError(err).Warn("Failed to send verification email")
	}

	logrus.WithFields(logrus.Fields{
		"userID": createdUser.ID.Hex(),
		"role":   createdUser.Role,
	}).Info("User registered successfully")

	return createdUser, nil
}

// AuthenticateUser checks the credentials and returns the matching user.
func (s *UserService) AuthenticateUser(ctx context.Context, emailAddr, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return nil, apperr.Invalid("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", emailAddr).Warn("Password mismatch")
		return nil, apperr.Invalid("invalid email or password")
	}

	return user, nil
}

// VerifyEmail flips the verified flag for the user owning the token.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperr.Invalid("verification token is required")
	}

	user, err := s.users.GetUserByVerifyToken(ctx, token)
	if err != nil {
		return err
	}

	return s.users.UpdateUser(ctx, user.ID, bson.M{
		"is_verified":  true,
		"verify_token": "",
	})
}

// GetUser fetches a user by ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// UpdateProfile updates the mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, username, area string, preferredTypes []string) error {
	update := bson.M{}
	if username != "" {
		update["username"] = username
	}
	if area != "" {
		update["area"] = area
	}
	if preferredTypes != nil {
		update["preferred_types"] = preferredTypes
	}
	if len(update) == 0 {
		return apperr.Invalid("nothing to update")
	}
	return s.users.UpdateUser(ctx, id, update)
}

// DeleteUser removes the account.
func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return s.users.DeleteUser(ctx, id)
}

// GetAllUsers is the admin listing.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.GetAllUsers(ctx)
}

// AddToWishlist saves a pet on the user's wishlist.
func (s *UserService) AddToWishlist(ctx context.Context, userID, petID primitive.ObjectID) error {
	if _, err := s.pets.GetPetByID(ctx, petID); err != nil {
		return err
	}
	return s.users.AddToWishlist(ctx, userID, petID)
}

// RemoveFromWishlist drops a pet from the user's wishlist.
func (s *UserService) RemoveFromWishlist(ctx context.Context, userID, petID primitive.ObjectID) error {
	return s.users.RemoveFromWishlist(ctx, userID, petID)
}

// GetWishlist resolves the user's wishlist into pet records.
func (s *UserService) GetWishlist(ctx context.Context, userID primitive.ObjectID) ([]models.Pet, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Wishlist) == 0 {
		return []models.Pet{}, nil
	}
	return s.pets.GetPetsByIDs(ctx, user.Wishlist)
}
