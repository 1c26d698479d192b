package services

import (
	"context"
	"testing"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest() (*UserService, *fakeUserStore, *fakePetStore, *[]string) {
	users := newFakeUserStore()
	pets := newFakePetStore()
	svc := NewUserService(users, pets)
	var mails []string
	svc.sendMail = func(to, subject, body string) error {
		mails = append(mails, to)
		return nil
	}
	return svc, users, pets, &mails
}

func TestRegisterUser(t *testing.T) {
	svc, _, _, mails := newUserServiceForTest()
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, &models.User{
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, "user", user.Role)
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.VerifyToken)
	assert.NotEqual(t, "s3cret", user.HashedPassword, "password must be stored hashed")
	assert.Equal(t, []string{"alice@example.com"}, *mails)
}

func TestRegisterUserValidation(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, &models.User{Username: "alice", Email: "alice@example.com"})
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = svc.RegisterUser(ctx, &models.User{Username: "alice", Email: "not-an-email", HashedPassword: "pw"})
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, &models.User{Username: "alice", Email: "alice@example.com", HashedPassword: "pw"})
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, &models.User{Username: "alice2", Email: "alice@example.com", HashedPassword: "pw"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestAuthenticateUser(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, &models.User{Username: "alice", Email: "alice@example.com", HashedPassword: "s3cret"})
	require.NoError(t, err)

	user, err := svc.AuthenticateUser(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.AuthenticateUser(ctx, "alice@example.com", "wrong")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = svc.AuthenticateUser(ctx, "nobody@example.com", "s3cret")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err), "unknown email gets the same answer as a bad password")
}

func TestVerifyEmail(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest()
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, &models.User{Username: "alice", Email: "alice@example.com", HashedPassword: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(ctx, user.VerifyToken))
	assert.True(t, users.users[user.ID].IsVerified)
	assert.Empty(t, users.users[user.ID].VerifyToken)

	err = svc.VerifyEmail(ctx, "no-such-token")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestWishlist(t *testing.T) {
	svc, _, pets, _ := newUserServiceForTest()
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, &models.User{Username: "alice", Email: "alice@example.com", HashedPassword: "pw"})
	require.NoError(t, err)

	pet, err := pets.CreatePet(ctx, &models.Pet{Name: "Rex", Type: "Dog"})
	require.NoError(t, err)

	require.NoError(t, svc.AddToWishlist(ctx, user.ID, pet.ID))
	require.NoError(t, svc.AddToWishlist(ctx, user.ID, pet.ID), "adding twice is a no-op")

	wishlist, err := svc.GetWishlist(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, wishlist, 1)
	assert.Equal(t, "Rex", wishlist[0].Name)

	require.NoError(t, svc.RemoveFromWishlist(ctx, user.ID, pet.ID))
	wishlist, err = svc.GetWishlist(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, wishlist)
}

func TestUpdateProfile(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest()
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, &models.User{Username: "alice", Email: "alice@example.com", HashedPassword: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(ctx, user.ID, "alice2", "Dhaka", []string{"Dog", "Cat"}))
	stored := users.users[user.ID]
	assert.Equal(t, "alice2", stored.Username)
	assert.Equal(t, "Dhaka", stored.Area)
	assert.Equal(t, []string{"Dog", "Cat"}, stored.PreferredTypes)

	err = svc.UpdateProfile(ctx, user.ID, "", "", nil)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}
