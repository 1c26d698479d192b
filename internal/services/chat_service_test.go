package services

import (
	"context"
	"testing"

	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type chatListEnv struct {
	svc   *ChatService
	users *fakeUserStore
	pets  *fakePetStore
	chats *fakeChatStore

	adopter *models.User
	adoptee *models.User
}

func newChatListEnv(t *testing.T) *chatListEnv {
	t.Helper()
	env := &chatListEnv{
		users: newFakeUserStore(),
		pets:  newFakePetStore(),
		chats: newFakeChatStore(),
	}
	ctx := context.Background()

	adopter, err := env.users.CreateUser(ctx, &models.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	adoptee, err := env.users.CreateUser(ctx, &models.User{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)

	env.adopter = adopter
	env.adoptee = adoptee
	env.svc = NewChatService(env.chats, env.users, env.pets)
	return env
}

// seedChat creates a pet plus a chat between the env's pair in the given
// status and returns the chat.
func (env *chatListEnv) seedChat(t *testing.T, petName string, status models.ChatStatus) *models.Chat {
	t.Helper()
	ctx := context.Background()

	pet, err := env.pets.CreatePet(ctx, &models.Pet{Name: petName, PostedBy: env.adoptee.ID})
	require.NoError(t, err)

	chat, err := env.chats.CreateChat(ctx, &models.Chat{
		AdopterID: env.adopter.ID,
		AdopteeID: env.adoptee.ID,
		PetID:     pet.ID,
	})
	require.NoError(t, err)
	env.chats.chats[chat.ID].Status = status
	return chat
}

func chatIDs(items []models.ChatListItem) map[primitive.ObjectID]bool {
	out := map[primitive.ObjectID]bool{}
	for _, item := range items {
		out[item.ChatID] = true
	}
	return out
}

func TestAdopterChatVisibility(t *testing.T) {
	env := newChatListEnv(t)

	active := env.seedChat(t, "Rex", models.ChatActive)
	sent := env.seedChat(t, "Milo", models.ChatSent)
	delivered := env.seedChat(t, "Luna", models.ChatDelivered)
	env.seedChat(t, "Coco", models.ChatPassive)

	current, err := env.svc.AdopterChats(context.Background(), env.adopter.ID, false)
	require.NoError(t, err)
	ids := chatIDs(current)
	assert.True(t, ids[active.ID])
	assert.True(t, ids[sent.ID], "sent chats stay visible to the adopter awaiting delivery")
	assert.Len(t, current, 2)

	archived, err := env.svc.AdopterChats(context.Background(), env.adopter.ID, true)
	require.NoError(t, err)
	ids = chatIDs(archived)
	assert.True(t, ids[sent.ID])
	assert.True(t, ids[delivered.ID])
	assert.Len(t, archived, 2)
}

func TestAdopteeChatVisibility(t *testing.T) {
	env := newChatListEnv(t)

	active := env.seedChat(t, "Rex", models.ChatActive)
	env.seedChat(t, "Milo", models.ChatSent)
	delivered := env.seedChat(t, "Luna", models.ChatDelivered)
	env.seedChat(t, "Coco", models.ChatPassive)

	current, err := env.svc.AdopteeChats(context.Background(), env.adoptee.ID, false)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, active.ID, current[0].ChatID)

	archived, err := env.svc.AdopteeChats(context.Background(), env.adoptee.ID, true)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, delivered.ID, archived[0].ChatID)
}

func TestChatListJoinsCounterpartAndPet(t *testing.T) {
	env := newChatListEnv(t)
	chat := env.seedChat(t, "Rex", models.ChatActive)

	items, err := env.svc.AdopterChats(context.Background(), env.adopter.ID, false)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, chat.ID, item.ChatID)
	assert.Equal(t, "bob", item.Name, "the adopter sees the donator")
	assert.Equal(t, "bob@example.com", item.Email)
	assert.Equal(t, "Rex", item.PetName)
	assert.Equal(t, models.ChatActive, item.Status)

	items, err = env.svc.AdopteeChats(context.Background(), env.adoptee.ID, false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "alice", items[0].Name, "the donator sees the adopter")
}

func TestChatListSkipsVanishedRows(t *testing.T) {
	env := newChatListEnv(t)
	kept := env.seedChat(t, "Rex", models.ChatActive)
	orphan := env.seedChat(t, "Milo", models.ChatActive)
	require.NoError(t, env.pets.DeletePet(context.Background(), orphan.PetID))

	items, err := env.svc.AdopterChats(context.Background(), env.adopter.ID, false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ChatID)
}
