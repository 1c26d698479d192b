package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type messageEnv struct {
	svc           *MessageService
	users         *fakeUserStore
	chats         *fakeChatStore
	messages      *fakeMessageStore
	blocks        *fakeBlockStore
	notifications *fakeNotificationStore

	adopter *models.User
	adoptee *models.User
	chat    *models.Chat
}

func newMessageEnv(t *testing.T) *messageEnv {
	t.Helper()
	ctx := context.Background()

	env := &messageEnv{
		users:         newFakeUserStore(),
		chats:         newFakeChatStore(),
		messages:      newFakeMessageStore(),
		blocks:        newFakeBlockStore(),
		notifications: newFakeNotificationStore(),
	}

	adopter, err := env.users.CreateUser(ctx, &models.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	adoptee, err := env.users.CreateUser(ctx, &models.User{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)

	chat, err := env.chats.CreateChat(ctx, &models.Chat{
		AdopterID: adopter.ID,
		AdopteeID: adoptee.ID,
		PetID:     primitive.NewObjectID(),
	})
	require.NoError(t, err)

	env.adopter = adopter
	env.adoptee = adoptee
	env.chat = chat
	env.svc = NewMessageService(env.messages, env.chats, env.users, env.blocks, env.notifications)
	return env
}

func TestSendMessage(t *testing.T) {
	env := newMessageEnv(t)
	ctx := context.Background()

	msg, err := env.svc.SendMessage(ctx, env.chat.ID, env.adopter.ID, "is Rex still available?")
	require.NoError(t, err)
	assert.Equal(t, env.chat.ID, msg.ChatID)
	assert.Equal(t, env.adopter.ID, msg.SenderID)
	assert.False(t, msg.CreatedAt.IsZero())

	notifs := env.notifications.forUser(env.adoptee.ID)
	require.Len(t, notifs, 1, "the counterpart gets exactly one notification")
	assert.Equal(t, "New message from alice", notifs[0].Message)
	assert.Empty(t, env.notifications.forUser(env.adopter.ID))
}

func TestSendMessageRequiresContent(t *testing.T) {
	env := newMessageEnv(t)

	_, err := env.svc.SendMessage(context.Background(), env.chat.ID, env.adopter.ID, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Empty(t, env.messages.messages)
}

func TestSendMessageNonParticipant(t *testing.T) {
	env := newMessageEnv(t)
	stranger, err := env.users.CreateUser(context.Background(), &models.User{Username: "mallory"})
	require.NoError(t, err)

	_, err = env.svc.SendMessage(context.Background(), env.chat.ID, stranger.ID, "hi")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Empty(t, env.messages.messages)
}

func TestSendMessageUnknownChat(t *testing.T) {
	env := newMessageEnv(t)

	_, err := env.svc.SendMessage(context.Background(), primitive.NewObjectID(), env.adopter.ID, "hi")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListMessagesOrdering(t *testing.T) {
	env := newMessageEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sender := env.adopter.ID
		if i%2 == 1 {
			sender = env.adoptee.ID
		}
		_, err := env.svc.SendMessage(ctx, env.chat.ID, sender, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	msgs, err := env.svc.ListMessages(ctx, env.chat.ID, env.adopter.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i-1].CreatedAt.Before(msgs[i].CreatedAt), "transcript is oldest first")
	}
	assert.Equal(t, "message 0", msgs[0].Content)
}

func TestListMessagesBlockedRequester(t *testing.T) {
	env := newMessageEnv(t)
	ctx := context.Background()

	_, err := env.svc.SendMessage(ctx, env.chat.ID, env.adopter.ID, "hello")
	require.NoError(t, err)
	require.NoError(t, env.blocks.CreateBlock(ctx, env.adoptee.ID, env.adopter.ID))

	_, err = env.svc.ListMessages(ctx, env.chat.ID, env.adopter.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// The block is one-directional: the blocker can still read.
	msgs, err := env.svc.ListMessages(ctx, env.chat.ID, env.adoptee.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestListMessagesNonParticipant(t *testing.T) {
	env := newMessageEnv(t)
	stranger, err := env.users.CreateUser(context.Background(), &models.User{Username: "mallory"})
	require.NoError(t, err)

	_, err = env.svc.ListMessages(context.Background(), env.chat.ID, stranger.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
