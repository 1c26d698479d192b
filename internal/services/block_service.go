package services

import (
	"context"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockService handles the standalone block/unblock flow, independent of any
// single chat.
type BlockService struct {
	blocks   BlockStore
	chats    ChatStore
	messages MessageStore
	users    UserStore
}

func NewBlockService(blocks BlockStore, chats ChatStore, messages MessageStore, users UserStore) *BlockService {
	return &BlockService{
		blocks:   blocks,
		chats:    chats,
		messages: messages,
		users:    users,
	}
}

// BlockUser records a block and wipes the conversation history between the
// two users: every chat between them becomes blocked and their messages are
// deleted.
func (s *BlockService) BlockUser(ctx context.Context, currentID, targetID primitive.ObjectID) error {
	if currentID == targetID {
		return apperr.Invalid("you cannot block yourself")
	}

	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		return err
	}

	exists, err := s.blocks.BlockExists(ctx, currentID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("user is already blocked")
	}

	if err := s.blocks.CreateBlock(ctx, currentID, targetID); err != nil {
		return err
	}

	chatIDs, err := s.chats.BlockChatsBetween(ctx, currentID, targetID)
	if err != nil {
		return err
	}
	if err := s.messages.DeleteMessagesByChats(ctx, chatIDs); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"blockerID":    currentID.Hex(),
		"blockedID":    targetID.Hex(),
		"blockedChats": len(chatIDs),
	}).Info("User blocked")
	return nil
}

// UnblockUserByEmail removes the current user's block on the user owning the
// given email address.
func (s *BlockService) UnblockUserByEmail(ctx context.Context, currentID primitive.ObjectID, email string) error {
	if email == "" {
		return apperr.Invalid("email is required")
	}

	target, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.blocks.DeleteBlock(ctx, currentID, target.ID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"blockerID": currentID.Hex(),
		"blockedID": target.ID.Hex(),
	}).Info("User unblocked")
	return nil
}

// IsBlockedBy reports whether userID has been blocked by byUserID.
func (s *BlockService) IsBlockedBy(ctx context.Context, userID, byUserID primitive.ObjectID) (bool, error) {
	return s.blocks.BlockExists(ctx, byUserID, userID)
}
