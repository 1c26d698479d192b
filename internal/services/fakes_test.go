package services

import (
	"context"
	"time"

	"github.com/pawhub/pawhub-server/internal/apperr"
	"github.com/pawhub/pawhub-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes shared by the service tests.

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByVerifyToken(ctx context.Context, token string) (*models.User, error) {
	for _, u := range f.users {
		if u.VerifyToken == token && token != "" {
			return u, nil
		}
	}
	return nil, apperr.NotFound("verification token not found")
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	for key, value := range update {
		switch key {
		case "username":
			u.Username = value.(string)
		case "area":
			u.Area = value.(string)
		case "preferred_types":
			u.PreferredTypes = value.([]string)
		case "is_verified":
			u.IsVerified = value.(bool)
		case "verify_token":
			u.VerifyToken = value.(string)
		}
	}
	return nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) AddToWishlist(ctx context.Context, userID, petID primitive.ObjectID) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("user not found")
	}
	for _, id := range u.Wishlist {
		if id == petID {
			return nil
		}
	}
	u.Wishlist = append(u.Wishlist, petID)
	return nil
}

func (f *fakeUserStore) RemoveFromWishlist(ctx context.Context, userID, petID primitive.ObjectID) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("user not found")
	}
	kept := u.Wishlist[:0]
	for _, id := range u.Wishlist {
		if id != petID {
			kept = append(kept, id)
		}
	}
	u.Wishlist = kept
	return nil
}

type fakePetStore struct {
	pets map[primitive.ObjectID]*models.Pet
}

func newFakePetStore() *fakePetStore {
	return &fakePetStore{pets: map[primitive.ObjectID]*models.Pet{}}
}

func (f *fakePetStore) CreatePet(ctx context.Context, pet *models.Pet) (*models.Pet, error) {
	if pet.ID.IsZero() {
		pet.ID = primitive.NewObjectID()
	}
	pet.Status = models.PetPending
	f.pets[pet.ID] = pet
	return pet, nil
}

func (f *fakePetStore) GetPetByID(ctx context.Context, id primitive.ObjectID) (*models.Pet, error) {
	p, ok := f.pets[id]
	if !ok {
		return nil, apperr.NotFound("pet not found")
	}
	return p, nil
}

func (f *fakePetStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PetStatus) error {
	p, ok := f.pets[id]
	if !ok {
		return apperr.NotFound("pet not found")
	}
	p.Status = status
	return nil
}

func (f *fakePetStore) SetAdoptionOutcome(ctx context.Context, id primitive.ObjectID, email, phone string) error {
	p, ok := f.pets[id]
	if !ok {
		return apperr.NotFound("pet not found")
	}
	p.Status = models.PetDelivered
	p.Email = email
	p.Phone = phone
	return nil
}

func (f *fakePetStore) DeletePet(ctx context.Context, id primitive.ObjectID) error {
	delete(f.pets, id)
	return nil
}

func (f *fakePetStore) ListPets(ctx context.Context, status models.PetStatus, petType, area string) ([]models.Pet, error) {
	var out []models.Pet
	for _, p := range f.pets {
		if p.Status != status {
			continue
		}
		if petType != "" && p.Type != petType {
			continue
		}
		if area != "" && p.Area != area {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePetStore) ListPetsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Pet, error) {
	var out []models.Pet
	for _, p := range f.pets {
		if p.PostedBy == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePetStore) GetPetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Pet, error) {
	var out []models.Pet
	for _, id := range ids {
		if p, ok := f.pets[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeAdoptFormStore struct {
	forms map[primitive.ObjectID]*models.AdoptForm
}

func newFakeAdoptFormStore() *fakeAdoptFormStore {
	return &fakeAdoptFormStore{forms: map[primitive.ObjectID]*models.AdoptForm{}}
}

func (f *fakeAdoptFormStore) CreateForm(ctx context.Context, form *models.AdoptForm) (*models.AdoptForm, error) {
	if form.ID.IsZero() {
		form.ID = primitive.NewObjectID()
	}
	if form.Status == "" {
		form.Status = "pending"
	}
	f.forms[form.ID] = form
	return form, nil
}

func (f *fakeAdoptFormStore) GetFormByID(ctx context.Context, id primitive.ObjectID) (*models.AdoptForm, error) {
	form, ok := f.forms[id]
	if !ok {
		return nil, apperr.NotFound("adopt form not found")
	}
	return form, nil
}

func (f *fakeAdoptFormStore) GetFormByPetAndAdopter(ctx context.Context, petID, adopterID primitive.ObjectID) (*models.AdoptForm, error) {
	for _, form := range f.forms {
		if form.PetID == petID && form.AdopterID == adopterID {
			return form, nil
		}
	}
	return nil, apperr.NotFound("adopt form not found")
}

func (f *fakeAdoptFormStore) ListFormsByPet(ctx context.Context, petID primitive.ObjectID) ([]models.AdoptForm, error) {
	var out []models.AdoptForm
	for _, form := range f.forms {
		if form.PetID == petID {
			out = append(out, *form)
		}
	}
	return out, nil
}

func (f *fakeAdoptFormStore) ListFormsByAdopter(ctx context.Context, adopterID primitive.ObjectID) ([]models.AdoptForm, error) {
	var out []models.AdoptForm
	for _, form := range f.forms {
		if form.AdopterID == adopterID {
			out = append(out, *form)
		}
	}
	return out, nil
}

func (f *fakeAdoptFormStore) DeleteFormsByPet(ctx context.Context, petID primitive.ObjectID) error {
	for id, form := range f.forms {
		if form.PetID == petID {
			delete(f.forms, id)
		}
	}
	return nil
}

func (f *fakeAdoptFormStore) DeleteFormsByPetAndAdopter(ctx context.Context, petID, adopterID primitive.ObjectID) error {
	for id, form := range f.forms {
		if form.PetID == petID && form.AdopterID == adopterID {
			delete(f.forms, id)
		}
	}
	return nil
}

func (f *fakeAdoptFormStore) DeleteForm(ctx context.Context, id primitive.ObjectID) error {
	delete(f.forms, id)
	return nil
}

func (f *fakeAdoptFormStore) UpdateFormStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	form, ok := f.forms[id]
	if !ok {
		return apperr.NotFound("adopt form not found")
	}
	form.Status = status
	return nil
}

type fakeChatStore struct {
	chats map[primitive.ObjectID]*models.Chat
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{chats: map[primitive.ObjectID]*models.Chat{}}
}

func (f *fakeChatStore) CreateChat(ctx context.Context, chat *models.Chat) (*models.Chat, error) {
	if chat.ID.IsZero() {
		chat.ID = primitive.NewObjectID()
	}
	chat.Status = models.ChatActive
	f.chats[chat.ID] = chat
	return chat, nil
}

func (f *fakeChatStore) GetChatByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	c, ok := f.chats[id]
	if !ok {
		return nil, apperr.NotFound("chat not found")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeChatStore) UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from []models.ChatStatus, to models.ChatStatus) (bool, error) {
	c, ok := f.chats[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if c.Status == s {
			c.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChatStore) DeleteChatsForAdoption(ctx context.Context, petID, adopteeID, adopterID primitive.ObjectID) error {
	for id, c := range f.chats {
		if c.PetID == petID && c.AdopteeID == adopteeID && c.AdopterID == adopterID {
			delete(f.chats, id)
		}
	}
	return nil
}

func (f *fakeChatStore) BlockChatsBetween(ctx context.Context, userA, userB primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for id, c := range f.chats {
		if (c.AdopterID == userA && c.AdopteeID == userB) || (c.AdopterID == userB && c.AdopteeID == userA) {
			c.Status = models.ChatBlocked
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeChatStore) ListChatsByAdopter(ctx context.Context, adopterID primitive.ObjectID, statuses []models.ChatStatus) ([]models.Chat, error) {
	return f.list(func(c *models.Chat) bool { return c.AdopterID == adopterID }, statuses), nil
}

func (f *fakeChatStore) ListChatsByAdoptee(ctx context.Context, adopteeID primitive.ObjectID, statuses []models.ChatStatus) ([]models.Chat, error) {
	return f.list(func(c *models.Chat) bool { return c.AdopteeID == adopteeID }, statuses), nil
}

func (f *fakeChatStore) list(match func(*models.Chat) bool, statuses []models.ChatStatus) []models.Chat {
	var out []models.Chat
	for _, c := range f.chats {
		if !match(c) {
			continue
		}
		for _, s := range statuses {
			if c.Status == s {
				out = append(out, *c)
				break
			}
		}
	}
	return out
}

type fakeMessageStore struct {
	messages []models.Message
	clock    time.Time
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeMessageStore) CreateMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.ID = primitive.NewObjectID()
	f.clock = f.clock.Add(time.Second)
	msg.CreatedAt = f.clock
	f.messages = append(f.messages, *msg)
	return msg, nil
}

func (f *fakeMessageStore) ListMessagesByChat(ctx context.Context, chatID primitive.ObjectID) ([]models.Message, error) {
	var out []models.Message
	for _, m := range f.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) DeleteMessagesByChat(ctx context.Context, chatID primitive.ObjectID) error {
	kept := f.messages[:0]
	for _, m := range f.messages {
		if m.ChatID != chatID {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

func (f *fakeMessageStore) DeleteMessagesByChats(ctx context.Context, chatIDs []primitive.ObjectID) error {
	for _, id := range chatIDs {
		if err := f.DeleteMessagesByChat(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

type fakeNotificationStore struct {
	notifications []models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{}
}

func (f *fakeNotificationStore) CreateNotification(ctx context.Context, notif *models.Notification) error {
	notif.ID = primitive.NewObjectID()
	notif.CreatedAt = time.Now()
	notif.ExpiresAt = notif.CreatedAt.Add(7 * 24 * time.Hour)
	f.notifications = append(f.notifications, *notif)
	return nil
}

func (f *fakeNotificationStore) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(f.notifications) - 1; i >= 0 && len(out) < 20; i-- {
		if f.notifications[i].UserID == userID {
			out = append(out, f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error {
	for i := range f.notifications {
		if f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) DeleteExpiredNotifications(ctx context.Context) error {
	return nil
}

// forUser returns the stored notifications addressed to one user.
func (f *fakeNotificationStore) forUser(userID primitive.ObjectID) []models.Notification {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeReviewStore struct {
	reviews map[primitive.ObjectID]*models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[primitive.ObjectID]*models.Review{}}
}

func (f *fakeReviewStore) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	f.reviews[review.ID] = review
	return review, nil
}

func (f *fakeReviewStore) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, apperr.NotFound("review not found")
	}
	return r, nil
}

func (f *fakeReviewStore) ListReviewsByPet(ctx context.Context, petID primitive.ObjectID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.PetID == petID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) AddReply(ctx context.Context, reviewID primitive.ObjectID, reply models.ReviewReply) error {
	r, ok := f.reviews[reviewID]
	if !ok {
		return apperr.NotFound("review not found")
	}
	r.Replies = append(r.Replies, reply)
	return nil
}

type blockPair struct {
	blocker primitive.ObjectID
	blocked primitive.ObjectID
}

type fakeBlockStore struct {
	blocks map[blockPair]bool
}

func newFakeBlockStore() *fakeBlockStore {
	return &fakeBlockStore{blocks: map[blockPair]bool{}}
}

func (f *fakeBlockStore) CreateBlock(ctx context.Context, blockerID, blockedID primitive.ObjectID) error {
	f.blocks[blockPair{blockerID, blockedID}] = true
	return nil
}

func (f *fakeBlockStore) BlockExists(ctx context.Context, blockerID, blockedID primitive.ObjectID) (bool, error) {
	return f.blocks[blockPair{blockerID, blockedID}], nil
}

func (f *fakeBlockStore) DeleteBlock(ctx context.Context, blockerID, blockedID primitive.ObjectID) error {
	delete(f.blocks, blockPair{blockerID, blockedID})
	return nil
}

type fakeGuideStore struct {
	guides map[primitive.ObjectID]*models.TrainingGuide
}

func newFakeGuideStore() *fakeGuideStore {
	return &fakeGuideStore{guides: map[primitive.ObjectID]*models.TrainingGuide{}}
}

func (f *fakeGuideStore) CreateGuide(ctx context.Context, guide *models.TrainingGuide) (*models.TrainingGuide, error) {
	guide.ID = primitive.NewObjectID()
	f.guides[guide.ID] = guide
	return guide, nil
}

func (f *fakeGuideStore) GetGuideByID(ctx context.Context, id primitive.ObjectID) (*models.TrainingGuide, error) {
	g, ok := f.guides[id]
	if !ok {
		return nil, apperr.NotFound("training guide not found")
	}
	return g, nil
}

func (f *fakeGuideStore) ListGuides(ctx context.Context, petType string) ([]models.TrainingGuide, error) {
	var out []models.TrainingGuide
	for _, g := range f.guides {
		if petType == "" || g.PetType == petType {
			out = append(out, *g)
		}
	}
	return out, nil
}

// fakeTxn runs the function directly. The workflow issues its guarded chat
// update before any other write, so conflict paths still apply nothing.
type fakeTxn struct{}

func (fakeTxn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
