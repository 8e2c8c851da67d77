package core

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gwi.com/chat-memstore/internal/auth"
	"gwi.com/chat-memstore/internal/store"
)

// QueryService answers the backend's database queries against a MemoryStore.
// Use cases spanning several repositories, such as cascading deletes and
// usage counts, are composed here; repositories never touch each other.
type QueryService struct {
	db     *store.MemoryStore
	hasher auth.Hasher
	log    *zap.Logger
}

func NewQueryService(db *store.MemoryStore, hasher auth.Hasher, log *zap.Logger) *QueryService {
	if hasher == nil {
		hasher = auth.HashPassword
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &QueryService{
		db:     db,
		hasher: hasher,
		log:    log,
	}
}

// fail records which operation failed and returns the wrapped error.
func (s *QueryService) fail(op string, err error, fields ...zap.Field) error {
	s.log.Error("Failed to "+op, append(fields, zap.Error(err))...)
	return fmt.Errorf("failed to %s: %w", op, err)
}

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// RoleUser marks messages written by the account holder; only these count
// towards GetMessageCountByUserID.
const RoleUser = "user"

// GuestUser is what the caller sees of a freshly created guest account.
type GuestUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// User functions

func (s *QueryService) GetUser(email string) []store.User {
	return s.db.Users.FindByEmail(email)
}

func (s *QueryService) CreateUser(email, password string) (store.User, error) {
	hashed, err := s.hasher(password)
	if err != nil {
		return store.User{}, s.fail("create user", err, zap.String("email", email))
	}
	user, err := s.db.Users.Create(store.User{Email: email, Password: hashed})
	if err != nil {
		return store.User{}, s.fail("create user", err, zap.String("email", email))
	}
	return user, nil
}

// CreateGuestUser registers a throwaway account whose password is the hash of
// a random id. Only the id and email are returned.
func (s *QueryService) CreateGuestUser() (GuestUser, error) {
	email := fmt.Sprintf("guest-%d", s.db.Now().UnixMilli())
	hashed, err := s.hasher(s.db.NewID())
	if err != nil {
		return GuestUser{}, s.fail("create guest user", err)
	}
	user, err := s.db.Users.Create(store.User{Email: email, Password: hashed})
	if err != nil {
		return GuestUser{}, s.fail("create guest user", err)
	}
	return GuestUser{ID: user.ID, Email: user.Email}, nil
}

// Chat functions

func (s *QueryService) SaveChat(id, userID, title string) (store.Chat, error) {
	chat, err := s.db.Chats.Create(store.Chat{
		ID:        id,
		UserID:    userID,
		Title:     title,
		CreatedAt: s.db.Now(),
	})
	if err != nil {
		return store.Chat{}, s.fail("save chat", err, zap.String("chat_id", id))
	}
	return chat, nil
}

// DeleteChatByID removes the chat's votes, then its messages, then the chat.
func (s *QueryService) DeleteChatByID(id string) (store.Chat, bool) {
	messages := s.db.Messages.FindByChatID(id)
	if len(messages) > 0 {
		ids := make([]string, len(messages))
		for i, m := range messages {
			ids[i] = m.ID
		}
		s.db.Votes.DeleteByChatIDAndMessageIDs(id, ids)
	}
	for _, m := range messages {
		s.db.Messages.Delete(m.ID)
	}
	return s.db.Chats.Delete(id)
}

func (s *QueryService) GetChatsByUserID(id string, limit int, startingAfter, endingBefore string) (store.ChatPage, error) {
	page, err := s.db.Chats.FindByUserID(id, limit, startingAfter, endingBefore)
	if err != nil {
		return store.ChatPage{}, s.fail("get chats by user", err, zap.String("user_id", id))
	}
	return page, nil
}

func (s *QueryService) GetChatByID(id string) (store.Chat, bool) {
	return s.db.Chats.FindByID(id)
}

func (s *QueryService) UpdateChatVisibilityByID(chatID string, visibility store.Visibility) (store.Chat, bool) {
	return s.db.Chats.UpdateVisibility(chatID, visibility)
}

// Message functions

func (s *QueryService) SaveMessages(messages []store.Message) ([]store.Message, error) {
	saved, err := s.db.Messages.SaveMany(messages)
	if err != nil {
		return nil, s.fail("save messages", err, zap.Int("count", len(messages)))
	}
	return saved, nil
}

func (s *QueryService) GetMessagesByChatID(id string) []store.Message {
	return s.db.Messages.FindByChatID(id)
}

// GetMessageByID returns zero or one messages.
func (s *QueryService) GetMessageByID(id string) []store.Message {
	if m, ok := s.db.Messages.FindByID(id); ok {
		return []store.Message{m}
	}
	return []store.Message{}
}

// DeleteMessagesByChatIDAfterTimestamp removes messages at or after timestamp
// together with the votes cast on them.
func (s *QueryService) DeleteMessagesByChatIDAfterTimestamp(chatID string, timestamp time.Time) []store.Message {
	deleted := s.db.Messages.DeleteByChatIDAfterTimestamp(chatID, timestamp)
	if len(deleted) > 0 {
		ids := make([]string, len(deleted))
		for i, m := range deleted {
			ids[i] = m.ID
		}
		s.db.Votes.DeleteByChatIDAndMessageIDs(chatID, ids)
	}
	return deleted
}

// GetMessageCountByUserID counts user-role messages sent in the user's chats
// within the last differenceInHours hours.
func (s *QueryService) GetMessageCountByUserID(id string, differenceInHours int) int {
	cutoff := s.db.Now().Add(-time.Duration(differenceInHours) * time.Hour)

	chatIDs := make(map[string]struct{})
	for _, c := range s.db.Chats.FindAll() {
		if c.UserID == id {
			chatIDs[c.ID] = struct{}{}
		}
	}

	count := 0
	for _, m := range s.db.Messages.FindAll() {
		if _, ok := chatIDs[m.ChatID]; !ok {
			continue
		}
		if m.Role == RoleUser && !m.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count
}

// Vote functions

func (s *QueryService) VoteMessage(chatID, messageID string, voteType VoteType) (store.Vote, error) {
	vote, err := s.db.Votes.Create(store.Vote{
		ChatID:    chatID,
		MessageID: messageID,
		IsUpvoted: voteType == VoteUp,
	})
	if err != nil {
		return store.Vote{}, s.fail("vote message", err, zap.String("chat_id", chatID), zap.String("message_id", messageID))
	}
	return vote, nil
}

func (s *QueryService) GetVotesByChatID(id string) []store.Vote {
	return s.db.Votes.FindByChatID(id)
}

// Document functions

func (s *QueryService) SaveDocument(id, title, kind, content, userID string) ([]store.Document, error) {
	doc, err := s.db.Documents.Create(store.Document{
		ID:        id,
		Title:     title,
		Kind:      kind,
		Content:   content,
		UserID:    userID,
		CreatedAt: s.db.Now(),
	})
	if err != nil {
		return nil, s.fail("save document", err, zap.String("document_id", id))
	}
	return []store.Document{doc}, nil
}

func (s *QueryService) GetDocumentsByID(id string) []store.Document {
	return s.db.Documents.FindAllByID(id)
}

func (s *QueryService) GetDocumentByID(id string) (store.Document, bool) {
	return s.db.Documents.FindLatestByID(id)
}

// DeleteDocumentsByIDAfterTimestamp prunes versions created after timestamp.
// Suggestions on those versions go first, while the versions still exist.
func (s *QueryService) DeleteDocumentsByIDAfterTimestamp(id string, timestamp time.Time) []store.Document {
	s.db.Suggestions.DeleteByDocumentIDAfterTimestamp(id, timestamp)
	return s.db.Documents.DeleteByIDAfterTimestamp(id, timestamp)
}

// Suggestion functions

func (s *QueryService) SaveSuggestions(suggestions []store.Suggestion) ([]store.Suggestion, error) {
	saved, err := s.db.Suggestions.SaveMany(suggestions)
	if err != nil {
		return nil, s.fail("save suggestions", err, zap.Int("count", len(suggestions)))
	}
	return saved, nil
}

func (s *QueryService) GetSuggestionsByDocumentID(documentID string) []store.Suggestion {
	return s.db.Suggestions.FindByDocumentID(documentID)
}
