package store

import (
	"time"

	"github.com/google/uuid"
)

// Repository is the access contract every entity repository satisfies.
// P is the entity's patch type used by Update.
type Repository[T, P any] interface {
	FindAll() []T
	FindByID(id string) (T, bool)
	Create(item T) (T, error)
	Update(id string, patch P) (T, bool)
	Delete(id string) (T, bool)
}

var (
	_ Repository[User, UserPatch]             = (*UserRepository)(nil)
	_ Repository[Chat, ChatPatch]             = (*ChatRepository)(nil)
	_ Repository[Message, MessagePatch]       = (*MessageRepository)(nil)
	_ Repository[Vote, VotePatch]             = (*VoteRepository)(nil)
	_ Repository[Document, DocumentPatch]     = (*DocumentRepository)(nil)
	_ Repository[Suggestion, SuggestionPatch] = (*SuggestionRepository)(nil)
)

// env holds the collaborators repositories use to fill defaults.
type env struct {
	now   func() time.Time
	newID func() string
}

type Option func(*env)

// WithClock overrides the time source used for default and version timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *env) { e.now = now }
}

// WithIDGenerator overrides the generator used for ids left blank on create.
func WithIDGenerator(newID func() string) Option {
	return func(e *env) { e.newID = newID }
}

// MemoryStore owns one repository per entity type. Construct it once in the
// composition root and share the pointer.
type MemoryStore struct {
	Users       *UserRepository
	Chats       *ChatRepository
	Messages    *MessageRepository
	Votes       *VoteRepository
	Documents   *DocumentRepository
	Suggestions *SuggestionRepository

	env *env
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	e := &env{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}

	return &MemoryStore{
		Users:       &UserRepository{env: e, rows: newTable[User](nil)},
		Chats:       &ChatRepository{env: e, rows: newTable[Chat](nil)},
		Messages:    &MessageRepository{env: e, rows: newTable(cloneMessage)},
		Votes:       &VoteRepository{rows: newTable[Vote](nil)},
		Documents:   &DocumentRepository{env: e, rows: newTable[Document](nil)},
		Suggestions: &SuggestionRepository{env: e, rows: newTable(cloneSuggestion)},
		env:         e,
	}
}

// Now returns the store's current time.
func (s *MemoryStore) Now() time.Time {
	return s.env.now()
}

// NewID returns a fresh id from the store's generator.
func (s *MemoryStore) NewID() string {
	return s.env.newID()
}

// Stats is a row count per entity table.
type Stats struct {
	Users       int `json:"users"`
	Chats       int `json:"chats"`
	Messages    int `json:"messages"`
	Votes       int `json:"votes"`
	Documents   int `json:"documents"`
	Suggestions int `json:"suggestions"`
}

func (s *MemoryStore) Stats() Stats {
	return Stats{
		Users:       s.Users.rows.len(),
		Chats:       s.Chats.rows.len(),
		Messages:    s.Messages.rows.len(),
		Votes:       s.Votes.rows.len(),
		Documents:   s.Documents.rows.len(),
		Suggestions: s.Suggestions.rows.len(),
	}
}
