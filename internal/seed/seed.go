// Package seed loads fixture data into a MemoryStore at startup.
package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gwi.com/chat-memstore/internal/auth"
	"gwi.com/chat-memstore/internal/core"
	"gwi.com/chat-memstore/internal/store"
)

type Fixtures struct {
	Users       []UserFixture      `json:"users"`
	Chats       []store.Chat       `json:"chats"`
	Messages    []store.Message    `json:"messages"`
	Votes       []VoteFixture      `json:"votes"`
	Documents   []store.Document   `json:"documents"`
	Suggestions []store.Suggestion `json:"suggestions"`
}

// UserFixture carries a plaintext password; it is hashed on load.
type UserFixture struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VoteFixture struct {
	ChatID    string        `json:"chat_id"`
	MessageID string        `json:"message_id"`
	Type      core.VoteType `json:"type"`
}

type Loader struct {
	DB      *store.MemoryStore
	Queries *core.QueryService
	Hasher  auth.Hasher
	Log     *zap.Logger
}

// LoadFile reads fixtures from path and applies them.
func (l *Loader) LoadFile(path string) (store.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return store.Stats{}, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer f.Close()

	fx, err := Decode(f)
	if err != nil {
		return store.Stats{}, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	if err := l.Apply(fx); err != nil {
		return store.Stats{}, err
	}

	stats := l.DB.Stats()
	l.Log.Info("Seed data loaded",
		zap.String("path", path),
		zap.Int("users", stats.Users),
		zap.Int("chats", stats.Chats),
		zap.Int("messages", stats.Messages),
		zap.Int("votes", stats.Votes),
		zap.Int("documents", stats.Documents),
		zap.Int("suggestions", stats.Suggestions),
	)
	return stats, nil
}

func Decode(r io.Reader) (Fixtures, error) {
	var fx Fixtures
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fx); err != nil {
		return Fixtures{}, err
	}
	return fx, nil
}

// Apply inserts fixtures parents first. Users keep their fixture ids and
// chats and documents their recorded timestamps, so those go straight to the
// repositories; the rest goes through the query service.
func (l *Loader) Apply(fx Fixtures) error {
	db, queries := l.DB, l.Queries
	for _, u := range fx.Users {
		hashed, err := l.Hasher(u.Password)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
		if _, err := db.Users.Create(store.User{ID: u.ID, Email: u.Email, Password: hashed}); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}
	for _, c := range fx.Chats {
		if _, err := db.Chats.Create(c); err != nil {
			return fmt.Errorf("failed to seed chat %s: %w", c.ID, err)
		}
	}
	if _, err := queries.SaveMessages(fx.Messages); err != nil {
		return err
	}
	for _, v := range fx.Votes {
		if _, err := queries.VoteMessage(v.ChatID, v.MessageID, v.Type); err != nil {
			return err
		}
	}
	for _, d := range fx.Documents {
		if _, err := db.Documents.Create(d); err != nil {
			return fmt.Errorf("failed to seed document %s: %w", d.ID, err)
		}
	}
	if _, err := queries.SaveSuggestions(fx.Suggestions); err != nil {
		return err
	}
	return nil
}
