package store

import (
	"encoding/json"
	"slices"
	"time"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"` // Already hashed, never echoed back
}

type Chat struct {
	ID         string     `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	Title      string     `json:"title"`
	UserID     string     `json:"user_id"`
	Visibility Visibility `json:"visibility"`
}

type Message struct {
	ID          string          `json:"id"`
	ChatID      string          `json:"chat_id"`
	Role        string          `json:"role"` // "user", "assistant", ...
	Parts       json.RawMessage `json:"parts"`
	Attachments json.RawMessage `json:"attachments"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Vote is keyed by (ChatID, MessageID); it has no id of its own.
type Vote struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	IsUpvoted bool   `json:"is_upvoted"`
}

// Document rows sharing an ID are versions of one document, ordered by CreatedAt.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Suggestion is attached to the document version (DocumentID, DocumentCreatedAt).
type Suggestion struct {
	ID                string    `json:"id"`
	DocumentID        string    `json:"document_id"`
	DocumentCreatedAt time.Time `json:"document_created_at"`
	OriginalText      string    `json:"original_text"`
	SuggestedText     string    `json:"suggested_text"`
	Description       *string   `json:"description"` // Nullable
	IsResolved        bool      `json:"is_resolved"`
	UserID            string    `json:"user_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// Patches carry the fields an update overlays; nil means "leave as is".

type UserPatch struct {
	Email    *string
	Password *string
}

type ChatPatch struct {
	Title      *string
	UserID     *string
	Visibility *Visibility
	CreatedAt  *time.Time
}

type MessagePatch struct {
	ChatID      *string
	Role        *string
	Parts       json.RawMessage
	Attachments json.RawMessage
	CreatedAt   *time.Time
}

type VotePatch struct {
	IsUpvoted *bool
}

// DocumentPatch has no CreatedAt: every update stamps a fresh version time.
type DocumentPatch struct {
	Title   *string
	Kind    *string
	Content *string
	UserID  *string
}

type SuggestionPatch struct {
	OriginalText  *string
	SuggestedText *string
	Description   *string
	IsResolved    *bool
}

func cloneMessage(m Message) Message {
	m.Parts = slices.Clone(m.Parts)
	m.Attachments = slices.Clone(m.Attachments)
	return m
}

func cloneSuggestion(s Suggestion) Suggestion {
	if s.Description != nil {
		d := *s.Description
		s.Description = &d
	}
	return s
}
