package store

import (
	"slices"
	"sort"
	"time"
)

type MessageRepository struct {
	env  *env
	rows *table[Message]
}

func (r *MessageRepository) FindAll() []Message {
	return r.rows.all()
}

func (r *MessageRepository) FindByID(id string) (Message, bool) {
	return r.rows.first(func(m Message) bool { return m.ID == id })
}

// FindByChatID returns a chat's messages in conversation order, oldest first.
func (r *MessageRepository) FindByChatID(chatID string) []Message {
	messages := r.rows.filter(func(m Message) bool { return m.ChatID == chatID })
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages
}

func (r *MessageRepository) Create(item Message) (Message, error) {
	item, err := r.prepare(item)
	if err != nil {
		return Message{}, err
	}
	return r.rows.insert(item)[0], nil
}

// SaveMany stores the batch in order. The whole batch is validated before
// anything is appended.
func (r *MessageRepository) SaveMany(messages []Message) ([]Message, error) {
	prepared := make([]Message, len(messages))
	for i, m := range messages {
		p, err := r.prepare(m)
		if err != nil {
			return nil, err
		}
		prepared[i] = p
	}
	return r.rows.insert(prepared...), nil
}

func (r *MessageRepository) Update(id string, patch MessagePatch) (Message, bool) {
	return r.rows.modify(func(m Message) bool { return m.ID == id }, func(m *Message) {
		if patch.ChatID != nil {
			m.ChatID = *patch.ChatID
		}
		if patch.Role != nil {
			m.Role = *patch.Role
		}
		if patch.Parts != nil {
			m.Parts = slices.Clone(patch.Parts)
		}
		if patch.Attachments != nil {
			m.Attachments = slices.Clone(patch.Attachments)
		}
		if patch.CreatedAt != nil {
			m.CreatedAt = *patch.CreatedAt
		}
	})
}

func (r *MessageRepository) Delete(id string) (Message, bool) {
	return r.rows.removeFirst(func(m Message) bool { return m.ID == id })
}

// DeleteByChatIDAfterTimestamp removes the chat's messages created at or after
// timestamp. The boundary is inclusive.
func (r *MessageRepository) DeleteByChatIDAfterTimestamp(chatID string, timestamp time.Time) []Message {
	return r.rows.removeWhere(func(m Message) bool {
		return m.ChatID == chatID && !m.CreatedAt.Before(timestamp)
	})
}

func (r *MessageRepository) prepare(m Message) (Message, error) {
	if m.ChatID == "" {
		return Message{}, missing("message", "chatId")
	}
	if m.Role == "" {
		return Message{}, missing("message", "role")
	}
	if m.ID == "" {
		m.ID = r.env.newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.env.now()
	}
	return m, nil
}
