package store

import (
	"fmt"
	"sort"
)

type ChatRepository struct {
	env  *env
	rows *table[Chat]
}

// ChatPage is one page of a user's chats, newest first.
type ChatPage struct {
	Chats   []Chat `json:"chats"`
	HasMore bool   `json:"hasMore"`
}

func (r *ChatRepository) FindAll() []Chat {
	return r.rows.all()
}

func (r *ChatRepository) FindByID(id string) (Chat, bool) {
	return r.rows.first(func(c Chat) bool { return c.ID == id })
}

// FindByUserID pages through a user's chats ordered by CreatedAt descending.
// startingAfter keeps chats strictly newer than the named chat, endingBefore
// strictly older; startingAfter wins when both are set. An anchor id that is
// not in the store yields ErrAnchorNotFound.
func (r *ChatRepository) FindByUserID(userID string, limit int, startingAfter, endingBefore string) (ChatPage, error) {
	if limit < 0 {
		limit = 0
	}

	all := r.rows.all()

	chats := make([]Chat, 0)
	for _, c := range all {
		if c.UserID == userID {
			chats = append(chats, c)
		}
	}
	// Stable so chats sharing a timestamp keep insertion order between calls.
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].CreatedAt.After(chats[j].CreatedAt)
	})

	switch {
	case startingAfter != "":
		anchor, err := findAnchor(all, startingAfter)
		if err != nil {
			return ChatPage{}, err
		}
		chats = keepChats(chats, func(c Chat) bool { return c.CreatedAt.After(anchor.CreatedAt) })
	case endingBefore != "":
		anchor, err := findAnchor(all, endingBefore)
		if err != nil {
			return ChatPage{}, err
		}
		chats = keepChats(chats, func(c Chat) bool { return c.CreatedAt.Before(anchor.CreatedAt) })
	}

	hasMore := len(chats) > limit
	if hasMore {
		chats = chats[:limit]
	}
	return ChatPage{Chats: chats, HasMore: hasMore}, nil
}

func (r *ChatRepository) Create(item Chat) (Chat, error) {
	if item.Title == "" {
		return Chat{}, missing("chat", "title")
	}
	if item.UserID == "" {
		return Chat{}, missing("chat", "userId")
	}
	if item.ID == "" {
		item.ID = r.env.newID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.env.now()
	}
	if item.Visibility == "" {
		item.Visibility = VisibilityPrivate
	}
	return r.rows.insert(item)[0], nil
}

func (r *ChatRepository) Update(id string, patch ChatPatch) (Chat, bool) {
	return r.rows.modify(func(c Chat) bool { return c.ID == id }, func(c *Chat) {
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.UserID != nil {
			c.UserID = *patch.UserID
		}
		if patch.Visibility != nil {
			c.Visibility = *patch.Visibility
		}
		if patch.CreatedAt != nil {
			c.CreatedAt = *patch.CreatedAt
		}
	})
}

func (r *ChatRepository) UpdateVisibility(id string, visibility Visibility) (Chat, bool) {
	return r.Update(id, ChatPatch{Visibility: &visibility})
}

func (r *ChatRepository) Delete(id string) (Chat, bool) {
	return r.rows.removeFirst(func(c Chat) bool { return c.ID == id })
}

func findAnchor(chats []Chat, id string) (Chat, error) {
	for _, c := range chats {
		if c.ID == id {
			return c, nil
		}
	}
	return Chat{}, fmt.Errorf("chat with id %s: %w", id, ErrAnchorNotFound)
}

func keepChats(chats []Chat, keep func(Chat) bool) []Chat {
	out := chats[:0]
	for _, c := range chats {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
