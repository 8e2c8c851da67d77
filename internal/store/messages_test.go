package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageIDs(messages []Message) []string {
	ids := make([]string, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}
	return ids
}

func TestMessageCreateDefaults(t *testing.T) {
	db, _ := newTestStore(t)

	m, err := db.Messages.Create(Message{ChatID: "c1", Role: "user", Parts: json.RawMessage(`[{"type":"text","text":"hi"}]`)})
	require.NoError(t, err)
	assert.Equal(t, "id-1", m.ID)
	assert.Equal(t, epoch, m.CreatedAt)

	found, ok := db.Messages.FindByID(m.ID)
	require.True(t, ok)
	assert.Equal(t, m, found)

	_, err = db.Messages.Create(Message{Role: "user"})
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = db.Messages.Create(Message{ChatID: "c1"})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestMessagePayloadsAreCopied(t *testing.T) {
	db, _ := newTestStore(t)
	parts := json.RawMessage(`["hello"]`)

	saved, err := db.Messages.Create(Message{ID: "m1", ChatID: "c1", Role: "user", Parts: parts})
	require.NoError(t, err)

	parts[2] = 'X'
	saved.Parts[2] = 'Y'

	found, _ := db.Messages.FindByID("m1")
	assert.JSONEq(t, `["hello"]`, string(found.Parts))

	found.Parts[2] = 'Z'
	again, _ := db.Messages.FindByID("m1")
	assert.JSONEq(t, `["hello"]`, string(again.Parts))
}

func TestFindByChatIDOrdersOldestFirst(t *testing.T) {
	db, _ := newTestStore(t)
	_, err := db.Messages.SaveMany([]Message{
		{ID: "m3", ChatID: "c1", Role: "user", CreatedAt: at(3)},
		{ID: "m1", ChatID: "c1", Role: "user", CreatedAt: at(1)},
		{ID: "x", ChatID: "c2", Role: "user", CreatedAt: at(0)},
		{ID: "m2", ChatID: "c1", Role: "assistant", CreatedAt: at(2)},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"m1", "m2", "m3"}, messageIDs(db.Messages.FindByChatID("c1")))
	assert.Empty(t, db.Messages.FindByChatID("none"))
}

func TestSaveManyAssignsIDsAndKeepsOrder(t *testing.T) {
	db, _ := newTestStore(t)

	saved, err := db.Messages.SaveMany([]Message{
		{ChatID: "c1", Role: "user", CreatedAt: at(1)},
		{ID: "keep", ChatID: "c1", Role: "assistant", CreatedAt: at(2)},
		{ChatID: "c1", Role: "user", CreatedAt: at(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"id-1", "keep", "id-2"}, messageIDs(saved))
	assert.Equal(t, saved, db.Messages.FindAll())
}

func TestSaveManyRejectsWholeBatch(t *testing.T) {
	db, _ := newTestStore(t)

	_, err := db.Messages.SaveMany([]Message{
		{ChatID: "c1", Role: "user"},
		{ChatID: "c1"},
	})
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Empty(t, db.Messages.FindAll())
}

func TestMessageUpdateDelete(t *testing.T) {
	db, _ := newTestStore(t)
	_, err := db.Messages.Create(Message{ID: "m1", ChatID: "c1", Role: "user"})
	require.NoError(t, err)

	updated, ok := db.Messages.Update("m1", MessagePatch{Parts: json.RawMessage(`["edited"]`)})
	require.True(t, ok)
	assert.JSONEq(t, `["edited"]`, string(updated.Parts))
	assert.Equal(t, "user", updated.Role)

	removed, ok := db.Messages.Delete("m1")
	require.True(t, ok)
	assert.Equal(t, "m1", removed.ID)
	_, ok = db.Messages.Delete("m1")
	assert.False(t, ok)
}

func TestDeleteByChatIDAfterTimestampIsInclusive(t *testing.T) {
	db, _ := newTestStore(t)
	_, err := db.Messages.SaveMany([]Message{
		{ID: "m1", ChatID: "c1", Role: "user", CreatedAt: at(1)},
		{ID: "m2", ChatID: "c1", Role: "assistant", CreatedAt: at(2)},
		{ID: "m3", ChatID: "c1", Role: "user", CreatedAt: at(3)},
		{ID: "o2", ChatID: "c2", Role: "user", CreatedAt: at(2)},
	})
	require.NoError(t, err)

	removed := db.Messages.DeleteByChatIDAfterTimestamp("c1", at(2))
	assert.Equal(t, []string{"m2", "m3"}, messageIDs(removed), "message at exactly the timestamp is removed")
	assert.Equal(t, []string{"m1", "o2"}, messageIDs(db.Messages.FindAll()))

	assert.Empty(t, db.Messages.DeleteByChatIDAfterTimestamp("c1", at(5)))
}
