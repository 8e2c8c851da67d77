package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatIDs(chats []Chat) []string {
	ids := make([]string, len(chats))
	for i, c := range chats {
		ids[i] = c.ID
	}
	return ids
}

func seedChats(t *testing.T, r *ChatRepository, userID string, minutes ...int) {
	t.Helper()
	for _, m := range minutes {
		_, err := r.Create(Chat{ID: fmt.Sprintf("c%d", m), Title: "chat", UserID: userID, CreatedAt: at(m)})
		require.NoError(t, err)
	}
}

func TestChatCreateAndFind(t *testing.T) {
	db, _ := newTestStore(t)

	created, err := db.Chats.Create(Chat{Title: "Hello", UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, epoch, created.CreatedAt)
	assert.Equal(t, VisibilityPrivate, created.Visibility)

	found, ok := db.Chats.FindByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, found)

	_, ok = db.Chats.FindByID("missing")
	assert.False(t, ok)
}

func TestChatCreateRequiresFields(t *testing.T) {
	db, _ := newTestStore(t)

	_, err := db.Chats.Create(Chat{UserID: "u1"})
	require.ErrorIs(t, err, ErrMissingField)
	var mf *MissingFieldError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, "title", mf.Field)

	_, err = db.Chats.Create(Chat{Title: "t"})
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Empty(t, db.Chats.FindAll())
}

func TestChatUpdateAndVisibility(t *testing.T) {
	db, _ := newTestStore(t)
	c, err := db.Chats.Create(Chat{ID: "c1", Title: "old", UserID: "u1"})
	require.NoError(t, err)

	updated, ok := db.Chats.Update("c1", ChatPatch{Title: ptr("new")})
	require.True(t, ok)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, c.UserID, updated.UserID)
	assert.Equal(t, c.CreatedAt, updated.CreatedAt)

	public, ok := db.Chats.UpdateVisibility("c1", VisibilityPublic)
	require.True(t, ok)
	assert.Equal(t, VisibilityPublic, public.Visibility)
	assert.Equal(t, "new", public.Title)

	_, ok = db.Chats.Update("nope", ChatPatch{Title: ptr("x")})
	assert.False(t, ok)
}

func TestChatDelete(t *testing.T) {
	db, _ := newTestStore(t)
	seedChats(t, db.Chats, "u1", 1, 2, 3)

	removed, ok := db.Chats.Delete("c2")
	require.True(t, ok)
	assert.Equal(t, "c2", removed.ID)
	assert.Equal(t, []string{"c1", "c3"}, chatIDs(db.Chats.FindAll()))

	_, ok = db.Chats.Delete("c2")
	assert.False(t, ok)
}

func TestChatReturnedCopiesAreDetached(t *testing.T) {
	db, _ := newTestStore(t)
	seedChats(t, db.Chats, "u1", 1)

	all := db.Chats.FindAll()
	all[0].Title = "mutated"

	c, _ := db.Chats.FindByID("c1")
	assert.Equal(t, "chat", c.Title)
	assert.Len(t, db.Chats.FindAll(), 1)
}

func TestFindByUserIDPagination(t *testing.T) {
	db, _ := newTestStore(t)
	seedChats(t, db.Chats, "u1", 1, 2, 3, 4, 5)
	seedChats(t, db.Chats, "u2", 6)

	page, err := db.Chats.FindByUserID("u1", 2, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"c5", "c4"}, chatIDs(page.Chats))
	assert.True(t, page.HasMore)

	page, err = db.Chats.FindByUserID("u1", 2, "", "c4")
	require.NoError(t, err)
	assert.Equal(t, []string{"c3", "c2"}, chatIDs(page.Chats))
	assert.True(t, page.HasMore)

	page, err = db.Chats.FindByUserID("u1", 2, "", "c2")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, chatIDs(page.Chats))
	assert.False(t, page.HasMore)
}

func TestFindByUserIDStartingAfter(t *testing.T) {
	db, _ := newTestStore(t)
	seedChats(t, db.Chats, "u1", 1, 2, 3, 4, 5)

	page, err := db.Chats.FindByUserID("u1", 2, "c2", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"c5", "c4"}, chatIDs(page.Chats))
	assert.True(t, page.HasMore)

	page, err = db.Chats.FindByUserID("u1", 2, "c4", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"c5"}, chatIDs(page.Chats))
	assert.False(t, page.HasMore)

	// startingAfter takes precedence over endingBefore.
	page, err = db.Chats.FindByUserID("u1", 10, "c4", "c2")
	require.NoError(t, err)
	assert.Equal(t, []string{"c5"}, chatIDs(page.Chats))
}

func TestFindByUserIDAnchorFromAnotherUser(t *testing.T) {
	db, _ := newTestStore(t)
	seedChats(t, db.Chats, "u1", 1, 3)
	seedChats(t, db.Chats, "u2", 2)

	page, err := db.Chats.FindByUserID("u1", 10, "", "c2")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, chatIDs(page.Chats))
}

func TestFindByUserIDUnknownAnchor(t *testing.T) {
	db, _ := newTestStore(t)
	seedChats(t, db.Chats, "u1", 1)

	_, err := db.Chats.FindByUserID("u1", 10, "ghost", "")
	assert.ErrorIs(t, err, ErrAnchorNotFound)

	_, err = db.Chats.FindByUserID("u1", 10, "", "ghost")
	assert.ErrorIs(t, err, ErrAnchorNotFound)
}

func TestFindByUserIDTiesKeepInsertionOrder(t *testing.T) {
	db, _ := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		_, err := db.Chats.Create(Chat{ID: id, Title: "t", UserID: "u1", CreatedAt: at(1)})
		require.NoError(t, err)
	}

	for range 3 {
		page, err := db.Chats.FindByUserID("u1", 2, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, chatIDs(page.Chats))
		assert.True(t, page.HasMore)
	}
}

func TestFindByUserIDLimitEdges(t *testing.T) {
	db, _ := newTestStore(t)
	seedChats(t, db.Chats, "u1", 1, 2)

	page, err := db.Chats.FindByUserID("u1", 2, "", "")
	require.NoError(t, err)
	assert.Len(t, page.Chats, 2)
	assert.False(t, page.HasMore)

	page, err = db.Chats.FindByUserID("u1", 0, "", "")
	require.NoError(t, err)
	assert.Empty(t, page.Chats)
	assert.True(t, page.HasMore)

	page, err = db.Chats.FindByUserID("nobody", 5, "", "")
	require.NoError(t, err)
	assert.NotNil(t, page.Chats)
	assert.Empty(t, page.Chats)
	assert.False(t, page.HasMore)
}
