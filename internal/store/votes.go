package store

import "slices"

// VoteRepository stores at most one vote per (chatId, messageId). Votes have
// no id of their own, so the single-key FindByID, Update and Delete always
// report absent; use the composite-key methods instead.
type VoteRepository struct {
	rows *table[Vote]
}

func (r *VoteRepository) FindAll() []Vote {
	return r.rows.all()
}

func (r *VoteRepository) FindByID(string) (Vote, bool) {
	return Vote{}, false
}

func (r *VoteRepository) FindByChatID(chatID string) []Vote {
	return r.rows.filter(func(v Vote) bool { return v.ChatID == chatID })
}

func (r *VoteRepository) FindByMessageID(messageID string) (Vote, bool) {
	return r.rows.first(func(v Vote) bool { return v.MessageID == messageID })
}

func (r *VoteRepository) FindByChatIDAndMessageID(chatID, messageID string) (Vote, bool) {
	return r.rows.first(sameVote(chatID, messageID))
}

// Create upserts: an existing vote for the same key is replaced wholesale.
func (r *VoteRepository) Create(item Vote) (Vote, error) {
	if item.ChatID == "" {
		return Vote{}, missing("vote", "chatId")
	}
	if item.MessageID == "" {
		return Vote{}, missing("vote", "messageId")
	}
	return r.rows.upsert(item, sameVote(item.ChatID, item.MessageID)), nil
}

func (r *VoteRepository) Update(string, VotePatch) (Vote, bool) {
	return Vote{}, false
}

func (r *VoteRepository) UpdateByChatIDAndMessageID(chatID, messageID string, isUpvoted bool) (Vote, bool) {
	return r.rows.modify(sameVote(chatID, messageID), func(v *Vote) {
		v.IsUpvoted = isUpvoted
	})
}

func (r *VoteRepository) Delete(string) (Vote, bool) {
	return Vote{}, false
}

func (r *VoteRepository) DeleteByChatIDAndMessageID(chatID, messageID string) (Vote, bool) {
	return r.rows.removeFirst(sameVote(chatID, messageID))
}

// DeleteByChatIDAndMessageIDs removes every vote in chatID on one of messageIDs.
func (r *VoteRepository) DeleteByChatIDAndMessageIDs(chatID string, messageIDs []string) []Vote {
	return r.rows.removeWhere(func(v Vote) bool {
		return v.ChatID == chatID && slices.Contains(messageIDs, v.MessageID)
	})
}

func sameVote(chatID, messageID string) func(Vote) bool {
	return func(v Vote) bool {
		return v.ChatID == chatID && v.MessageID == messageID
	}
}
