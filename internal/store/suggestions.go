package store

import "time"

type SuggestionRepository struct {
	env  *env
	rows *table[Suggestion]
}

func (r *SuggestionRepository) FindAll() []Suggestion {
	return r.rows.all()
}

func (r *SuggestionRepository) FindByID(id string) (Suggestion, bool) {
	return r.rows.first(func(s Suggestion) bool { return s.ID == id })
}

// FindByDocumentID returns suggestions on any version of the document, in store order.
func (r *SuggestionRepository) FindByDocumentID(documentID string) []Suggestion {
	return r.rows.filter(func(s Suggestion) bool { return s.DocumentID == documentID })
}

func (r *SuggestionRepository) Create(item Suggestion) (Suggestion, error) {
	item, err := r.prepare(item)
	if err != nil {
		return Suggestion{}, err
	}
	return r.rows.insert(item)[0], nil
}

func (r *SuggestionRepository) SaveMany(suggestions []Suggestion) ([]Suggestion, error) {
	prepared := make([]Suggestion, len(suggestions))
	for i, s := range suggestions {
		p, err := r.prepare(s)
		if err != nil {
			return nil, err
		}
		prepared[i] = p
	}
	return r.rows.insert(prepared...), nil
}

func (r *SuggestionRepository) Update(id string, patch SuggestionPatch) (Suggestion, bool) {
	return r.rows.modify(func(s Suggestion) bool { return s.ID == id }, func(s *Suggestion) {
		if patch.OriginalText != nil {
			s.OriginalText = *patch.OriginalText
		}
		if patch.SuggestedText != nil {
			s.SuggestedText = *patch.SuggestedText
		}
		if patch.Description != nil {
			d := *patch.Description
			s.Description = &d
		}
		if patch.IsResolved != nil {
			s.IsResolved = *patch.IsResolved
		}
	})
}

func (r *SuggestionRepository) Delete(id string) (Suggestion, bool) {
	return r.rows.removeFirst(func(s Suggestion) bool { return s.ID == id })
}

// DeleteByDocumentIDAfterTimestamp removes suggestions attached to versions of
// documentID created strictly after timestamp.
func (r *SuggestionRepository) DeleteByDocumentIDAfterTimestamp(documentID string, timestamp time.Time) []Suggestion {
	return r.rows.removeWhere(func(s Suggestion) bool {
		return s.DocumentID == documentID && s.DocumentCreatedAt.After(timestamp)
	})
}

func (r *SuggestionRepository) prepare(s Suggestion) (Suggestion, error) {
	switch {
	case s.DocumentID == "":
		return Suggestion{}, missing("suggestion", "documentId")
	case s.DocumentCreatedAt.IsZero():
		return Suggestion{}, missing("suggestion", "documentCreatedAt")
	case s.OriginalText == "":
		return Suggestion{}, missing("suggestion", "originalText")
	case s.SuggestedText == "":
		return Suggestion{}, missing("suggestion", "suggestedText")
	case s.UserID == "":
		return Suggestion{}, missing("suggestion", "userId")
	}
	if s.ID == "" {
		s.ID = r.env.newID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.env.now()
	}
	return s, nil
}
