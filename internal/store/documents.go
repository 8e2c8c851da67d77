package store

import (
	"sort"
	"time"
)

const defaultDocumentKind = "text"

// DocumentRepository keeps every version of a document as its own row.
// Edits append a new version; versions are only ever removed by
// DeleteByIDAfterTimestamp.
type DocumentRepository struct {
	env  *env
	rows *table[Document]
}

func (r *DocumentRepository) FindAll() []Document {
	return r.rows.all()
}

// FindByID returns the first stored version of id, not necessarily the latest.
func (r *DocumentRepository) FindByID(id string) (Document, bool) {
	return r.rows.first(func(d Document) bool { return d.ID == id })
}

// FindAllByID returns all versions of id, oldest first.
func (r *DocumentRepository) FindAllByID(id string) []Document {
	versions := r.rows.filter(func(d Document) bool { return d.ID == id })
	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].CreatedAt.Before(versions[j].CreatedAt)
	})
	return versions
}

func (r *DocumentRepository) FindLatestByID(id string) (Document, bool) {
	versions := r.FindAllByID(id)
	if len(versions) == 0 {
		return Document{}, false
	}
	return versions[len(versions)-1], true
}

func (r *DocumentRepository) Create(item Document) (Document, error) {
	if item.Title == "" {
		return Document{}, missing("document", "title")
	}
	if item.UserID == "" {
		return Document{}, missing("document", "userId")
	}
	if item.ID == "" {
		item.ID = r.env.newID()
	}
	if item.Kind == "" {
		item.Kind = defaultDocumentKind
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.env.now()
	}
	return r.rows.insert(item)[0], nil
}

// Update appends a new version built from the latest one with patch applied
// and a fresh timestamp. It reports false when id has no versions.
func (r *DocumentRepository) Update(id string, patch DocumentPatch) (Document, bool) {
	return r.rows.appendDerived(func(rows []Document) (Document, bool) {
		latest, ok := latestVersion(rows, id)
		if !ok {
			return Document{}, false
		}

		next := latest
		if patch.Title != nil {
			next.Title = *patch.Title
		}
		if patch.Kind != nil {
			next.Kind = *patch.Kind
		}
		if patch.Content != nil {
			next.Content = *patch.Content
		}
		if patch.UserID != nil {
			next.UserID = *patch.UserID
		}

		next.CreatedAt = r.env.now()
		if !next.CreatedAt.After(latest.CreatedAt) {
			next.CreatedAt = latest.CreatedAt.Add(time.Millisecond)
		}
		return next, true
	})
}

// Delete never removes anything: single versions cannot be deleted directly.
func (r *DocumentRepository) Delete(string) (Document, bool) {
	return Document{}, false
}

// DeleteByIDAfterTimestamp removes versions of id created strictly after
// timestamp. The version at exactly timestamp is kept.
func (r *DocumentRepository) DeleteByIDAfterTimestamp(id string, timestamp time.Time) []Document {
	return r.rows.removeWhere(func(d Document) bool {
		return d.ID == id && d.CreatedAt.After(timestamp)
	})
}

func latestVersion(rows []Document, id string) (Document, bool) {
	var (
		latest Document
		found  bool
	)
	for _, d := range rows {
		if d.ID != id {
			continue
		}
		if !found || d.CreatedAt.After(latest.CreatedAt) {
			latest, found = d, true
		}
	}
	return latest, found
}
