package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"smartnotes/internal/note/model"

	"github.com/google/uuid"
)

// IDLength is the number of hex characters in a note id.
const IDLength = 12

type entry struct {
	note model.Note
	seq  uint64
}

// NoteRepository keeps notes in memory. All methods are safe for concurrent
// use and hand out copies, never references into the map.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*entry
	// ids ever issued, so a deleted id is never handed out again
	issued map[string]struct{}
	seq    uint64
	now    func() time.Time
	newID  func() string
}

func NewNoteRepository() *NoteRepository {
	return NewNoteRepositoryWithClock(time.Now)
}

// NewNoteRepositoryWithClock lets tests control timestamps.
func NewNoteRepositoryWithClock(now func() time.Time) *NoteRepository {
	return &NoteRepository{
		notes:  make(map[string]*entry),
		issued: make(map[string]struct{}),
		now:    now,
		newID:  generateNoteID,
	}
}

func (r *NoteRepository) Create(title, content string) model.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for {
		if _, taken := r.issued[id]; !taken {
			break
		}
		id = r.newID()
	}
	r.issued[id] = struct{}{}

	now := r.now().UTC()
	r.seq++
	e := &entry{
		note: model.Note{
			ID:        id,
			Title:     title,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: r.seq,
	}
	r.notes[id] = e
	return e.note
}

// ListAll returns a snapshot, newest first. Notes created at the same instant
// are ordered by insertion, later first.
func (r *NoteRepository) ListAll() []model.Note {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.notes))
	for _, e := range r.notes {
		entries = append(entries, e)
	}
	notes := make([]model.Note, len(entries))
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.note.CreatedAt.Equal(b.note.CreatedAt) {
			return a.note.CreatedAt.After(b.note.CreatedAt)
		}
		return a.seq > b.seq
	})
	for i, e := range entries {
		notes[i] = e.note
	}
	r.mu.RUnlock()
	return notes
}

func (r *NoteRepository) Get(id string) (model.Note, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.notes[id]
	if !ok {
		return model.Note{}, false
	}
	return e.note, true
}

// Update overwrites the non-nil fields and always refreshes UpdatedAt, even
// when both fields are nil.
func (r *NoteRepository) Update(id string, title, content *string) (model.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.notes[id]
	if !ok {
		return model.Note{}, false
	}
	if title != nil {
		e.note.Title = *title
	}
	if content != nil {
		e.note.Content = *content
	}

	now := r.now().UTC()
	if !now.After(e.note.UpdatedAt) {
		now = e.note.UpdatedAt.Add(time.Nanosecond)
	}
	e.note.UpdatedAt = now
	return e.note, true
}

func (r *NoteRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return false
	}
	delete(r.notes, id)
	return true
}

func (r *NoteRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notes)
}

func generateNoteID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:IDLength]
}
