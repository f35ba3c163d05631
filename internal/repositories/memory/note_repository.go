package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
)

// NoteRepository is a dev-only note store.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]domain.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[string]domain.Note)}
}

var _ portsrepo.NoteRepositoryFacade = (*NoteRepository)(nil)

func (r *NoteRepository) SaveNote(ctx context.Context, note domain.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.NoteID]; ok {
		return apperrors.ErrDuplicate
	}
	r.notes[note.NoteID] = note
	return nil
}

func (r *NoteRepository) FindNoteByID(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notes[noteID]
	if !ok || n.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &n, nil
}

func (r *NoteRepository) FindNotesByUser(ctx context.Context, userID string, limit int, beforeCreatedAt time.Time, beforeID string) ([]domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []domain.Note
	for _, n := range r.notes {
		if n.UserID != userID {
			continue
		}
		if !beforeCreatedAt.IsZero() && !noteBefore(n, beforeCreatedAt, beforeID) {
			continue
		}
		owned = append(owned, n)
	}
	sort.Slice(owned, func(i, j int) bool {
		return noteBefore(owned[j], owned[i].CreatedAt, owned[i].NoteID)
	})
	if len(owned) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

func (r *NoteRepository) UpdateNote(ctx context.Context, note domain.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.notes[note.NoteID]
	if !ok || existing.UserID != note.UserID {
		return apperrors.ErrNotFound
	}
	existing.Title = note.Title
	existing.Description = note.Description
	existing.IsHidden = note.IsHidden
	existing.UpdatedAt = note.UpdatedAt
	r.notes[note.NoteID] = existing
	return nil
}

func (r *NoteRepository) DeleteNote(ctx context.Context, userID, noteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[noteID]
	if !ok || n.UserID != userID {
		return apperrors.ErrNotFound
	}
	delete(r.notes, noteID)
	return nil
}

// noteBefore orders by (created_at, id) descending, matching the SQL keyset.
func noteBefore(n domain.Note, createdAt time.Time, id string) bool {
	if n.CreatedAt.Equal(createdAt) {
		return n.NoteID < id
	}
	return n.CreatedAt.Before(createdAt)
}
