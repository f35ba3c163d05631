package repositories

import (
	"context"
	"time"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
)

// NoteReader defines read operations for notes.
type NoteReader interface {
	// FindNoteByID returns apperrors.ErrNotFound when the note does not exist or is owned by someone else.
	FindNoteByID(ctx context.Context, userID, noteID string) (*domain.Note, error)

	// FindNotesByUser lists up to limit notes created strictly before the cursor position.
	// A zero beforeCreatedAt starts from the newest note.
	FindNotesByUser(ctx context.Context, userID string, limit int, beforeCreatedAt time.Time, beforeID string) ([]domain.Note, error)
}

// NoteWriter defines write operations for notes.
type NoteWriter interface {
	SaveNote(ctx context.Context, note domain.Note) error
	UpdateNote(ctx context.Context, note domain.Note) error
	DeleteNote(ctx context.Context, userID, noteID string) error
}

// NoteRepositoryFacade combines all note-related repository interfaces
type NoteRepositoryFacade interface {
	NoteReader
	NoteWriter
}
