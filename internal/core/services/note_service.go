package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/rurasogoodo/notes_app/internal/utils/pagination"
)

const (
	defaultNotePageSize = 20
	maxNotePageSize     = 100
)

type noteService struct {
	BaseService
	notes portsrepo.NoteRepositoryFacade
	users portsrepo.UserReader
}

// NewNoteService creates a note service scoped to note owners.
func NewNoteService(notes portsrepo.NoteRepositoryFacade, users portsrepo.UserReader) portssvc.NoteSvcFacade {
	return &noteService{notes: notes, users: users}
}

var _ portssvc.NoteSvcFacade = (*noteService)(nil)

func (s *noteService) CreateNote(ctx context.Context, userID string, req dto.CreateNoteRequest) (*domain.Note, error) {
	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("create note: %w", err)
	}

	now := s.Now()
	note := domain.Note{
		NoteID:      uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		IsHidden:    req.IsHidden,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.notes.SaveNote(ctx, note); err != nil {
		s.LogError(ctx, err, "Failed to save note")
		return nil, fmt.Errorf("create note: %w", err)
	}
	s.LogInfo(ctx, "Note created", slog.String("note_id", note.NoteID))
	return &note, nil
}

func (s *noteService) GetNote(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	note, err := s.notes.FindNoteByID(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

func (s *noteService) ListNotes(ctx context.Context, userID string, params dto.ListNotesParams) (*domain.NotePage, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultNotePageSize
	}
	if limit > maxNotePageSize {
		limit = maxNotePageSize
	}

	var (
		beforeCreatedAt time.Time
		beforeID        string
	)
	if params.NextPageToken != "" {
		var err error
		beforeCreatedAt, beforeID, err = pagination.DecodeToken(params.NextPageToken)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
	}

	// One extra row tells us whether another page exists.
	notes, err := s.notes.FindNotesByUser(ctx, userID, limit+1, beforeCreatedAt, beforeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notes")
		return nil, fmt.Errorf("list notes: %w", err)
	}

	page := &domain.NotePage{Notes: notes}
	if len(notes) > limit {
		page.Notes = notes[:limit]
		last := page.Notes[limit-1]
		page.NextPageToken = pagination.EncodeToken(last.CreatedAt, last.NoteID)
	}
	return page, nil
}

func (s *noteService) UpdateNote(ctx context.Context, userID, noteID string, req dto.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.GetNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	note.Title = req.Title
	note.Description = req.Description
	note.IsHidden = req.IsHidden
	note.UpdatedAt = s.Now()

	if err := s.notes.UpdateNote(ctx, *note); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	if err := s.notes.DeleteNote(ctx, userID, noteID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNoteNotFound
		}
		return fmt.Errorf("delete note: %w", err)
	}
	s.LogInfo(ctx, "Note deleted", slog.String("note_id", noteID))
	return nil
}
