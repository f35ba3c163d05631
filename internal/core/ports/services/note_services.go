package services

import (
	"context"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
	"github.com/rurasogoodo/notes_app/internal/dto"
)

// NoteReaderSvc defines read operations for notes
type NoteReaderSvc interface {
	GetNote(ctx context.Context, userID, noteID string) (*domain.Note, error)
	ListNotes(ctx context.Context, userID string, params dto.ListNotesParams) (*domain.NotePage, error)
}

// NoteWriterSvc defines write operations for notes
type NoteWriterSvc interface {
	CreateNote(ctx context.Context, userID string, req dto.CreateNoteRequest) (*domain.Note, error)
	UpdateNote(ctx context.Context, userID, noteID string, req dto.UpdateNoteRequest) (*domain.Note, error)
	DeleteNote(ctx context.Context, userID, noteID string) error
}

// NoteSvcFacade combines all note-related service interfaces
type NoteSvcFacade interface {
	NoteReaderSvc
	NoteWriterSvc
}
