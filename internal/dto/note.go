package dto

import (
	"time"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
)

// CreateNoteRequest is the body of POST /api/notes/create.
type CreateNoteRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=10"`
	IsHidden    bool   `json:"isHidden"`
}

// UpdateNoteRequest replaces every editable field of a note.
type UpdateNoteRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=10"`
	IsHidden    bool   `json:"isHidden"`
}

// ListNotesParams defines query parameters for listing notes.
type ListNotesParams struct {
	Limit         int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextPageToken string `form:"nextToken"`
}

// NoteResponse embeds the owner like every note payload does.
type NoteResponse struct {
	NoteID      string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	IsHidden    bool         `json:"isHidden"`
	CreatedAt   time.Time    `json:"createdAt"`
	User        UserResponse `json:"user"`
}

// ListNotesResponse wraps one page of notes.
type ListNotesResponse struct {
	Notes         []NoteResponse `json:"notes"`
	NextPageToken string         `json:"nextToken,omitempty"`
}

// ToNoteResponse converts a domain.Note and its owner to the response DTO.
func ToNoteResponse(n *domain.Note, owner UserResponse) NoteResponse {
	return NoteResponse{
		NoteID:      n.NoteID,
		Title:       n.Title,
		Description: n.Description,
		IsHidden:    n.IsHidden,
		CreatedAt:   n.CreatedAt,
		User:        owner,
	}
}

// ToListNotesResponse converts a page of notes owned by one user.
func ToListNotesResponse(page *domain.NotePage, owner UserResponse) ListNotesResponse {
	notes := make([]NoteResponse, len(page.Notes))
	for i := range page.Notes {
		notes[i] = ToNoteResponse(&page.Notes[i], owner)
	}
	return ListNotesResponse{Notes: notes, NextPageToken: page.NextPageToken}
}
