package mapping

import (
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	"github.com/rurasogoodo/notes_app/internal/models"
)

// ToModelNote converts a domain Note to a model Note
func ToModelNote(d domain.Note) models.Note {
	return models.Note{
		NoteID:      d.NoteID,
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		IsHidden:    d.IsHidden,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainNote converts a model Note to a domain Note
func ToDomainNote(m models.Note) domain.Note {
	return domain.Note{
		NoteID:      m.NoteID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		IsHidden:    m.IsHidden,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToDomainNoteSlice converts a slice of model Notes to a slice of domain Notes
func ToDomainNoteSlice(ms []models.Note) []domain.Note {
	ds := make([]domain.Note, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainNote(m)
	}
	return ds
}
