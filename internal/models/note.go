package models

import "time"

// Note is the notes table row.
type Note struct {
	NoteID      string    `db:"note_id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	IsHidden    bool      `db:"is_hidden"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
