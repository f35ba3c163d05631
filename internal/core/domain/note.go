package domain

import "time"

// Note is a piece of text owned by exactly one user.
type Note struct {
	NoteID      string    `json:"id"`
	UserID      string    `json:"userID"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsHidden    bool      `json:"isHidden"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NotePage is one page of a user's notes, newest first.
type NotePage struct {
	Notes         []Note
	NextPageToken string
}
