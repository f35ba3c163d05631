package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
	"github.com/rurasogoodo/notes_app/internal/models"
	"github.com/rurasogoodo/notes_app/internal/utils/mapping"
)

type PgxNoteRepository struct {
	BaseRepository
}

func newPgxNoteRepository(db *pgxpool.Pool) portsrepo.NoteRepositoryFacade {
	return &PgxNoteRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.NoteRepositoryFacade = (*PgxNoteRepository)(nil)

const (
	selectNoteFields = `
		note_id, user_id, title, description, is_hidden, created_at, updated_at
	`

	insertNoteQuery = `
		INSERT INTO notes (note_id, user_id, title, description, is_hidden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	findNoteByIDQuery = `
		SELECT ` + selectNoteFields + `
		FROM notes
		WHERE note_id = $1 AND user_id = $2
	`

	// Keyset pagination on (created_at, note_id), newest first.
	findNotesFirstPageQuery = `
		SELECT ` + selectNoteFields + `
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC, note_id DESC
		LIMIT $2
	`

	findNotesAfterCursorQuery = `
		SELECT ` + selectNoteFields + `
		FROM notes
		WHERE user_id = $1 AND (created_at, note_id) < ($2, $3)
		ORDER BY created_at DESC, note_id DESC
		LIMIT $4
	`

	updateNoteQuery = `
		UPDATE notes
		SET title = $3, description = $4, is_hidden = $5, updated_at = $6
		WHERE note_id = $1 AND user_id = $2
	`

	deleteNoteQuery = `DELETE FROM notes WHERE note_id = $1 AND user_id = $2`
)

func (r *PgxNoteRepository) SaveNote(ctx context.Context, note domain.Note) error {
	m := mapping.ToModelNote(note)
	_, err := r.exec(ctx, insertNoteQuery,
		m.NoteID,
		m.UserID,
		m.Title,
		m.Description,
		m.IsHidden,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}
	return nil
}

func (r *PgxNoteRepository) FindNoteByID(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	m, err := scanNote(r.queryRow(ctx, findNoteByIDQuery, noteID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note %s: %w", noteID, err)
	}
	n := mapping.ToDomainNote(*m)
	return &n, nil
}

func (r *PgxNoteRepository) FindNotesByUser(ctx context.Context, userID string, limit int, beforeCreatedAt time.Time, beforeID string) ([]domain.Note, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		rows pgx.Rows
		err  error
	)
	if beforeCreatedAt.IsZero() {
		rows, err = r.query(ctx, findNotesFirstPageQuery, userID, limit)
	} else {
		rows, err = r.query(ctx, findNotesAfterCursorQuery, userID, beforeCreatedAt, beforeID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var ms []models.Note
	for rows.Next() {
		m, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}
	return mapping.ToDomainNoteSlice(ms), nil
}

func (r *PgxNoteRepository) UpdateNote(ctx context.Context, note domain.Note) error {
	m := mapping.ToModelNote(note)
	tag, err := r.exec(ctx, updateNoteQuery, m.NoteID, m.UserID, m.Title, m.Description, m.IsHidden, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update note %s: %w", note.NoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxNoteRepository) DeleteNote(ctx context.Context, userID, noteID string) error {
	tag, err := r.exec(ctx, deleteNoteQuery, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note %s: %w", noteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var m models.Note
	err := row.Scan(
		&m.NoteID,
		&m.UserID,
		&m.Title,
		&m.Description,
		&m.IsHidden,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
