package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rurasogoodo/notes_app/internal/apperrors"
	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
	"github.com/rurasogoodo/notes_app/internal/models"
	"github.com/rurasogoodo/notes_app/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const (
	selectUserFields = `
		user_id, email, username, password_hash,
		is_admin, is_email_verified, created_at, updated_at
	`

	insertUserQuery = `
		INSERT INTO users (
			user_id, email, username, password_hash,
			is_admin, is_email_verified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	findUserByIDQuery = `SELECT ` + selectUserFields + ` FROM users WHERE user_id = $1`

	findUserByEmailQuery = `SELECT ` + selectUserFields + ` FROM users WHERE email = $1`

	setEmailVerifiedQuery = `
		UPDATE users SET is_email_verified = TRUE, updated_at = NOW()
		WHERE user_id = $1
	`

	updatePasswordHashQuery = `
		UPDATE users SET password_hash = $2, updated_at = NOW()
		WHERE user_id = $1
	`
)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.exec(ctx, insertUserQuery,
		m.UserID,
		m.Email,
		m.Username,
		m.PasswordHash,
		m.IsAdmin,
		m.IsEmailVerified,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to save user: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := scanUser(r.queryRow(ctx, findUserByIDQuery, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.queryRow(ctx, findUserByEmailQuery, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) SetEmailVerified(ctx context.Context, userID string) error {
	tag, err := r.exec(ctx, setEmailVerifiedQuery, userID)
	if err != nil {
		return fmt.Errorf("failed to mark email verified for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	tag, err := r.exec(ctx, updatePasswordHashQuery, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.Username,
		&m.PasswordHash,
		&m.IsAdmin,
		&m.IsEmailVerified,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}
