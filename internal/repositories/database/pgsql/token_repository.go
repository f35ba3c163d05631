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

// tokenTables maps each token kind to its table. All tables share one layout.
var tokenTables = map[domain.TokenKind]string{
	domain.TokenKindRefresh:           "refresh_tokens",
	domain.TokenKindEmailVerification: "email_tokens",
	domain.TokenKindPasswordReset:     "password_tokens",
}

const selectTokenFields = `token_id, user_id, token_hash, expires_at, created_at`

// tokenQueries holds the statements for one token table.
type tokenQueries struct {
	insert         string
	findByHash     string
	findByUserID   string
	deleteByID     string
	deleteByUserID string
	deleteExpired  string
}

func newTokenQueries(table string) tokenQueries {
	return tokenQueries{
		insert: `
			INSERT INTO ` + table + ` (user_id, token_hash, expires_at)
			VALUES ($1, $2, $3)
			RETURNING ` + selectTokenFields,
		findByHash: `
			SELECT ` + selectTokenFields + `
			FROM ` + table + `
			WHERE token_hash = $1`,
		findByUserID: `
			SELECT ` + selectTokenFields + `
			FROM ` + table + `
			WHERE user_id = $1
			ORDER BY created_at DESC`,
		deleteByID:     `DELETE FROM ` + table + ` WHERE token_id = $1`,
		deleteByUserID: `DELETE FROM ` + table + ` WHERE user_id = $1`,
		deleteExpired:  `DELETE FROM ` + table + ` WHERE expires_at < $1`,
	}
}

// PgxTokenRepository stores one token kind in its own table.
type PgxTokenRepository struct {
	BaseRepository
	kind    domain.TokenKind
	queries tokenQueries
}

// newPgxTokenRepository creates the repository backing the given token kind.
func newPgxTokenRepository(db *pgxpool.Pool, kind domain.TokenKind) portsrepo.TokenRepository {
	table, ok := tokenTables[kind]
	if !ok {
		panic(fmt.Sprintf("pgsql: unknown token kind %q", kind))
	}
	return &PgxTokenRepository{
		BaseRepository: BaseRepository{Pool: db},
		kind:           kind,
		queries:        newTokenQueries(table),
	}
}

var _ portsrepo.TokenRepository = (*PgxTokenRepository)(nil)

func (r *PgxTokenRepository) Kind() domain.TokenKind {
	return r.kind
}

// Create persists a new token
func (r *PgxTokenRepository) Create(ctx context.Context, token *domain.AuthToken) error {
	if token == nil {
		return errors.New("token cannot be nil")
	}
	m := mapping.ToModelAuthToken(*token)

	created, err := scanAuthToken(r.queryRow(ctx, r.queries.insert, m.UserID, m.TokenHash, m.ExpiresAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create %s token: %w", r.kind, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to create %s token: %w", r.kind, err)
	}

	token.ID = created.ID
	token.Kind = r.kind
	token.CreatedAt = created.CreatedAt
	return nil
}

// FindByHash finds a token by its hash
func (r *PgxTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*domain.AuthToken, error) {
	if tokenHash == "" {
		return nil, apperrors.ErrNotFound
	}
	m, err := scanAuthToken(r.queryRow(ctx, r.queries.findByHash, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s token: %w", r.kind, err)
	}
	t := mapping.ToDomainAuthToken(*m, r.kind)
	return &t, nil
}

// FindByUserID retrieves all tokens of this kind for a user
func (r *PgxTokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.AuthToken, error) {
	rows, err := r.query(ctx, r.queries.findByUserID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s tokens: %w", r.kind, err)
	}
	defer rows.Close()

	var tokens []domain.AuthToken
	for rows.Next() {
		m, err := scanAuthToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, mapping.ToDomainAuthToken(*m, r.kind))
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// Delete removes a token by ID
func (r *PgxTokenRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.exec(ctx, r.queries.deleteByID, id); err != nil {
		return fmt.Errorf("failed to delete %s token: %w", r.kind, err)
	}
	return nil
}

// DeleteByUserID removes all tokens of this kind for a user
func (r *PgxTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.exec(ctx, r.queries.deleteByUserID, userID); err != nil {
		return fmt.Errorf("failed to delete %s tokens for user %s: %w", r.kind, userID, err)
	}
	return nil
}

// DeleteExpired removes all tokens that expired before the cutoff
func (r *PgxTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if before.IsZero() {
		return 0, errors.New("invalid time provided")
	}
	result, err := r.exec(ctx, r.queries.deleteExpired, before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired %s tokens: %w", r.kind, err)
	}
	return result.RowsAffected(), nil
}

// scanAuthToken scans a token from a row
func scanAuthToken(row pgx.Row) (*models.AuthToken, error) {
	var m models.AuthToken
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.TokenHash,
		&m.ExpiresAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
