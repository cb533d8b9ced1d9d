package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/studycards/backend/internal/domain/user"
)

type userRow struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	CreatedAt    int64  `db:"created_at"`
}

func (r userRow) toDomain() *user.User {
	return &user.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		Role:         user.Role(r.Role),
		CreatedAt:    time.UnixMilli(r.CreatedAt).UTC(),
	}
}

// ============================================================================
// Users
// ============================================================================

// CreateUser inserts u, or returns ErrConflict when the email is taken.
func (s *SQLStore) CreateUser(ctx context.Context, u *user.User) error {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`INSERT INTO users (id, email, name, password_hash, role, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (email) DO NOTHING`),
		u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.getUser(ctx, "SELECT id, email, name, password_hash, role, created_at FROM users WHERE id = ?", id)
}

func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.getUser(ctx, "SELECT id, email, name, password_hash, role, created_at FROM users WHERE email = ?", email)
}

func (s *SQLStore) getUser(ctx context.Context, query string, arg any) (*user.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// ============================================================================
// Auth sessions
// ============================================================================

func (s *SQLStore) SaveAuthSession(ctx context.Context, as *user.AuthSession) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("INSERT INTO user_sessions (id, user_id, token_hash, expires_at) VALUES (?, ?, ?, ?)"),
		as.ID, as.UserID, as.TokenHash, as.ExpiresAt.UnixMilli(),
	)
	return err
}

// GetAuthSession returns the unexpired session with the given token hash.
func (s *SQLStore) GetAuthSession(ctx context.Context, tokenHash string, now time.Time) (*user.AuthSession, error) {
	var row struct {
		ID        string `db:"id"`
		UserID    string `db:"user_id"`
		TokenHash string `db:"token_hash"`
		ExpiresAt int64  `db:"expires_at"`
	}
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind("SELECT id, user_id, token_hash, expires_at FROM user_sessions WHERE token_hash = ? AND expires_at > ?"),
		tokenHash, now.UnixMilli(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user.AuthSession{
		ID:        row.ID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		ExpiresAt: time.UnixMilli(row.ExpiresAt).UTC(),
	}, nil
}

func (s *SQLStore) DeleteAuthSession(ctx context.Context, tokenHash string) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM user_sessions WHERE token_hash = ?"), tokenHash)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpiredAuthSessions removes sessions that expired before now and
// returns how many were removed.
func (s *SQLStore) DeleteExpiredAuthSessions(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM user_sessions WHERE expires_at <= ?"), now.UnixMilli())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
