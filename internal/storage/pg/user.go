package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/postling-dev/postling/internal/domain"
	internal_errors "github.com/postling-dev/postling/internal/errors"
)

// uniqueViolation is the postgres error code raised when an insert breaks a
// unique constraint. The users.email constraint is the source of truth for
// duplicate detection; the registrar's existence check is only a fast path.
const uniqueViolation = "23505"

// =========================================================================
// Public Methods (satisfy the service storage interfaces)
// =========================================================================

// SaveUser inserts a new user inside a transaction and returns the generated
// id. A concurrent signup with the same email surfaces as a conflict error,
// never as a duplicate row.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// UserByEmail fetches a user by email, case-sensitive exact match.
func (s *Storage) UserByEmail(email string) (domain.User, error) {
	return s.userByEmail(s.db, email)
}

// EmailExists reports whether an account with this email already exists.
func (s *Storage) EmailExists(email string) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// EnableUser flips the enabled flag to true. The update is idempotent: the
// flag never transitions back.
func (s *Storage) EnableUser(id domain.UserId) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.enableUser(tx, id)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	role := user.Role
	if role == "" {
		role = domain.DefaultRole
	}
	var id domain.UserId
	err := q.QueryRow(`
        INSERT INTO users(email, name, password_hash, enabled, role_id)
        VALUES($1, $2, $3, $4, (SELECT id FROM roles WHERE name = $5))
        RETURNING id`,
		user.Email, user.Name, user.PassHash, user.Enabled, role,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) userByEmail(q Querier, email string) (domain.User, error) {
	var user domain.User
	err := q.QueryRow(`
        SELECT u.id, u.email, u.name, u.password_hash, u.enabled, r.name, u.created_at
        FROM users u JOIN roles r ON r.id = u.role_id
        WHERE u.email = $1`,
		email,
	).Scan(&user.Id, &user.Email, &user.Name, &user.PassHash, &user.Enabled, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) enableUser(q Querier, id domain.UserId) error {
	result, err := q.Exec("UPDATE users SET enabled = true WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to enable user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for user activation: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found for activation", StatusCode: http.StatusNotFound}
	}
	return nil
}
