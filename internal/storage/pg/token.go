package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/postling-dev/postling/internal/domain"
	internal_errors "github.com/postling-dev/postling/internal/errors"
)

// =========================================================================
// Public Methods
// =========================================================================

// SaveToken persists a verification token bound to its user.
func (s *Storage) SaveToken(token domain.VerificationToken) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.saveToken(tx, token)
	})
}

// TokenWithUser resolves a token value to the stored token and its owning
// user in one round trip.
func (s *Storage) TokenWithUser(value string) (domain.VerificationToken, domain.User, error) {
	return s.tokenWithUser(s.db, value)
}

// DeleteToken removes a token after use so the verification link cannot be
// replayed.
func (s *Storage) DeleteToken(value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteToken(tx, value)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) saveToken(q Querier, token domain.VerificationToken) error {
	_, err := q.Exec(`
        INSERT INTO verification_tokens(token, user_id, expires_at)
        VALUES($1, $2, $3)`,
		token.Token, token.UserId, token.Expires,
	)
	if err != nil {
		return fmt.Errorf("failed to insert verification token: %w", err)
	}
	return nil
}

func (s *Storage) tokenWithUser(q Querier, value string) (domain.VerificationToken, domain.User, error) {
	var token domain.VerificationToken
	var user domain.User
	err := q.QueryRow(`
        SELECT t.id, t.token, t.user_id, (t.expires_at at time zone 'utc'), t.created_at,
               u.id, u.email, u.name, u.password_hash, u.enabled, r.name, u.created_at
        FROM verification_tokens t
        JOIN users u ON u.id = t.user_id
        JOIN roles r ON r.id = u.role_id
        WHERE t.token = $1`,
		value,
	).Scan(
		&token.Id, &token.Token, &token.UserId, &token.Expires, &token.CreatedAt,
		&user.Id, &user.Email, &user.Name, &user.PassHash, &user.Enabled, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.VerificationToken{}, domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "Token not found", StatusCode: http.StatusNotFound}
		}
		return domain.VerificationToken{}, domain.User{}, fmt.Errorf("failed to query verification token: %w", err)
	}
	return token, user, nil
}

func (s *Storage) deleteToken(q Querier, value string) error {
	result, err := q.Exec("DELETE FROM verification_tokens WHERE token = $1", value)
	if err != nil {
		return fmt.Errorf("failed to delete verification token: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for token deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Token not found for deletion", StatusCode: http.StatusNotFound}
	}
	return nil
}
