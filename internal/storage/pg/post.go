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

func (s *Storage) SavePost(post domain.Post) (domain.PostId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id domain.PostId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.savePost(tx, post)
		return err
	})
	return id, err
}

func (s *Storage) Post(id domain.PostId) (domain.Post, error) {
	return s.post(s.db, id)
}

// PostsByUser returns the user's posts, newest first.
func (s *Storage) PostsByUser(userId domain.UserId) ([]domain.Post, error) {
	return s.postsByUser(s.db, userId)
}

// UpdatePost rewrites title and content of a post the user owns. Updating a
// post that does not exist or belongs to someone else reports not found.
func (s *Storage) UpdatePost(post domain.Post) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePost(tx, post)
	})
}

func (s *Storage) DeletePost(id domain.PostId, userId domain.UserId) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deletePost(tx, id, userId)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) savePost(q Querier, post domain.Post) (domain.PostId, error) {
	var id domain.PostId
	err := q.QueryRow(`
        INSERT INTO posts(user_id, title, content)
        VALUES($1, $2, $3)
        RETURNING id`,
		post.UserId, post.Title, post.Content,
	).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (s *Storage) post(q Querier, id domain.PostId) (domain.Post, error) {
	var post domain.Post
	err := q.QueryRow(`
        SELECT id, user_id, title, content, created_at, updated_at
        FROM posts WHERE id = $1`,
		id,
	).Scan(&post.Id, &post.UserId, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return post, nil
}

func (s *Storage) postsByUser(q Querier, userId domain.UserId) ([]domain.Post, error) {
	rows, err := q.Query(`
        SELECT id, user_id, title, content, created_at, updated_at
        FROM posts WHERE user_id = $1
        ORDER BY created_at DESC, id DESC`,
		userId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.Id, &post.UserId, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

func (s *Storage) updatePost(q Querier, post domain.Post) error {
	result, err := q.Exec(`
        UPDATE posts SET title = $1, content = $2, updated_at = now()
        WHERE id = $3 AND user_id = $4`,
		post.Title, post.Content, post.Id, post.UserId,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post update: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

func (s *Storage) deletePost(q Querier, id domain.PostId, userId domain.UserId) error {
	result, err := q.Exec("DELETE FROM posts WHERE id = $1 AND user_id = $2", id, userId)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
	}
	return nil
}
