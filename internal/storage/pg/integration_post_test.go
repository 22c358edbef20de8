package pg

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postling-dev/postling/internal/domain"
	internal_errors "github.com/postling-dev/postling/internal/errors"
)

func mustCreateUser(t *testing.T, email string) domain.UserId {
	t.Helper()
	id, err := storage.SaveUser(newTestUser(email))
	require.NoError(t, err)
	return id
}

func TestSavePostAndFetch(t *testing.T) {
	userId := mustCreateUser(t, "poster@example.com")

	id, err := storage.SavePost(domain.Post{UserId: userId, Title: "First", Content: "Hello"})
	require.NoError(t, err)

	post, err := storage.Post(id)
	require.NoError(t, err)
	assert.Equal(t, userId, post.UserId)
	assert.Equal(t, "First", post.Title)
	assert.Equal(t, "Hello", post.Content)
	assert.WithinDuration(t, time.Now(), post.CreatedAt, time.Minute)
}

func TestPostsByUserOrder(t *testing.T) {
	userId := mustCreateUser(t, "lister@example.com")

	for i := 1; i <= 3; i++ {
		_, err := storage.SavePost(domain.Post{UserId: userId, Title: fmt.Sprintf("Post %d", i), Content: "body"})
		require.NoError(t, err)
	}

	posts, err := storage.PostsByUser(userId)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	// newest first
	assert.Equal(t, "Post 3", posts[0].Title)
	assert.Equal(t, "Post 1", posts[2].Title)
}

func TestUpdatePostOwnership(t *testing.T) {
	owner := mustCreateUser(t, "owner@example.com")
	other := mustCreateUser(t, "other@example.com")

	id, err := storage.SavePost(domain.Post{UserId: owner, Title: "Original", Content: "body"})
	require.NoError(t, err)

	// someone else's update must not land
	err = storage.UpdatePost(domain.Post{Id: id, UserId: other, Title: "Hijacked", Content: "body"})
	require.Error(t, err)
	assert.True(t, internal_errors.IsNotFound(err))

	require.NoError(t, storage.UpdatePost(domain.Post{Id: id, UserId: owner, Title: "Edited", Content: "new body"}))

	post, err := storage.Post(id)
	require.NoError(t, err)
	assert.Equal(t, "Edited", post.Title)
	assert.Equal(t, "new body", post.Content)
}

func TestDeletePost(t *testing.T) {
	owner := mustCreateUser(t, "deleter@example.com")
	other := mustCreateUser(t, "not-deleter@example.com")

	id, err := storage.SavePost(domain.Post{UserId: owner, Title: "Doomed", Content: "body"})
	require.NoError(t, err)

	err = storage.DeletePost(id, other)
	assert.True(t, internal_errors.IsNotFound(err))

	require.NoError(t, storage.DeletePost(id, owner))

	_, err = storage.Post(id)
	assert.True(t, internal_errors.IsNotFound(err))
}
