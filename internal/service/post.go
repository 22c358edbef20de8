package service

import (
	"net/http"

	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/errors"
)

type PostStorage interface {
	SavePost(post domain.Post) (domain.PostId, error)
	Post(id domain.PostId) (domain.Post, error)
	PostsByUser(userId domain.UserId) ([]domain.Post, error)
	UpdatePost(post domain.Post) error
	DeletePost(id domain.PostId, userId domain.UserId) error
}

// Posts implements the plain per-user post CRUD. Ownership is part of every
// lookup: someone else's post might as well not exist.
type Posts struct {
	storage PostStorage
}

func NewPosts(storage PostStorage) *Posts {
	return &Posts{storage: storage}
}

func (p *Posts) ListByUser(userId domain.UserId) ([]domain.Post, error) {
	return p.storage.PostsByUser(userId)
}

func (p *Posts) ForOwner(id domain.PostId, userId domain.UserId) (domain.Post, error) {
	post, err := p.storage.Post(id)
	if err != nil {
		return domain.Post{}, err
	}
	if post.UserId != userId {
		return domain.Post{}, &errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
	}
	return post, nil
}

func (p *Posts) Create(userId domain.UserId, form domain.PostForm) (domain.Post, error) {
	post := domain.Post{
		UserId:  userId,
		Title:   form.Title,
		Content: form.Content,
	}
	id, err := p.storage.SavePost(post)
	if err != nil {
		return domain.Post{}, err
	}
	post.Id = id
	return post, nil
}

func (p *Posts) Update(id domain.PostId, userId domain.UserId, form domain.PostForm) error {
	return p.storage.UpdatePost(domain.Post{
		Id:      id,
		UserId:  userId,
		Title:   form.Title,
		Content: form.Content,
	})
}

func (p *Posts) Delete(id domain.PostId, userId domain.UserId) error {
	return p.storage.DeletePost(id, userId)
}
