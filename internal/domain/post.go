package domain

import "time"

type PostId = int64

type Post struct {
	Id        PostId
	UserId    UserId
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
