package domain

import "time"

type UserId = int64

type User struct {
	Id        UserId
	Email     string
	Name      string
	PassHash  string
	Enabled   bool
	Role      string
	CreatedAt time.Time
}

// DefaultRole is assigned to every self-registered account.
const DefaultRole = "general"
