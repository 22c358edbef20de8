package domain

import "time"

// VerificationToken proves control of the email address used at signup.
// A token is single-use: it is deleted after the first successful
// verification and treated as invalid afterwards.
type VerificationToken struct {
	Id        int64
	Token     string
	UserId    UserId
	Expires   time.Time
	CreatedAt time.Time
}
