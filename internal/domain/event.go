package domain

// SignupEvent is published after a new account has been durably created.
// It only lives for the duration of the in-process dispatch; nothing
// persists it.
type SignupEvent struct {
	User User
	// RequestBaseURL is the scheme://host[:port] the signup request came in
	// on. The verification link is built against it.
	RequestBaseURL string
}
