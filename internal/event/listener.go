package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/postling-dev/postling/internal/domain"
)

const (
	// VerificationSubject is the fixed subject line of the verification mail.
	VerificationSubject = "Please verify your email address"
	// verificationInstruction is the first body line; the confirmation URL
	// follows on its own line.
	verificationInstruction = "Click the link below to complete your registration."
)

type TokenStore interface {
	SaveToken(token domain.VerificationToken) error
}

type Sender interface {
	Send(recipientEmail, subject, body string) error
}

// SignupListener turns a signup event into a persisted verification token
// and an outbound verification mail. It runs synchronously inside the
// signup request.
type SignupListener struct {
	tokens   TokenStore
	mailer   Sender
	tokenTTL time.Duration
}

func NewSignupListener(tokens TokenStore, mailer Sender, tokenTTL time.Duration) *SignupListener {
	return &SignupListener{
		tokens:   tokens,
		mailer:   mailer,
		tokenTTL: tokenTTL,
	}
}

func (l *SignupListener) Handle(event domain.SignupEvent) error {
	token := uuid.NewString()

	err := l.tokens.SaveToken(domain.VerificationToken{
		Token:   token,
		UserId:  event.User.Id,
		Expires: time.Now().UTC().Add(l.tokenTTL),
	})
	if err != nil {
		return fmt.Errorf("failed to persist verification token: %w", err)
	}

	confirmationURL := event.RequestBaseURL + "/signup/verify?token=" + token
	body := verificationInstruction + "\n" + confirmationURL

	if err := l.mailer.Send(event.User.Email, VerificationSubject, body); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}
	return nil
}
