package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/errors"
	"github.com/postling-dev/postling/internal/logger"
)

type RegistrarStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	EmailExists(email string) (bool, error)
}

// Registrar validates and creates new accounts. It never sends mail: the
// verification mail is the signup event listener's job, so a failed
// registration can never half-send email.
type Registrar struct {
	storage    RegistrarStorage
	bcryptCost int
}

func NewRegistrar(storage RegistrarStorage, bcryptCost int) *Registrar {
	return &Registrar{
		storage:    storage,
		bcryptCost: bcryptCost,
	}
}

// CreateAccount runs the domain checks and persists the user. Validation
// failures come back as accumulated field errors, all at once, so the form
// can redisplay every problem in one pass. The returned error is reserved
// for infrastructure failures.
func (r *Registrar) CreateAccount(form domain.SignupForm) (domain.User, domain.FieldErrors, error) {
	var fieldErrors domain.FieldErrors

	// Fast-path duplicate check for a friendly field error. The users.email
	// unique constraint below is what actually guarantees uniqueness.
	exists, err := r.storage.EmailExists(form.Email)
	if err != nil {
		return domain.User{}, nil, err
	}
	if exists {
		fieldErrors.Add("email", domain.MsgDuplicateEmail)
	}

	if form.Password != form.PasswordConfirmation {
		fieldErrors.Add("password", domain.MsgPasswordMismatch)
	}

	if fieldErrors.Any() {
		return domain.User{}, fieldErrors, nil
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(form.Password), r.bcryptCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, nil, err
	}

	user := domain.User{
		Email:    form.Email,
		Name:     form.Name,
		PassHash: string(passHash),
		Enabled:  false,
		Role:     domain.DefaultRole,
	}
	id, err := r.storage.SaveUser(user)
	if err != nil {
		if errors.IsConflict(err) {
			// Lost a race against a concurrent signup with the same email.
			fieldErrors.Add("email", domain.MsgDuplicateEmail)
			return domain.User{}, fieldErrors, nil
		}
		return domain.User{}, nil, err
	}
	user.Id = id

	return user, nil, nil
}
