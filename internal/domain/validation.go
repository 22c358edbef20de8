package domain

// FieldError is one validation failure attached to a named form field.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors accumulates validation failures so a form can redisplay all
// of them at once. Order of insertion is preserved.
type FieldErrors []FieldError

func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

func (fe FieldErrors) Any() bool {
	return len(fe) > 0
}

// Field returns the first message recorded for the given field, or "".
func (fe FieldErrors) Field(name string) string {
	for _, e := range fe {
		if e.Field == name {
			return e.Message
		}
	}
	return ""
}

// Messages used by the registrar. Kept here so handlers and tests agree on
// the exact wording.
const (
	MsgDuplicateEmail   = "An account with this email address already exists."
	MsgPasswordMismatch = "Password and confirmation do not match."
)
