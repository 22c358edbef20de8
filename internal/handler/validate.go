package handler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/postling-dev/postling/internal/domain"
)

// formFields maps struct field names to the form input names templates use.
var formFields = map[string]string{
	"Name":                 "name",
	"Email":                "email",
	"Password":             "password",
	"PasswordConfirmation": "password_confirmation",
	"Title":                "title",
	"Content":              "content",
}

// checkForm runs the validate-tag schema checks on a form DTO and turns any
// failures into field errors, one per offending field, in declaration order.
func (h *Handler) checkForm(form any) domain.FieldErrors {
	var fieldErrors domain.FieldErrors

	err := h.validate.Struct(form)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrors.Add("form", "Invalid form data.")
		return fieldErrors
	}

	for _, fe := range validationErrors {
		field, ok := formFields[fe.StructField()]
		if !ok {
			field = strings.ToLower(fe.StructField())
		}
		fieldErrors.Add(field, fieldMessage(fe))
	}
	return fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}
