package handler

import (
	std_errors "errors"
	"net/http"

	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/errors"
	"github.com/postling-dev/postling/internal/logger"
)

// statusMessage extracts a user-presentable message and status from a
// service error. Anything without an explicit status stays opaque.
func statusMessage(err error) (int, string) {
	var esc *errors.ErrorWithStatusCode
	if std_errors.As(err, &esc) {
		return esc.StatusCode, esc.Message
	}
	return http.StatusInternalServerError, "Internal error. Please try again later."
}

// signupPageData carries the entered values back into the form on a failed
// submit. Passwords are never echoed.
type signupPageData struct {
	Form   domain.SignupForm
	Errors domain.FieldErrors
}

func (h *Handler) SignupGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "signup.html", signupPageData{})
}

func (h *Handler) SignupPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/signup", flashCookieError, "Invalid form data.")
		return
	}

	form := domain.SignupForm{
		Name:                 r.FormValue("name"),
		Email:                r.FormValue("email"),
		Password:             r.FormValue("password"),
		PasswordConfirmation: r.FormValue("password_confirmation"),
	}

	if fieldErrors := h.checkForm(form); fieldErrors.Any() {
		h.rerenderSignup(w, r, form, fieldErrors)
		return
	}

	user, fieldErrors, err := h.Registrar.CreateAccount(form)
	if err != nil {
		logger.Log.Error("creating account", "email", form.Email, "error", err)
		form.Password = ""
		form.PasswordConfirmation = ""
		h.renderTemplateWithError(w, r, "signup.html", signupPageData{Form: form},
			"Internal error. Please try again later.", http.StatusInternalServerError)
		return
	}
	if fieldErrors.Any() {
		h.rerenderSignup(w, r, form, fieldErrors)
		return
	}

	h.Events.Publish(domain.SignupEvent{User: user, RequestBaseURL: h.baseURL(r)})

	h.setFlash(w, flashCookieSuccess, "Account created. Check your email for a verification link.")
	h.setFlash(w, emailPrefillCookie, form.Email)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) rerenderSignup(w http.ResponseWriter, r *http.Request, form domain.SignupForm, fieldErrors domain.FieldErrors) {
	form.Password = ""
	form.PasswordConfirmation = ""
	h.renderTemplateStatus(w, r, "signup.html", signupPageData{Form: form, Errors: fieldErrors}, http.StatusUnprocessableEntity)
}

type verifyPageData struct {
	Verified bool
	Message  string
}

func (h *Handler) VerifyGetHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.renderTemplateStatus(w, r, "verify.html", verifyPageData{Message: "Missing verification token."}, http.StatusBadRequest)
		return
	}

	user, err := h.Verification.Verify(token)
	if err != nil {
		status, msg := statusMessage(err)
		if status >= http.StatusInternalServerError {
			logger.Log.Error("verifying email", "error", err)
		}
		h.renderTemplateStatus(w, r, "verify.html", verifyPageData{Message: msg}, status)
		return
	}

	h.setFlash(w, emailPrefillCookie, user.Email)
	h.renderTemplate(w, r, "verify.html", verifyPageData{
		Verified: true,
		Message:  "Your email address has been verified. You can now log in.",
	})
}

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", nil)
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	token, err := h.Auth.Login(email, password)
	if err != nil {
		status, msg := statusMessage(err)
		if status >= http.StatusInternalServerError {
			logger.Log.Error("during login", "error", err)
		}
		h.setFlash(w, flashCookieError, msg)
		h.setFlash(w, emailPrefillCookie, email)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    token,
		Path:     "/",
		MaxAge:   h.Public.JwtTTL,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/posts", http.StatusSeeOther)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
