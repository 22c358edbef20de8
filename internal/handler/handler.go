package handler

import (
	"html/template"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/postling-dev/postling/internal/config"
	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/markdown"
)

type RegistrarService interface {
	CreateAccount(form domain.SignupForm) (domain.User, domain.FieldErrors, error)
}

type VerificationService interface {
	Verify(token string) (domain.User, error)
}

type AuthService interface {
	Login(email, password string) (string, error)
}

type PostService interface {
	ListByUser(userId domain.UserId) ([]domain.Post, error)
	ForOwner(id domain.PostId, userId domain.UserId) (domain.Post, error)
	Create(userId domain.UserId, form domain.PostForm) (domain.Post, error)
	Update(id domain.PostId, userId domain.UserId, form domain.PostForm) error
	Delete(id domain.PostId, userId domain.UserId) error
}

type EventPublisher interface {
	Publish(event domain.SignupEvent)
}

type Handler struct {
	Templates     map[string]*template.Template
	Public        config.Public
	TextProcessor *markdown.TextProcessor
	Registrar     RegistrarService
	Verification  VerificationService
	Auth          AuthService
	Posts         PostService
	Events        EventPublisher

	validate *validator.Validate
}

func New(
	templates map[string]*template.Template,
	publicCfg config.Public,
	textProcessor *markdown.TextProcessor,
	registrar RegistrarService,
	verification VerificationService,
	auth AuthService,
	posts PostService,
	events EventPublisher,
) *Handler {
	return &Handler{
		Templates:     templates,
		Public:        publicCfg,
		TextProcessor: textProcessor,
		Registrar:     registrar,
		Verification:  verification,
		Auth:          auth,
		Posts:         posts,
		Events:        events,
		validate:      validator.New(),
	}
}

func (h *Handler) getTemplate(name string) (*template.Template, bool) {
	tmpl, ok := h.Templates[name]
	return tmpl, ok
}

// baseURL reconstructs the scheme://host[:port] the request came in on.
// The configured value wins so links in emails stay stable behind proxies.
func (h *Handler) baseURL(r *http.Request) string {
	if h.Public.BaseURL != "" {
		return h.Public.BaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
