package setup

import (
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"

	"github.com/postling-dev/postling/internal/config"
	"github.com/postling-dev/postling/internal/event"
	"github.com/postling-dev/postling/internal/handler"
	"github.com/postling-dev/postling/internal/jwt"
	"github.com/postling-dev/postling/internal/mail"
	"github.com/postling-dev/postling/internal/markdown"
	"github.com/postling-dev/postling/internal/middleware"
	"github.com/postling-dev/postling/internal/service"
	"github.com/postling-dev/postling/internal/storage/pg"
)

const baseTemplate = "base.html"

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *middleware.Auth
	Events         *event.Bus
}

// SetupDependencies wires storage, mail, services and handlers together.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	mailer := mail.New(&cfg.Private.Email)
	jwtSvc := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	bus := event.NewBus()
	bus.Subscribe(event.NewSignupListener(storage, mailer, cfg.TokenTTL()))

	registrar := service.NewRegistrar(storage, cfg.Public.BcryptCost)
	verification := service.NewVerification(storage)
	auth := service.NewAuth(storage, jwtSvc)
	posts := service.NewPosts(storage)

	templates, err := loadTemplates(cfg.Public.TemplatesDir)
	if err != nil {
		storage.Cleanup()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	h := handler.New(templates, cfg.Public, markdown.New(), registrar, verification, auth, posts, bus)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtSvc,
		AuthMiddleware: middleware.NewAuth(jwtSvc),
		Events:         bus,
	}, nil
}

// loadTemplates parses every page template against the shared base layout.
func loadTemplates(tmplPath string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) != ".html" || f.Name() == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).ParseFiles(
			path.Join(tmplPath, baseTemplate),
			path.Join(tmplPath, f.Name()),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", f.Name(), err)
		}
		templates[f.Name()] = tmpl
	}
	return templates, nil
}
