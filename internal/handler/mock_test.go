package handler

import (
	"html/template"

	"github.com/postling-dev/postling/internal/config"
	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/markdown"
)

type mockRegistrar struct {
	CreateAccountFunc func(form domain.SignupForm) (domain.User, domain.FieldErrors, error)
}

func (m *mockRegistrar) CreateAccount(form domain.SignupForm) (domain.User, domain.FieldErrors, error) {
	return m.CreateAccountFunc(form)
}

type mockVerification struct {
	VerifyFunc func(token string) (domain.User, error)
}

func (m *mockVerification) Verify(token string) (domain.User, error) {
	return m.VerifyFunc(token)
}

type mockAuth struct {
	LoginFunc func(email, password string) (string, error)
}

func (m *mockAuth) Login(email, password string) (string, error) {
	return m.LoginFunc(email, password)
}

type mockPosts struct {
	ListByUserFunc func(userId domain.UserId) ([]domain.Post, error)
	ForOwnerFunc   func(id domain.PostId, userId domain.UserId) (domain.Post, error)
	CreateFunc     func(userId domain.UserId, form domain.PostForm) (domain.Post, error)
	UpdateFunc     func(id domain.PostId, userId domain.UserId, form domain.PostForm) error
	DeleteFunc     func(id domain.PostId, userId domain.UserId) error
}

func (m *mockPosts) ListByUser(userId domain.UserId) ([]domain.Post, error) {
	return m.ListByUserFunc(userId)
}

func (m *mockPosts) ForOwner(id domain.PostId, userId domain.UserId) (domain.Post, error) {
	return m.ForOwnerFunc(id, userId)
}

func (m *mockPosts) Create(userId domain.UserId, form domain.PostForm) (domain.Post, error) {
	return m.CreateFunc(userId, form)
}

func (m *mockPosts) Update(id domain.PostId, userId domain.UserId, form domain.PostForm) error {
	return m.UpdateFunc(id, userId, form)
}

func (m *mockPosts) Delete(id domain.PostId, userId domain.UserId) error {
	return m.DeleteFunc(id, userId)
}

type mockEvents struct {
	published []domain.SignupEvent
}

func (m *mockEvents) Publish(event domain.SignupEvent) {
	m.published = append(m.published, event)
}

// testTemplates renders enough of each page to assert on its data.
func testTemplates() map[string]*template.Template {
	parse := func(text string) *template.Template {
		return template.Must(template.New("page").Parse(text))
	}
	return map[string]*template.Template{
		"signup.html": parse(`name={{.Data.Form.Name}} email={{.Data.Form.Email}} password={{.Data.Form.Password}}` +
			`{{range .Data.Errors}} [{{.Field}}: {{.Message}}]{{end}}`),
		"login.html":     parse(`login error={{.Common.Error}} prefill={{.Common.EmailPrefill}}`),
		"verify.html":    parse(`verified={{.Data.Verified}} message={{.Data.Message}}`),
		"posts.html":     parse(`{{range .Data.Posts}}[{{.Title}}]{{end}}`),
		"post.html":      parse(`title={{.Data.Post.Title}} content={{.Data.Post.RenderedContent}}`),
		"post_form.html": parse(`title={{.Data.Form.Title}} id={{.Data.PostId}}{{range .Data.Errors}} [{{.Field}}: {{.Message}}]{{end}}`),
	}
}

func testHandler() (*Handler, *mockRegistrar, *mockVerification, *mockAuth, *mockPosts, *mockEvents) {
	registrar := &mockRegistrar{}
	verification := &mockVerification{}
	auth := &mockAuth{}
	posts := &mockPosts{}
	events := &mockEvents{}

	h := New(
		testTemplates(),
		config.Public{BaseURL: "http://postling.test", JwtTTL: 3600},
		markdown.New(),
		registrar,
		verification,
		auth,
		posts,
		events,
	)
	return h, registrar, verification, auth, posts, events
}
