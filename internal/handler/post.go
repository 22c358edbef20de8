package handler

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/logger"
	"github.com/postling-dev/postling/internal/middleware"
)

// postView is a Post plus its content rendered to safe HTML.
type postView struct {
	domain.Post
	RenderedContent template.HTML
}

type postFormPageData struct {
	Form   domain.PostForm
	Errors domain.FieldErrors
	// PostId is zero for the new-post form, the edited post's id otherwise.
	PostId domain.PostId
}

func (h *Handler) sessionUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		// Routing bug: these handlers sit behind NeedAuth.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}
	return user, true
}

func (h *Handler) postId(r *http.Request) (domain.PostId, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return domain.PostId(id), err
}

func (h *Handler) PostsGetHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	posts, err := h.Posts.ListByUser(user.Id)
	if err != nil {
		logger.Log.Error("listing posts", "user_id", user.Id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var templateData struct {
		Posts []domain.Post
	}
	templateData.Posts = posts

	h.renderTemplate(w, r, "posts.html", templateData)
}

func (h *Handler) PostGetHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	id, err := h.postId(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := h.Posts.ForOwner(id, user.Id)
	if err != nil {
		status, msg := statusMessage(err)
		if status >= http.StatusInternalServerError {
			logger.Log.Error("fetching post", "post_id", id, "error", err)
		}
		http.Error(w, msg, status)
		return
	}

	var templateData struct {
		Post postView
	}
	templateData.Post = postView{Post: post, RenderedContent: h.TextProcessor.Render(post.Content)}

	h.renderTemplate(w, r, "post.html", templateData)
}

func (h *Handler) PostNewGetHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessionUser(w, r); !ok {
		return
	}
	h.renderTemplate(w, r, "post_form.html", postFormPageData{})
}

func (h *Handler) PostCreateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	form := domain.PostForm{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	if fieldErrors := h.checkForm(form); fieldErrors.Any() {
		h.renderTemplateStatus(w, r, "post_form.html", postFormPageData{Form: form, Errors: fieldErrors}, http.StatusUnprocessableEntity)
		return
	}

	post, err := h.Posts.Create(user.Id, form)
	if err != nil {
		logger.Log.Error("creating post", "user_id", user.Id, "error", err)
		h.redirectWithFlash(w, r, "/posts/new", flashCookieError, "Internal error. Please try again later.")
		return
	}

	h.redirectWithFlash(w, r, "/posts/"+strconv.FormatInt(int64(post.Id), 10), flashCookieSuccess, "Post created.")
}

func (h *Handler) PostEditGetHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	id, err := h.postId(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := h.Posts.ForOwner(id, user.Id)
	if err != nil {
		status, msg := statusMessage(err)
		http.Error(w, msg, status)
		return
	}

	h.renderTemplate(w, r, "post_form.html", postFormPageData{
		Form:   domain.PostForm{Title: post.Title, Content: post.Content},
		PostId: post.Id,
	})
}

func (h *Handler) PostUpdateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	id, err := h.postId(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	form := domain.PostForm{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	if fieldErrors := h.checkForm(form); fieldErrors.Any() {
		h.renderTemplateStatus(w, r, "post_form.html", postFormPageData{Form: form, Errors: fieldErrors, PostId: id}, http.StatusUnprocessableEntity)
		return
	}

	if err := h.Posts.Update(id, user.Id, form); err != nil {
		status, msg := statusMessage(err)
		if status >= http.StatusInternalServerError {
			logger.Log.Error("updating post", "post_id", id, "error", err)
		}
		http.Error(w, msg, status)
		return
	}

	h.redirectWithFlash(w, r, "/posts/"+strconv.FormatInt(int64(id), 10), flashCookieSuccess, "Post updated.")
}

func (h *Handler) PostDeleteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(w, r)
	if !ok {
		return
	}

	id, err := h.postId(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.Posts.Delete(id, user.Id); err != nil {
		status, msg := statusMessage(err)
		if status >= http.StatusInternalServerError {
			logger.Log.Error("deleting post", "post_id", id, "error", err)
		}
		http.Error(w, msg, status)
		return
	}

	h.redirectWithFlash(w, r, "/posts", flashCookieSuccess, "Post deleted.")
}
