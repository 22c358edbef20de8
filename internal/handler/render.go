package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/postling-dev/postling/internal/domain"
	"github.com/postling-dev/postling/internal/logger"
	"github.com/postling-dev/postling/internal/middleware"
)

// CommonTemplateData is available to every page: the session user for the
// nav bar plus any flash messages left by the previous request.
type CommonTemplateData struct {
	LoggedIn     bool
	User         *domain.User
	Error        template.HTML
	Success      template.HTML
	EmailPrefill string
}

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) CommonTemplateData {
	// Flash cookies come back from the client, so their content is escaped
	// here regardless of what was stored.
	common := CommonTemplateData{
		Error:        template.HTML(template.HTMLEscapeString(h.popFlash(w, r, flashCookieError))),
		Success:      template.HTML(template.HTMLEscapeString(h.popFlash(w, r, flashCookieSuccess))),
		EmailPrefill: h.popFlash(w, r, emailPrefillCookie),
	}
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		common.LoggedIn = true
		common.User = user
	}
	return common
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateStatus(w, r, name, data, http.StatusOK)
}

func (h *Handler) renderTemplateStatus(w http.ResponseWriter, r *http.Request, name string, data any, status int) {
	h.renderTemplateWithError(w, r, name, data, "", status)
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string, status int) {
	tmpl, ok := h.getTemplate(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(w, r)
	if errMsg != "" {
		common.Error = template.HTML(template.HTMLEscapeString(errMsg))
	}

	wrapped := TemplateData{
		Data:   data,
		Common: common,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_, _ = buf.WriteTo(w)
}
