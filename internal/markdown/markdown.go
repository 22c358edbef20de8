// Package markdown renders post content to safe HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/postling-dev/postling/internal/logger"
)

type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &TextProcessor{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

// Render turns post content into sanitized HTML. On a render failure the
// raw text is returned escaped; a post must never break its page.
func (tp *TextProcessor) Render(content string) template.HTML {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(content), &buf); err != nil {
		logger.Log.Error("failed to render markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(tp.policy.Sanitize(buf.String()))
}
