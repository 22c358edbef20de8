package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tp := New()

	t.Run("emphasis", func(t *testing.T) {
		out := string(tp.Render("hello *world*"))
		assert.Contains(t, out, "<em>world</em>")
	})

	t.Run("hard wraps", func(t *testing.T) {
		out := string(tp.Render("line one\nline two"))
		assert.Contains(t, out, "<br")
	})

	t.Run("script stripped", func(t *testing.T) {
		out := string(tp.Render(`<script>alert("x")</script>hi`))
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "hi")
	})

	t.Run("event handlers stripped", func(t *testing.T) {
		out := string(tp.Render(`<img src=x onerror=alert(1)>`))
		assert.NotContains(t, out, "onerror")
	})
}
