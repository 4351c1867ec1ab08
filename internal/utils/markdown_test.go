package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))

	out := RenderMarkdown("# Build log\n\nwater cooled **finally**")
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Build log")
	assert.Contains(t, out, "<strong>finally</strong>")
}
