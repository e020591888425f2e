package textx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "hello world", SanitizeText("hello\x00 world\x07"))
	assert.Equal(t, "tab\tkept\nnewline kept", SanitizeText(" tab\tkept\nnewline kept "))
	assert.Equal(t, "", SanitizeText("\x01\x02\x03"))
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a b c", CollapseWhitespace("  a\t\tb\n\n c  "))
	assert.Equal(t, "", CollapseWhitespace("  \n\t "))
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
}
