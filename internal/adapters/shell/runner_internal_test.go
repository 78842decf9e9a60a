package shell

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestStderrTail(t *testing.T) {
	t.Run("short output is kept", func(t *testing.T) {
		assert.Equal(t, "boom", stderrTail([]byte("  boom\n")))
	})

	t.Run("long output keeps the end", func(t *testing.T) {
		in := strings.Repeat("a", maxStderrTail) + "tail"
		got := stderrTail([]byte(in))
		assert.True(t, strings.HasPrefix(got, "..."))
		assert.True(t, strings.HasSuffix(got, "tail"))
		assert.Len(t, got, len("...")+maxStderrTail)
	})

	t.Run("cut lands on a rune boundary", func(t *testing.T) {
		in := strings.Repeat("é", maxStderrTail/2) + "x"
		got := stderrTail([]byte(in))
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, "..."+strings.Repeat("é", maxStderrTail/2-1)+"x", got)
	})
}
