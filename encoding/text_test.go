package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverText(t *testing.T) {
	t.Run("Plain ASCII", func(t *testing.T) {
		require.Equal(t, "Widget", RecoverText([]byte("Widget")))
	})

	t.Run("Windows-1252 specials", func(t *testing.T) {
		// 0x93/0x94 are curly quotes, 0x80 is the euro sign in 1252.
		got := RecoverText([]byte{0x93, 0x48, 0x69, 0x94, 0x20, 0x80})
		require.Equal(t, "“Hi” €", got)
	})

	t.Run("Latin-1 accents", func(t *testing.T) {
		require.Equal(t, "Café", RecoverText([]byte{0x43, 0x61, 0x66, 0xE9}))
	})

	t.Run("Empty", func(t *testing.T) {
		require.Equal(t, "", RecoverText(nil))
	})
}

func TestRecoverAlpha(t *testing.T) {
	t.Run("Trailing space padding", func(t *testing.T) {
		require.Equal(t, "A001", RecoverAlpha([]byte("A001  ")))
	})

	t.Run("NUL padding", func(t *testing.T) {
		require.Equal(t, "A001", RecoverAlpha([]byte("\x00A001\x00\x00")))
	})

	t.Run("Interior NUL becomes space", func(t *testing.T) {
		require.Equal(t, "AB CD", RecoverAlpha([]byte("AB\x00CD")))
	})

	t.Run("All padding", func(t *testing.T) {
		require.Equal(t, "", RecoverAlpha([]byte("\x00\x00  ")))
	})
}

func TestCutAtNUL(t *testing.T) {
	require.Equal(t, []byte("CODE"), CutAtNUL([]byte("CODE\x00DESC")))
	require.Equal(t, []byte("CODE"), CutAtNUL([]byte("CODE")))
	require.Empty(t, CutAtNUL([]byte("\x00CODE")))
}

func TestDetectText(t *testing.T) {
	t.Run("ASCII reports Windows-1252", func(t *testing.T) {
		text, enc := DetectText([]byte("SELECT * FROM CUSTOMER;"))
		require.Equal(t, "SELECT * FROM CUSTOMER;", text)
		require.Equal(t, Windows1252Name, enc)
	})

	t.Run("Valid UTF-8 detected", func(t *testing.T) {
		text, enc := DetectText([]byte("naïve — приве́т"))
		require.Equal(t, "naïve — приве́т", text)
		require.Equal(t, "UTF-8", enc)
	})

	t.Run("Legacy high bytes stay Windows-1252", func(t *testing.T) {
		text, enc := DetectText([]byte{0x43, 0x61, 0x66, 0xE9})
		require.Equal(t, "Café", text)
		require.Equal(t, Windows1252Name, enc)
	})

	t.Run("Empty", func(t *testing.T) {
		text, enc := DetectText(nil)
		require.Equal(t, "", text)
		require.Equal(t, Windows1252Name, enc)
	})
}
