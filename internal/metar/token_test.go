package metar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize(" \t\n "))
	})

	t.Run("records byte offsets", func(t *testing.T) {
		got := Tokenize("  KJFK  211751Z\t24010KT\n")
		assert.Equal(t, []RawToken{
			{Text: "KJFK", Offset: 2},
			{Text: "211751Z", Offset: 8},
			{Text: "24010KT", Offset: 16},
		}, got)
	})

	t.Run("keeps text verbatim", func(t *testing.T) {
		got := Tokenize("kjfk 1/2SM=")
		assert.Equal(t, "kjfk", got[0].Text)
		assert.Equal(t, "1/2SM=", got[1].String())
	})
}
