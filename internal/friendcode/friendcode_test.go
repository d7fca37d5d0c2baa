package friendcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsesUnambiguousAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := Generate(DefaultLength)
		require.NoError(t, err)
		assert.Len(t, code, DefaultLength)
		assert.True(t, Valid(code), code)
		assert.False(t, strings.ContainsAny(code, "0O1IL"), code)
	}
}

func TestGenerateRejectsBadLength(t *testing.T) {
	_, err := Generate(0)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  #abcd2345 ": "ABCD2345",
		"ABCD2345":     "ABCD2345",
		"#":            "",
		"   ":          "",
		"# xy":         "XY",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}
