package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n[1,2]\n```":         "[1,2]",
		"  {\"a\":1}  ":           `{"a":1}`,
		"":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripCodeFence(in), "input %q", in)
	}
}

func TestTruncateStringCountsRunes(t *testing.T) {
	assert.Equal(t, "héll...", TruncateString("héllo world", 4))
	assert.Equal(t, "short", TruncateString("short", 10))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 10, ClampInt(150, 1, 10))
	assert.Equal(t, 1, ClampInt(-3, 1, 10))
	assert.Equal(t, 0.0, ClampFloat(-0.5, 0, 100))
	assert.Equal(t, 42.5, ClampFloat(42.5, 0, 100))
}
