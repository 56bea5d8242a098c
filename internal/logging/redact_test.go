package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	in := []any{"user", "ann", "AccessToken", "t", "secret_key", 1, 42, "password"}
	out := redact(in)

	assert.Equal(t, []any{"user", "ann", "AccessToken", redacted, "secret_key", redacted, 42, "password"}, out)
	assert.Equal(t, "t", in[3], "input slice is left alone")
}

func TestRedact_NothingSensitiveReturnsSameSlice(t *testing.T) {
	in := []any{"status", "anonymous"}
	out := redact(in)
	assert.Equal(t, in, out)
	assert.Same(t, &in[0], &out[0])
}
