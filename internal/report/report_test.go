package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jigarkkarangiya/docs/pkg/logging"
)

func TestParseSeverity(t *testing.T) {
	for _, in := range []string{"ignore", "log", "warn", "throw", " WARN "} {
		_, err := ParseSeverity(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseSeverity("explode")
	assert.Error(t, err)
	assert.False(t, Severity("explode").Valid())
}

func TestReporter(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(logging.New(logging.WithOutput(&out)))

	require.NoError(t, r.Report(Ignore, "ignored"))
	require.NoError(t, r.Report(Log, "logged"))
	require.NoError(t, r.Report(Warn, "warned", logging.Path("blog/post.md")))

	err := r.Report(Throw, "thrown")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrThrown)

	assert.Equal(t, 1, r.Warnings())
	assert.Equal(t, []string{"thrown"}, r.Thrown())
	assert.NotContains(t, out.String(), "ignored")
	assert.Contains(t, out.String(), "logged")
	assert.Contains(t, out.String(), "path=blog/post.md")
}
