package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig_Text(t *testing.T) {
	var out bytes.Buffer
	logger, err := FromConfig("warn", "text", &out)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.With(String("component", "build")).Warn("slow build", Int("pages", 9), Route("/docs/"))

	got := out.String()
	assert.NotContains(t, got, "hidden")
	assert.Contains(t, got, "slow build")
	assert.Contains(t, got, "component=build")
	assert.Contains(t, got, "pages=9")
	assert.Contains(t, got, "route=/docs/")
}

func TestFromConfig_JSON(t *testing.T) {
	var out bytes.Buffer
	logger, err := FromConfig("debug", "json", &out)
	require.NoError(t, err)

	logger.Error("build failed", Err(errors.New("boom")), Path("docs/intro.md"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "build failed", rec["msg"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "docs/intro.md", rec["path"])
}

func TestFromConfig_Invalid(t *testing.T) {
	_, err := FromConfig("loud", "text", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = FromConfig("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRequestLogger(t *testing.T) {
	var out bytes.Buffer
	logger, err := FromConfig("debug", "text", &out)
	require.NoError(t, err)

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/docs/missing", nil))

	assert.Contains(t, out.String(), "path=/docs/missing")
	assert.Contains(t, out.String(), "status=404")
}
