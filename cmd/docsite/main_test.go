package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jigarkkarangiya/docs/internal/build"
	"github.com/jigarkkarangiya/docs/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	}
	return dir
}

var minimalSite = map[string]string{
	"docs/intro.md":              "# Introduction\n\nHello.\n",
	"blog/2024-01-10-welcome.md": "---\ntitle: Welcome\n---\nHi.\n\n<!-- truncate -->\n\nMore.\n",
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "docsite v"+version+"\n", out)
}

func TestConfig_PrintsEffectiveYAML(t *testing.T) {
	t.Setenv("DOCSITE_SERVE_PORT", "4100")

	out, err := run(t, "config", "--log-level", "debug")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4100, cfg.Serve.Port)
	assert.Equal(t, "site", cfg.SiteDir)
}

func TestConfig_ExplicitFileMissing(t *testing.T) {
	_, err := run(t, "config", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	site := writeSite(t, minimalSite)
	out := filepath.Join(t.TempDir(), "public")
	t.Setenv("DOCSITE_CACHEDIR", filepath.Join(t.TempDir(), "cache"))

	stdout, err := run(t, "build", "--site", site, "--out", out, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Built ")
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.FileExists(t, filepath.Join(out, "docs", "intro", "index.html"))
}

func TestCheck(t *testing.T) {
	site := writeSite(t, minimalSite)

	stdout, err := run(t, "check", "--site", site, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no broken links")

	broken := writeSite(t, map[string]string{
		"docs/intro.md": "# Introduction\n\nSee [gone](/docs/docs/gone).\n",
	})
	stdout, err = run(t, "check", "--site", broken, "--log-level", "error")
	require.Error(t, err)
	assert.True(t, errors.Is(err, build.ErrBrokenLinks))
	assert.Contains(t, stdout, "broken link: /docs/docs/intro -> /docs/docs/gone")
}

func TestServe_InvalidPort(t *testing.T) {
	_, err := run(t, "serve", "--port", "70000")
	assert.Error(t, err)
}
