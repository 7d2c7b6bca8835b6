package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jigarkkarangiya/docs/internal/build"
	"github.com/jigarkkarangiya/docs/pkg/health"
	"github.com/jigarkkarangiya/docs/pkg/limits"
	"github.com/jigarkkarangiya/docs/pkg/logging"
	"github.com/jigarkkarangiya/docs/pkg/metrics"
	"github.com/jigarkkarangiya/docs/pkg/retry"
)

type fakeBuilder struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeBuilder) Build(context.Context) (build.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return build.Result{BuildID: "b" + strings.Repeat("x", f.calls)}, f.err
}

func (f *fakeBuilder) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

var pngMagic = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"

func newTestServer(t *testing.T) (*Server, *fakeBuilder, string) {
	t.Helper()

	out := t.TempDir()
	for name, data := range map[string]string{
		"index.html":            "<html><body><h1>Home</h1></body></html>",
		"404.html":              "<html><body>Page Not Found</body></html>",
		"docs/intro/index.html": "<html><body>Intro</body></html>",
		"blog/rss.xml":          "<rss/>",
		"img/badge":             pngMagic,
	} {
		p := filepath.Join(out, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	}

	fb := &fakeBuilder{}
	cfg := DefaultConfig()
	cfg.SiteDir = t.TempDir()
	cfg.OutDir = out
	cfg.BaseURL = "/docs/"
	cfg.Builder = fb
	cfg.Logger = logging.NopLogger{}
	cfg.Metrics = metrics.New("docsite")

	s, err := New(cfg)
	require.NoError(t, err)
	return s, fb, out
}

func get(t *testing.T, h http.Handler, target string) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec.Result()
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestNew_RequiresBuilder(t *testing.T) {
	_, err := New(DefaultConfig())
	assert.Error(t, err)
}

func TestHandler_RedirectsRootToBase(t *testing.T) {
	s, _, _ := newTestServer(t)

	resp := get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/docs/", resp.Header.Get("Location"))
}

func TestHandler_ServesPages(t *testing.T) {
	s, _, _ := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		target string
		status int
		ctype  string
		want   string
	}{
		{"/docs/", http.StatusOK, "text/html", "<h1>Home</h1>"},
		{"/docs", http.StatusOK, "text/html", "<h1>Home</h1>"},
		{"/docs/docs/intro", http.StatusOK, "text/html", "Intro"},
		{"/docs/docs/intro/", http.StatusOK, "text/html", "Intro"},
		{"/docs/blog/rss.xml", http.StatusOK, "xml", "<rss/>"},
		{"/docs/img/badge", http.StatusOK, "image/png", "PNG"},
		{"/docs/missing", http.StatusNotFound, "text/html", "Page Not Found"},
		{"/elsewhere", http.StatusNotFound, "text/html", "Page Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp := get(t, h, tt.target)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), tt.ctype)
			assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
			assert.Contains(t, body(t, resp), tt.want)
		})
	}
}

func TestHandler_InjectsLiveReload(t *testing.T) {
	s, _, _ := newTestServer(t)

	got := body(t, get(t, s.Handler(), "/docs/"))
	assert.Contains(t, got, `<script src="/_dev/livereload.js" data-ws="/_dev/ws"></script></body>`)

	got = body(t, get(t, s.Handler(), "/docs/blog/rss.xml"))
	assert.NotContains(t, got, "livereload")

	script := get(t, s.Handler(), ScriptPath)
	assert.Equal(t, http.StatusOK, script.StatusCode)
	assert.Contains(t, body(t, script), "location.reload()")
}

func TestHandler_NoLiveReload(t *testing.T) {
	s, _, _ := newTestServer(t)
	s.cfg.LiveReload = false

	got := body(t, get(t, s.Handler(), "/docs/"))
	assert.NotContains(t, got, "livereload")
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), ScriptPath).StatusCode)
}

func TestHandler_ErrorOverlay(t *testing.T) {
	s, fb, _ := newTestServer(t)
	fb.fail(errors.New(`broken link <a href="/nowhere">`))
	s.Rebuild(context.Background())

	resp := get(t, s.Handler(), "/docs/docs/intro")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	got := body(t, resp)
	assert.Contains(t, got, "Build Error")
	assert.Contains(t, got, "broken link &lt;a href=&#34;/nowhere&#34;&gt;")
	assert.Contains(t, got, "/_dev/livereload.js")

	fb.fail(nil)
	s.Rebuild(context.Background())
	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/docs/docs/intro").StatusCode)
}

func TestHandler_Health(t *testing.T) {
	s, fb, _ := newTestServer(t)

	var report health.Report
	resp := get(t, s.Handler(), HealthPath)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, health.StatusHealthy, report.Status)

	fb.fail(errors.New("boom"))
	s.Rebuild(context.Background())

	resp = get(t, s.Handler(), HealthPath)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, health.StatusDegraded, report.Status)
	assert.Equal(t, "boom", report.Checks["build"].Error)
}

func TestHandler_Metrics(t *testing.T) {
	s, _, _ := newTestServer(t)

	resp := get(t, s.Handler(), MetricsPath)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "docsite_reload_clients")
}

func TestLiveReload_Broadcast(t *testing.T) {
	s, _, _ := newTestServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+ReloadPath, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	require.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	s.Rebuild(ctx)

	var ev Event
	require.NoError(t, wsjson.Read(ctx, conn, &ev))
	assert.Equal(t, "reload", ev.Type)
	assert.Equal(t, "bx", s.LastBuild().BuildID)

	conn.Close(websocket.StatusNormalClosure, "bye")
	require.Eventually(t, func() bool { return s.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestLiveReload_LimitsClientsPerIP(t *testing.T) {
	s, _, _ := newTestServer(t)
	s.limiter = limits.NewConnectionLimiter(1)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + ReloadPath

	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "test done")

	_, resp, err := websocket.Dial(ctx, url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

type flakyBuilder struct {
	calls atomic.Int32
}

func (f *flakyBuilder) Build(context.Context) (build.Result, error) {
	if f.calls.Add(1) == 1 {
		return build.Result{}, &fs.PathError{Op: "open", Path: "docs/intro.md", Err: fs.ErrNotExist}
	}
	return build.Result{BuildID: "ok"}, nil
}

func TestRebuild_RetriesVanishedFiles(t *testing.T) {
	fb := &flakyBuilder{}
	cfg := DefaultConfig()
	cfg.OutDir = t.TempDir()
	cfg.Builder = fb
	cfg.LiveReload = false
	cfg.Retry = &retry.Config{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
		Multiplier:   2,
		RetryIf:      retry.On(fs.ErrNotExist),
	}

	s, err := New(cfg)
	require.NoError(t, err)

	s.Rebuild(context.Background())
	assert.NoError(t, s.LastError())
	assert.Equal(t, "ok", s.LastBuild().BuildID)
	assert.Equal(t, int32(2), fb.calls.Load())
}

func TestInjectScript(t *testing.T) {
	tag := string(scriptTag)

	assert.Equal(t, "<body>x"+tag+"</body>", string(InjectScript([]byte("<body>x</body>"))))
	assert.Equal(t, "plain"+tag, string(InjectScript([]byte("plain"))))

	page := []byte("<body></body>")
	InjectScript(page)
	assert.Equal(t, "<body></body>", string(page), "input is not modified")
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	w, err := newWatcher(dir, 50*time.Millisecond, logging.NopLogger{})
	require.NoError(t, err)
	defer w.close(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	go w.run(ctx, func(context.Context) { calls.Add(1) })

	for _, name := range []string{"a.md", "b.md", "c.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Directories created after start are watched too.
	sub := filepath.Join(dir, "guides")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "setup.md"), []byte("x"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 3 }, 2*time.Second, 10*time.Millisecond)
}

func TestSkip(t *testing.T) {
	assert.True(t, skip(fsnotifyEvent("doc.md", true)))
	assert.True(t, skip(fsnotifyEvent(".#doc.md", false)))
	assert.True(t, skip(fsnotifyEvent("doc.md~", false)))
	assert.True(t, skip(fsnotifyEvent("doc.md.swp", false)))
	assert.False(t, skip(fsnotifyEvent("doc.md", false)))
}

func fsnotifyEvent(name string, chmod bool) fsnotify.Event {
	op := fsnotify.Write
	if chmod {
		op = fsnotify.Chmod
	}
	return fsnotify.Event{Name: name, Op: op}
}
