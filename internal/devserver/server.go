// Package devserver serves a built site locally, rebuilds it when the sources
// change and tells connected browsers to reload.
package devserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jigarkkarangiya/docs/client"
	"github.com/jigarkkarangiya/docs/internal/build"
	"github.com/jigarkkarangiya/docs/pkg/health"
	"github.com/jigarkkarangiya/docs/pkg/limits"
	"github.com/jigarkkarangiya/docs/pkg/logging"
	"github.com/jigarkkarangiya/docs/pkg/metrics"
	"github.com/jigarkkarangiya/docs/pkg/retry"
	"github.com/jigarkkarangiya/docs/pkg/shutdown"
)

// Dev server endpoints outside the site's base URL.
const (
	ReloadPath  = "/_dev/ws"
	ScriptPath  = "/_dev/" + client.LiveReloadScript
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

// Builder builds the site served by the dev server.
type Builder interface {
	Build(ctx context.Context) (build.Result, error)
}

// Config configures the development server.
type Config struct {
	Addr string
	// SiteDir is watched for changes
	SiteDir string
	// OutDir is served under BaseURL
	OutDir  string
	BaseURL string

	Builder    Builder
	LiveReload bool
	Debounce   time.Duration
	// Retry reruns builds failing on files that vanished mid-save; nil
	// retries fs.ErrNotExist with retry.DefaultConfig
	Retry *retry.Config
	// MaxClientsPerIP bounds live-reload sockets per client IP
	MaxClientsPerIP int

	Version string
	Logger  logging.Logger
	Metrics *metrics.Metrics
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Addr:       "localhost:3000",
		SiteDir:    "site",
		OutDir:     "build",
		BaseURL:    "/",
		LiveReload: true,
		Debounce:   300 * time.Millisecond,

		MaxClientsPerIP: limits.DefaultMaxPerIP,
	}
}

// Server is the development server.
type Server struct {
	cfg     Config
	logger  logging.Logger
	metrics *metrics.Metrics

	hub     *hub
	health  *health.Checker
	limiter *limits.ConnectionLimiter
	retry   *retry.Config

	lastErr   error
	lastBuild build.Result
	mu        sync.RWMutex
}

// New creates a development server.
func New(cfg Config) (*Server, error) {
	if cfg.Builder == nil {
		return nil, errors.New("devserver: builder is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NopLogger{}
	}
	logger := cfg.Logger.With(logging.String("component", "devserver"))

	rc := retry.DefaultConfig()
	rc.RetryIf = retry.On(fs.ErrNotExist)
	if cfg.Retry != nil {
		c := *cfg.Retry
		rc = &c
	}
	if rc.OnRetry == nil {
		rc.OnRetry = func(attempt int, err error, delay time.Duration) {
			logger.Debug("retrying build",
				logging.Int("attempt", attempt),
				logging.Err(err),
				logging.Duration("delay", delay),
			)
		}
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: cfg.Metrics,
		hub:     newHub(logger, cfg.Metrics),
		health:  health.NewChecker(cfg.Version),
		limiter: limits.NewConnectionLimiter(cfg.MaxClientsPerIP),
		retry:   rc,
	}
	s.health.AddCheck("build", health.LastErrorCheck(s.LastError), time.Second)
	s.health.AddCriticalCheck("output", s.checkOutput, time.Second)
	return s, nil
}

// LastError returns the error of the most recent build, if any.
func (s *Server) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// LastBuild returns the result of the most recent build.
func (s *Server) LastBuild() build.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastBuild
}

func (s *Server) checkOutput(context.Context) error {
	info, err := os.Stat(s.cfg.OutDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.cfg.OutDir)
	}
	return nil
}

// Start builds the site, starts watching and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.Rebuild(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := newWatcher(s.cfg.SiteDir, s.cfg.Debounce, s.logger)
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.cfg.SiteDir, err)
	}
	go w.run(ctx, s.Rebuild)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := shutdown.NewHandler(10 * time.Second)
	stop.OnHookComplete = func(name string, err error, d time.Duration) {
		if err != nil {
			s.logger.Warn("shutdown hook failed", logging.String("hook", name), logging.Err(err))
			return
		}
		s.logger.Debug("shutdown hook done", logging.String("hook", name), logging.Duration("duration", d))
	}
	stop.RegisterFunc("watcher", shutdown.PriorityWatcher, w.close)
	stop.RegisterFunc("live reload clients", shutdown.PriorityClients, s.hub.closeAll)
	stop.RegisterFunc("http server", shutdown.PriorityHTTP, srv.Shutdown)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("dev server started",
		logging.String("url", "http://"+s.cfg.Addr+s.cfg.BaseURL),
		logging.Bool("live_reload", s.cfg.LiveReload),
	)

	select {
	case err := <-errCh:
		cancel()
		_ = stop.Shutdown()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("dev server stopping")
		return stop.Shutdown()
	}
}

// Rebuild runs a build and notifies the live-reload clients. Failed builds
// notify too, so browsers pick up the error overlay.
func (s *Server) Rebuild(ctx context.Context) {
	res, err := retry.RetryWithResult(ctx, s.retry, func() (build.Result, error) {
		return s.cfg.Builder.Build(ctx)
	})
	if errors.Is(err, context.Canceled) {
		return
	}

	s.mu.Lock()
	s.lastErr = err
	s.lastBuild = res
	s.mu.Unlock()

	if s.cfg.LiveReload {
		s.hub.broadcast(ctx, ReloadEvent)
	}
}

// Clients is the number of connected live-reload clients.
func (s *Server) Clients() int {
	return s.hub.Len()
}

// Handler returns the dev server's HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(HealthPath, s.health.Handler())
	if s.metrics != nil {
		mux.Handle(MetricsPath, s.metrics.Handler())
	}
	if s.cfg.LiveReload {
		// Not wrapped by the request logger: the upgrade needs the raw
		// http.Hijacker.
		mux.Handle(ReloadPath, s.limiter.Middleware()(s.hub))
		mux.HandleFunc(ScriptPath, s.handleScript)
	}
	mux.Handle("/", logging.RequestLogger(s.logger)(http.HandlerFunc(s.handleSite)))
	return mux
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(client.MustGetFile(client.LiveReloadScript))
}

func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	base := s.cfg.BaseURL
	if r.URL.Path == "/" && base != "/" {
		http.Redirect(w, r, base, http.StatusFound)
		return
	}

	if err := s.LastError(); err != nil {
		s.renderErrorOverlay(w, err)
		return
	}

	if r.URL.Path != strings.TrimSuffix(base, "/") && !strings.HasPrefix(r.URL.Path, base) {
		s.serveNotFound(w)
		return
	}

	data, name, err := s.readOutput(r.URL.Path)
	if errors.Is(err, fs.ErrNotExist) {
		s.serveNotFound(w)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.write(w, http.StatusOK, name, data)
}

// readOutput reads the file serving urlPath. Directories serve their
// index.html.
func (s *Server) readOutput(urlPath string) ([]byte, string, error) {
	rel := strings.TrimPrefix(urlPath, strings.TrimSuffix(s.cfg.BaseURL, "/"))
	rel = path.Clean("/" + rel)
	file := filepath.Join(s.cfg.OutDir, filepath.FromSlash(rel))

	info, err := os.Stat(file)
	if err != nil {
		return nil, "", err
	}
	if info.IsDir() {
		file = filepath.Join(file, "index.html")
	}
	data, err := os.ReadFile(file)
	return data, file, err
}

func (s *Server) serveNotFound(w http.ResponseWriter) {
	file := filepath.Join(s.cfg.OutDir, "404.html")
	data, err := os.ReadFile(file)
	if err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	s.write(w, http.StatusNotFound, file, data)
}

// write sends data with a content type from the extension or, failing that,
// the content. HTML gets the live-reload script.
func (s *Server) write(w http.ResponseWriter, status int, name string, data []byte) {
	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = mimetype.Detect(data).String()
	}
	if s.cfg.LiveReload && strings.HasPrefix(ctype, "text/html") {
		data = InjectScript(data)
	}

	w.Header().Set("Content-Type", ctype)
	w.WriteHeader(status)
	w.Write(data)
}

// scriptTag loads the live-reload client.
var scriptTag = []byte(`<script src="` + ScriptPath + `" data-ws="` + ReloadPath + `"></script>`)

// InjectScript adds the live-reload script before </body>, or at the end
// when there is none.
func InjectScript(page []byte) []byte {
	idx := bytes.LastIndex(page, []byte("</body>"))
	if idx < 0 {
		return append(append([]byte{}, page...), scriptTag...)
	}
	out := make([]byte, 0, len(page)+len(scriptTag))
	out = append(out, page[:idx]...)
	out = append(out, scriptTag...)
	return append(out, page[idx:]...)
}

var overlayTemplate = template.Must(template.New("overlay").Parse(errorOverlayHTML))

func (s *Server) renderErrorOverlay(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)

	overlayTemplate.Execute(w, map[string]any{
		"Error":      err.Error(),
		"LiveReload": s.cfg.LiveReload,
		"Script":     ScriptPath,
		"Socket":     ReloadPath,
	})
}

const errorOverlayHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Build Error</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #1a1a2e;
            color: #eee;
            padding: 2rem;
            margin: 0;
        }
        .error-container {
            background: #16213e;
            border-left: 4px solid #e74c3c;
            padding: 1rem;
            border-radius: 4px;
        }
        h1 { color: #e74c3c; margin-top: 0; }
        pre {
            background: #0f0f23;
            padding: 1rem;
            overflow-x: auto;
            border-radius: 4px;
            white-space: pre-wrap;
        }
    </style>
</head>
<body>
    <div class="error-container">
        <h1>Build Error</h1>
        <p>Fix the problem and save; the page reloads when the site builds again.</p>
        <pre>{{.Error}}</pre>
    </div>
    {{if .LiveReload}}<script src="{{.Script}}" data-ws="{{.Socket}}"></script>{{end}}
</body>
</html>`
