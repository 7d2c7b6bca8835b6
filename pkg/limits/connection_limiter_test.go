package limits

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionLimiter(t *testing.T) {
	cl := NewConnectionLimiter(2)

	assert.True(t, cl.Acquire("10.0.0.1"))
	assert.True(t, cl.Acquire("10.0.0.1"))
	assert.False(t, cl.Acquire("10.0.0.1"))
	assert.True(t, cl.Acquire("10.0.0.2"), "limits are per IP")
	assert.Equal(t, 2, cl.Count("10.0.0.1"))

	cl.Release("10.0.0.1")
	assert.True(t, cl.Acquire("10.0.0.1"))

	cl.Release("10.0.0.2")
	cl.Release("10.0.0.2")
	assert.Zero(t, cl.Count("10.0.0.2"))

	assert.Equal(t, int64(4), cl.TotalAllowed())
	assert.Equal(t, int64(1), cl.TotalBlocked())
}

func TestConnectionLimiter_Concurrent(t *testing.T) {
	cl := NewConnectionLimiter(5)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if cl.Acquire("ip") {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, granted)
}

func TestNewConnectionLimiter_Default(t *testing.T) {
	cl := NewConnectionLimiter(0)
	for i := 0; i < DefaultMaxPerIP; i++ {
		assert.True(t, cl.Acquire("ip"))
	}
	assert.False(t, cl.Acquire("ip"))
}

func TestMiddleware(t *testing.T) {
	cl := NewConnectionLimiter(1)
	release := make(chan struct{})
	entered := make(chan struct{})

	h := cl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		req := httptest.NewRequest(http.MethodGet, "/_dev/ws", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		h.ServeHTTP(httptest.NewRecorder(), req)
	}()
	<-entered

	req := httptest.NewRequest(http.MethodGet, "/_dev/ws", nil)
	req.RemoteAddr = "192.0.2.1:5001"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	close(release)
	<-done
	assert.Zero(t, cl.Count("192.0.2.1"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.0.2.1:1234", "192.0.2.1"},
		{"no port", nil, "192.0.2.1", "192.0.2.1"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.5"},
		{"real ip", map[string]string{"X-Real-IP": " 203.0.113.9 "}, "10.0.0.1:80", "203.0.113.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(req))
		})
	}
}
