package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveBuild(t *testing.T) {
	m := New("docsite")

	m.ObserveBuild(BuildStats{Pages: 12, Written: 10, Skipped: 2, Duration: time.Second}, nil)
	m.ObserveBuild(BuildStats{BrokenLinks: 3, Duration: time.Second}, errors.New("broken links"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildsTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildsTotal.WithLabelValues(StatusFailure)))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.PagesRendered))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.BrokenLinks))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.FilesWritten.WithLabelValues("written")))
}

func TestObserveBuild_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveBuild(BuildStats{}, nil)
	})
}

func TestHandler(t *testing.T) {
	m := New("docsite")
	m.ReloadsTotal.Inc()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "docsite_reloads_total 1")
}
