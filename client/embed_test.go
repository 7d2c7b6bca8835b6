package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiveReloadScript(t *testing.T) {
	data := MustGetFile(LiveReloadScript)
	assert.Contains(t, string(data), "'reload'")
	assert.Contains(t, string(data), "/_dev/ws")

	assert.Panics(t, func() { MustGetFile("missing.js") })
}
