package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBuffer_Reset(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("stale")
	PutBuffer(buf)

	assert.Zero(t, GetBuffer().Len())
}

func TestClone(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("<html></html>")
	out := Clone(buf)

	buf.Reset()
	buf.WriteString("overwritten!!")
	PutBuffer(buf)

	assert.Equal(t, "<html></html>", string(out))
}

func TestPutBuffer_DropsLarge(t *testing.T) {
	assert.NotPanics(t, func() {
		PutBuffer(nil)
		PutBuffer(bytes.NewBuffer(make([]byte, 0, maxPooledSize+1)))
	})
}
