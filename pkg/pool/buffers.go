// Package pool provides buffer pooling for page writes and compression.
package pool

import (
	"bytes"
	"sync"
)

// maxPooledSize caps the buffers kept for reuse. Rendered doc pages rarely
// exceed this; larger ones are left to the GC.
const maxPooledSize = 256 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves a buffer from the pool, resetting it for use.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledSize {
		return
	}
	bufferPool.Put(buf)
}

// Clone copies the buffer contents so the buffer itself can go back to the pool.
func Clone(buf *bytes.Buffer) []byte {
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}
