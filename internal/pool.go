package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds reusable byte buffers for encoding scratch work such as snapshot fingerprinting.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 256))
	},
}

// GetBuffer returns a reset buffer from BufferPool.
func GetBuffer() *bytes.Buffer {
	buf := BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to BufferPool.
func PutBuffer(buf *bytes.Buffer) {
	BufferPool.Put(buf)
}
