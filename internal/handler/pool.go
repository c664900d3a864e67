package handler

import (
	"bytes"
	"sync"
)

// responseBuffers pools the scratch buffers respondJSON encodes into.
// A serialized farm state stays well under a kilobyte, so buffers start
// at 512 bytes and rarely grow.
var responseBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return responseBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	responseBuffers.Put(buf)
}
