package middleware

import (
	"bytes"
	"io"
)

// BodyReader wraps a request body as the handler streams it. It counts every
// byte read and keeps the first limit bytes for the request log.
type BodyReader struct {
	body  io.ReadCloser
	limit int
	head  bytes.Buffer
	size  int64
}

// NewBodyReader wraps body. A limit of zero or less keeps nothing.
func NewBodyReader(body io.ReadCloser, limit int) *BodyReader {
	return &BodyReader{body: body, limit: limit}
}

func (r *BodyReader) Read(p []byte) (int, error) {
	n, err := r.body.Read(p)
	r.size += int64(n)
	if room := r.limit - r.head.Len(); room > 0 && n > 0 {
		r.head.Write(p[:min(n, room)])
	}
	return n, err
}

// Close closes the wrapped body.
func (r *BodyReader) Close() error {
	return r.body.Close()
}

// Size is the number of bytes read so far.
func (r *BodyReader) Size() int64 {
	return r.size
}

// Head returns the kept prefix of what was read.
func (r *BodyReader) Head() []byte {
	return r.head.Bytes()
}
