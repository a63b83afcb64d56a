package elevenlabs

import "io"

// ChunkSize is how much audio is read from the upstream per chunk.
const ChunkSize = 8 * 1024

// Stream is a finite, forward-only, non-restartable sequence of audio chunks
// read lazily from the upstream connection. It is not safe for concurrent use.
type Stream struct {
	body io.ReadCloser
	buf  []byte
}

// NewStream wraps an upstream response body in a chunk stream.
func NewStream(body io.ReadCloser) *Stream {
	return &Stream{
		body: body,
		buf:  make([]byte, ChunkSize),
	}
}

// Next returns the next non-empty chunk of audio. It returns io.EOF once the
// stream is exhausted. The returned slice is only valid until the next call.
func (s *Stream) Next() ([]byte, error) {
	for {
		n, err := s.body.Read(s.buf)
		if n > 0 {
			return s.buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Close releases the underlying connection back to the pool. Safe to call
// more than once.
func (s *Stream) Close() error {
	return s.body.Close()
}
