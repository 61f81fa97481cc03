package ai

import (
	"strings"
	"sync"
)

// TokenStream is a finite, non-restartable sequence of text fragments
// produced by one streaming generation call. Implementations push tokens
// from a producer goroutine; the consumer ranges over Tokens and checks
// Err once the channel is closed.
type TokenStream struct {
	tokens chan string

	mu     sync.Mutex
	err    error
	closed bool
}

// NewTokenStream creates a stream with the given channel buffer size.
// Intended for Generator implementations; consumers receive streams from
// Generator.Stream.
func NewTokenStream(buffer int) *TokenStream {
	if buffer <= 0 {
		buffer = 64
	}
	return &TokenStream{tokens: make(chan string, buffer)}
}

// Push appends a token to the stream. It blocks when the consumer lags
// behind the buffer. Push and Close must be called from the same producer
// goroutine; pushing after Close is a no-op.
func (s *TokenStream) Push(token string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.tokens <- token
}

// Close terminates the stream, recording the terminal error if any.
// Safe to call once; further Close calls are ignored.
func (s *TokenStream) Close(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.tokens)
}

// Tokens returns the receive side of the stream. The channel is closed
// when the stream ends; Err reports how it ended.
func (s *TokenStream) Tokens() <-chan string {
	return s.tokens
}

// Err returns the terminal error of the stream. Valid once Tokens has
// been closed.
func (s *TokenStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Collect drains the stream and returns the accumulated text together
// with the terminal error.
func (s *TokenStream) Collect() (string, error) {
	var b strings.Builder
	for token := range s.tokens {
		b.WriteString(token)
	}
	return b.String(), s.Err()
}
