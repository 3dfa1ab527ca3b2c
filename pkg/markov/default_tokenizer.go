package markov

import (
	"bufio"
	"io"
)

// defaultMaxTokenSize is the largest single token the default tokenizer accepts.
const defaultMaxTokenSize = 1 << 20

// DefaultTokenizer is the default implementation of the Tokenizer interface.
// A token is a maximal run of non-whitespace characters; punctuation stays
// attached to the word it was written with.
type DefaultTokenizer struct {
	maxTokenSize int
}

// Option is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithMaxTokenSize sets the largest token, in bytes, the tokenizer will accept
// before failing with bufio.ErrTooLong.
// Default: 1 MiB
func WithMaxTokenSize(n int) Option {
	return func(t *DefaultTokenizer) {
		if n > 0 {
			t.maxTokenSize = n
		}
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		maxTokenSize: defaultMaxTokenSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewStream returns the stream processor.
func (t *DefaultTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	initial := bufio.MaxScanTokenSize
	if initial > t.maxTokenSize {
		initial = t.maxTokenSize
	}
	scanner.Buffer(make([]byte, 0, initial), t.maxTokenSize)
	scanner.Split(bufio.ScanWords)
	return &DefaultStreamTokenizer{scanner: scanner}
}

// DefaultStreamTokenizer is the default implementation of the StreamTokenizer
// interface. It wraps a bufio.Scanner splitting on Unicode whitespace.
type DefaultStreamTokenizer struct {
	scanner *bufio.Scanner
}

// Next returns the next token from the stream. When the stream is exhausted,
// it returns an empty string and io.EOF. Any other error indicates a problem
// reading from the underlying stream.
func (s *DefaultStreamTokenizer) Next() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}
