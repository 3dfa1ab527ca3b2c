package markov

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// minCorpusTokens is the smallest token count that yields at least one transition.
const minCorpusTokens = 2

// ErrCorpusTooShort is returned when the source holds fewer than two tokens.
var ErrCorpusTooShort = errors.New("corpus needs at least two tokens")

// Builder turns a token stream into a Chain. The zero value is not usable;
// create one with NewBuilder.
type Builder struct {
	tokenizer Tokenizer
	logger    *slog.Logger
}

// NewBuilder creates a Builder using the given tokenizer. A nil tokenizer
// selects NewDefaultTokenizer.
func NewBuilder(tokenizer Tokenizer) *Builder {
	if tokenizer == nil {
		tokenizer = NewDefaultTokenizer()
	}
	return &Builder{
		tokenizer: tokenizer,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Builder. By default, all logs are discarded.
func (b *Builder) SetLogger(logger *slog.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// BuildFile builds a Chain from the file at path using the default tokenizer.
func BuildFile(path string) (Chain, error) {
	return NewBuilder(nil).BuildFile(path)
}

// BuildFile reads the whole file at path and builds a Chain from its tokens.
func (b *Builder) BuildFile(path string) (Chain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open corpus: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	chain, err := b.Build(f)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return chain, nil
}

// Build consumes r entirely and returns the successor mapping of its tokens.
// StartKey is bound to the first token, and every token but the last gains
// the token that follows it. Fewer than two tokens fail with ErrCorpusTooShort.
func (b *Builder) Build(r io.Reader) (Chain, error) {
	stream := b.tokenizer.NewStream(r)

	var tokens []string
	for {
		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		tokens = append(tokens, token)
	}

	if len(tokens) < minCorpusTokens {
		return nil, fmt.Errorf("%w: got %d", ErrCorpusTooShort, len(tokens))
	}

	chain := Chain{StartKey: {tokens[0]}}
	for i := 0; i < len(tokens)-1; i++ {
		chain[tokens[i]] = append(chain[tokens[i]], tokens[i+1])
	}

	b.logger.Debug("Chain built",
		slog.Int("tokens_read", len(tokens)),
		slog.Int("keys", len(chain)-1),
	)
	return chain, nil
}
