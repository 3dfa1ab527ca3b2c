package markov

import (
	"errors"
	"io"
	"log/slog"
	"strings"
)

// ErrNoStart is returned when a chain has no successors bound to StartKey.
var ErrNoStart = errors.New("chain has no start transitions")

// walkOptions is used by the walk functions to configure default options.
type walkOptions struct {
	chooser Chooser
	logger  *slog.Logger
}

// WalkOption is a function that configures walk parameters. It's used as a
// variadic argument in Walk and WalkStream.
type WalkOption func(*walkOptions)

// WithChooser sets the Chooser used to pick successors.
// Default: NewRandChooser(nil)
func WithChooser(c Chooser) WalkOption {
	return func(o *walkOptions) {
		if c != nil {
			o.chooser = c
		}
	}
}

// WithSeed makes the walk reproducible by choosing from a PCG source seeded
// with seed.
func WithSeed(seed uint64) WalkOption {
	return func(o *walkOptions) { o.chooser = NewSeededChooser(seed) }
}

// WithLogger sets the logger for walk diagnostics.
func WithLogger(logger *slog.Logger) WalkOption {
	return func(o *walkOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newWalkOptions(opts []WalkOption) *walkOptions {
	options := &walkOptions{
		chooser: NewRandChooser(nil),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Walk performs a random walk of count steps over chain, starting at StartKey,
// and returns the chosen tokens joined by single spaces. A step from a token
// with no recorded successors restarts at StartKey. For any chain returned by
// a Builder the result holds exactly count tokens; a chain without start
// transitions yields a shorter result.
func Walk(chain Chain, count int, opts ...WalkOption) string {
	words, _ := walk(chain, count, newWalkOptions(opts))
	return strings.TrimSpace(strings.Join(words, " "))
}

// Walker holds walk options so that several walks can share them.
type Walker struct {
	options *walkOptions
}

// NewWalker creates a Walker configured with opts.
func NewWalker(opts ...WalkOption) *Walker {
	return &Walker{options: newWalkOptions(opts)}
}

// Walk is like the package-level Walk but reports ErrNoStart instead of
// returning a short result.
func (w *Walker) Walk(chain Chain, count int) (string, error) {
	words, err := walk(chain, count, w.options)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(words, " ")), nil
}

// walk contains the main loop for the random walk.
func walk(chain Chain, count int, options *walkOptions) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}

	words := make([]string, 0, count)
	state := StartKey
	restarts := 0
	for len(words) < count {
		if _, ok := chain.Successors(state); !ok {
			restarts++
		}
		next, ok := chain.Next(state, options.chooser)
		if !ok {
			options.logger.Debug("Walk terminated, no start transitions",
				slog.Int("generated_length", len(words)),
			)
			return words, ErrNoStart
		}
		words = append(words, next)
		state = next
	}

	options.logger.Debug("Walk completed",
		slog.Int("generated_length", len(words)),
		slog.Int("restarts", restarts),
	)
	return words, nil
}
