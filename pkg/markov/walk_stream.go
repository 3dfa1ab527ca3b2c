package markov

import (
	"context"
	"log/slog"
)

// WalkStream performs the same walk as Walk but delivers tokens one at a time
// on the returned channel. The channel is closed once count tokens have been
// sent, the chain runs out of start transitions, or ctx is cancelled.
func WalkStream(ctx context.Context, chain Chain, count int, opts ...WalkOption) <-chan string {
	options := newWalkOptions(opts)
	tokenChan := make(chan string)

	go func() {
		defer close(tokenChan)

		state := StartKey
		for generated := 0; generated < count; generated++ {
			next, ok := chain.Next(state, options.chooser)
			if !ok {
				options.logger.DebugContext(ctx, "Walk stream terminated, no start transitions",
					slog.Int("generated_length", generated),
				)
				return
			}
			select {
			case <-ctx.Done():
				options.logger.DebugContext(ctx, "Walk stream cancelled by context")
				return
			case tokenChan <- next:
			}
			state = next
		}
	}()

	return tokenChan
}
