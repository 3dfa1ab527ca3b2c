package markov

// ChainStats holds aggregated statistics for a Chain.
type ChainStats struct {
	Keys              int // The number of tokens with at least one successor.
	Transitions       int // The number of observed token pairs; duplicates counted.
	UniqueTransitions int // The number of distinct key->next pairs.
	Vocabulary        int // The number of distinct tokens in keys and successor lists.
	DeadEnds          int // The number of tokens that only ever appear as successors.
}

// Stats returns a snapshot of statistics for the chain. StartKey is not
// counted as a key and its entry is not counted as a transition.
func (c Chain) Stats() ChainStats {
	var stats ChainStats
	vocab := make(map[string]struct{})
	type pair struct{ key, next string }
	pairs := make(map[pair]struct{})

	for key, next := range c {
		if key == StartKey {
			for _, n := range next {
				vocab[n] = struct{}{}
			}
			continue
		}
		if len(next) > 0 {
			stats.Keys++
		}
		vocab[key] = struct{}{}
		stats.Transitions += len(next)
		for _, n := range next {
			vocab[n] = struct{}{}
			pairs[pair{key, n}] = struct{}{}
		}
	}

	for token := range vocab {
		if _, ok := c.Successors(token); !ok {
			stats.DeadEnds++
		}
	}

	stats.UniqueTransitions = len(pairs)
	stats.Vocabulary = len(vocab)
	return stats
}
