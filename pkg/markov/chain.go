package markov

import "sort"

// StartKey is the sentinel state every walk starts from. It maps to the first
// token of the source.
const StartKey = ""

// Chain is a successor mapping: each key is bound to the ordered list of tokens
// observed immediately after it, duplicates retained.
type Chain map[string][]string

// Successors returns the list bound to key and whether key has any outgoing
// transitions. The returned slice must not be modified.
func (c Chain) Successors(key string) ([]string, bool) {
	next, ok := c[key]
	return next, ok && len(next) > 0
}

// Next performs a single transition of the walk state machine from state.
// A state without outgoing transitions, which is always the case for the last
// token of the source, is redirected to StartKey before choosing. ok is false
// only when StartKey itself has no successors.
func (c Chain) Next(state string, chooser Chooser) (next string, ok bool) {
	choices, found := c.Successors(state)
	if !found {
		if choices, found = c.Successors(StartKey); !found {
			return "", false
		}
	}
	return chooser.Choose(choices), true
}

// Keys returns every source key except StartKey, sorted.
func (c Chain) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		if k == StartKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
