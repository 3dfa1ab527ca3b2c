package markov

import "math/rand/v2"

// Chooser picks one element of a non-empty slice. Implementations used by a
// walk must choose uniformly for the output to follow corpus frequencies.
type Chooser interface {
	Choose(choices []string) string
}

// RandChooser is a Chooser backed by math/rand/v2. It is not safe for
// concurrent use unless built with a nil source.
type RandChooser struct {
	r *rand.Rand
}

// NewRandChooser returns a RandChooser drawing from src. A nil src uses the
// package-level generator of math/rand/v2.
func NewRandChooser(src rand.Source) *RandChooser {
	if src == nil {
		return &RandChooser{}
	}
	return &RandChooser{r: rand.New(src)}
}

// NewSeededChooser returns a RandChooser over a PCG source, producing the same
// choices for the same seed.
func NewSeededChooser(seed uint64) *RandChooser {
	return NewRandChooser(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Choose returns a uniformly chosen element of choices.
func (c *RandChooser) Choose(choices []string) string {
	if c.r == nil {
		return choices[rand.IntN(len(choices))]
	}
	return choices[c.r.IntN(len(choices))]
}

// ChooserFunc adapts an index function to the Chooser interface. The function
// receives the number of choices and returns the index to pick.
type ChooserFunc func(n int) int

// Choose calls f with len(choices).
func (f ChooserFunc) Choose(choices []string) string {
	return choices[f(len(choices))]
}
