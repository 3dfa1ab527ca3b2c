package markov

import "testing"

func TestStats(t *testing.T) {
	chain := Chain{
		"":  {"a"},
		"a": {"b", "c", "b"},
		"b": {"a"},
	}

	stats := chain.Stats()
	expected := ChainStats{
		Keys:              2,
		Transitions:       4,
		UniqueTransitions: 3,
		Vocabulary:        3,
		DeadEnds:          1,
	}
	if stats != expected {
		t.Errorf("Stats() got = %+v, want %+v", stats, expected)
	}
}

func TestStatsEmpty(t *testing.T) {
	if stats := (Chain{}).Stats(); stats != (ChainStats{}) {
		t.Errorf("expected zero stats for an empty chain, got %+v", stats)
	}
}
