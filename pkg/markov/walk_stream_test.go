package markov

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestWalkStream(t *testing.T) {
	ctx := context.Background()
	tokenChan := WalkStream(ctx, scenarioChain(), 5, WithChooser(ChooserFunc(func(n int) int { return n - 1 })))

	var tokens []string
	for token := range tokenChan {
		tokens = append(tokens, token)
	}

	// Always taking the last successor: a -> c (dead end) -> a -> c ...
	expected := "a c a c a"
	if got := strings.Join(tokens, " "); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestWalkStreamMatchesWalk(t *testing.T) {
	chain, err := NewBuilder(nil).Build(strings.NewReader("a b c a c b a a b b c c a"))
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	var tokens []string
	for token := range WalkStream(context.Background(), chain, 40, WithSeed(7)) {
		tokens = append(tokens, token)
	}
	if got, want := strings.Join(tokens, " "), Walk(chain, 40, WithSeed(7)); got != want {
		t.Errorf("stream and walk differ:\n%q\n%q", got, want)
	}
}

func TestWalkStreamCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tokenChan := WalkStream(ctx, scenarioChain(), 1_000_000)

	<-tokenChan
	cancel()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-tokenChan:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("stream was not closed after context cancellation")
		}
	}
}

func TestWalkStreamNoStart(t *testing.T) {
	tokenChan := WalkStream(context.Background(), Chain{}, 10)
	if _, ok := <-tokenChan; ok {
		t.Error("expected the stream to close without tokens")
	}
}
