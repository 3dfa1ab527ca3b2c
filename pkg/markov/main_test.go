package markov

import (
	"database/sql"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestStore creates a new SQLite database in a temp dir and a Store for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestStore(t *testing.T) (*sql.DB, *Store) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

// writeCorpus writes text to a file in a temp dir and returns its path.
func writeCorpus(t testing.TB, text string) string {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}
	return path
}

// scriptedChooser returns a Chooser that picks the given indices in order and
// fails the test if the walk asks for more choices than scripted.
func scriptedChooser(t *testing.T, indices ...int) Chooser {
	return ChooserFunc(func(n int) int {
		t.Helper()
		if len(indices) == 0 {
			t.Fatalf("chooser called more times than scripted")
		}
		i := indices[0]
		indices = indices[1:]
		if i >= n {
			t.Fatalf("scripted index %d out of range for %d choices", i, n)
		}
		return i
	})
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
