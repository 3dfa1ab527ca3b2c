package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CTAG07/mimic/pkg/markov"
	"github.com/joho/godotenv"
	"github.com/natefinch/atomic"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

const (
	usageLine   = "usage: mimic [flags] file-to-read"
	completedAt = "\n\nCompleted.\n"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	// A .env file is optional.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one mimic invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mimic", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	defaults := DefaultConfig()
	configPath := fs.String("config", "", "path to a JSON or YAML config file, created with defaults if missing")
	words := fs.Int("words", defaults.Words, "number of words to generate")
	wrap := fs.Int("wrap", defaults.Wrap, "wrap output at this many columns, 0 disables wrapping")
	seed := fs.Uint64("seed", defaults.Seed, "random seed for reproducible output, 0 picks a random one")
	logLevel := fs.String("log-level", defaults.LogLevel, "log level: debug, info, warn or error")
	dbPath := fs.String("db", defaults.DatabasePath, "SQLite database to save the built chain into")
	modelName := fs.String("model", defaults.ModelName, "name to save the chain under in the database")
	exportPath := fs.String("export", defaults.ExportPath, "write the built chain as JSON to this file")
	showVersion := fs.Bool("version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *showVersion {
		_, _ = fmt.Fprintf(stdout, "mimic %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return exitOK
	}

	if fs.NArg() != 1 {
		_, _ = fmt.Fprintln(stdout, usageLine)
		_, _ = fmt.Fprint(stdout, completedAt)
		return exitUsage
	}
	filename := fs.Arg(0)

	config := DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = LoadConfig(*configPath); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
	}
	if err := ApplyEnv(config); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	// Explicit flags win over the file and the environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "words":
			config.Words = *words
		case "wrap":
			config.Wrap = *wrap
		case "seed":
			config.Seed = *seed
		case "log-level":
			config.LogLevel = *logLevel
		case "db":
			config.DatabasePath = *dbPath
		case "model":
			config.ModelName = *modelName
		case "export":
			config.ExportPath = *exportPath
		}
	})

	if err := config.Validate(); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))

	_, _ = fmt.Fprintf(stdout, "Using %s as input:\n\n", filename)

	builder := markov.NewBuilder(nil)
	builder.SetLogger(logger)
	chain, err := builder.BuildFile(filename)
	if err != nil {
		logger.Error("Failed to build chain", "file", filename, "error", err)
		return exitError
	}

	stats := chain.Stats()
	logger.Debug("Chain statistics",
		"keys", stats.Keys,
		"transitions", stats.Transitions,
		"unique_transitions", stats.UniqueTransitions,
		"vocabulary", stats.Vocabulary,
		"dead_ends", stats.DeadEnds,
	)

	if config.DatabasePath != "" {
		if err = saveChain(ctx, config, chain, logger); err != nil {
			logger.Error("Failed to save chain", "database", config.DatabasePath, "error", err)
			return exitError
		}
	}

	if config.ExportPath != "" {
		if err = exportChain(config, chain); err != nil {
			logger.Error("Failed to export chain", "path", config.ExportPath, "error", err)
			return exitError
		}
		logger.Info("Chain exported", "path", config.ExportPath)
	}

	opts := []markov.WalkOption{markov.WithLogger(logger)}
	if config.Seed != 0 {
		opts = append(opts, markov.WithSeed(config.Seed))
	}
	text := markov.Wrap(markov.Walk(chain, config.Words, opts...), config.Wrap)

	_, _ = fmt.Fprintln(stdout, text)
	_, _ = fmt.Fprint(stdout, completedAt)
	return exitOK
}

// saveChain stores chain in the configured database under the configured model name.
func saveChain(ctx context.Context, config *Config, chain markov.Chain, logger *slog.Logger) error {
	db, err := initDB(config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err = markov.SetupSchema(db); err != nil {
		return fmt.Errorf("failed to setup schema: %w", err)
	}

	store, err := markov.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()
	store.SetLogger(logger)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return store.SaveChain(ctx, config.ModelName, chain)
}

// exportChain writes chain as JSON to the configured export path atomically.
func exportChain(config *Config, chain markov.Chain) error {
	var buf bytes.Buffer
	if err := markov.ExportChain(&buf, config.ModelName, chain); err != nil {
		return fmt.Errorf("failed to encode chain: %w", err)
	}
	return atomic.WriteFile(config.ExportPath, &buf)
}
