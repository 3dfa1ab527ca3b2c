package markov

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Store persists named chains in a SQLite database set up with SetupSchema.
// Successor lists are stored one row per position, so order and duplicates
// survive a round trip.
type Store struct {
	db              *sql.DB
	stmtGetModelID  *sql.Stmt
	stmtListModels  *sql.Stmt
	stmtGetLinks    *sql.Stmt
	stmtDeleteLinks *sql.Stmt
	stmtDeleteModel *sql.Stmt
	logger          *slog.Logger
}

// NewStore creates a Store over db. It pre-compiles all necessary SQL
// statements, returning an error if any preparation fails.
func NewStore(db *sql.DB) (*Store, error) {
	stmtGetModelID, err := db.Prepare(`SELECT model_id FROM mimic_models WHERE model_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtListModels, err := db.Prepare(`SELECT model_name FROM mimic_models ORDER BY model_name;`)
	if err != nil {
		return nil, err
	}

	stmtGetLinks, err := db.Prepare(`SELECT prefix_text, next_text FROM mimic_links WHERE model_id = ? ORDER BY prefix_text, position;`)
	if err != nil {
		return nil, err
	}

	stmtDeleteLinks, err := db.Prepare(`DELETE FROM mimic_links WHERE model_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtDeleteModel, err := db.Prepare(`DELETE FROM mimic_models WHERE model_id = ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:              db,
		stmtGetModelID:  stmtGetModelID,
		stmtListModels:  stmtListModels,
		stmtGetLinks:    stmtGetLinks,
		stmtDeleteLinks: stmtDeleteLinks,
		stmtDeleteModel: stmtDeleteModel,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtGetModelID.Close()
	_ = s.stmtListModels.Close()
	_ = s.stmtGetLinks.Close()
	_ = s.stmtDeleteLinks.Close()
	_ = s.stmtDeleteModel.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SaveChain stores chain under name, replacing any chain already stored
// under that name. The operation is performed within a transaction.
func (s *Store) SaveChain(ctx context.Context, name string, chain Chain) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction for save: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var modelID int64
	err = tx.StmtContext(ctx, s.stmtGetModelID).QueryRowContext(ctx, name).Scan(&modelID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx, "INSERT INTO mimic_models (model_name) VALUES (?)", name)
		if err != nil {
			return fmt.Errorf("failed to insert model '%s': %w", name, err)
		}
		if modelID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read id of model '%s': %w", name, err)
		}
	case err != nil:
		return fmt.Errorf("failed to query for model '%s': %w", name, err)
	default:
		if _, err = tx.StmtContext(ctx, s.stmtDeleteLinks).ExecContext(ctx, modelID); err != nil {
			return fmt.Errorf("failed to clear links for model '%s': %w", name, err)
		}
	}

	stmtInsertLink, err := tx.PrepareContext(ctx, `INSERT INTO mimic_links (model_id, prefix_text, position, next_text) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare link insert statement: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(stmtInsertLink)

	var links int
	for prefix, next := range chain {
		for position, token := range next {
			if _, err = stmtInsertLink.ExecContext(ctx, modelID, prefix, position, token); err != nil {
				return fmt.Errorf("failed to insert link (%q -> %q): %w", prefix, token, err)
			}
			links++
		}
	}

	s.logger.InfoContext(ctx, "Chain saved",
		slog.String("model_name", name),
		slog.Int64("model_id", modelID),
		slog.Int("links_saved", links),
	)

	return tx.Commit()
}

// LoadChain reads the chain stored under name. If no such chain exists the
// returned error wraps sql.ErrNoRows.
func (s *Store) LoadChain(ctx context.Context, name string) (Chain, error) {
	var modelID int64
	if err := s.stmtGetModelID.QueryRowContext(ctx, name).Scan(&modelID); err != nil {
		return nil, fmt.Errorf("could not find model '%s': %w", name, err)
	}

	rows, err := s.stmtGetLinks.QueryContext(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("could not query links for model '%s': %w", name, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	chain := make(Chain)
	for rows.Next() {
		var prefix, next string
		if err = rows.Scan(&prefix, &next); err != nil {
			return nil, err
		}
		chain[prefix] = append(chain[prefix], next)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return chain, nil
}

// ListModels returns the names of all stored chains, sorted.
func (s *Store) ListModels(ctx context.Context) ([]string, error) {
	rows, err := s.stmtListModels.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var names []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// RemoveModel deletes the chain stored under name. Removing an unknown name
// is not an error.
func (s *Store) RemoveModel(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var modelID int64
	err = tx.StmtContext(ctx, s.stmtGetModelID).QueryRowContext(ctx, name).Scan(&modelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to query for model '%s': %w", name, err)
	}

	if _, err = tx.StmtContext(ctx, s.stmtDeleteLinks).ExecContext(ctx, modelID); err != nil {
		return fmt.Errorf("failed to remove links for model %d: %w", modelID, err)
	}
	if _, err = tx.StmtContext(ctx, s.stmtDeleteModel).ExecContext(ctx, modelID); err != nil {
		return fmt.Errorf("failed to remove model %d: %w", modelID, err)
	}

	s.logger.InfoContext(ctx, "Model removed successfully",
		slog.String("model_name", name),
		slog.Int64("model_id", modelID),
	)

	return tx.Commit()
}
