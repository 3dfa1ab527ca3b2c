package markov

import (
	"database/sql"
	"fmt"
)

// SetupSchema initializes the tables used by Store in the provided database.
// It is idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaModels = `
CREATE TABLE IF NOT EXISTS mimic_models (
    model_id INTEGER PRIMARY KEY,
    model_name TEXT NOT NULL UNIQUE
);
`
		schemaLinks = `
CREATE TABLE IF NOT EXISTS mimic_links (
    model_id INTEGER NOT NULL,
    prefix_text TEXT NOT NULL,
    position INTEGER NOT NULL,
    next_text TEXT NOT NULL,
    PRIMARY KEY (model_id, prefix_text, position)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaModels); err != nil {
		return fmt.Errorf("could not create models schema: %w", err)
	}

	if _, err = tx.Exec(schemaLinks); err != nil {
		return fmt.Errorf("could not create links schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}
