package validate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists validation results across builds, keyed by content hash
// and language. Without an explicit cache path results are discarded at the
// end of every build.
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

// CachedResult is a previously stored validation outcome.
type CachedResult struct {
	Status      Status
	Diagnostics []string
}

// OpenCache opens (or creates) a cache database. Use ":memory:" for an
// ephemeral cache in tests.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}
	return c, nil
}

func (c *Cache) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		content_hash TEXT NOT NULL,
		language TEXT NOT NULL,
		status TEXT NOT NULL,
		diagnostics TEXT,
		created INTEGER NOT NULL,
		PRIMARY KEY (content_hash, language)
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Get looks up a cached result.
func (c *Cache) Get(ctx context.Context, hash, language string) (CachedResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var status string
	var diagJSON sql.NullString
	err := c.db.QueryRowContext(ctx,
		"SELECT status, diagnostics FROM results WHERE content_hash = ? AND language = ?",
		hash, language,
	).Scan(&status, &diagJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return CachedResult{}, false, nil
	}
	if err != nil {
		return CachedResult{}, false, fmt.Errorf("query cache: %w", err)
	}

	res := CachedResult{Status: Status(status)}
	if diagJSON.Valid && diagJSON.String != "" {
		if err := json.Unmarshal([]byte(diagJSON.String), &res.Diagnostics); err != nil {
			return CachedResult{}, false, fmt.Errorf("decode cached diagnostics: %w", err)
		}
	}
	return res, true, nil
}

// Put stores a validation result.
func (c *Cache) Put(ctx context.Context, hash, language string, status Status, diagnostics []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var diagJSON []byte
	if len(diagnostics) > 0 {
		var err error
		diagJSON, err = json.Marshal(diagnostics)
		if err != nil {
			return fmt.Errorf("encode diagnostics: %w", err)
		}
	}

	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO results (content_hash, language, status, diagnostics, created) VALUES (?, ?, ?, ?, ?)",
		hash, language, string(status), string(diagJSON), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert cache row: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
