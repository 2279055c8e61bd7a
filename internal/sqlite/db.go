package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single pooled connection avoids
	// SQLITE_BUSY and keeps in-memory databases coherent.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Every statement is guarded so the
// migration is safe to run on every startup against a persistent database.
func (db *DB) RunMigrations() error {
	migration := `
-- Owners and their subscription tier
CREATE TABLE IF NOT EXISTS owners (
    id TEXT PRIMARY KEY,
    tier TEXT NOT NULL DEFAULT 'free' CHECK(tier IN ('free', 'starter', 'pro')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Projects: one idea-validation run. version is the optimistic concurrency
-- token; credits_used is written only by the consume path.
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    title TEXT NOT NULL,
    idea TEXT NOT NULL DEFAULT '',
    selected_gap_index INTEGER,
    credits_used INTEGER NOT NULL DEFAULT 0,
    version INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_owner_projects ON projects(owner_id);

-- Competitor list (machine-suggested and user-authored, one ordered list)
CREATE TABLE IF NOT EXISTS competitors (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    name TEXT NOT NULL,
    website TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    ai_generated INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_project_competitors ON competitors(project_id);

-- Market-gap analysis, replaced as a whole on rerun
CREATE TABLE IF NOT EXISTS market_gaps (
    project_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    gap TEXT NOT NULL,
    positioning TEXT NOT NULL DEFAULT '',
    score INTEGER NOT NULL CHECK(score BETWEEN 0 AND 10),
    rationale TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (project_id, position),
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- Features
CREATE TABLE IF NOT EXISTS features (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK(status IN ('planned', 'in_progress', 'done')),
    priority TEXT NOT NULL CHECK(priority IN ('low', 'medium', 'high')),
    ai_generated INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_project_features ON features(project_id);
CREATE INDEX IF NOT EXISTS idx_feature_status ON features(status);

-- Validation plan steps
CREATE TABLE IF NOT EXISTS validation_steps (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    title TEXT NOT NULL,
    goal TEXT NOT NULL DEFAULT '',
    method TEXT NOT NULL DEFAULT '',
    priority TEXT NOT NULL CHECK(priority IN ('low', 'medium', 'high')),
    done INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_project_steps ON validation_steps(project_id);

-- Credit consume log
CREATE TABLE IF NOT EXISTS credit_charges (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    stage_tag TEXT NOT NULL,
    outcome TEXT NOT NULL CHECK(outcome IN ('pending', 'fulfilled', 'failed')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_project_charges ON credit_charges(project_id);
CREATE INDEX IF NOT EXISTS idx_charge_outcome ON credit_charges(project_id, stage_tag, outcome);

-- API keys for authentication
CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP,
    description TEXT
);
CREATE INDEX IF NOT EXISTS idx_owner_keys ON api_keys(owner_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
