// # internal/history/schema.go
package history

import (
	"database/sql"
	"time"
)

const SchemaVersion = 1

// Snapshot is the per-run summary row. The report itself is not persisted,
// only enough to trend orphan counts over time.
type Snapshot struct {
	RunID           string
	SchemaVersion   int
	Timestamp       time.Time
	FileCount       int
	EdgeCount       int
	OrphanCount     int
	EntryPointCount int
	ClusterCount    int
	SkippedCount    int
	Duration        time.Duration
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
  project_key       TEXT    NOT NULL,
  run_id            TEXT    NOT NULL,
  schema_version    INTEGER NOT NULL,
  ts_utc            TEXT    NOT NULL,
  file_count        INTEGER NOT NULL,
  edge_count        INTEGER NOT NULL,
  orphan_count      INTEGER NOT NULL,
  entry_point_count INTEGER NOT NULL,
  cluster_count     INTEGER NOT NULL,
  skipped_count     INTEGER NOT NULL,
  duration_ms       INTEGER NOT NULL,
  PRIMARY KEY (project_key, run_id)
);
CREATE INDEX IF NOT EXISTS idx_snapshots_project_ts
  ON snapshots (project_key, ts_utc);
`

func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}
