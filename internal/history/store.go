// # internal/history/store.go
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SaveSnapshot(projectKey string, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectKey = strings.TrimSpace(projectKey)
	if projectKey == "" {
		projectKey = "default"
	}

	if snapshot.RunID == "" {
		snapshot.RunID = uuid.NewString()
	}
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}
	if snapshot.SchemaVersion == 0 {
		snapshot.SchemaVersion = SchemaVersion
	}
	if snapshot.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported snapshot schema version %d", snapshot.SchemaVersion)
	}

	query := `
INSERT INTO snapshots (
  project_key, run_id, schema_version, ts_utc, file_count, edge_count,
  orphan_count, entry_point_count, cluster_count, skipped_count, duration_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(project_key, run_id) DO UPDATE SET
  schema_version=excluded.schema_version,
  ts_utc=excluded.ts_utc,
  file_count=excluded.file_count,
  edge_count=excluded.edge_count,
  orphan_count=excluded.orphan_count,
  entry_point_count=excluded.entry_point_count,
  cluster_count=excluded.cluster_count,
  skipped_count=excluded.skipped_count,
  duration_ms=excluded.duration_ms
`
	_, err := s.db.Exec(
		query,
		projectKey,
		snapshot.RunID,
		snapshot.SchemaVersion,
		snapshot.Timestamp.UTC().Format(time.RFC3339Nano),
		snapshot.FileCount,
		snapshot.EdgeCount,
		snapshot.OrphanCount,
		snapshot.EntryPointCount,
		snapshot.ClusterCount,
		snapshot.SkippedCount,
		snapshot.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// RecentSnapshots returns up to limit snapshots for the project, newest
// first.
func (s *Store) RecentSnapshots(projectKey string, limit int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectKey = strings.TrimSpace(projectKey)
	if projectKey == "" {
		projectKey = "default"
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
SELECT run_id, schema_version, ts_utc, file_count, edge_count, orphan_count,
       entry_point_count, cluster_count, skipped_count, duration_ms
FROM snapshots
WHERE project_key = ?
ORDER BY ts_utc DESC
LIMIT ?`, projectKey, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			snap       Snapshot
			ts         string
			durationMS int64
		)
		if err := rows.Scan(
			&snap.RunID, &snap.SchemaVersion, &ts, &snap.FileCount,
			&snap.EdgeCount, &snap.OrphanCount, &snap.EntryPointCount,
			&snap.ClusterCount, &snap.SkippedCount, &durationMS,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse snapshot timestamp %q: %w", ts, err)
		}
		snap.Timestamp = parsed
		snap.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, snap)
	}
	return out, rows.Err()
}
