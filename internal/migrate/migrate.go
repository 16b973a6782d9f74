// Package migrate applies embedded SQL migrations to Postgres. File
// format: {version}_{name}.sql, applied in ascending version order and
// tracked in a _migrations table.
package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration is one parsed migration file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Result summarizes one Run.
type Result struct {
	Applied  []int
	Skipped  []int
	Duration time.Duration
}

// Migrator reads migrations from an embedded FS and applies them.
type Migrator struct {
	fsys fs.FS
	dir  string
}

func New(fsys fs.FS, dir string) *Migrator {
	return &Migrator{fsys: fsys, dir: dir}
}

var migrationFilePattern = regexp.MustCompile(`^(\d+)_(.+)\.sql$`)

// Parse reads every migration file, sorted by version.
func (m *Migrator) Parse() ([]Migration, error) {
	var out []Migration

	err := fs.WalkDir(m.fsys, m.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := migrationFilePattern.FindStringSubmatch(filepath.Base(path))
		if matches == nil {
			return nil
		}
		version, _ := strconv.Atoi(matches[1])

		content, err := fs.ReadFile(m.fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		out = append(out, Migration{Version: version, Name: matches[2], SQL: string(content)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Run applies all pending migrations. Each migration runs in its own
// transaction together with its tracking row.
func (m *Migrator) Run(ctx context.Context, pool *pgxpool.Pool) (*Result, error) {
	start := time.Now()
	res := &Result{}

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			version INT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)`); err != nil {
		return res, fmt.Errorf("migrate: creating tracking table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := pool.Query(ctx, `SELECT version FROM _migrations`)
	if err != nil {
		return res, fmt.Errorf("migrate: reading applied versions: %w", err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return res, fmt.Errorf("migrate: scan version: %w", err)
		}
		applied[v] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("migrate: rows: %w", err)
	}

	migrations, err := m.Parse()
	if err != nil {
		return res, fmt.Errorf("migrate: parse: %w", err)
	}

	for _, mig := range migrations {
		if applied[mig.Version] {
			res.Skipped = append(res.Skipped, mig.Version)
			continue
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return res, fmt.Errorf("migrate: begin %d: %w", mig.Version, err)
		}
		if _, err := tx.Exec(ctx, mig.SQL); err != nil {
			_ = tx.Rollback(ctx)
			return res, fmt.Errorf("migrate: applying %d_%s: %w", mig.Version, mig.Name, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO _migrations (version, name) VALUES ($1, $2)`,
			mig.Version, mig.Name,
		); err != nil {
			_ = tx.Rollback(ctx)
			return res, fmt.Errorf("migrate: tracking %d: %w", mig.Version, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return res, fmt.Errorf("migrate: commit %d: %w", mig.Version, err)
		}

		res.Applied = append(res.Applied, mig.Version)
	}

	res.Duration = time.Since(start)
	return res, nil
}
