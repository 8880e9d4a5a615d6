package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

const skillSep = ";"

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	seq                 INTEGER PRIMARY KEY AUTOINCREMENT,
	id                  TEXT NOT NULL UNIQUE,
	location            TEXT NOT NULL,
	job_type            TEXT NOT NULL,
	skills              TEXT NOT NULL,
	years_of_experience REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS candidates (
	seq                 INTEGER PRIMARY KEY AUTOINCREMENT,
	id                  TEXT NOT NULL UNIQUE,
	years_of_experience REAL NOT NULL,
	location            TEXT NOT NULL,
	skills              TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assignments (
	run_id     TEXT NOT NULL,
	job_id     TEXT NOT NULL,
	cluster_id INTEGER NOT NULL,
	PRIMARY KEY (run_id, job_id)
);`

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store on a SQLite database file.
type SQLiteStore struct {
	db            *sql.DB
	path          string
	busyTimeoutMs int
	log           logger.Logger
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{path: path, busyTimeoutMs: 5000, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("repository: mkdir %s: %w", filepath.Dir(path), err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", s.busyTimeoutMs)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository: busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository: init schema: %w", err)
	}
	s.db = db
	s.log.Info(ctx, "catalog store opened", logger.String("path", path))
	return s, nil
}

func (s *SQLiteStore) PutJobs(ctx context.Context, jobs []model.JobRecord) error {
	for _, j := range jobs {
		if j.ID == "" {
			return fmt.Errorf("%w: job without id", ErrInvalid)
		}
	}
	return s.tx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO jobs (id, location, job_type, skills, years_of_experience)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				location = excluded.location,
				job_type = excluded.job_type,
				skills = excluded.skills,
				years_of_experience = excluded.years_of_experience`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, j := range jobs {
			if _, err := stmt.ExecContext(ctx, j.ID, j.Location, j.JobType, joinSkills(j.Skills), j.YearsOfExperience); err != nil {
				return fmt.Errorf("insert job %q: %w", j.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Jobs(ctx context.Context) ([]model.JobRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, location, job_type, skills, years_of_experience FROM jobs ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("repository: query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []model.JobRecord{}
	for rows.Next() {
		var j model.JobRecord
		var skills string
		if err := rows.Scan(&j.ID, &j.Location, &j.JobType, &skills, &j.YearsOfExperience); err != nil {
			return nil, fmt.Errorf("repository: scan job: %w", err)
		}
		j.Skills = splitSkills(skills)
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *SQLiteStore) PutCandidates(ctx context.Context, candidates []model.Candidate) error {
	for _, c := range candidates {
		if c.ID == "" {
			return fmt.Errorf("%w: candidate without id", ErrInvalid)
		}
	}
	return s.tx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO candidates (id, years_of_experience, location, skills)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				years_of_experience = excluded.years_of_experience,
				location = excluded.location,
				skills = excluded.skills`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, c := range candidates {
			if _, err := stmt.ExecContext(ctx, c.ID, c.YearsOfExperience, c.Location, joinSkills(c.Skills)); err != nil {
				return fmt.Errorf("insert candidate %q: %w", c.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Candidate(ctx context.Context, id string) (model.Candidate, error) {
	var c model.Candidate
	var skills string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, years_of_experience, location, skills FROM candidates WHERE id = ?`, id).
		Scan(&c.ID, &c.YearsOfExperience, &c.Location, &skills)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Candidate{}, fmt.Errorf("candidate %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Candidate{}, fmt.Errorf("repository: query candidate: %w", err)
	}
	c.Skills = splitSkills(skills)
	return c, nil
}

func (s *SQLiteStore) Candidates(ctx context.Context) ([]model.Candidate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, years_of_experience, location, skills FROM candidates ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("repository: query candidates: %w", err)
	}
	defer rows.Close()

	out := []model.Candidate{}
	for rows.Next() {
		var c model.Candidate
		var skills string
		if err := rows.Scan(&c.ID, &c.YearsOfExperience, &c.Location, &skills); err != nil {
			return nil, fmt.Errorf("repository: scan candidate: %w", err)
		}
		c.Skills = splitSkills(skills)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveAssignments(ctx context.Context, runID string, assignments []Assignment) error {
	if runID == "" {
		return fmt.Errorf("%w: empty run id", ErrInvalid)
	}
	return s.tx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT OR REPLACE INTO assignments (run_id, job_id, cluster_id) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, a := range assignments {
			if _, err := stmt.ExecContext(ctx, runID, a.JobID, a.ClusterID); err != nil {
				return fmt.Errorf("insert assignment %q: %w", a.JobID, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Assignments(ctx context.Context, runID string) ([]Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.job_id, a.cluster_id
		FROM assignments a
		LEFT JOIN jobs j ON j.id = a.job_id
		WHERE a.run_id = ?
		ORDER BY COALESCE(j.seq, 0), a.job_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("repository: query assignments: %w", err)
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.JobID, &a.ClusterID); err != nil {
			return nil, fmt.Errorf("repository: scan assignment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("run %q: %w", runID, ErrNotFound)
	}
	return out, nil
}

func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM jobs`).Scan(&n); err != nil {
		s.log.Warn(ctx, "count jobs failed", logger.Error(err))
		return 0
	}
	return n
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("repository: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit: %w", err)
	}
	return nil
}

func joinSkills(skills []string) string {
	return strings.Join(skills, skillSep)
}

func splitSkills(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, skillSep)
}
