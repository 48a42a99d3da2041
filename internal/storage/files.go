package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"
)

// ErrFileNotFound is returned when a file id has no row.
var ErrFileNotFound = errors.New("file not found")

// File is a demo file row.
type File struct {
	ID        int64
	Name      string
	Size      int64
	CreatedAt time.Time
}

// FileStore manages the demo files persisted in SQLite.
type FileStore struct {
	db *sql.DB
}

// NewFileStore creates a file store using the given database.
func NewFileStore(db *DB) *FileStore {
	return &FileStore{db: db.Conn()}
}

// Seed inserts the named files when the table is empty. Sizes are derived
// from the name so repeated seeds look the same.
func (fs *FileStore) Seed(ctx context.Context, names []string) error {
	n, err := fs.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx, err := fs.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		if name == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO files (name, size) VALUES (?, ?)`,
			name, seedSize(name),
		); err != nil {
			return fmt.Errorf("seeding %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// List returns all files ordered by name.
func (fs *FileStore) List(ctx context.Context) ([]File, error) {
	rows, err := fs.db.QueryContext(ctx,
		`SELECT id, name, size, created_at FROM files ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var f File
		var createdAt string
		if err := rows.Scan(&f.ID, &f.Name, &f.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		f.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		files = append(files, f)
	}
	return files, rows.Err()
}

// Delete removes a file by id.
func (fs *FileStore) Delete(ctx context.Context, id int64) error {
	res, err := fs.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting file %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("deleting file %d: %w", id, ErrFileNotFound)
	}
	return nil
}

// Count returns the number of files.
func (fs *FileStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := fs.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting files: %w", err)
	}
	return count, nil
}

func seedSize(name string) int64 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return int64(h.Sum32()%(48<<20)) + 1024
}
