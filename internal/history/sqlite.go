package history

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLStore persists history in a SQLite database so it survives restarts.
type SQLStore struct {
	db *sqlx.DB
}

// OpenSQLStore opens (and migrates) the database at path. ":memory:" works
// for tests.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// One connection, otherwise every ":memory:" connection is its own database.
	db.SetMaxOpenConns(1)

	s := &SQLStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate() error {
	files, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".up.sql") {
			continue
		}
		content, err := fs.ReadFile(migrationsFS, "migrations/"+file.Name())
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file.Name(), err)
		}
	}
	return nil
}

func (s *SQLStore) Append(e Entry) error {
	_, err := s.db.NamedExec(`
        INSERT INTO history (id, created_at, original, translated, source_language, target_language)
        VALUES (:id, :created_at, :original, :translated, :source_language, :target_language);`, e)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(index int) (Entry, error) {
	if index < 0 {
		return Entry{}, ErrIndexOutOfRange
	}
	var e Entry
	err := s.db.Get(&e, `
        SELECT id, created_at, original, translated, source_language, target_language
        FROM history ORDER BY seq LIMIT 1 OFFSET ?;`, index)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrIndexOutOfRange
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read history entry: %w", err)
	}
	return e, nil
}

func (s *SQLStore) Len() int {
	var n int
	if err := s.db.Get(&n, "SELECT COUNT(*) FROM history;"); err != nil {
		return 0
	}
	return n
}

func (s *SQLStore) All() []Entry {
	entries := []Entry{}
	_ = s.db.Select(&entries, `
        SELECT id, created_at, original, translated, source_language, target_language
        FROM history ORDER BY seq;`)
	return entries
}

func (s *SQLStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM history;"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
