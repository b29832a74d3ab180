package dictionary

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS dictionaries (
	name         TEXT PRIMARY KEY,
	updated_at   TIMESTAMP NOT NULL,
	backed_up_at TIMESTAMP
);
CREATE TABLE IF NOT EXISTS words (
	dictionary TEXT NOT NULL REFERENCES dictionaries(name) ON DELETE CASCADE,
	word       TEXT NOT NULL,
	PRIMARY KEY (dictionary, word)
);
CREATE TABLE IF NOT EXISTS word_backups (
	dictionary TEXT NOT NULL REFERENCES dictionaries(name) ON DELETE CASCADE,
	word       TEXT NOT NULL,
	PRIMARY KEY (dictionary, word)
);
`

// SQLitePersistence implements Persistence on a SQLite database
type SQLitePersistence struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at path and applies the schema
func OpenSQLite(path string) (*SQLitePersistence, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("dictionary database ready")
	return &SQLitePersistence{db: db}, nil
}

// openDB opens a SQLite file with WAL journaling, a busy timeout and foreign keys
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// One writer at a time; keeps pragmas on a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Close releases the database
func (sp *SQLitePersistence) Close() error {
	return sp.db.Close()
}

func (sp *SQLitePersistence) Save(d *Dictionary) error {
	if d == nil {
		return fmt.Errorf("dictionary cannot be nil")
	}
	if err := ValidateName(d.Name); err != nil {
		return err
	}

	return sp.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO dictionaries (name, updated_at) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`,
			d.Name, d.UpdatedAt.UTC()); err != nil {
			return fmt.Errorf("upsert dictionary: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM words WHERE dictionary = ?`, d.Name); err != nil {
			return fmt.Errorf("clear words: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO words (dictionary, word) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, w := range d.Words {
			if _, err := stmt.Exec(d.Name, w); err != nil {
				return fmt.Errorf("insert %q: %w", w, err)
			}
		}
		return nil
	})
}

func (sp *SQLitePersistence) Load(name string) (*Dictionary, error) {
	var updatedAt time.Time
	err := sp.db.QueryRow(`SELECT updated_at FROM dictionaries WHERE name = ?`, name).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDictionaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query dictionary: %w", err)
	}

	words, err := sp.queryWords(`SELECT word FROM words WHERE dictionary = ? ORDER BY word`, name)
	if err != nil {
		return nil, err
	}
	return newNormalized(name, words, updatedAt), nil
}

func (sp *SQLitePersistence) Delete(name string) error {
	return sp.withTx(func(tx *sql.Tx) error {
		// Child rows first so the delete does not depend on the foreign key pragma
		if _, err := tx.Exec(`DELETE FROM words WHERE dictionary = ?`, name); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM word_backups WHERE dictionary = ?`, name); err != nil {
			return err
		}
		res, err := tx.Exec(`DELETE FROM dictionaries WHERE name = ?`, name)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrDictionaryNotFound
		}
		return nil
	})
}

func (sp *SQLitePersistence) ListAll() ([]string, error) {
	return sp.queryWords(`SELECT name FROM dictionaries ORDER BY name`)
}

func (sp *SQLitePersistence) Exists(name string) bool {
	var one int
	err := sp.db.QueryRow(`SELECT 1 FROM dictionaries WHERE name = ?`, name).Scan(&one)
	return err == nil
}

func (sp *SQLitePersistence) Backup(name string) error {
	return sp.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE dictionaries SET backed_up_at = ? WHERE name = ?`, time.Now().UTC(), name)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrDictionaryNotFound
		}
		if _, err := tx.Exec(`DELETE FROM word_backups WHERE dictionary = ?`, name); err != nil {
			return err
		}
		_, err = tx.Exec(`INSERT INTO word_backups (dictionary, word) SELECT dictionary, word FROM words WHERE dictionary = ?`, name)
		return err
	})
}

func (sp *SQLitePersistence) Restore(name string) (*Dictionary, error) {
	err := sp.withTx(func(tx *sql.Tx) error {
		var backedUp sql.NullTime
		err := tx.QueryRow(`SELECT backed_up_at FROM dictionaries WHERE name = ?`, name).Scan(&backedUp)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && !backedUp.Valid) {
			return ErrNoBackup
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM words WHERE dictionary = ?`, name); err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO words (dictionary, word) SELECT dictionary, word FROM word_backups WHERE dictionary = ?`, name); err != nil {
			return err
		}
		_, err = tx.Exec(`UPDATE dictionaries SET updated_at = ? WHERE name = ?`, time.Now().UTC(), name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sp.Load(name)
}

func (sp *SQLitePersistence) queryWords(query string, args ...any) ([]string, error) {
	rows, err := sp.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (sp *SQLitePersistence) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := sp.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
