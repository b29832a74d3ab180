package dictionary

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const backupDirName = "backups"

// FilePersistence implements Persistence using plain text files,
// one word per line
type FilePersistence struct {
	dir string
}

// NewFilePersistence creates a file-based dictionary store rooted at dir
func NewFilePersistence(dir string) (*FilePersistence, error) {
	// Create the backup directory, and with it dir itself
	if err := os.MkdirAll(filepath.Join(dir, backupDirName), 0755); err != nil {
		return nil, fmt.Errorf("failed to create dictionary directory: %w", err)
	}

	return &FilePersistence{dir: dir}, nil
}

// Save writes the dictionary to <dir>/<name>.txt
func (fp *FilePersistence) Save(d *Dictionary) error {
	if d == nil {
		return fmt.Errorf("dictionary cannot be nil")
	}
	if err := ValidateName(d.Name); err != nil {
		return err
	}

	if err := writeWordFile(fp.getFilePath(d.Name), d.Words); err != nil {
		return fmt.Errorf("failed to write dictionary file: %w", err)
	}
	return nil
}

// Load reads and normalizes <dir>/<name>.txt
func (fp *FilePersistence) Load(name string) (*Dictionary, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return readWordFile(name, fp.getFilePath(name), ErrDictionaryNotFound)
}

// Delete removes the dictionary file and its backup
func (fp *FilePersistence) Delete(name string) error {
	if !fp.Exists(name) {
		return ErrDictionaryNotFound
	}

	if err := os.Remove(fp.getFilePath(name)); err != nil {
		return fmt.Errorf("failed to remove dictionary file: %w", err)
	}
	if err := os.Remove(fp.getBackupPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove backup file: %w", err)
	}

	return nil
}

// ListAll returns the names of all .txt files with a valid dictionary name
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name, ok := strings.CutSuffix(entry.Name(), ".txt")
		if !ok || ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}

	return names, nil
}

// Exists checks if a dictionary file exists
func (fp *FilePersistence) Exists(name string) bool {
	if ValidateName(name) != nil {
		return false
	}
	_, err := os.Stat(fp.getFilePath(name))
	return err == nil
}

// Backup copies the dictionary file into the backups directory
func (fp *FilePersistence) Backup(name string) error {
	if !fp.Exists(name) {
		return ErrDictionaryNotFound
	}

	data, err := os.ReadFile(fp.getFilePath(name))
	if err != nil {
		return fmt.Errorf("failed to read dictionary file: %w", err)
	}
	if err := os.WriteFile(fp.getBackupPath(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// Restore copies the backup over the dictionary file
func (fp *FilePersistence) Restore(name string) (*Dictionary, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	backup, err := readWordFile(name, fp.getBackupPath(name), ErrNoBackup)
	if err != nil {
		return nil, err
	}
	if err := writeWordFile(fp.getFilePath(name), backup.Words); err != nil {
		return nil, fmt.Errorf("failed to restore dictionary file: %w", err)
	}

	backup.UpdatedAt = time.Now()
	return backup, nil
}

func (fp *FilePersistence) getFilePath(name string) string {
	return filepath.Join(fp.dir, name+".txt")
}

func (fp *FilePersistence) getBackupPath(name string) string {
	return filepath.Join(fp.dir, backupDirName, name+".txt")
}

func readWordFile(name, path string, missing error) (*Dictionary, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, missing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	lines, err := ReadWords(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return newNormalized(name, Normalize(lines), info.ModTime()), nil
}

func writeWordFile(path string, words []string) error {
	var buf bytes.Buffer
	if err := WriteWords(&buf, words); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
