package splitstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrStateFile marks an I/O failure against the state directory.
var ErrStateFile = errors.New("state file error")

const recordExtension = ".json"

// Store reads and writes split records under a single directory. The
// directory is injected so tests can point the store at a temp location.
type Store struct {
	dir string
}

// NewStore constructs a store rooted at dir. The directory is created on
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the backing directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path holding the named record.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+recordExtension)
}

// Save writes the record, creating the state directory if needed.
func (s *Store) Save(rec *Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create state dir %s: %v", ErrStateFile, s.dir, err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode record %s: %v", ErrStateFile, rec.Name, err)
	}
	path := s.Path(rec.Name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStateFile, path, err)
	}
	return nil
}

// Load reads the named record.
func (s *Store) Load(name string) (*Record, error) {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStateFile, path, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStateFile, path, err)
	}
	return &rec, nil
}

// Delete removes the record's file. A missing file is not an error.
func (s *Store) Delete(rec *Record) error {
	path := s.Path(rec.Name)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %v", ErrStateFile, path, err)
	}
	return nil
}

// ListAll returns every decodable record in the state directory. Entries
// that fail to parse are skipped: the directory may hold partially written
// or foreign files. A missing directory yields an empty list.
func (s *Store) ListAll() ([]*Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read state dir %s: %v", ErrStateFile, s.dir, err)
	}

	var records []*Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExtension) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil || rec.Name == "" {
			continue
		}
		records = append(records, &rec)
	}
	return records, nil
}

// Exists reports whether a record with this name is on disk.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// UniqueName returns base when free, otherwise base_1, base_2, ... — the
// first suffix not taken by an existing record.
func (s *Store) UniqueName(base string) string {
	name := base
	counter := 1
	for s.Exists(name) {
		name = fmt.Sprintf("%s_%d", base, counter)
		counter++
	}
	return name
}
