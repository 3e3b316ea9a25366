package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nikhilbhutani/promptpulse/internal/models"
)

const FileName = "prompts.json"

// FileStore keeps every record in one pretty-printed JSON array. Appends are
// serialized within the process and replace the file with a rename.
type FileStore struct {
	dir    string
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		dir:    dir,
		path:   filepath.Join(dir, FileName),
		logger: logger,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

// ReadAll returns an empty slice when the file is missing. Content that
// cannot be read or parsed is also treated as empty, with a warning logged.
func (s *FileStore) ReadAll(ctx context.Context) ([]models.Prompt, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	return s.read(), nil
}

func (s *FileStore) Append(ctx context.Context, p models.Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDir(); err != nil {
		return err
	}

	prompts, err := s.readForAppend()
	if err != nil {
		return err
	}
	prompts = append(prompts, p)
	if err := s.write(prompts); err != nil {
		return err
	}

	s.logger.Debug("prompt appended", "id", p.ID, "path", s.path, "count", len(prompts))
	return nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", s.dir)
	}
	return nil
}

func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

func (s *FileStore) read() []models.Prompt {
	prompts, _ := s.load()
	return prompts
}

// readForAppend is read, except that a non-empty file that cannot be parsed
// is moved aside first so the rewrite does not destroy it.
func (s *FileStore) readForAppend() ([]models.Prompt, error) {
	prompts, corrupt := s.load()
	if !corrupt {
		return prompts, nil
	}

	backup := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().UnixNano())
	if err := os.Rename(s.path, backup); err != nil {
		return nil, fmt.Errorf("move aside unreadable prompt store: %w", err)
	}
	s.logger.Warn("unreadable prompt store moved aside", "path", s.path, "backup", backup)
	return prompts, nil
}

// load returns the stored records. corrupt reports an existing file that
// could not be read or parsed; the records are then empty.
func (s *FileStore) load() (prompts []models.Prompt, corrupt bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Prompt{}, false
		}
		s.logger.Warn("prompt store unreadable, treating as empty", "path", s.path, "error", err)
		return []models.Prompt{}, true
	}

	if err := json.Unmarshal(data, &prompts); err != nil {
		s.logger.Warn("prompt store unreadable, treating as empty", "path", s.path, "error", err)
		return []models.Prompt{}, len(bytes.TrimSpace(data)) > 0
	}
	if prompts == nil {
		prompts = []models.Prompt{}
	}
	return prompts, false
}

func (s *FileStore) write(prompts []models.Prompt) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(prompts); err != nil {
		return fmt.Errorf("encode prompts: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".prompts-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write prompts: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod prompts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close prompts: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace prompts file: %w", err)
	}
	return nil
}
