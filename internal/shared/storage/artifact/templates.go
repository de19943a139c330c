package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"resume-generator/internal/shared/telemetry"
	"resume-generator/internal/shared/util"
)

// ErrNoTemplate indicates the developer has no stored template.
var ErrNoTemplate = errors.New("no template")

// TemplateStore keeps at most one template file per developer in a shared
// flat directory. Files are named <developerID>__<sanitizedFileName> and
// looked up by developer-id prefix scan. Replacement is scan-and-delete,
// not an atomic swap: the mutex serializes mutations within this process,
// but out-of-process writers can still observe zero or two templates
// transiently.
type TemplateStore struct {
	dir string
	mu  sync.Mutex
}

// NewTemplateStore creates a store over the given directory.
func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{dir: dir}
}

// Put stores a new template for the developer and removes any previously
// stored file carrying the same developer prefix. Returns the stored
// file name.
func (s *TemplateStore) Put(developerID, fileName string, r io.Reader) (string, error) {
	if err := validateComponent(developerID); err != nil {
		return "", fmt.Errorf("developer id: %w", err)
	}
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("template file name: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir templates: %w", err)
	}

	storedName := developerID + "__" + sanitized
	fullPath := filepath.Join(s.dir, storedName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open template file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write template file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close template file: %w", err)
	}

	// Replace semantics: drop every other file with this developer's prefix.
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("scan templates: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if name == storedName || !strings.HasPrefix(name, developerID) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			telemetry.Warn("template.replace.cleanup_failed", map[string]any{
				"developer_id": developerID,
				"file":         name,
				"error":        err.Error(),
			})
		}
	}

	return storedName, nil
}

// Find returns the path of the developer's template. If more than one file
// carries the prefix (a replace raced), the first directory-order match
// wins; which one that is is not deterministic.
func (s *TemplateStore) Find(developerID string) (string, error) {
	if err := validateComponent(developerID); err != nil {
		return "", fmt.Errorf("developer id: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoTemplate
		}
		return "", fmt.Errorf("scan templates: %w", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), developerID) {
			return filepath.Join(s.dir, entry.Name()), nil
		}
	}
	return "", ErrNoTemplate
}

// Read loads the developer's template bytes.
func (s *TemplateStore) Read(developerID string) ([]byte, string, error) {
	path, err := s.Find(developerID)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Deleted between scan and read.
			return nil, "", ErrNoTemplate
		}
		return nil, "", fmt.Errorf("read template: %w", err)
	}
	return data, filepath.Base(path), nil
}

// Delete removes the developer's template.
func (s *TemplateStore) Delete(developerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.Find(developerID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNoTemplate
		}
		return fmt.Errorf("remove template: %w", err)
	}
	return nil
}
