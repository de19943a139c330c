package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidComponent indicates a path component that could escape the
// owner's subtree (separators, traversal sequences, empties).
var ErrInvalidComponent = errors.New("invalid path component")

const templatesDirName = "templates"

// Layout maps (owner, bucket date, name) tuples to physical storage
// locations under a single root. All results are lexically confined to
// root/<ownerID>/<bucketDate>/.
type Layout struct {
	root string
}

// NewLayout creates a layout rooted at root.
func NewLayout(root string) *Layout {
	return &Layout{root: root}
}

// Root returns the artifact root directory.
func (l *Layout) Root() string {
	return l.root
}

// Resolve returns the file path for an artifact with the given extension.
// The extension is supplied by callers, never by request input.
func (l *Layout) Resolve(ownerID, bucketDate, name, ext string) (string, error) {
	dir, err := l.BucketDir(ownerID, bucketDate)
	if err != nil {
		return "", err
	}
	if err := validateComponent(name); err != nil {
		return "", fmt.Errorf("name: %w", err)
	}
	return filepath.Join(dir, name+ext), nil
}

// BucketDir returns the per-owner, per-day bucket directory.
func (l *Layout) BucketDir(ownerID, bucketDate string) (string, error) {
	if err := validateComponent(ownerID); err != nil {
		return "", fmt.Errorf("owner id: %w", err)
	}
	if err := validateComponent(bucketDate); err != nil {
		return "", fmt.Errorf("bucket date: %w", err)
	}
	return filepath.Join(l.root, ownerID, bucketDate), nil
}

// EnsureBucket creates the bucket directory. Safe to call concurrently;
// succeeds if the directory already exists.
func (l *Layout) EnsureBucket(ownerID, bucketDate string) (string, error) {
	dir, err := l.BucketDir(ownerID, bucketDate)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir bucket: %w", err)
	}
	return dir, nil
}

// TemplateDir returns the shared template directory. Templates are not
// owner-subtree-scoped; they are looked up by developer-id prefix scan.
func (l *Layout) TemplateDir() string {
	return filepath.Join(l.root, templatesDirName)
}

func validateComponent(component string) error {
	if strings.TrimSpace(component) == "" {
		return ErrInvalidComponent
	}
	if strings.Contains(component, "..") {
		return ErrInvalidComponent
	}
	if strings.ContainsAny(component, `/\`) {
		return ErrInvalidComponent
	}
	// Reject anything filepath would still rewrite; a clean component
	// joins without escaping the bucket prefix.
	if filepath.Clean(component) != component || filepath.IsAbs(component) {
		return ErrInvalidComponent
	}
	return nil
}
