package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveBuildsBucketPath(t *testing.T) {
	layout := NewLayout("/srv/uploads")

	path, err := layout.Resolve("bidder-1", "2024-01-01", "Backend_Engineer-Acme", ".docx")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join("/srv/uploads", "bidder-1", "2024-01-01", "Backend_Engineer-Acme.docx")
	if path != want {
		t.Fatalf("Resolve = %q, want %q", path, want)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	layout := NewLayout("/srv/uploads")

	cases := []struct {
		label string
		owner string
		date  string
		name  string
	}{
		{"date traversal", "bidder-1", "../../etc", "resume"},
		{"name traversal", "bidder-1", "2024-01-01", "../secret"},
		{"name separator", "bidder-1", "2024-01-01", "a/b"},
		{"owner separator", "a/b", "2024-01-01", "resume"},
		{"empty date", "bidder-1", "", "resume"},
		{"backslash name", "bidder-1", "2024-01-01", `a\b`},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			if _, err := layout.Resolve(tc.owner, tc.date, tc.name, ".docx"); !errors.Is(err, ErrInvalidComponent) {
				t.Fatalf("expected ErrInvalidComponent, got %v", err)
			}
		})
	}
}

func TestResolveStaysUnderOwnerPrefix(t *testing.T) {
	layout := NewLayout("/srv/uploads")

	path, err := layout.Resolve("bidder-1", "2024-06-30", "weird.name-ok", ".txt")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	prefix := filepath.Join("/srv/uploads", "bidder-1", "2024-06-30") + string(filepath.Separator)
	if !strings.HasPrefix(path, prefix) {
		t.Fatalf("path %q escapes bucket prefix %q", path, prefix)
	}
}

func TestEnsureBucketIdempotent(t *testing.T) {
	layout := NewLayout(t.TempDir())

	first, err := layout.EnsureBucket("bidder-1", "2024-01-01")
	if err != nil {
		t.Fatalf("EnsureBucket: %v", err)
	}
	second, err := layout.EnsureBucket("bidder-1", "2024-01-01")
	if err != nil {
		t.Fatalf("EnsureBucket again: %v", err)
	}
	if first != second {
		t.Fatalf("bucket paths differ: %q vs %q", first, second)
	}
	info, err := os.Stat(first)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected bucket directory, got %v %v", info, err)
	}
}
