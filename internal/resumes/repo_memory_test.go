package resumes

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func seedResume(t *testing.T, repo Repo, ownerID, name, date string) GeneratedResume {
	t.Helper()
	resume := GeneratedResume{
		ID:         fmt.Sprintf("%s-%s-%s", ownerID, date, name),
		OwnerID:    ownerID,
		BucketDate: date,
		Name:       name,
		JDURL:      "https://jobs.example.com/" + name,
		CreatedAt:  time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("seed %s/%s: %v", ownerID, name, err)
	}
	return resume
}

func TestMemoryRepoCreateConflict(t *testing.T) {
	repo := NewMemoryRepo()
	seedResume(t, repo, "bidder-1", "Engineer-Acme", "2024-01-01")

	err := repo.Create(context.Background(), GeneratedResume{
		ID:         "other-id",
		OwnerID:    "bidder-1",
		BucketDate: "2024-02-02", // same name in a later bucket still conflicts
		Name:       "Engineer-Acme",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Same name under a different owner is a separate namespace.
	if err := repo.Create(context.Background(), GeneratedResume{
		ID:      "another-id",
		OwnerID: "bidder-2",
		Name:    "Engineer-Acme",
	}); err != nil {
		t.Fatalf("create for other owner: %v", err)
	}
}

func TestMemoryRepoFindByOwnerAndName(t *testing.T) {
	repo := NewMemoryRepo()
	want := seedResume(t, repo, "bidder-1", "Engineer-Acme", "2024-01-01")

	got, err := repo.FindByOwnerAndName(context.Background(), "bidder-1", "Engineer-Acme")
	if err != nil {
		t.Fatalf("FindByOwnerAndName: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("got id %q, want %q", got.ID, want.ID)
	}

	if _, err := repo.FindByOwnerAndName(context.Background(), "bidder-2", "Engineer-Acme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other owner, got %v", err)
	}
}

func TestMemoryRepoListByOwnerOrderAndPaging(t *testing.T) {
	repo := NewMemoryRepo()
	seedResume(t, repo, "bidder-1", "A-Acme", "2024-01-01")
	seedResume(t, repo, "bidder-1", "B-Acme", "2024-03-03")
	seedResume(t, repo, "bidder-1", "C-Acme", "2024-02-02")
	seedResume(t, repo, "bidder-2", "D-Acme", "2024-12-31")

	rows, total, err := repo.ListByOwner(context.Background(), "bidder-1", 2, 0)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(rows) != 2 || rows[0].BucketDate != "2024-03-03" || rows[1].BucketDate != "2024-02-02" {
		t.Fatalf("unexpected first page: %+v", rows)
	}

	rows, _, err = repo.ListByOwner(context.Background(), "bidder-1", 2, 2)
	if err != nil {
		t.Fatalf("ListByOwner page 2: %v", err)
	}
	if len(rows) != 1 || rows[0].BucketDate != "2024-01-01" {
		t.Fatalf("unexpected second page: %+v", rows)
	}

	rows, total, err = repo.ListByOwner(context.Background(), "bidder-1", 2, 10)
	if err != nil {
		t.Fatalf("ListByOwner past end: %v", err)
	}
	if total != 3 || len(rows) != 0 {
		t.Fatalf("past-end page: rows=%d total=%d", len(rows), total)
	}
}

func TestMemoryRepoCountByDate(t *testing.T) {
	repo := NewMemoryRepo()
	seedResume(t, repo, "bidder-1", "A-Acme", "2024-01-01")
	seedResume(t, repo, "bidder-1", "B-Acme", "2024-01-01")
	seedResume(t, repo, "bidder-1", "C-Acme", "2024-02-02")

	counts, err := repo.CountByDate(context.Background(), "bidder-1")
	if err != nil {
		t.Fatalf("CountByDate: %v", err)
	}
	if counts["2024-01-01"] != 2 || counts["2024-02-02"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestMemoryRepoDelete(t *testing.T) {
	repo := NewMemoryRepo()
	resume := seedResume(t, repo, "bidder-1", "A-Acme", "2024-01-01")

	if err := repo.Delete(context.Background(), resume.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(context.Background(), resume.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}
