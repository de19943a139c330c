package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := GeneratedResume{
		ID:         "resume-1",
		OwnerID:    "bidder-1",
		BucketDate: "2024-01-01",
		Name:       "Engineer-Acme",
		JDURL:      "https://jobs.example.com/1",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO generated_resumes").
		WithArgs(
			resume.ID,
			resume.OwnerID,
			resume.BucketDate,
			resume.Name,
			resume.JDURL,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateUniqueViolationIsConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO generated_resumes").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), GeneratedResume{ID: "resume-1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestPGRepoFindByOwnerAndNameNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, owner_id, bucket_date, name, jd_url, created_at").
		WithArgs("bidder-1", "Engineer-Acme").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "bucket_date", "name", "jd_url", "created_at"}))

	if _, err := repo.FindByOwnerAndName(context.Background(), "bidder-1", "Engineer-Acme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByOwner(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT count").
		WithArgs("bidder-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT id, owner_id, bucket_date, name, jd_url, created_at").
		WithArgs("bidder-1", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "bucket_date", "name", "jd_url", "created_at"}).
			AddRow("resume-2", "bidder-1", "2024-02-02", "B-Acme", "", now).
			AddRow("resume-1", "bidder-1", "2024-01-01", "A-Acme", "", now))

	rows, total, err := repo.ListByOwner(context.Background(), "bidder-1", 10, 10)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if total != 12 {
		t.Fatalf("total = %d, want 12", total)
	}
	if len(rows) != 2 || rows[0].Name != "B-Acme" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCountByDate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT bucket_date, count").
		WithArgs("bidder-1").
		WillReturnRows(sqlmock.NewRows([]string{"bucket_date", "count"}).
			AddRow("2024-01-01", 2).
			AddRow("2024-02-02", 1))

	counts, err := repo.CountByDate(context.Background(), "bidder-1")
	if err != nil {
		t.Fatalf("CountByDate: %v", err)
	}
	if counts["2024-01-01"] != 2 || counts["2024-02-02"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM generated_resumes").
		WithArgs("resume-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "resume-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
