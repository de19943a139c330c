package accounts

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

func accountColumns() []string {
	return []string{"id", "username", "password_hash", "role", "supervisor_id", "llm_token", "llm_prompt", "created_at", "updated_at"}
}

func TestPGRepoCreateNullsEmptyOptionals(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs("dev-1", "dana", "hash", "developer", nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), Account{
		ID:           "dev-1",
		Username:     "dana",
		PasswordHash: "hash",
		Role:         RoleDeveloper,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateDuplicateUsername(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO accounts").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), Account{ID: "dev-1", Username: "dana"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestPGRepoGetByIDScansNullables(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, username, password_hash").
		WithArgs("bidder-1").
		WillReturnRows(sqlmock.NewRows(accountColumns()).
			AddRow("bidder-1", "billie", "hash", "bidder", "dev-1", nil, nil, now, now))

	account, err := repo.GetByID(context.Background(), "bidder-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if account.SupervisorID != "dev-1" || account.LLMToken != "" {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestPGRepoGetByUsernameNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, username, password_hash").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(accountColumns()))

	if _, err := repo.GetByUsername(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE accounts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), Account{ID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
