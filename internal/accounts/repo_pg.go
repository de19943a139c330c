package accounts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts an account.
func (r *PGRepo) Create(ctx context.Context, account Account) error {
	const query = `
INSERT INTO accounts (id, username, password_hash, role, supervisor_id, llm_token, llm_prompt, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		account.ID,
		account.Username,
		account.PasswordHash,
		string(account.Role),
		nullableString(account.SupervisorID),
		nullableString(account.LLMToken),
		nullableString(account.LLMPrompt),
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// GetByID returns an account by id.
func (r *PGRepo) GetByID(ctx context.Context, accountID string) (Account, error) {
	return r.getBy(ctx, "id", accountID)
}

// GetByUsername returns an account by username.
func (r *PGRepo) GetByUsername(ctx context.Context, username string) (Account, error) {
	return r.getBy(ctx, "username", username)
}

func (r *PGRepo) getBy(ctx context.Context, column, value string) (Account, error) {
	query := `
SELECT id, username, password_hash, role, supervisor_id, llm_token, llm_prompt, created_at, updated_at
FROM accounts
WHERE ` + column + ` = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, value)
	account, err := scanAccount(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return account, nil
}

// List returns all accounts ordered by username.
func (r *PGRepo) List(ctx context.Context) ([]Account, error) {
	const query = `
SELECT id, username, password_hash, role, supervisor_id, llm_token, llm_prompt, created_at, updated_at
FROM accounts
ORDER BY username`
	return r.queryAccounts(ctx, query)
}

// ListBySupervisor returns the bidders assigned to a developer.
func (r *PGRepo) ListBySupervisor(ctx context.Context, developerID string) ([]Account, error) {
	const query = `
SELECT id, username, password_hash, role, supervisor_id, llm_token, llm_prompt, created_at, updated_at
FROM accounts
WHERE role = 'bidder' AND supervisor_id = $1
ORDER BY username`
	return r.queryAccounts(ctx, query, developerID)
}

func (r *PGRepo) queryAccounts(ctx context.Context, query string, args ...any) ([]Account, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		account, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, account)
	}
	return out, rows.Err()
}

// Update overwrites mutable account fields.
func (r *PGRepo) Update(ctx context.Context, account Account) error {
	const query = `
UPDATE accounts SET
  password_hash = $2,
  role = $3,
  supervisor_id = $4,
  llm_token = $5,
  llm_prompt = $6,
  updated_at = now()
WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query,
		account.ID,
		account.PasswordHash,
		string(account.Role),
		nullableString(account.SupervisorID),
		nullableString(account.LLMToken),
		nullableString(account.LLMPrompt),
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an account. Ledger rows cascade via foreign key; on-disk
// artifact files are intentionally left in place (metadata-only cascade).
func (r *PGRepo) Delete(ctx context.Context, accountID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAccount(scan func(dest ...any) error) (Account, error) {
	var account Account
	var role string
	var supervisorID, llmToken, llmPrompt sql.NullString
	err := scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&role,
		&supervisorID,
		&llmToken,
		&llmPrompt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return Account{}, err
	}
	account.Role = Role(role)
	if supervisorID.Valid {
		account.SupervisorID = supervisorID.String
	}
	if llmToken.Valid {
		account.LLMToken = llmToken.String
	}
	if llmPrompt.Valid {
		account.LLMPrompt = llmPrompt.String
	}
	return account, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

var _ Repo = (*PGRepo)(nil)
