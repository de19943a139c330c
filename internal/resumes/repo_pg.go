package resumes

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

// Create inserts a generated resume. The unique constraint on
// (owner_id, name) rejects duplicates that race past the service's
// pre-check.
func (r *PGRepo) Create(ctx context.Context, resume GeneratedResume) error {
	const query = `
INSERT INTO generated_resumes (id, owner_id, bucket_date, name, jd_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.OwnerID,
		resume.BucketDate,
		resume.Name,
		resume.JDURL,
		resume.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrConflict
	}
	return err
}

// FindByOwnerAndName returns the owner's row with the given name.
func (r *PGRepo) FindByOwnerAndName(ctx context.Context, ownerID, name string) (GeneratedResume, error) {
	const query = `
SELECT id, owner_id, bucket_date, name, jd_url, created_at
FROM generated_resumes
WHERE owner_id = $1 AND name = $2
LIMIT 1`
	var resume GeneratedResume
	err := r.DB.QueryRowContext(ctx, query, ownerID, name).Scan(
		&resume.ID,
		&resume.OwnerID,
		&resume.BucketDate,
		&resume.Name,
		&resume.JDURL,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedResume{}, ErrNotFound
		}
		return GeneratedResume{}, err
	}
	return resume, nil
}

// ListByOwner lists rows newest-bucket-first with the owner's total count.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]GeneratedResume, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM generated_resumes WHERE owner_id = $1`, ownerID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
SELECT id, owner_id, bucket_date, name, jd_url, created_at
FROM generated_resumes
WHERE owner_id = $1
ORDER BY bucket_date DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []GeneratedResume
	for rows.Next() {
		var resume GeneratedResume
		if err := rows.Scan(
			&resume.ID,
			&resume.OwnerID,
			&resume.BucketDate,
			&resume.Name,
			&resume.JDURL,
			&resume.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, resume)
	}
	return out, total, rows.Err()
}

// CountByDate returns per-bucket-date row counts for an owner.
func (r *PGRepo) CountByDate(ctx context.Context, ownerID string) (map[string]int, error) {
	const query = `
SELECT bucket_date, count(*)
FROM generated_resumes
WHERE owner_id = $1
GROUP BY bucket_date`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var date string
		var count int
		if err := rows.Scan(&date, &count); err != nil {
			return nil, err
		}
		out[date] = count
	}
	return out, rows.Err()
}

// Delete removes a row by id.
func (r *PGRepo) Delete(ctx context.Context, resumeID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM generated_resumes WHERE id = $1`, resumeID)
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

var _ Repo = (*PGRepo)(nil)
