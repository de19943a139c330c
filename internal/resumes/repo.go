package resumes

import "context"

// Repo defines the metadata ledger for generated resumes. The ledger, not
// the filesystem, is authoritative for which artifacts exist.
type Repo interface {
	// Create inserts a row, failing with ErrConflict if the owner
	// already has a row with the same name. The backing store's
	// uniqueness constraint is the final arbiter under races.
	Create(ctx context.Context, resume GeneratedResume) error

	// FindByOwnerAndName returns the owner's row with the given name.
	FindByOwnerAndName(ctx context.Context, ownerID, name string) (GeneratedResume, error)

	// ListByOwner returns a page of rows ordered by bucket date
	// descending, plus the owner's total row count. Rows sharing a
	// bucket date have no guaranteed secondary order.
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]GeneratedResume, int, error)

	// CountByDate returns the owner's per-bucket-date row counts.
	CountByDate(ctx context.Context, ownerID string) (map[string]int, error)

	// Delete removes a row by id.
	Delete(ctx context.Context, resumeID string) error
}
