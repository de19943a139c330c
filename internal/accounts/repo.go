package accounts

import "context"

// Repo defines persistence operations for accounts.
type Repo interface {
	Create(ctx context.Context, account Account) error
	GetByID(ctx context.Context, accountID string) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
	List(ctx context.Context) ([]Account, error)
	ListBySupervisor(ctx context.Context, developerID string) ([]Account, error)
	Update(ctx context.Context, account Account) error
	Delete(ctx context.Context, accountID string) error
}
