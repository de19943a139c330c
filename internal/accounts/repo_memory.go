package accounts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Account // accountID -> account
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Account)}
}

// Create stores a new account, rejecting duplicate usernames.
func (r *MemoryRepo) Create(ctx context.Context, account Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.Username == account.Username {
			return ErrConflict
		}
	}
	r.data[account.ID] = account
	return nil
}

// GetByID returns an account by id.
func (r *MemoryRepo) GetByID(ctx context.Context, accountID string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.data[accountID]
	if !ok {
		return Account{}, ErrNotFound
	}
	return account, nil
}

// GetByUsername returns an account by username.
func (r *MemoryRepo) GetByUsername(ctx context.Context, username string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.data {
		if account.Username == username {
			return account, nil
		}
	}
	return Account{}, ErrNotFound
}

// List returns all accounts ordered by username.
func (r *MemoryRepo) List(ctx context.Context) ([]Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Account, 0, len(r.data))
	for _, account := range r.data {
		out = append(out, account)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// ListBySupervisor returns the bidders assigned to a developer.
func (r *MemoryRepo) ListBySupervisor(ctx context.Context, developerID string) ([]Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Account
	for _, account := range r.data {
		if account.Role == RoleBidder && account.SupervisorID == developerID {
			out = append(out, account)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Update overwrites an existing account.
func (r *MemoryRepo) Update(ctx context.Context, account Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[account.ID]; !ok {
		return ErrNotFound
	}
	r.data[account.ID] = account
	return nil
}

// Delete removes an account.
func (r *MemoryRepo) Delete(ctx context.Context, accountID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[accountID]; !ok {
		return ErrNotFound
	}
	delete(r.data, accountID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
