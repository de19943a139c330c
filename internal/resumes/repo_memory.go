package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for tests and local runs.
type MemoryRepo struct {
	mu      sync.Mutex
	resumes map[string]GeneratedResume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]GeneratedResume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume GeneratedResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.resumes {
		if existing.OwnerID == resume.OwnerID && existing.Name == resume.Name {
			return ErrConflict
		}
	}
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) FindByOwnerAndName(ctx context.Context, ownerID, name string) (GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedResume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resume := range r.resumes {
		if resume.OwnerID == ownerID && resume.Name == name {
			return resume, nil
		}
	}
	return GeneratedResume{}, ErrNotFound
}

func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]GeneratedResume, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var owned []GeneratedResume
	for _, resume := range r.resumes {
		if resume.OwnerID == ownerID {
			owned = append(owned, resume)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].BucketDate > owned[j].BucketDate
	})

	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (r *MemoryRepo) CountByDate(ctx context.Context, ownerID string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int)
	for _, resume := range r.resumes {
		if resume.OwnerID == ownerID {
			out[resume.BucketDate]++
		}
	}
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resumes[resumeID]; !ok {
		return ErrNotFound
	}
	delete(r.resumes, resumeID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
