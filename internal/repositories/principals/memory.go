package principals

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/models"
)

// InMemoryRepository is a mutex-guarded, map-backed Repository. The
// insert-if-absent check runs under the lock, so it keeps the same
// uniqueness guarantee as the Postgres unique index.
type InMemoryRepository struct {
	mu      sync.Mutex
	byEmail map[string]*models.Principal
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byEmail: make(map[string]*models.Principal)}
}

func (r *InMemoryRepository) Create(ctx context.Context, p *models.Principal) (*models.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[p.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.byEmail[p.Email] = clone(p)
	return clone(p), nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(p), nil
}

func (r *InMemoryRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return r.update(id, func(p *models.Principal) { p.PasswordHash = hash })
}

func (r *InMemoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.update(id, func(p *models.Principal) { p.IsActive = active })
}

func (r *InMemoryRepository) SetStaff(ctx context.Context, id string, staff bool) error {
	return r.update(id, func(p *models.Principal) { p.IsStaff = staff })
}

func (r *InMemoryRepository) GrantPermission(ctx context.Context, id, permission string) error {
	return r.update(id, func(p *models.Principal) {
		for _, perm := range p.Permissions {
			if perm == permission {
				return
			}
		}
		p.Permissions = append(p.Permissions, permission)
	})
}

func (r *InMemoryRepository) RevokePermission(ctx context.Context, id, permission string) error {
	return r.update(id, func(p *models.Principal) {
		kept := p.Permissions[:0]
		for _, perm := range p.Permissions {
			if perm != permission {
				kept = append(kept, perm)
			}
		}
		p.Permissions = kept
	})
}

func (r *InMemoryRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.update(id, func(p *models.Principal) { p.LastLogin = at })
}

// Len reports the number of stored principals. Test helper.
func (r *InMemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}

func (r *InMemoryRepository) update(id string, fn func(p *models.Principal)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.byEmail {
		if p.ID == id {
			fn(p)
			return nil
		}
	}
	return common.ErrorNotFound
}

// clone copies the record so callers never alias the stored value.
func clone(p *models.Principal) *models.Principal {
	c := *p
	c.Permissions = append([]string(nil), p.Permissions...)
	return &c
}
