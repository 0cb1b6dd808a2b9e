// Package principals implements the persistence store for Principal
// records: a PostgreSQL repository used in production and a map-backed
// in-memory repository used by tests and lightweight callers.
package principals

import (
	"context"
	"time"

	"github.com/dmitrijs2005/userdir/internal/models"
)

// Repository is the persistence collaborator the directory depends on.
//
// Create must provide atomic insert-if-absent semantics on the normalized
// email: two concurrent creates with the same email must never both
// succeed. Duplicate emails yield common.ErrorAlreadyExists, absent
// lookups common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, p *models.Principal) (*models.Principal, error)
	GetByEmail(ctx context.Context, email string) (*models.Principal, error)

	// Administrative mutations, driven by the surrounding admin surface.
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetStaff(ctx context.Context, id string, staff bool) error
	GrantPermission(ctx context.Context, id, permission string) error
	RevokePermission(ctx context.Context, id, permission string) error

	// TouchLastLogin is called by the external session collaborator on
	// each successful authentication.
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
