// Package directory owns the principal lifecycle: it validates and
// normalizes the identity email, creates regular and staff principals
// through one shared path, and performs explicit credential changes.
// Authorization queries are answered by the principal itself (see the
// models package); the directory performs no I/O for them.
package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/credential"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/models"
	"github.com/dmitrijs2005/userdir/internal/repositories/principals"
)

// ExtraFields enumerates the optional fields a caller may set at creation
// time. The set is closed; there is no open-ended field bag.
type ExtraFields struct {
	FirstName   string
	LastName    string
	Title       string
	PhoneNumber string
	IsDemo      bool
}

// Directory creates and fetches principals against an injected store. It
// is constructed explicitly by the surrounding application; there is no
// package-level default instance.
type Directory struct {
	repo   principals.Repository
	logger logging.Logger

	// seams for tests
	now   func() time.Time
	newID func() string
}

func New(repo principals.Repository, logger logging.Logger) *Directory {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Directory{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// CreateUser creates a regular (non-staff) principal.
func (d *Directory) CreateUser(ctx context.Context, email, password string, extra ExtraFields) (*models.Principal, error) {
	return d.createPrincipal(ctx, email, password, false, extra)
}

// CreateSuperuser creates a staff principal. Validation is identical to
// CreateUser; the staff flag is the only difference.
func (d *Directory) CreateSuperuser(ctx context.Context, email, password string, extra ExtraFields) (*models.Principal, error) {
	return d.createPrincipal(ctx, email, password, true, extra)
}

// createPrincipal is the single creation path shared by both entry
// points, so every principal is validated by the same rules regardless of
// privilege level.
func (d *Directory) createPrincipal(ctx context.Context, email, password string, staff bool, extra ExtraFields) (*models.Principal, error) {
	if email == "" {
		return nil, common.ErrorEmailRequired
	}
	email = NormalizeEmail(email)
	if email == "" {
		return nil, common.ErrorEmailRequired
	}

	hash, err := credential.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing credential: %w", err)
	}

	now := d.now().UTC()
	p := &models.Principal{
		ID:           d.newID(),
		Email:        email,
		FirstName:    extra.FirstName,
		LastName:     extra.LastName,
		Title:        extra.Title,
		PhoneNumber:  extra.PhoneNumber,
		IsDemo:       extra.IsDemo,
		IsStaff:      staff,
		IsActive:     true,
		JoinedAt:     now,
		LastLogin:    now,
		PasswordHash: hash,
	}

	created, err := d.repo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating principal: %w", err)
	}

	d.logger.Info(ctx, "principal created", "email", created.Email, "staff", staff)
	return created, nil
}

// GetByEmail fetches a principal by its identity email. The argument is
// normalized first, so lookups succeed regardless of domain casing.
func (d *Directory) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	return d.repo.GetByEmail(ctx, NormalizeEmail(email))
}

// SetPassword is the explicit credential-change operation: the only way a
// stored hash is ever recomputed. An empty password stores an unusable
// hash, locking the account out of password authentication.
func (d *Directory) SetPassword(ctx context.Context, p *models.Principal, password string) error {
	hash, err := credential.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing credential: %w", err)
	}
	if err := d.repo.UpdatePasswordHash(ctx, p.ID, hash); err != nil {
		return fmt.Errorf("error updating credential: %w", err)
	}
	p.PasswordHash = hash

	d.logger.Info(ctx, "credential changed", "email", p.Email)
	return nil
}

// VerifyCredential checks a plaintext candidate against the stored hash
// of any authenticatable principal. It does not gate on Active(); the
// caller owns the inactive-account gate and combines both checks.
func (d *Directory) VerifyCredential(a models.Authenticatable, password string) bool {
	return credential.Verify(password, a.CredentialHash())
}
