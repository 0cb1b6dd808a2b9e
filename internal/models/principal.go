// Package models holds the persisted records of the user directory.
package models

import "time"

// Principal is the user identity record. The email address replaces a
// traditional username and is the sole key used for authentication
// lookup; it is stored normalized and must be unique.
type Principal struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Title        string
	PhoneNumber  string
	IsStaff      bool
	IsActive     bool
	IsDemo       bool
	JoinedAt     time.Time
	LastLogin    time.Time
	PasswordHash string

	// Permissions holds identifiers of capability tokens owned by the
	// external permission catalog. Membership only; the authorization
	// queries below do not consult it.
	Permissions []string
}

// Authenticatable is the capability surface the access-control layer
// depends on. Other principal shapes can participate in authentication by
// implementing it; no base type is inherited.
type Authenticatable interface {
	Identity() string
	CredentialHash() string
	Active() bool
}

var _ Authenticatable = (*Principal)(nil)

// Identity returns the normalized email address.
func (p *Principal) Identity() string { return p.Email }

// CredentialHash returns the stored credential hash, never the plaintext.
func (p *Principal) CredentialHash() string { return p.PasswordHash }

// Active reports whether the principal may authenticate. Callers own the
// gate; an inactive principal still answers queries from its flags.
func (p *Principal) Active() bool { return p.IsActive }

// HasPermission reports whether the principal may perform the action named
// by perm. Staff status is the only gate: the argument and the granted
// permission set are deliberately not consulted.
func (p *Principal) HasPermission(perm string) bool {
	return p.IsStaff
}

// HasModuleAccess reports whether the principal may access the given
// application module. Same staff-only gate as HasPermission.
func (p *Principal) HasModuleAccess(module string) bool {
	return p.IsStaff
}

// FullName joins first and last name with a single space. Empty parts are
// not trimmed, so a principal with neither name set yields " ".
func (p *Principal) FullName() string {
	return p.FirstName + " " + p.LastName
}

// ShortName is identical to FullName; no abbreviated form is kept.
func (p *Principal) ShortName() string {
	return p.FullName()
}
