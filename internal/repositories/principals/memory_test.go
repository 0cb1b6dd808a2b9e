package principals

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userdir/internal/common"
)

func TestInMemory_CreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	p := samplePrincipal()
	if _, err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != p.ID || got.Email != p.Email {
		t.Fatalf("unexpected principal: %+v", got)
	}

	// returned record must not alias the stored one
	got.FirstName = "changed"
	again, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if again.FirstName != "Ada" {
		t.Fatalf("stored record was mutated through a returned copy: %+v", again)
	}
}

func TestInMemory_DuplicateEmail(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, samplePrincipal()); err != nil {
		t.Fatalf("first Create error: %v", err)
	}

	dup := samplePrincipal()
	dup.ID = "id-2"
	if _, err := repo.Create(ctx, dup); !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected exactly one stored principal, got %d", repo.Len())
	}
}

func TestInMemory_ConcurrentCreatesSameEmail(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, samplePrincipal())
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, common.ErrorAlreadyExists):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one create to win, got %d", ok)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected exactly one stored principal, got %d", repo.Len())
	}
}

func TestInMemory_GetByEmail_NotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestInMemory_Mutations(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	p, err := repo.Create(ctx, samplePrincipal())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := repo.SetStaff(ctx, p.ID, true); err != nil {
		t.Fatalf("SetStaff error: %v", err)
	}
	if err := repo.SetActive(ctx, p.ID, false); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}
	if err := repo.UpdatePasswordHash(ctx, p.ID, "!new"); err != nil {
		t.Fatalf("UpdatePasswordHash error: %v", err)
	}
	if err := repo.GrantPermission(ctx, p.ID, "reports.view"); err != nil {
		t.Fatalf("GrantPermission error: %v", err)
	}
	if err := repo.GrantPermission(ctx, p.ID, "reports.view"); err != nil {
		t.Fatalf("repeated GrantPermission error: %v", err)
	}
	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	if err := repo.TouchLastLogin(ctx, p.ID, at); err != nil {
		t.Fatalf("TouchLastLogin error: %v", err)
	}

	got, err := repo.GetByEmail(ctx, p.Email)
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if !got.IsStaff || got.IsActive || got.PasswordHash != "!new" {
		t.Fatalf("mutations not applied: %+v", got)
	}
	if len(got.Permissions) != 1 || got.Permissions[0] != "reports.view" {
		t.Fatalf("unexpected permissions: %v", got.Permissions)
	}
	if !got.LastLogin.Equal(at) {
		t.Fatalf("unexpected last login: %v", got.LastLogin)
	}

	if err := repo.RevokePermission(ctx, p.ID, "reports.view"); err != nil {
		t.Fatalf("RevokePermission error: %v", err)
	}
	got, _ = repo.GetByEmail(ctx, p.Email)
	if len(got.Permissions) != 0 {
		t.Fatalf("expected no permissions after revoke, got %v", got.Permissions)
	}

	if err := repo.SetStaff(ctx, "missing", true); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound for missing id, got %v", err)
	}
}
