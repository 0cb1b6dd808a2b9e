package admincli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/userdir/internal/directory"
	"github.com/dmitrijs2005/userdir/internal/repositories/principals"
)

// newTestApp wires the App directly on top of an in-memory store so the
// REPL can be driven by a scripted input stream.
func newTestApp(input string) (*App, *principals.InMemoryRepository, *bytes.Buffer) {
	repo := principals.NewInMemoryRepository()
	out := &bytes.Buffer{}
	app := &App{
		dir:    directory.New(repo, nil),
		repo:   repo,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}
	return app, repo, out
}

func TestRunCreateSuperuserAndShow(t *testing.T) {
	stubPasswords(t, "s3cret", "s3cret")

	// create-superuser prompts for first and last name before the password.
	input := "create-superuser Admin@EXAMPLE.com\n" +
		"Ada\n" +
		"Lovelace\n" +
		"show Admin@EXAMPLE.com\n" +
		"exit\n"

	app, _, out := newTestApp(input)
	app.Run(context.Background())

	p, err := app.dir.GetByEmail(context.Background(), "Admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Email != "Admin@example.com" {
		t.Errorf("expected normalized email, got %q", p.Email)
	}
	if !p.IsStaff {
		t.Errorf("expected staff principal")
	}
	if !app.dir.VerifyCredential(p, "s3cret") {
		t.Errorf("expected password to verify")
	}

	s := out.String()
	if !strings.Contains(s, "Superuser created: Admin@EXAMPLE.com") {
		t.Errorf("missing creation confirmation: %q", s)
	}
	if !strings.Contains(s, "Name:         Ada Lovelace") {
		t.Errorf("missing name in show output: %q", s)
	}
	if !strings.Contains(s, "Staff:        true") {
		t.Errorf("missing staff flag in show output: %q", s)
	}
	if !strings.Contains(s, "Has password: true") {
		t.Errorf("missing credential state in show output: %q", s)
	}
}

func TestRunCreateUserPromptsForEmail(t *testing.T) {
	stubPasswords(t, "s3cret", "s3cret")

	input := "create-user\n" +
		"bob@example.com\n" +
		"\n" + // first name skipped
		"\n" + // last name skipped
		"exit\n"

	app, repo, _ := newTestApp(input)
	app.Run(context.Background())

	if repo.Len() != 1 {
		t.Fatalf("expected 1 principal, got %d", repo.Len())
	}
	p, err := app.dir.GetByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.IsStaff {
		t.Errorf("expected non-staff principal")
	}
}

func TestRunPasswordMismatchAbortsCreation(t *testing.T) {
	stubPasswords(t, "s3cret", "other")

	input := "create-user bob@example.com\n" +
		"\n" +
		"\n" +
		"exit\n"

	app, repo, out := newTestApp(input)
	app.Run(context.Background())

	if repo.Len() != 0 {
		t.Fatalf("expected no principals, got %d", repo.Len())
	}
	if !strings.Contains(out.String(), "passwords do not match") {
		t.Errorf("missing mismatch message: %q", out.String())
	}
}

func TestRunFlagAndPermissionCommands(t *testing.T) {
	stubPasswords(t, "s3cret", "s3cret")

	input := "create-user carol@example.com\n" +
		"\n" +
		"\n" +
		"promote carol@example.com\n" +
		"grant carol@example.com reports.view\n" +
		"deactivate carol@example.com\n" +
		"exit\n"

	app, _, _ := newTestApp(input)
	app.Run(context.Background())

	p, err := app.dir.GetByEmail(context.Background(), "carol@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsStaff {
		t.Errorf("expected staff after promote")
	}
	if p.IsActive {
		t.Errorf("expected inactive after deactivate")
	}
	if len(p.Permissions) != 1 || p.Permissions[0] != "reports.view" {
		t.Errorf("expected recorded grant, got %v", p.Permissions)
	}
}

func TestRunSetPassword(t *testing.T) {
	stubPasswords(t, "old-pass", "old-pass", "new-pass", "new-pass")

	input := "create-user dave@example.com\n" +
		"\n" +
		"\n" +
		"set-password dave@example.com\n" +
		"exit\n"

	app, _, _ := newTestApp(input)
	app.Run(context.Background())

	p, err := app.dir.GetByEmail(context.Background(), "dave@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.dir.VerifyCredential(p, "old-pass") {
		t.Errorf("old password still verifies")
	}
	if !app.dir.VerifyCredential(p, "new-pass") {
		t.Errorf("new password does not verify")
	}
}

func TestRunUnknownCommand(t *testing.T) {
	app, _, out := newTestApp("frobnicate\nexit\n")
	app.Run(context.Background())

	if !strings.Contains(out.String(), "Unknown command: frobnicate") {
		t.Errorf("missing unknown command message: %q", out.String())
	}
}

func TestRunShowMissingPrincipal(t *testing.T) {
	app, _, out := newTestApp("show nobody@example.com\nexit\n")
	app.Run(context.Background())

	if !strings.Contains(out.String(), "not found") {
		t.Errorf("missing not-found message: %q", out.String())
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	app, _, _ := newTestApp("help\n")
	app.Run(context.Background()) // must return rather than spin
}
