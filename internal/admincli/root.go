package admincli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/credential"
	"github.com/dmitrijs2005/userdir/internal/directory"
	"github.com/dmitrijs2005/userdir/internal/models"
)

const usage = `Available commands:
  create-user [email]        create a regular principal
  create-superuser [email]   create a staff principal
  show <email>               display a principal
  set-password <email>       change a principal's password
  activate <email>           reactivate a principal
  deactivate <email>         suspend a principal (soft delete)
  promote <email>            grant staff status
  demote <email>             revoke staff status
  grant <email> <perm>       record a permission grant
  revoke <email> <perm>      remove a permission grant
  exit                       quit`

// Run reads commands until exit or EOF.
func (a *App) Run(ctx context.Context) {

	fmt.Fprintln(a.out, "User directory admin (type 'help' for commands)")

	for {
		fmt.Fprint(a.out, "userdir> ")
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(a.out, usage)
		case "create-user":
			a.createPrincipal(ctx, first(args), false)
		case "create-superuser":
			a.createPrincipal(ctx, first(args), true)
		case "show":
			a.show(ctx, first(args))
		case "set-password":
			a.setPassword(ctx, first(args))
		case "activate":
			a.setActive(ctx, first(args), true)
		case "deactivate":
			a.setActive(ctx, first(args), false)
		case "promote":
			a.setStaff(ctx, first(args), true)
		case "demote":
			a.setStaff(ctx, first(args), false)
		case "grant":
			a.grant(ctx, args, true)
		case "revoke":
			a.grant(ctx, args, false)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func first(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (a *App) createPrincipal(ctx context.Context, email string, staff bool) {

	var err error
	if email == "" {
		email, err = GetSimpleText(a.reader, "Email address", a.out)
		if err != nil {
			fmt.Fprintln(a.out, err.Error())
			return
		}
	}

	firstName, err := GetSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	lastName, err := GetSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	password, err := GetPasswordConfirmed(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeByteArray(password)

	extra := directory.ExtraFields{FirstName: firstName, LastName: lastName}

	if staff {
		if _, err = a.dir.CreateSuperuser(ctx, email, string(password), extra); err == nil {
			fmt.Fprintln(a.out, "Superuser created:", email)
		}
	} else {
		if _, err = a.dir.CreateUser(ctx, email, string(password), extra); err == nil {
			fmt.Fprintln(a.out, "User created:", email)
		}
	}
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
	}
}

func (a *App) show(ctx context.Context, email string) {
	if email == "" {
		fmt.Fprintln(a.out, "Usage: show <email>")
		return
	}

	p, err := a.dir.GetByEmail(ctx, email)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	fmt.Fprintf(a.out, "Email:        %s\n", p.Email)
	fmt.Fprintf(a.out, "Name:         %s\n", p.FullName())
	fmt.Fprintf(a.out, "Title:        %s\n", p.Title)
	fmt.Fprintf(a.out, "Phone:        %s\n", p.PhoneNumber)
	fmt.Fprintf(a.out, "Staff:        %v\n", p.IsStaff)
	fmt.Fprintf(a.out, "Active:       %v\n", p.IsActive)
	fmt.Fprintf(a.out, "Demo:         %v\n", p.IsDemo)
	fmt.Fprintf(a.out, "Joined:       %s\n", p.JoinedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(a.out, "Last login:   %s\n", p.LastLogin.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(a.out, "Has password: %v\n", credential.IsUsable(p.PasswordHash))
	fmt.Fprintf(a.out, "Permissions:  %s\n", strings.Join(p.Permissions, ", "))
}

func (a *App) setPassword(ctx context.Context, email string) {
	if email == "" {
		fmt.Fprintln(a.out, "Usage: set-password <email>")
		return
	}

	p, err := a.dir.GetByEmail(ctx, email)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	password, err := GetPasswordConfirmed(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeByteArray(password)

	if err := a.dir.SetPassword(ctx, p, string(password)); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "Password updated:", p.Email)
}

func (a *App) setActive(ctx context.Context, email string, active bool) {
	p := a.lookup(ctx, email, "activate/deactivate")
	if p == nil {
		return
	}
	if err := a.repo.SetActive(ctx, p.ID, active); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Active = %v: %s\n", active, p.Email)
}

func (a *App) setStaff(ctx context.Context, email string, staff bool) {
	p := a.lookup(ctx, email, "promote/demote")
	if p == nil {
		return
	}
	if err := a.repo.SetStaff(ctx, p.ID, staff); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Staff = %v: %s\n", staff, p.Email)
}

func (a *App) grant(ctx context.Context, args []string, add bool) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: grant|revoke <email> <permission>")
		return
	}

	p := a.lookup(ctx, args[0], "grant/revoke")
	if p == nil {
		return
	}

	var err error
	if add {
		err = a.repo.GrantPermission(ctx, p.ID, args[1])
	} else {
		err = a.repo.RevokePermission(ctx, p.ID, args[1])
	}
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "OK")
}

func (a *App) lookup(ctx context.Context, email, hint string) *models.Principal {
	if email == "" {
		fmt.Fprintf(a.out, "Usage: %s <email>\n", hint)
		return nil
	}
	p, err := a.dir.GetByEmail(ctx, email)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	return p
}
