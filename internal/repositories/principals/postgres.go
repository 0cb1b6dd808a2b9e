package principals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/dbx"
	"github.com/dmitrijs2005/userdir/internal/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique-constraint
// violations; the principals_email_key index turns duplicate inserts into
// this code.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the principal and its granted permissions in one
// transaction. Uniqueness of the email rides on the database index, so
// there is no check-then-insert window.
func (r *PostgresRepository) Create(ctx context.Context, p *models.Principal) (*models.Principal, error) {

	query :=
		`INSERT INTO principals
		 (id, email, first_name, last_name, title, phone_number,
		  is_staff, is_active, is_demo, joined_at, last_login, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 `

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, query,
			p.ID, p.Email, p.FirstName, p.LastName, p.Title, p.PhoneNumber,
			p.IsStaff, p.IsActive, p.IsDemo, p.JoinedAt, p.LastLogin, p.PasswordHash); err != nil {
			return err
		}
		for _, perm := range p.Permissions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO principal_permissions (principal_id, permission) VALUES ($1, $2)`,
				p.ID, perm); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	query :=
		`SELECT id, email, first_name, last_name, title, phone_number,
		        is_staff, is_active, is_demo, joined_at, last_login, password_hash
		 FROM principals
		 WHERE email = $1
		 `

	p := &models.Principal{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.Title, &p.PhoneNumber,
		&p.IsStaff, &p.IsActive, &p.IsDemo, &p.JoinedAt, &p.LastLogin, &p.PasswordHash)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT permission FROM principal_permissions WHERE principal_id = $1 ORDER BY permission`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var perm string
		if err := rows.Scan(&perm); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.Permissions = append(p.Permissions, perm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return r.execOnPrincipal(ctx,
		`UPDATE principals SET password_hash = $2 WHERE id = $1`, id, hash)
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.execOnPrincipal(ctx,
		`UPDATE principals SET is_active = $2 WHERE id = $1`, id, active)
}

func (r *PostgresRepository) SetStaff(ctx context.Context, id string, staff bool) error {
	return r.execOnPrincipal(ctx,
		`UPDATE principals SET is_staff = $2 WHERE id = $1`, id, staff)
}

func (r *PostgresRepository) GrantPermission(ctx context.Context, id, permission string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO principal_permissions (principal_id, permission)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`, id, permission)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RevokePermission(ctx context.Context, id, permission string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM principal_permissions WHERE principal_id = $1 AND permission = $2`, id, permission)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.execOnPrincipal(ctx,
		`UPDATE principals SET last_login = $2 WHERE id = $1`, id, at)
}

// execOnPrincipal runs a single-row update and maps "no row touched" to
// ErrorNotFound.
func (r *PostgresRepository) execOnPrincipal(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
