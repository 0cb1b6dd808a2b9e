// Package admincli implements the interactive administration tool for the
// user directory: creating regular and staff principals, changing
// credentials, and managing flags and permission grants.
package admincli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/userdir/internal/config"
	"github.com/dmitrijs2005/userdir/internal/directory"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/repositories/principals"
	"github.com/dmitrijs2005/userdir/internal/repositories/repomanager"
)

type App struct {
	dir    *directory.Directory
	repo   principals.Repository
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp connects to the configured database, applies migrations, and
// wires the directory on top of the Postgres principal store.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	repo := rm.Principals(db)

	return &App{
		dir:    directory.New(repo, logger),
		repo:   repo,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}
