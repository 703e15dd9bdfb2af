package postgre

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"careersight-srv/internal/submission/repository"
	pkgLog "careersight-srv/pkg/log"
)

type implRepository struct {
	l       pkgLog.Logger
	db      *sql.DB
	builder sq.StatementBuilderType
}

// New creates a PostgreSQL-backed submission repository.
func New(l pkgLog.Logger, db *sql.DB) repository.Repository {
	return &implRepository{
		l:       l,
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}
