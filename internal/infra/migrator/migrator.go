package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

var (
	// ErrSetup возвращается, если не удалось настроить goose
	ErrSetup = errors.New("migrator: setup failed")

	// ErrApply возвращается при ошибке применения миграций
	ErrApply = errors.New("migrator: failed to apply migrations")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator обёртка над goose
type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	dir    string
	logger Logger
}

// New создаёт мигратор для миграций из fsys/dir
func New(db *sql.DB, fsys fs.FS, dir string, logger Logger) (*Migrator, error) {
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("%w: set dialect: %v", ErrSetup, err)
	}

	return &Migrator{db: db, fsys: fsys, dir: dir, logger: logger}, nil
}

// Up применяет все pending миграции
func (m *Migrator) Up(ctx context.Context) error {
	m.logger.Info("Applying database migrations...")

	if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("%w: get version: %v", ErrApply, err)
	}

	m.logger.Info("Migrations applied, schema version=%d", version)
	return nil
}
