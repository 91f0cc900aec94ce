package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrator применяет goose-миграции схемы планировщика поверх пула pgx
type Migrator struct {
	db   *sql.DB
	path string
}

func NewMigrator(pool *pgxpool.Pool, path string) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	// goose работает через database/sql, открываем его поверх пула
	return &Migrator{db: stdlib.OpenDBFromPool(pool), path: path}, nil
}

// Run применяет недостающие миграции и логирует итоговую версию схемы
func (m *Migrator) Run(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, m.path); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	log.Printf("Schema is up to date, version %d", version)
	return nil
}

// Close закрывает только database/sql-обёртку, пул остаётся за вызывающим
func (m *Migrator) Close() error {
	return m.db.Close()
}
