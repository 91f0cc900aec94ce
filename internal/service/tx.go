package service

import (
	"context"
	"fmt"

	"github.com/bridges-advising/scheduler/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSchedulingTx реализует SchedulingTx поверх пула: открывает
// транзакцию и передаёт fn копии репозиториев, привязанные к ней
type PgxSchedulingTx struct {
	pool      *pgxpool.Pool
	meetings  *repository.MeetingRepository
	conflicts *repository.ConflictRepository
}

func NewPgxSchedulingTx(
	pool *pgxpool.Pool,
	meetings *repository.MeetingRepository,
	conflicts *repository.ConflictRepository,
) *PgxSchedulingTx {
	return &PgxSchedulingTx{
		pool:      pool,
		meetings:  meetings,
		conflicts: conflicts,
	}
}

func (p *PgxSchedulingTx) InTx(ctx context.Context, fn func(meetings MeetingWriteStore, conflicts ConflictStore) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(p.meetings.WithTx(tx), p.conflicts.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
