package app

import (
	"context"
	"time"

	"github.com/bridges-advising/scheduler/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	conflictService *service.ConflictService
	auditInterval   time.Duration
	logger          *zap.Logger
	stopChan        chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(conflictService *service.ConflictService, auditInterval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		conflictService: conflictService,
		auditInterval:   auditInterval,
		logger:          logger,
		stopChan:        make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runAuditTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runAuditTask периодически проверяет будущие встречи на двойные бронирования
func (s *Scheduler) runAuditTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.auditMeetings(ctx)

	ticker := time.NewTicker(s.auditInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.auditMeetings(ctx)
		case <-s.stopChan:
			s.logger.Info("Meeting audit task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Meeting audit task cancelled")
			return
		}
	}
}

// auditMeetings запускает одну итерацию проверки начиная с сегодняшнего дня
func (s *Scheduler) auditMeetings(ctx context.Context) {
	s.logger.Info("Starting scheduled meeting audit")

	from := time.Now().UTC().Truncate(24 * time.Hour)
	filed, err := s.conflictService.AuditMeetings(ctx, from)
	if err != nil {
		s.logger.Error("Meeting audit failed", zap.Error(err))
		return
	}

	s.logger.Info("Meeting audit completed", zap.Int("conflicts_filed", filed))
}
