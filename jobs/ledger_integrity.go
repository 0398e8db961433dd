package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// StatusRepairer recomputes derived statuses across the ledger.
type StatusRepairer interface {
	RepairStatuses(ctx context.Context) (int, error)
}

// LedgerIntegrityJob rewrites ledger rows whose stored status drifted from
// the value derived from stock_left.
type LedgerIntegrityJob struct {
	service StatusRepairer
	logger  *slog.Logger
}

// NewLedgerIntegrityJob constructs the integrity job.
func NewLedgerIntegrityJob(service StatusRepairer, logger *slog.Logger) *LedgerIntegrityJob {
	return &LedgerIntegrityJob{service: service, logger: logger}
}

// Handle processes TaskLedgerIntegrity tasks.
func (j *LedgerIntegrityJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload LedgerIntegrityPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	if payload.DryRun {
		j.logger.Info("ledger integrity dry run requested, skipping repair")
		return nil
	}
	repaired, err := j.service.RepairStatuses(ctx)
	if err != nil {
		return err
	}
	j.logger.Info("ledger integrity scan finished", slog.Int("repaired", repaired))
	return nil
}
