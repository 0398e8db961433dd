package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// CatalogSeeder creates missing ledger rows from the catalog.
type CatalogSeeder interface {
	SeedFromCatalog(ctx context.Context) (int, error)
}

// CatalogSeedJob backfills a ledger row for every catalog product that has
// none yet, so new products show up in stock views before their first
// invoice.
type CatalogSeedJob struct {
	service CatalogSeeder
	logger  *slog.Logger
}

// NewCatalogSeedJob constructs the seed job.
func NewCatalogSeedJob(service CatalogSeeder, logger *slog.Logger) *CatalogSeedJob {
	return &CatalogSeedJob{service: service, logger: logger}
}

// Handle processes TaskCatalogSeed tasks.
func (j *CatalogSeedJob) Handle(ctx context.Context, t *asynq.Task) error {
	created, err := j.service.SeedFromCatalog(ctx)
	if err != nil {
		return err
	}
	j.logger.Info("catalog seed finished", slog.Int("created", created))
	return nil
}
