package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrity recomputes derived stock statuses across the ledger.
	TaskLedgerIntegrity = "ledger:integrity"
	// TaskCatalogSeed creates missing ledger rows from the catalog.
	TaskCatalogSeed = "ledger:catalog_seed"
)

// LedgerIntegrityPayload parameterises the integrity scan.
type LedgerIntegrityPayload struct {
	// DryRun reports drift without rewriting rows.
	DryRun bool `json:"dry_run"`
}

// NewLedgerIntegrityTask constructs an Asynq task for the integrity scan.
func NewLedgerIntegrityTask(payload LedgerIntegrityPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerIntegrity, data), nil
}

// NewCatalogSeedTask constructs an Asynq task for the catalog seed run.
func NewCatalogSeedTask() (*asynq.Task, error) {
	return asynq.NewTask(TaskCatalogSeed, nil), nil
}
