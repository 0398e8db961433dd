package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type fakeRepairer struct {
	calls    int
	repaired int
}

func (f *fakeRepairer) RepairStatuses(ctx context.Context) (int, error) {
	f.calls++
	return f.repaired, nil
}

type fakeSeeder struct {
	calls int
}

func (f *fakeSeeder) SeedFromCatalog(ctx context.Context) (int, error) {
	f.calls++
	return 3, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLedgerIntegrityJob(t *testing.T) {
	repairer := &fakeRepairer{repaired: 2}
	job := NewLedgerIntegrityJob(repairer, testLogger())

	task, err := NewLedgerIntegrityTask(LedgerIntegrityPayload{})
	require.NoError(t, err)
	require.Equal(t, TaskLedgerIntegrity, task.Type())

	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, 1, repairer.calls)
}

func TestLedgerIntegrityJobDryRun(t *testing.T) {
	repairer := &fakeRepairer{}
	job := NewLedgerIntegrityJob(repairer, testLogger())

	task, err := NewLedgerIntegrityTask(LedgerIntegrityPayload{DryRun: true})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	require.Zero(t, repairer.calls)
}

func TestLedgerIntegrityJobBadPayload(t *testing.T) {
	job := NewLedgerIntegrityJob(&fakeRepairer{}, testLogger())

	task := asynq.NewTask(TaskLedgerIntegrity, []byte("not json"))
	err := job.Handle(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
}

type fakeEnqueuer struct {
	calls int
	err   error
}

func (f *fakeEnqueuer) EnqueueCatalogSeed(ctx context.Context) (*asynq.TaskInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "task-1", Queue: QueueDefault}, nil
}

func newSeedRouter(enqueuer SeedEnqueuer) *chi.Mux {
	handler := NewHandler(nil, enqueuer, testLogger())
	router := chi.NewRouter()
	router.Route("/jobs", handler.MountRoutes)
	return router
}

func TestEnqueueSeed(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	router := newSeedRouter(enqueuer)

	req := httptest.NewRequest(http.MethodPost, "/jobs/seed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, 1, enqueuer.calls)
	require.Contains(t, rec.Body.String(), `"task_id":"task-1"`)
}

func TestEnqueueSeedQueueDown(t *testing.T) {
	router := newSeedRouter(&fakeEnqueuer{err: errors.New("queue unreachable")})

	req := httptest.NewRequest(http.MethodPost, "/jobs/seed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEnqueueSeedNotConfigured(t *testing.T) {
	router := newSeedRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/jobs/seed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCatalogSeedJob(t *testing.T) {
	seeder := &fakeSeeder{}
	job := NewCatalogSeedJob(seeder, testLogger())

	task, err := NewCatalogSeedTask()
	require.NoError(t, err)
	require.Equal(t, TaskCatalogSeed, task.Type())

	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, 1, seeder.calls)
}
