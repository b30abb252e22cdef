// Package workflows holds the Temporal workflow that turns tables over after
// payment. The workflow sleeps until the cleaning deadline and then frees the
// table; the sanitize pass at startup covers deadlines missed while down.
package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	pkgworkflows "github.com/ghuser/tableside/pkg/workflows"
)

// TaskQueue is the Temporal task queue for table cleaning.
const TaskQueue = "table-cleaning"

const completeCleaningActivity = "CompleteCleaning"

// CleaningInput carries the arguments of CleaningWorkflow.
type CleaningInput struct {
	TableID uuid.UUID `json:"table_id"`
	Until   time.Time `json:"until"`
}

// TableCleaner frees a table whose cleaning window has passed. The table
// registry implements it.
type TableCleaner interface {
	CompleteCleaning(ctx context.Context, id uuid.UUID) error
}

// CleaningWorkflow waits out the cleaning window and then frees the table.
func CleaningWorkflow(ctx workflow.Context, input CleaningInput) error {
	if d := input.Until.Sub(workflow.Now(ctx)); d > 0 {
		if err := workflow.Sleep(ctx, d); err != nil {
			return err
		}
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 5,
		},
	})
	return workflow.ExecuteActivity(ctx, completeCleaningActivity, input.TableID).Get(ctx, nil)
}

// Activities hosts the activity implementations served by the cleaning worker.
type Activities struct {
	Cleaner TableCleaner
}

// CompleteCleaning frees the table. Idempotent, so Temporal retries are safe.
func (a *Activities) CompleteCleaning(ctx context.Context, tableID uuid.UUID) error {
	return a.Cleaner.CompleteCleaning(ctx, tableID)
}

// Scheduler starts cleaning workflows. It satisfies the table registry's
// CleaningScheduler port.
type Scheduler struct {
	tc *pkgworkflows.TemporalClient
}

// NewScheduler returns a Scheduler backed by the given Temporal client.
func NewScheduler(tc *pkgworkflows.TemporalClient) *Scheduler {
	return &Scheduler{tc: tc}
}

// ScheduleCleaning starts the cleaning workflow for a table. The workflow ID
// is derived from the table ID so a table has at most one running cleaning.
func (s *Scheduler) ScheduleCleaning(ctx context.Context, tableID uuid.UUID, until time.Time) error {
	opts := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("clean-table-%s", tableID),
		TaskQueue: TaskQueue,
	}
	if _, err := s.tc.Client.ExecuteWorkflow(ctx, opts, CleaningWorkflow, CleaningInput{
		TableID: tableID,
		Until:   until,
	}); err != nil {
		return fmt.Errorf("start cleaning workflow for table %s: %w", tableID, err)
	}
	return nil
}

// NewWorker returns a Temporal worker serving the cleaning task queue.
// Call Run or Start on the returned worker from the worker process.
func NewWorker(tc *pkgworkflows.TemporalClient, cleaner TableCleaner) worker.Worker {
	w := worker.New(tc.Client, TaskQueue, worker.Options{})
	w.RegisterWorkflow(CleaningWorkflow)
	w.RegisterActivity(&Activities{Cleaner: cleaner})
	return w
}
