// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"

	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/metrics"
	"wordpress-posts/internal/common/observability"
)

// Executor runs one job. Job variables go in, output variables come out.
type Executor interface {
	Execute(ctx context.Context, variables map[string]interface{}) (map[string]interface{}, error)
}

type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
	Executor      Executor
	Logger        logger.Logger
	Tracer        *observability.TracerProvider
}

// JobAdapter exposes an Executor as a Zeebe job handler.
type JobAdapter struct {
	taskType      string
	maxJobsActive int
	timeout       time.Duration
	executor      Executor
	logger        logger.Logger
	tracer        *observability.TracerProvider
	errorHandler  *errors.ErrorHandler
	jobWorker     worker.JobWorker
}

func NewJobAdapter(opts WorkerOptions) (*JobAdapter, error) {
	if opts.TaskType == "" {
		return nil, fmt.Errorf("task type is required")
	}
	if opts.Executor == nil {
		return nil, fmt.Errorf("executor is required for %s", opts.TaskType)
	}
	if opts.MaxJobsActive <= 0 {
		opts.MaxJobsActive = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	log := opts.Logger.WithFields(map[string]interface{}{"taskType": opts.TaskType})

	return &JobAdapter{
		taskType:      opts.TaskType,
		maxJobsActive: opts.MaxJobsActive,
		timeout:       opts.Timeout,
		executor:      opts.Executor,
		logger:        log,
		tracer:        opts.Tracer,
		errorHandler:  errors.NewErrorHandler(log),
	}, nil
}

// Open starts polling for jobs of the adapter's task type.
func (a *JobAdapter) Open(client zbc.Client) {
	a.jobWorker = client.NewJobWorker().
		JobType(a.taskType).
		Handler(a.Handle).
		MaxJobsActive(a.maxJobsActive).
		Timeout(a.timeout).
		Name(fmt.Sprintf("%s-worker", a.taskType)).
		Open()

	a.logger.Info("Job worker opened", map[string]interface{}{
		"maxJobsActive": a.maxJobsActive,
		"timeout":       a.timeout.String(),
	})
}

// Close stops polling and waits for in-flight jobs.
func (a *JobAdapter) Close() {
	if a.jobWorker == nil {
		return
	}
	a.logger.Info("Shutting down worker gracefully", nil)
	a.jobWorker.Close()
	a.jobWorker.AwaitClose()
	a.jobWorker = nil
}

// Handle is the zeebe job handler: it runs the job and completes it, or
// hands the error to the ErrorHandler.
func (a *JobAdapter) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(a.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(a.taskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	output, err := a.Run(ctx, job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(a.taskType, string(errors.Normalize(err).Code)).Inc()
		a.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromMap(output)
	if err != nil {
		a.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}
	if _, err := request.Send(ctx); err != nil {
		a.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(a.taskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(a.taskType).Observe(time.Since(start).Seconds())
	a.logger.Info("Job completed", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// Run decodes the job variables and executes the job without talking back to
// the broker.
func (a *JobAdapter) Run(ctx context.Context, job entities.Job) (output map[string]interface{}, err error) {
	ctx, span := a.tracer.StartSpan(ctx, observability.SpanWorkerJob,
		attribute.String("task_type", a.taskType),
		attribute.Int64("job_key", job.GetKey()),
	)
	defer func() { observability.EndSpan(span, err) }()

	a.logger.Info("Processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInputParsingError(err)
	}

	output, err = a.executor.Execute(ctx, variables)
	if err != nil {
		return nil, err
	}
	if output == nil {
		output = map[string]interface{}{}
	}
	return output, nil
}

func (a *JobAdapter) TaskType() string {
	return a.taskType
}
