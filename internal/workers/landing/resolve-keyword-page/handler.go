// internal/workers/landing/resolve-keyword-page/handler.go
package resolvekeywordpage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"institute-discovery/internal/common/errors"
	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/common/metrics"
	"institute-discovery/internal/common/observability"
	"institute-discovery/internal/keyword"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "resolve-keyword-page"
)

var (
	ErrInputRequired = stderrors.New("INPUT_REQUIRED")
)

// Resolver is satisfied by landing.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, slug string, page int) (keyword.Resolution, error)
}

type Handler struct {
	config       *Config
	resolver     Resolver
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, resolver Resolver, obs *observability.Observability, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		resolver:     resolver,
		obs:          obs,
		errorHandler: errors.NewErrorHandler(scoped),
		logger:       scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()
	defer func() {
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
		h.obs.RecordJobDuration(ctx, TaskType, time.Since(start))
	}()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := errors.ErrCodeInternal
		if stdErr, ok := errors.AsStandardError(err); ok {
			code = stdErr.Code
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
		h.obs.RecordJobProcessed(ctx, TaskType, "failed")
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrInputRequired
	}

	page := input.Page
	if page == 0 {
		page = 1
	}

	res, err := h.resolver.Resolve(ctx, input.Slug, page)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", input.Slug, err)
	}
	if res.Outcome == keyword.OutcomeRedirect {
		return nil, errors.NewInvalidSlugError(res.Slug)
	}

	return &Output{
		Outcome:       string(res.Outcome),
		Message:       res.Message,
		Query:         res.Query,
		Listings:      res.Page.Items,
		Page:          res.Page.Number,
		TotalPages:    res.Page.TotalPages,
		TotalItems:    res.Page.TotalItems,
		CorrectedPage: res.Page.Corrected,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey":  job.Key,
		"outcome": output.Outcome,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(ctx)
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

// Execute is exposed for tests and the CLI.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
