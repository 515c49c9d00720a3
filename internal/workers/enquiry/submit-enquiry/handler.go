// internal/workers/enquiry/submit-enquiry/handler.go
package submitenquiry

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"institute-discovery/internal/common/errors"
	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/common/metrics"
	"institute-discovery/internal/enquiry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "submit-enquiry"
)

var (
	ErrInputRequired = stderrors.New("INPUT_REQUIRED")
)

// Submitter is satisfied by enquiry.Service.
type Submitter interface {
	Submit(ctx context.Context, req enquiry.Request) (*enquiry.Receipt, error)
}

type Handler struct {
	config       *Config
	submitter    Submitter
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, submitter Submitter, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		submitter:    submitter,
		errorHandler: errors.NewErrorHandler(scoped),
		logger:       scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	defer func() {
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job,
			errors.NewEnquiryValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeEnquiryValidationFailed)).Inc()
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := errors.ErrCodeInternal
		if stdErr, ok := errors.AsStandardError(err); ok {
			code = stdErr.Code
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrInputRequired
	}

	receipt, err := h.submitter.Submit(ctx, enquiry.Request{
		ListingID: input.ListingID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
	})
	if err != nil {
		return nil, err
	}

	notifications := receipt.Notifications
	if notifications == nil {
		notifications = []string{}
	}

	return &Output{
		EnquiryID:     receipt.EnquiryID,
		Status:        receipt.Status,
		CreatedAt:     receipt.CreatedAt,
		Notifications: notifications,
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
	h.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey":    job.Key,
		"enquiryId": output.EnquiryID,
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
