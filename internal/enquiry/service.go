package enquiry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"institute-discovery/internal/common/errors"
	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/common/metrics"
	"institute-discovery/internal/common/observability"
	"institute-discovery/internal/common/validation"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	ChannelOpsEmail = "ops_email"
	ChannelAckEmail = "ack_email"
	ChannelSMS      = "sms"
)

// Notifier is satisfied by the AWS SES/SNS notifier.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
	SendSMS(ctx context.Context, phoneNumber, message string) (string, error)
}

type Config struct {
	OpsEmail string
	SendSMS  bool
	Schema   validation.JSONSchema
}

// Service validates, stores and announces enquiries. Notifications are
// best effort: a stored enquiry is reported as submitted even when every
// notification fails.
type Service struct {
	config   Config
	store    Store
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time
}

// NewService accepts a nil notifier, which disables notifications.
func NewService(config Config, store Store, notifier Notifier, log logger.Logger) *Service {
	if config.Schema.Type == "" {
		config.Schema = DefaultSchema()
	}
	return &Service{
		config:   config,
		store:    store,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"component": "enquiry"}),
		now:      time.Now,
	}
}

func (s *Service) Submit(ctx context.Context, req Request) (*Receipt, error) {
	ctx, span := observability.Tracer().Start(ctx, "enquiry.Submit")
	defer span.End()

	req = trimRequest(req)
	if err := Validate(req, s.config.Schema); err != nil {
		metrics.EnquiriesSubmitted.WithLabelValues(StatusInvalid).Inc()
		span.RecordError(err)
		return nil, err
	}

	e := Enquiry{
		ID:        uuid.New().String(),
		ListingID: req.ListingID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	span.SetAttributes(attribute.String("enquiry.id", e.ID), attribute.String("enquiry.listing_id", e.ListingID))

	if err := s.store.Insert(ctx, e); err != nil {
		status := StatusFailed
		if errors.HasCode(err, errors.ErrCodeEnquiryValidationFailed) {
			status = StatusInvalid
		}
		metrics.EnquiriesSubmitted.WithLabelValues(status).Inc()
		span.RecordError(err)
		return nil, err
	}

	notified := s.notify(ctx, e)
	metrics.EnquiriesSubmitted.WithLabelValues(StatusSubmitted).Inc()

	s.logger.Info("Enquiry submitted", map[string]interface{}{
		"enquiryId":     e.ID,
		"listingId":     e.ListingID,
		"notifications": notified,
	})

	return &Receipt{
		EnquiryID:     e.ID,
		Status:        StatusSubmitted,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		Notifications: notified,
	}, nil
}

func (s *Service) notify(ctx context.Context, e Enquiry) []string {
	if s.notifier == nil {
		return nil
	}

	var sent []string
	record := func(channel string, err error) {
		if err != nil {
			s.logger.Warn("Enquiry notification failed", map[string]interface{}{
				"enquiryId": e.ID,
				"error":     errors.NewNotificationSendFailedError(channel, err),
			})
			return
		}
		sent = append(sent, channel)
	}

	if s.config.OpsEmail != "" {
		_, err := s.notifier.SendEmail(ctx, s.config.OpsEmail,
			fmt.Sprintf("New enquiry for listing %s", e.ListingID), opsEmailBody(e))
		record(ChannelOpsEmail, err)
	}

	_, err := s.notifier.SendEmail(ctx, e.Email, "We received your enquiry",
		fmt.Sprintf("Hi %s,\n\nThanks for your enquiry. The institute team will contact you shortly.\n\nReference: %s\n", e.Name, e.ID))
	record(ChannelAckEmail, err)

	if s.config.SendSMS && e.Phone != "" {
		_, err := s.notifier.SendSMS(ctx, e.Phone,
			fmt.Sprintf("Thanks %s, we received your enquiry (ref %s).", e.Name, shortRef(e.ID)))
		record(ChannelSMS, err)
	}

	return sent
}

func opsEmailBody(e Enquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Enquiry %s\n\n", e.ID)
	fmt.Fprintf(&b, "Listing: %s\n", e.ListingID)
	fmt.Fprintf(&b, "Name:    %s\n", e.Name)
	fmt.Fprintf(&b, "Email:   %s\n", e.Email)
	if e.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", e.Phone)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", e.Message)
	}
	return b.String()
}

func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func trimRequest(req Request) Request {
	req.ListingID = strings.TrimSpace(req.ListingID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)
	return req
}
