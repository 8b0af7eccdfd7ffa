package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Event subjects published on the internal bus.
const (
	SubjectMarksSaved      = "saat.marks.saved"
	SubjectReportPublished = "saat.report.published"
)

// NotificationService publishes domain events. Publishing is best-effort:
// failures are logged and never surfaced to the triggering request.
type NotificationService interface {
	MarksSaved(ctx context.Context, submissionID string)
	ReportPublished(ctx context.Context, reportID, studentID string)
}

type natsNotificationService struct {
	conn   *nats.Conn
	logger zerolog.Logger
	now    func() time.Time
}

// NewNotificationService constructs an event publisher over the given NATS
// connection. A nil connection yields a no-op publisher, which keeps the
// bus optional in deployments that do not run one.
func NewNotificationService(conn *nats.Conn, logger zerolog.Logger) NotificationService {
	return &natsNotificationService{
		conn:   conn,
		logger: logger.With().Str("component", "notification_service").Logger(),
		now:    time.Now,
	}
}

type marksSavedEvent struct {
	SubmissionID string    `json:"submission_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type reportPublishedEvent struct {
	ReportID   string    `json:"report_id"`
	StudentID  string    `json:"student_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (s *natsNotificationService) MarksSaved(_ context.Context, submissionID string) {
	s.publish(SubjectMarksSaved, marksSavedEvent{
		SubmissionID: submissionID,
		OccurredAt:   s.now(),
	})
}

func (s *natsNotificationService) ReportPublished(_ context.Context, reportID, studentID string) {
	s.publish(SubjectReportPublished, reportPublishedEvent{
		ReportID:   reportID,
		StudentID:  studentID,
		OccurredAt: s.now(),
	})
}

func (s *natsNotificationService) publish(subject string, event interface{}) {
	if s.conn == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Str("subject", subject).Msg("encode event")
		return
	}
	if err := s.conn.Publish(subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", subject).Msg("publish event")
	}
}
