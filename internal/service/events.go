package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// EvaluationCompletedEvent is broadcast after an evaluation is persisted.
type EvaluationCompletedEvent struct {
	EvaluationID uint      `json:"evaluation_id"`
	UserID       string    `json:"user_id"`
	ChallengeID  uint      `json:"challenge_id"`
	OverallScore float64   `json:"overall_score"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EvaluationPublisher announces completed evaluations to interested consumers.
type EvaluationPublisher interface {
	EvaluationCompleted(ctx context.Context, event EvaluationCompletedEvent)
}

type natsEvaluationPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSEvaluationPublisher builds a publisher over the given connection.
// A nil connection yields a no-op publisher.
func NewNATSEvaluationPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) EvaluationPublisher {
	if subject == "" {
		subject = "promptmaster.evaluation.completed"
	}

	return &natsEvaluationPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "evaluation_publisher").Logger(),
	}
}

// EvaluationCompleted publishes the event fire-and-forget. Publish failures
// are logged and never surface to the evaluation pipeline.
func (p *natsEvaluationPublisher) EvaluationCompleted(_ context.Context, event EvaluationCompletedEvent) {
	if p.conn == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to encode evaluation event")
		return
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		p.logger.Warn().Err(err).Uint("evaluation_id", event.EvaluationID).Msg("failed to publish evaluation event")
	}
}
