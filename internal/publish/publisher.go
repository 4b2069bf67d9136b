// Package publish streams completed simulation years to NATS.
package publish

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/deluair/BD-publicfinance-simulation/internal/engine"
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
	"github.com/deluair/BD-publicfinance-simulation/internal/logfields"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "fiscalsim.years"

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subj string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// YearEvent is published once per completed year.
type YearEvent struct {
	RunID     string                         `json:"run_id"`
	Year      int                            `json:"year"`
	Metrics   map[ledger.Metric]ledger.Value `json:"metrics"`
	Timestamp time.Time                      `json:"timestamp"`
}

// RunEvent is published when a run finishes.
type RunEvent struct {
	RunID          string    `json:"run_id"`
	Seed           uint64    `json:"seed"`
	Status         string    `json:"status"`
	YearsCompleted int       `json:"years_completed"`
	Errors         []string  `json:"errors,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher is an engine observer that publishes year and run events.
type Publisher struct {
	conn    Conn
	subject string
	logger  *slog.Logger
}

// Connect dials the NATS server at url.
func Connect(url, subject string, logger *slog.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("fiscalsim"), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryPublish, "connect to NATS").
			WithContext("url", url).
			Build()
	}
	return New(conn, subject, logger), nil
}

// New wraps an existing connection.
func New(conn Conn, subject string, logger *slog.Logger) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{conn: conn, subject: subject, logger: logger}
}

// Subject returns the subject year events go to. Run events use
// Subject()+".complete".
func (p *Publisher) Subject() string { return p.subject }

func (p *Publisher) OnRunStart(context.Context, engine.RunInfo) error { return nil }

func (p *Publisher) OnStepComplete(int, state.Sector, time.Duration) {}

func (p *Publisher) OnYearComplete(_ context.Context, run engine.RunInfo, entry ledger.Entry) error {
	metrics := make(map[ledger.Metric]ledger.Value, len(ledger.Catalogue()))
	for _, m := range ledger.Catalogue() {
		metrics[m] = entry.Get(m)
	}
	return p.publish(p.subject, YearEvent{
		RunID:     run.RunID,
		Year:      entry.Year,
		Metrics:   metrics,
		Timestamp: time.Now().UTC(),
	})
}

func (p *Publisher) OnRunComplete(ctx context.Context, s *engine.Summary) error {
	err := p.publish(p.subject+".complete", RunEvent{
		RunID:          s.RunID,
		Seed:           s.Seed,
		Status:         string(s.Status),
		YearsCompleted: s.YearsCompleted,
		Errors:         s.Errors,
		Timestamp:      time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.conn.FlushWithContext(flushCtx); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryPublish, "flush NATS connection").Build()
	}
	return nil
}

func (p *Publisher) publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryPublish, "marshal event").Build()
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryPublish, "publish event").
			WithContext("subject", subject).
			Build()
	}
	p.logger.Debug("Published event", logfields.Subject(subject))
	return nil
}

// Close closes the connection.
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
