package notify

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "github.com/karolwisniewski/strumienie-03/internal/notify"

// BroadcastOptions configures a Broadcaster. Nil providers disable telemetry.
type BroadcastOptions struct {
	// Concurrency bounds the number of in-flight deliveries. Values below 1
	// mean sequential delivery.
	Concurrency    int
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// Result summarizes one broadcast.
type Result struct {
	ID       string
	Sent     int
	Skipped  int
	Failures []*DeliveryError
}

// Broadcaster sends a batch of messages with per-recipient failure isolation.
// Every message gets at most one delivery attempt and there are no retries.
type Broadcaster struct {
	sender      Sender
	concurrency int
	tracer      trace.Tracer
	sent        metric.Int64Counter
	failed      metric.Int64Counter
}

// NewBroadcaster creates a Broadcaster delivering through sender.
func NewBroadcaster(sender Sender, opts BroadcastOptions) (*Broadcaster, error) {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = metricnoop.NewMeterProvider()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = tracenoop.NewTracerProvider()
	}

	meter := opts.MeterProvider.Meter(instrumentationName)
	sent, err := meter.Int64Counter("notify.messages.sent",
		metric.WithDescription("Messages delivered successfully"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create sent counter")
	}
	failed, err := meter.Int64Counter("notify.messages.failed",
		metric.WithDescription("Messages whose delivery failed"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create failed counter")
	}

	return &Broadcaster{
		sender:      sender,
		concurrency: opts.Concurrency,
		tracer:      opts.TracerProvider.Tracer(instrumentationName),
		sent:        sent,
		failed:      failed,
	}, nil
}

// Broadcast attempts delivery of every message. A failed delivery is recorded
// in Result.Failures and does not stop the others. The returned error is
// non-nil only when ctx is cancelled; messages not yet attempted by then are
// counted in Result.Skipped.
func (b *Broadcaster) Broadcast(ctx context.Context, msgs []Message) (*Result, error) {
	res := &Result{ID: uuid.New().String()}
	lg := zctx.From(ctx).With(zap.String("broadcast_id", res.ID))

	ctx, span := b.tracer.Start(ctx, "notify.Broadcast", trace.WithAttributes(
		attribute.String("broadcast.id", res.ID),
		attribute.Int("broadcast.messages", len(msgs)),
	))
	defer span.End()

	var (
		mu       sync.Mutex
		failures = make([]*DeliveryError, len(msgs))
		attempts int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, m := range msgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			mu.Lock()
			attempts++
			mu.Unlock()

			if err := b.sender.Send(gctx, m.To, m.Subject, m.HTMLBody); err != nil {
				lg.Warn("Delivery failed", zap.String("to", m.To), zap.Error(err))
				b.failed.Add(gctx, 1)
				failures[i] = &DeliveryError{To: m.To, Err: err}
				return nil
			}
			b.sent.Add(gctx, 1)
			return nil
		})
	}
	waitErr := g.Wait()

	for _, f := range failures {
		if f != nil {
			res.Failures = append(res.Failures, f)
		}
	}
	res.Sent = attempts - len(res.Failures)
	res.Skipped = len(msgs) - attempts

	span.SetAttributes(
		attribute.Int("broadcast.sent", res.Sent),
		attribute.Int("broadcast.failed", len(res.Failures)),
	)
	lg.Info("Broadcast finished",
		zap.Int("sent", res.Sent),
		zap.Int("failed", len(res.Failures)),
		zap.Int("skipped", res.Skipped),
	)

	if waitErr != nil {
		span.SetStatus(codes.Error, waitErr.Error())
		return res, errors.Wrap(waitErr, "broadcast interrupted")
	}
	if len(res.Failures) > 0 {
		span.SetStatus(codes.Error, "some deliveries failed")
	}
	return res, nil
}
