// Package app wires the orders report together.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/karolwisniewski/strumienie-03/internal/domain/order"
	"github.com/karolwisniewski/strumienie-03/internal/jsonfile"
	"github.com/karolwisniewski/strumienie-03/internal/menu"
	"github.com/karolwisniewski/strumienie-03/internal/notify"
	"github.com/karolwisniewski/strumienie-03/internal/report"
)

// Run loads the dataset, builds all dependencies and drives the interactive
// menu on standard input and output. It is the single wiring point for the
// application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	ctx = zctx.Base(ctx, lg)
	lg.Info("Initializing",
		zap.String("data_file", cfg.DataFile),
		zap.String("output_dir", cfg.OutputDir),
	)

	engine, err := LoadEngine(cfg.DataFile, time.Now)
	if err != nil {
		return err
	}
	lg.Info("Orders loaded", zap.Int("count", engine.Len()))

	sender, err := newSender(cfg.SMTP)
	if err != nil {
		return errors.Wrap(err, "create sender")
	}
	broadcaster, err := notify.NewBroadcaster(sender, notify.BroadcastOptions{
		Concurrency:    cfg.Notify.Concurrency,
		MeterProvider:  m.MeterProvider(),
		TracerProvider: m.TracerProvider(),
	})
	if err != nil {
		return errors.Wrap(err, "create broadcaster")
	}

	session := NewSession(engine, broadcaster, cfg.OutputDir, cfg.Notify.Subject, m.TracerProvider())
	return Serve(ctx, session, os.Stdin, os.Stdout)
}

// LoadEngine reads the orders dataset at path and validates every order
// against now. A single invalid order fails the whole load.
func LoadEngine(path string, now func() time.Time) (*report.Engine, error) {
	orders, err := jsonfile.Load(path, order.Decoder(now))
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	return report.NewEngine(orders, report.WithClock(now)), nil
}

// Serve runs the menu of session over in and out until the user exits.
func Serve(ctx context.Context, session *Session, in io.Reader, out io.Writer) error {
	console := menu.NewConsole(in, out)
	if err := menu.New(console, session.Actions()).Run(ctx); err != nil {
		return errors.Wrap(err, "menu")
	}
	zctx.From(ctx).Info("Menu closed")
	return nil
}

func newSender(cfg SMTPConfig) (notify.Sender, error) {
	if cfg.Host == "" {
		return notify.LogSender{}, nil
	}
	s, err := notify.NewSMTPSender(cfg.Sender())
	if err != nil {
		return nil, err
	}
	return s, nil
}
