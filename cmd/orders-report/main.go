package main

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	appkg "github.com/karolwisniewski/strumienie-03/internal/app"
	"github.com/karolwisniewski/strumienie-03/internal/jsonfile"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := appkg.LoadConfig()
		if err != nil {
			return err
		}
		return withHint(appkg.Run(ctx, lg, m, cfg), cfg)
	})
}

// withHint points at the dataset generator when the configured data file
// does not exist.
func withHint(err error, cfg *appkg.Config) error {
	if errors.Is(err, jsonfile.ErrNotFound) {
		return errors.Wrapf(err, "create %s with `seed-orders -out %s` or set ORDERS_DATA_FILE", cfg.DataFile, cfg.DataFile)
	}
	return err
}
