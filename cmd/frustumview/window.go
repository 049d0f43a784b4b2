package main

import (
	"context"

	"github.com/Faultbox/frustumview/internal/config"
	"github.com/Faultbox/frustumview/internal/desktop"
	"github.com/Faultbox/frustumview/internal/logger"
	"github.com/Faultbox/frustumview/internal/viewer"
)

func runWindow(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signalContext(ctx)
	defer stop()

	v, err := viewer.New(cfg, nil)
	if err != nil {
		return fail("failed to create viewer", err)
	}

	if err := desktop.Run(ctx, v); err != nil {
		return fail("viewer error", err)
	}

	logger.Info("viewer closed normally")
	return nil
}
