package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"weekmd/internal/logging"
	"weekmd/internal/report"
	"weekmd/internal/watch"

	"go.uber.org/zap"
)

// watchAndRegenerate rewrites the report every time one of its inputs
// settles after a change, until interrupted. A failed regeneration is
// reported and watching continues.
func (c *cli) watchAndRegenerate(ctx context.Context, out io.Writer, cfg *report.Config, opts []report.Option) error {
	log := logging.For(c.logger, logging.CategoryWatch)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	var files []string
	for _, g := range cfg.Groups {
		files = append(files, g...)
	}

	w, err := watch.New(files, watch.WithLogger(log))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("Watching %s, press Ctrl+C to stop", plural(len(files), "file"))))
	return w.Run(ctx, func(changed []string) {
		log.Debug("Regenerating", zap.Strings("changed", changed))
		if err := report.Generate(cfg, opts...); err != nil {
			log.Error("Regeneration failed", zap.Error(err))
			fmt.Fprintln(out, "Error:", err)
			return
		}
		printWritten(out, cfg)
	})
}
