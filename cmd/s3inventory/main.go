package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/younsl/s3inventory/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, newRootCmd(), logger.Log)
	stop()
	os.Exit(code)
}

// execute runs cmd and returns the process exit code, logging a top-level failure
func execute(ctx context.Context, cmd *cobra.Command, log logrus.FieldLogger) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error(err)
		return 1
	}
	return 0
}
