// Package bootstrap builds the object graph of one process and runs it:
// a single annotation walk to stdout, or the HTTP server with -serve.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"PageLens/annotation"
	walker "PageLens/block_walker"
	"PageLens/config"
	"PageLens/logging"
	decoder "PageLens/page_decoder"
	"PageLens/server"
	"PageLens/storage_engine/bufferpool"
	diskmanager "PageLens/storage_engine/disk_manager"
)

// Exit statuses.
const (
	ExitOK      = 0
	ExitProblem = 1 // usage error, fatal error or at least one diagnostic
)

// Streams are the process's standard streams.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run parses args (without the program name), builds the container and
// returns the process exit status.
func Run(args []string, streams Streams) int {
	container := dig.New()
	serviceConstructors := []interface{}{
		func() (config.Config, error) { return config.Load(args, streams.Stderr) },
		func(cfg config.Config) (*zap.Logger, error) { return logging.New(cfg.Logger, streams.Stderr) },
		diskmanager.NewDiskManager,
		blockCache,
		server.NewServer,
	}
	for _, service := range serviceConstructors {
		if err := container.Provide(service); err != nil {
			fmt.Fprintf(streams.Stderr, "pagelens: %v\n", err)
			return ExitProblem
		}
	}

	status := ExitOK
	err := container.Invoke(func(cfg config.Config, log *zap.Logger, dm *diskmanager.DiskManager) {
		defer log.Sync()
		defer dm.CloseAll()

		if cfg.ServeAddr != "" {
			status = serve(container, log)
			return
		}
		status = annotate(cfg, dm, log, streams.Stdout)
	})
	if err != nil {
		// config.Load already printed usage for flag errors
		fmt.Fprintf(streams.Stderr, "pagelens: %v\n", dig.RootCause(err))
		return ExitProblem
	}
	return status
}

func blockCache(cfg config.Config, dm *diskmanager.DiskManager, log *zap.Logger) (*bufferpool.BufferPool, error) {
	return bufferpool.NewBufferPool(cfg.CacheBytes, dm, log)
}

// annotate writes the tag document for the configured file and range.
func annotate(cfg config.Config, dm *diskmanager.DiskManager, log *zap.Logger, stdout io.Writer) int {
	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))

	diagnostics := decoder.NewDiagnostics(log)
	w := walker.New(dm, annotation.NewXMLWriter(stdout), diagnostics, log, walker.FromConfig(cfg))
	_, err := w.Run(context.Background(), annotation.DocHeader{
		Created: time.Now(),
		Options: cfg.Options,
		Path:    cfg.Path,
		RunID:   runID,
	})
	if err != nil {
		log.Error("fatal", zap.Error(err))
		return ExitProblem
	}
	if diagnostics.Count() > 0 {
		return ExitProblem
	}
	return ExitOK
}

func serve(container *dig.Container, log *zap.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := container.Invoke(func(s *server.Server, pool *bufferpool.BufferPool) error {
		defer pool.Close()
		return s.Run(ctx)
	})
	if err != nil {
		log.Error("server stopped", zap.Error(errors.Cause(err)))
		return ExitProblem
	}
	return ExitOK
}
