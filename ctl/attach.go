// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/featurebasedb/taboo"
	"github.com/featurebasedb/taboo/client"
	"github.com/featurebasedb/taboo/ingest"
	"github.com/featurebasedb/taboo/logger"
	"github.com/featurebasedb/taboo/monitor"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Validation errors of the attach command.
var (
	ErrFileRequired = errors.New("file required")
	ErrHostRequired = errors.New("host required")
	ErrKeyRequired  = errors.New("key required (or use --dry-run)")
	ErrInvalidLimit = errors.New("limit must not be negative")
)

// AttachCommand loads a tab-separated file into a taboo index, one attach
// call per record.
type AttachCommand struct {
	Config AttachConfig

	// RunID identifies the last Run in its log lines.
	RunID string

	// Stats of the last Run.
	Stats ingest.Stats

	// newAttacher is replaced in tests.
	newAttacher func(cfg *AttachConfig, log logger.Logger) (taboo.Attacher, error)

	// Standard input/output
	*taboo.CmdIO
}

// NewAttachCommand returns a new instance of AttachCommand.
func NewAttachCommand(stdin io.Reader, stdout, stderr io.Writer) *AttachCommand {
	return &AttachCommand{
		Config: NewAttachConfig(),
		CmdIO:  taboo.NewCmdIO(stdin, stdout, stderr),
	}
}

func (cmd *AttachCommand) validate() error {
	cfg := &cmd.Config
	if cfg.File == "" {
		return ErrFileRequired
	} else if cfg.Limit < 0 {
		return ErrInvalidLimit
	}
	if cfg.DryRun {
		return nil
	}
	if cfg.Host == "" {
		return ErrHostRequired
	} else if cfg.Key == "" {
		return ErrKeyRequired
	}
	return nil
}

// Run executes the load. The source is closed on every return path.
func (cmd *AttachCommand) Run(ctx context.Context) (err error) {
	if err := cmd.validate(); err != nil {
		return err
	}
	cfg := &cmd.Config

	closeLog, err := cmd.setupLogger(ctx)
	if err != nil {
		return errors.Wrap(err, "setting up logger")
	}
	defer closeLog()
	cmd.RunID = uuid.New().String()
	log := cmd.Logger().WithPrefix("[" + cmd.RunID[:8] + "] ")

	if err := monitor.InitErrorMonitor(cfg.SentryDSN, taboo.Version); err != nil {
		log.Warnf("error monitor disabled: %v", err)
	}
	span := monitor.StartSpan(ctx, "ingest", "attach")
	defer func() {
		monitor.Finish(span)
		if err != nil {
			log.Errorf("run %s failed: %v", cmd.RunID, err)
			monitor.CaptureError(errors.Wrapf(err, "run %s", cmd.RunID))
		}
		monitor.Flush()
	}()

	src, err := ingest.OpenSource(cfg.File, cmd.Stdin)
	if err != nil {
		return err
	}
	defer src.Close()

	newAttacher := cmd.newAttacher
	if newAttacher == nil {
		newAttacher = defaultAttacher
	}
	attacher, err := newAttacher(cfg, log)
	if err != nil {
		return errors.Wrap(err, "creating client")
	}

	if cfg.DryRun {
		log.Infof("run %s: dry run of '%s', nothing is sent", cmd.RunID, cfg.File)
	} else {
		log.Infof("run %s: loading '%s' into %s:%d, limit %d", cmd.RunID, cfg.File, cfg.Host, cfg.Port, cfg.Limit)
	}

	progress := &ingest.ProgressTracker{}
	driver := &ingest.Driver{
		Lines:         src,
		Attacher:      attacher,
		Limit:         cfg.Limit,
		SkipMalformed: cfg.SkipMalformed,
		Progress:      progress,
		Log:           log.WithPrefix("[ingest] "),
	}

	var ln net.Listener
	if cfg.Stats != "" {
		if ln, err = net.Listen("tcp", cfg.Stats); err != nil {
			return errors.Wrapf(err, "listening for stats on %s", cfg.Stats)
		}
		log.Infof("serving metrics on http://%s/metrics", ln.Addr())
	}

	start := time.Now()
	runErr := cmd.runDriver(ctx, driver, progress, ln)
	st := cmd.Stats
	log.Infof("read %d lines, attached %d records, skipped %d in %s",
		st.Read, st.Attached, st.Skipped, time.Since(start).Round(time.Millisecond))
	if st.Limited {
		log.Infof("stopped at the limit of %d records; the rest of '%s' was not read", cfg.Limit, cfg.File)
	}
	return runErr
}

// runDriver runs the driver alongside the progress reporter and, if ln is
// set, the metrics listener. Both helpers stop when the driver returns.
func (cmd *AttachCommand) runDriver(ctx context.Context, driver *ingest.Driver, progress *ingest.ProgressTracker, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	helpers, stopHelpers := context.WithCancel(gctx)
	defer stopHelpers()

	var srv *http.Server
	if ln != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
				return errors.Wrap(err, "serving stats")
			}
			return nil
		})
	}

	if interval := time.Duration(cmd.Config.ProgressInterval); interval > 0 {
		g.Go(func() error {
			progress.Report(helpers, interval, driver.Log)
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			stopHelpers()
			if srv != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}
		}()
		var err error
		cmd.Stats, err = driver.Run(gctx)
		return err
	})
	return g.Wait()
}

// setupLogger points the command's logger at --log-path, if set, and
// reopens that file on SIGHUP so it can be rotated. The returned func
// releases both.
func (cmd *AttachCommand) setupLogger(ctx context.Context) (func(), error) {
	cfg := &cmd.Config
	if cfg.LogPath == "" {
		cmd.SetLogger(logger.NewLogger(cmd.Stderr, cfg.Verbose))
		return func() {}, nil
	}

	fw, err := logger.NewFileWriter(cfg.LogPath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening log file '%s'", cfg.LogPath)
	}
	log := logger.NewLogger(fw, cfg.Verbose)
	cmd.SetLogger(log)

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-hup:
				if err := fw.Reopen(); err != nil {
					log.Errorf("reopening log file '%s': %v", fw.Name(), err)
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return func() {
		signal.Stop(hup)
		close(done)
		fw.Close()
	}, nil
}

func defaultAttacher(cfg *AttachConfig, log logger.Logger) (taboo.Attacher, error) {
	if cfg.DryRun {
		return ingest.LogAttacher{Log: log.WithPrefix("[dry-run] ")}, nil
	}
	opts := append(cfg.clientOptions(), client.OptClientLogger(log.WithPrefix("[client] ")))
	return client.NewClient(cfg.Host, cfg.Port, cfg.Key, cfg.Secret, opts...)
}
