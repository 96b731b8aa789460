package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"bucketcopy/internal/app"
	"bucketcopy/internal/config"
	"bucketcopy/internal/domain"
	appErrors "bucketcopy/internal/errors"
	"bucketcopy/internal/infra/fs"
	"bucketcopy/internal/infra/lock"
	"bucketcopy/internal/logging"
	"bucketcopy/internal/presentation"
	"bucketcopy/internal/tui"
)

func run(ctx context.Context, flags config.Config, stdout, stderr io.Writer) error {
	if flags.NoColor {
		color.NoColor = true
	}
	logger := logging.New(stderr, flags.Verbose)

	cfg, err := flags.Resolve()
	if err != nil {
		return fatal(logger, appErrors.Wrap(appErrors.InvalidConfig, "config", "", err))
	}
	logger.Verbose = cfg.Verbose

	filesystem := fs.OSFS{}
	if err := app.ValidatePaths(filesystem, cfg.SourceDir, cfg.OutDir); err != nil {
		return fatal(logger, err)
	}

	runLock := lock.New(cfg.OutDir)
	if err := runLock.Acquire(); err != nil {
		kind := appErrors.IOFailure
		if errors.Is(err, lock.ErrHeld) {
			kind = appErrors.Locked
		}
		return fatal(logger, appErrors.Wrap(kind, "lock", cfg.OutDir, err))
	}
	defer func() {
		if err := runLock.Release(); err != nil {
			logger.Warnf("%v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TUI && !isTerminal(stdout) {
		logger.Warnf("--tui needs a terminal, falling back to log output")
		cfg.TUI = false
	}
	if cfg.TUI {
		return runTUI(ctx, cfg, filesystem, runLock.Path(), stdout, logger)
	}
	return runLog(ctx, cfg, filesystem, runLock.Path(), logger)
}

func runLog(ctx context.Context, cfg config.Config, filesystem app.FileSystem, lockPath string, logger logging.Logger) error {
	scheduler := app.Scheduler{
		FS: filesystem,
		Reporter: &presentation.LogReporter{
			Logger:  logger,
			Printer: presentation.Printer{Writer: logger.Writer, Verbose: cfg.Verbose},
		},
		Logger:  logger,
		Exclude: []string{lockPath},
	}
	if _, err := scheduler.Run(ctx, cfg.RunConfig()); err != nil {
		return fatal(logger, appErrors.Wrap(appErrors.Internal, "copy", cfg.SourceDir, err))
	}
	return nil
}

func runTUI(ctx context.Context, cfg config.Config, filesystem app.FileSystem, lockPath string, stdout io.Writer, logger logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.NewModel(tui.Config{
		SourceDir: cfg.SourceDir,
		OutDir:    cfg.OutDir,
		Cancel:    cancel,
	})
	program := tea.NewProgram(model, tea.WithOutput(stdout))

	scheduler := app.Scheduler{
		FS:       filesystem,
		Reporter: tui.NewReporter(program),
		Exclude:  []string{lockPath},
	}

	var (
		report domain.Report
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		report, runErr = scheduler.Run(ctx, cfg.RunConfig())
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		return fatal(logger, appErrors.Wrap(appErrors.Internal, "tui", "", err))
	}
	<-done
	if runErr != nil {
		return fatal(logger, appErrors.Wrap(appErrors.Internal, "copy", cfg.SourceDir, runErr))
	}

	printer := presentation.Printer{Writer: logger.Writer, Verbose: cfg.Verbose}
	if report.Cancelled {
		logger.Infof("Operation cancelled.")
	}
	printer.PrintSummary(report)
	printer.PrintProblems(report)
	logger.Infof("Completed.")
	return nil
}

func fatal(logger logging.Logger, err error) error {
	logger.Criticalf("%s", appErrors.UserMessage(err))
	if appErrors.IsValidation(err) {
		logger.Infof("Nothing was copied.")
	}
	return reportedError{err: err}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
