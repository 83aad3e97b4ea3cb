package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studentroster/internal/config"
	"studentroster/internal/diag"
	"studentroster/internal/student"
	"studentroster/internal/trace"
	"studentroster/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

type options struct {
	apiURL  string
	logFile string
	verbose bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.apiURL, "api-url", "", "backend base URL (overrides ROSTER_API_URL)")
	flag.StringVar(&opts.logFile, "log-file", "", "diagnostic log file (overrides ROSTER_LOG_FILE)")
	flag.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: roster [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Roster fetches the student list from the backend once and shows it.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

func run(opts options) error {
	if opts.apiURL != "" {
		os.Setenv("ROSTER_API_URL", opts.apiURL)
	}
	if opts.logFile != "" {
		os.Setenv("ROSTER_LOG_FILE", opts.logFile)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Log lines go to a file; stderr belongs to the full-screen UI.
	f, err := tea.LogToFile(cfg.LogFile, "")
	if err != nil {
		return fmt.Errorf("log file %q: %w", cfg.LogFile, err)
	}
	defer f.Close()
	var log diag.Logger = diag.New(f, "roster", opts.verbose)
	log = diag.WithRollbar(log, diag.RollbarOptions{Token: cfg.RollbarToken, Environment: cfg.Env})
	defer diag.CloseRollbar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := trace.Setup(ctx, trace.Options{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		Insecure:    cfg.Env != "prod",
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("trace shutdown", err)
		}
	}()

	log.Info("starting", "api_url", cfg.APIBaseURL, "env", cfg.Env)
	client := student.NewClient(cfg.APIBaseURL, student.WithTracerProvider(tp.TracerProvider()))
	view := ui.NewRosterView(ctx, client, cfg.AdminURL(), log)
	return ui.Run(ctx, ui.NewAppModel(view))
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "roster: %v\n", err)
		os.Exit(1)
	}
}
