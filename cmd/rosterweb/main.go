package main

import (
	"context"
	"errors"
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
	"studentroster/internal/web"
)

type options struct {
	addr    string
	apiURL  string
	verbose bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.addr, "addr", "", "listen address (overrides ROSTER_LISTEN_ADDR)")
	flag.StringVar(&opts.apiURL, "api-url", "", "backend base URL (overrides ROSTER_API_URL)")
	flag.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rosterweb [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Rosterweb serves the student list page; every page load fetches the\n")
		fmt.Fprintf(os.Stderr, "roster from the backend once.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

func run(opts options) error {
	if opts.addr != "" {
		os.Setenv("ROSTER_LISTEN_ADDR", opts.addr)
	}
	if opts.apiURL != "" {
		os.Setenv("ROSTER_API_URL", opts.apiURL)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var log diag.Logger = diag.New(os.Stderr, "rosterweb", opts.verbose || cfg.Env == "dev")
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

	srv := web.NewServer(&web.Options{
		Address:  cfg.ListenAddr,
		AdminURL: cfg.AdminURL(),
		Fetcher:  student.NewClient(cfg.APIBaseURL, student.WithTracerProvider(tp.TracerProvider())),
		Logger:   log,
		Debug:    cfg.Env == "dev",
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()
	log.Info("listening", "addr", cfg.ListenAddr, "api_url", cfg.APIBaseURL)

	select {
	case err = <-errc:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = errors.Join(err, srv.Stop(shutdownCtx), tp.Shutdown(shutdownCtx))
	return err
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "rosterweb: %v\n", err)
		os.Exit(1)
	}
}
