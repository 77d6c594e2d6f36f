package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/beehive-drones/admin/internal/buildinfo"
	"github.com/beehive-drones/admin/internal/fakeapi"
	"github.com/beehive-drones/admin/internal/logging"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := fakeapi.LoadConfig(nil)
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("fakeapi", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Addr, "addr", "a", cfg.Addr, "listen address")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "text", "log format (text, json)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	log, err := logging.New(os.Stderr, logging.Options{Level: *logLevel, Format: *logFormat})
	if err != nil {
		return err
	}

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	return fakeapi.Run(ctx, *cfg, log)
}
