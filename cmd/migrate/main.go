package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"yap-backend/internal/common/config"
	"yap-backend/internal/common/logger"
	"yap-backend/internal/platform/postgres"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <up|down|status|version|redo|up-to VERSION|down-to VERSION>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load: %v\n", err)
		os.Exit(1)
	}
	logger.Init("yap-migrate", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := postgres.NewClient(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	defer client.Close()

	command := flag.Arg(0)
	if err := postgres.Migrate(ctx, client.GetDB().DB, command, flag.Args()[1:]...); err != nil {
		logger.Error().Err(err).Str("command", command).Msg("Migration failed")
		client.Close()
		os.Exit(1)
	}

	logger.Info().Str("command", command).Msg("Migration finished")
}
