package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	artshopcmd "github.com/louisbranch/artshop/internal/cmd/artshop"
)

func main() {
	cfg, err := artshopcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[ARTSHOP] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := artshopcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("run %s: %v", cfg.Command, err)
	}
}
