package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tiquete/internal/catalog"
	"tiquete/internal/config"
	"tiquete/internal/connectors/dir"
	"tiquete/internal/listener"
	"tiquete/internal/logger"
	"tiquete/internal/pipeline"
	"tiquete/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	must(cfg.Require("inbox_dir", cfg.InboxDir))
	must(cfg.Require("archive_dir", cfg.ArchiveDir))
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	store, err := storage.Open(cfg)
	must(err)
	defer store.Close()

	index, err := catalog.BuildIndex(cfg.SynonymsFile)
	if err != nil {
		if index == nil {
			must(err)
		}
		logger.Warn("synonym table has conflicts, first group kept", "error", err)
	}

	conn, err := dir.NewConnector(cfg.InboxDir)
	must(err)

	order, unknown := pipeline.ParseVendorList(cfg.VendorPriority)
	for _, n := range unknown {
		logger.Warn("ignoring unknown vendor in priority list", "vendor", n)
	}
	engine := pipeline.NewEngine(pipeline.NewClassifier(order))
	proc := pipeline.NewProcessingService(store, engine, pipeline.NewCanonicalizer(index))
	svc := listener.NewService(store, conn, proc, cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("listening for receipts", "inbox", cfg.InboxDir, "intervalSec", cfg.ListenerIntervalSec)
	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
