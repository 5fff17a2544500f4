package listener

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"tiquete/internal/config"
	"tiquete/internal/connectors"
	"tiquete/internal/logger"
	"tiquete/internal/pipeline"
	"tiquete/internal/storage"
)

type Service struct {
	store   storage.Store
	fetch   *connectors.FetchService
	proc    *pipeline.ProcessingService
	limiter *RateLimiter
	cfg     config.Config
}

type CycleResult struct {
	Fetched    int
	Processed  int
	Duplicates int
	Failed     int
	Exported   int
}

func NewService(store storage.Store, connector connectors.ReceiptConnector, proc *pipeline.ProcessingService, cfg config.Config) *Service {
	return &Service{
		store:   store,
		fetch:   connectors.NewFetchService(cfg.ArchiveDir, connector),
		proc:    proc,
		limiter: NewRateLimiter(cfg.ListenerRate),
		cfg:     cfg,
	}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if _, err := s.RunCycle(ctx); err != nil {
			logger.Error("listener cycle failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.ListenerIntervalSec) * time.Second):
		}
	}
}

// RunCycle drains up to ListenerFetchMax receipts from the inbox. A receipt
// that fails to process stays in the archive and does not stop the cycle.
func (s *Service) RunCycle(ctx context.Context) (CycleResult, error) {
	received, fetchResult, err := s.fetch.FetchAndStore(s.cfg.ListenerFetchMax)
	result := CycleResult{Fetched: fetchResult.Fetched}
	if err != nil && len(received) == 0 {
		return result, err
	}

	for _, msg := range received {
		if err := s.limiter.WaitTurn(ctx); err != nil {
			return result, err
		}

		kind := pipeline.SourceKindFromPath(msg.Name)
		res, err := s.proc.Process(msg.Name, kind, msg.Raw, "")
		if err != nil {
			result.Failed++
			logger.Warn("receipt failed", "name", msg.Name, "archived", msg.Path, "error", err)
			continue
		}
		if res.Duplicate {
			result.Duplicates++
			continue
		}
		result.Processed++

		if s.cfg.ListenerAutoExport {
			exported, err := s.export(res.ReceiptID, msg.Name)
			if err != nil {
				return result, err
			}
			if exported {
				result.Exported++
			}
		}
	}

	logger.Info("listener cycle done",
		"fetched", result.Fetched,
		"processed", result.Processed,
		"duplicates", result.Duplicates,
		"failed", result.Failed,
		"exported", result.Exported,
	)
	return result, err
}

func (s *Service) export(receiptID int, name string) (bool, error) {
	rec, err := s.store.GetReceipt(receiptID)
	if err != nil {
		return false, fmt.Errorf("loading receipt %d: %w", receiptID, err)
	}
	if len(rec.Products) == 0 {
		return false, nil
	}
	filename := fmt.Sprintf("%d_%s.xlsx", receiptID, sanitizeName(strings.TrimSuffix(name, filepath.Ext(name))))
	if err := pipeline.ExportReceiptToXLSX(*rec, filepath.Join(s.cfg.OutputDir, "listener", filename)); err != nil {
		return false, err
	}
	return true, nil
}

func sanitizeName(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}
