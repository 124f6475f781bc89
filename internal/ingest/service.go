// Package ingest orchestrates sheet loads: it runs the processor, persists
// successful loads, and caches the latest result for the HTTP layer.
package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"sheetfeed/internal/sheet"
)

// EntryStore is the persistence surface the service needs. Satisfied by
// *store.Store; tests substitute a fake.
type EntryStore interface {
	ReplaceLoad(ctx context.Context, loadID uuid.UUID, rows []sheet.ProcessedRow) error
}

// Service runs loads one at a time and remembers the most recent outcome.
// The mutex serializes overlapping refreshes: the processor builds each load
// in a per-call accumulator, but replacing the stored entries and the cached
// result must not interleave.
type Service struct {
	proc  *sheet.Processor
	store EntryStore

	mu         sync.Mutex
	lastResult *sheet.ProcessingResult
	lastLoadID uuid.UUID
	lastRun    time.Time
}

// NewService wires a processor to a store. The store may be nil, in which
// case loads are processed and cached but not persisted.
func NewService(proc *sheet.Processor, store EntryStore) *Service {
	return &Service{proc: proc, store: store}
}

// Refresh runs one load now. Successful loads are persisted under a fresh
// load ID. The result is cached and returned either way; a persistence
// failure is logged but does not fail the refresh, since the in-memory
// result is still servable.
func (s *Service) Refresh(ctx context.Context) *sheet.ProcessingResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	result := s.proc.LoadAndProcess(ctx)
	loadID := uuid.New()

	logger := slog.With("load_id", loadID, "duration_ms", time.Since(start).Milliseconds())
	if result.Success {
		logger.Info("sheet load succeeded",
			"total_rows", result.TotalRows,
			"valid_rows", result.ValidRows,
			"warnings", len(result.Warnings),
		)
		if s.store != nil {
			if err := s.store.ReplaceLoad(ctx, loadID, result.Rows); err != nil {
				logger.Error("persist load failed", "error", err)
			}
		}
	} else {
		logger.Warn("sheet load failed",
			"errors", len(result.Errors),
			"warnings", len(result.Warnings),
		)
	}

	s.lastResult = result
	s.lastLoadID = loadID
	s.lastRun = time.Now()
	return result
}

// LastResult returns the cached result of the most recent refresh.
// ok is false before the first refresh completes.
func (s *Service) LastResult() (result *sheet.ProcessingResult, loadID uuid.UUID, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult, s.lastLoadID, s.lastResult != nil
}

// UpdateConfig forwards a partial configuration change to the processor.
// The next refresh picks it up; a load in flight is unaffected.
func (s *Service) UpdateConfig(u sheet.ConfigUpdate) {
	s.proc.UpdateConfig(u)
}

// FieldSpecs returns the processor's current field table.
func (s *Service) FieldSpecs() []sheet.FieldSpec {
	return s.proc.FieldSpecs()
}

// StartRefreshScheduler refreshes immediately, then every interval until the
// context is cancelled. Individual load failures do not stop the scheduler;
// they surface in the cached result and the logs.
func (s *Service) StartRefreshScheduler(ctx context.Context, interval time.Duration) {
	slog.Info("refresh scheduler started", "interval", interval)

	s.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}
