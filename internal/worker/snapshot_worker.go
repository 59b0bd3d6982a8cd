package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deskops/incident-desk/internal/domain"
	"github.com/deskops/incident-desk/internal/events"
	"github.com/deskops/incident-desk/internal/service"
)

// Exporter produces the current desk as flat records.
type Exporter interface {
	Export() []domain.Record
}

// SnapshotWorker saves the desk to a store after every mutation. The export
// is taken synchronously inside the event handler, on the goroutine that
// changed the desk; only the write happens in the background. Pending
// snapshots are coalesced so the store always ends on the latest one.
type SnapshotWorker struct {
	source       Exporter
	store        service.RecordStore
	logger       *zap.Logger
	pending      chan []domain.Record
	flushTimeout time.Duration
}

// NewSnapshotWorker constructs the worker.
func NewSnapshotWorker(source Exporter, store service.RecordStore, logger *zap.Logger) *SnapshotWorker {
	return &SnapshotWorker{
		source:       source,
		store:        store,
		logger:       logger,
		pending:      make(chan []domain.Record, 1),
		flushTimeout: 5 * time.Second,
	}
}

// Register subscribes the worker to every mutation event.
func (w *SnapshotWorker) Register(d events.Dispatcher) {
	events.SubscribeAll(d, w.capture, events.MutationEvents...)
}

func (w *SnapshotWorker) capture(_ context.Context, _ events.Event) error {
	snapshot := w.source.Export()
	select {
	case w.pending <- snapshot:
		return nil
	default:
	}
	// replace the unsaved snapshot with the newer one
	select {
	case <-w.pending:
	default:
	}
	select {
	case w.pending <- snapshot:
	default:
	}
	return nil
}

// Run writes snapshots until ctx is done, then flushes whatever is pending.
func (w *SnapshotWorker) Run(ctx context.Context) {
	for {
		select {
		case records := <-w.pending:
			w.save(ctx, records)
		case <-ctx.Done():
			select {
			case records := <-w.pending:
				flushCtx, cancel := context.WithTimeout(context.Background(), w.flushTimeout)
				w.save(flushCtx, records)
				cancel()
			default:
			}
			return
		}
	}
}

func (w *SnapshotWorker) save(ctx context.Context, records []domain.Record) {
	if err := w.store.Save(ctx, records); err != nil {
		w.logger.Error("snapshot save failed", zap.Error(err), zap.Int("incidents", len(records)))
		return
	}
	w.logger.Debug("snapshot saved", zap.Int("incidents", len(records)))
}
