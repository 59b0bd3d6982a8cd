package main

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/deskops/incident-desk/internal/persistence"
	"github.com/deskops/incident-desk/internal/service"
)

// desk is the incident service loaded from the desk file.
type desk struct {
	*service.IncidentService
	store  *persistence.FileStore
	logger *zap.Logger
}

func openDesk(ctx context.Context, opts *rootOptions) (*desk, error) {
	store := persistence.NewFileStore(opts.file)
	svc := service.NewIncidentService(service.IncidentDependencies{})
	if err := svc.LoadFrom(ctx, store); err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.file, err)
	}
	opts.logger.Debug("desk loaded", zap.String("file", opts.file), zap.Int("count", len(svc.ListAll())))
	return &desk{IncidentService: svc, store: store, logger: opts.logger}, nil
}

func (d *desk) save(ctx context.Context) error {
	if err := d.SaveTo(ctx, d.store); err != nil {
		return fmt.Errorf("save %s: %w", d.store.Path(), err)
	}
	d.logger.Debug("desk saved", zap.String("file", d.store.Path()))
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid incident id %q", arg)
	}
	return id, nil
}
