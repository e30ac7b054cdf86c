package snapshot

import (
	"context"
	"errors"

	"quiz-hub/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MultiPersister writes every snapshot to all backends in parallel and reads
// from the first backend that has one, in configuration order.
type MultiPersister struct {
	logger   *zap.Logger
	backends []domain.SnapshotPersister
}

func NewMultiPersister(logger *zap.Logger, backends ...domain.SnapshotPersister) *MultiPersister {
	return &MultiPersister{logger: logger, backends: backends}
}

func (p *MultiPersister) Load(ctx context.Context) ([]byte, error) {
	var errs []error
	for i, b := range p.backends {
		blob, err := b.Load(ctx)
		if err != nil {
			p.logger.Warn("Snapshot backend load failed", zap.Int("backend", i), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if blob != nil {
			return blob, nil
		}
	}
	return nil, errors.Join(errs...)
}

// Save writes to every backend even when one of them fails and returns the
// first failure.
func (p *MultiPersister) Save(ctx context.Context, blob []byte) error {
	var g errgroup.Group
	for i, b := range p.backends {
		i, b := i, b
		g.Go(func() error {
			if err := b.Save(ctx, blob); err != nil {
				p.logger.Warn("Snapshot backend save failed", zap.Int("backend", i), zap.Error(err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *MultiPersister) Close() error {
	var errs []error
	for _, b := range p.backends {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
