package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FilePersister stores the snapshot as a single JSON file on local disk.
type FilePersister struct {
	logger *zap.Logger
	path   string
}

// NewFilePersister creates the base directory if needed. The key becomes the
// file name, with characters unsafe for file names replaced.
func NewFilePersister(logger *zap.Logger, baseDir, key string) (*FilePersister, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir %s: %w", baseDir, err)
	}
	name := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(key) + ".json"
	return &FilePersister{
		logger: logger,
		path:   filepath.Join(baseDir, name),
	}, nil
}

// Path returns the snapshot file location.
func (p *FilePersister) Path() string {
	return p.path
}

func (p *FilePersister) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", p.path, err)
	}
	return data, nil
}

// Save writes to a temp file and renames it over the old snapshot so a crash
// mid-write never leaves a truncated file behind.
func (p *FilePersister) Save(ctx context.Context, blob []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(p.path), filepath.Base(p.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	p.logger.Debug("Snapshot written", zap.String("path", p.path), zap.Int("bytes", len(blob)))
	return nil
}

func (p *FilePersister) Close() error {
	return nil
}
