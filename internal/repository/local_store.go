package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"quiz-hub/internal/domain"
	"quiz-hub/internal/metrics"
	"quiz-hub/internal/util"

	"go.uber.org/zap"
)

// SeedAdmin is the product admin inserted whenever the store is (re)seeded.
type SeedAdmin struct {
	Name     string
	Email    string
	Password string
}

// Options configures a LocalStore.
type Options struct {
	// Version is stamped on new snapshots; a loaded snapshot with another
	// version is discarded.
	Version    string
	BcryptCost int
	// SeedAdmin is skipped when nil or when its email is empty.
	SeedAdmin *SeedAdmin
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// LocalStore is the in-memory relational store. Every mutation is applied to
// the maps under a write lock and then written through to the persister as a
// full snapshot.
type LocalStore struct {
	persister domain.SnapshotPersister
	logger    *zap.Logger
	opts      Options

	mu   sync.RWMutex
	data *domain.Snapshot

	// persistMu is taken before mu is released so snapshots reach the
	// persister in mutation order.
	persistMu sync.Mutex
}

var _ domain.Store = (*LocalStore)(nil)

// errNoRow aborts a mutation whose target row is missing; public methods
// turn it into a nil result.
var errNoRow = errors.New("row not found")

// NewLocalStore creates a store. Call Initialize before use.
func NewLocalStore(persister domain.SnapshotPersister, logger *zap.Logger, opts Options) *LocalStore {
	if opts.Version == "" {
		opts.Version = domain.CurrentSchemaVersion
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStore{
		persister: persister,
		logger:    logger,
		opts:      opts,
		data:      domain.NewSnapshot(opts.Version),
	}
}

// Initialize loads the persisted snapshot. A missing, undecodable, outdated
// or inconsistent snapshot is replaced by a freshly seeded one. Errors reading the
// backend are returned rather than overwriting data that may still exist.
func (s *LocalStore) Initialize(ctx context.Context) error {
	blob, err := s.persister.Load(ctx)
	if err != nil {
		return domain.NewStorageError("failed to load snapshot", err)
	}

	s.mu.Lock()
	reseed := true
	switch {
	case blob == nil:
		s.logger.Info("No snapshot found, seeding a new database")
	default:
		snap := &domain.Snapshot{}
		if err := json.Unmarshal(blob, snap); err != nil {
			s.logger.Warn("Snapshot is corrupted, reinitializing", zap.Error(err))
		} else if snap.Metadata.Version != s.opts.Version {
			s.logger.Warn("Snapshot version mismatch, reinitializing",
				zap.String("found", snap.Metadata.Version),
				zap.String("expected", s.opts.Version))
		} else if err := loadable(snap); err != nil {
			s.logger.Warn("Snapshot failed integrity check, reinitializing", zap.Error(err))
		} else {
			s.data = snap
			reseed = false
			s.logger.Info("Snapshot loaded",
				zap.Int("tenants", len(snap.Tenants)),
				zap.Int("users", len(snap.Users)),
				zap.Int("quiz_sets", len(snap.QuizSets)),
				zap.Int("attempts", len(snap.UserAttempts)))
		}
	}
	if !reseed {
		s.mu.Unlock()
		return nil
	}

	if err := s.seedLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.commitLocked(ctx, "initialize")
	return nil
}

// Close flushes nothing (every mutation is already written) and releases the
// persister.
func (s *LocalStore) Close(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if err := s.persister.Close(); err != nil {
		return domain.NewStorageError("failed to close snapshot storage", err)
	}
	return nil
}

// seedLocked replaces the data with an empty snapshot holding only the seed
// admin. The current data is untouched when seeding fails. Caller holds mu.
func (s *LocalStore) seedLocked() error {
	fresh := domain.NewSnapshot(s.opts.Version)
	seed := s.opts.SeedAdmin
	if seed == nil || seed.Email == "" {
		s.data = fresh
		return nil
	}
	digest, err := util.HashPassword(seed.Password, s.opts.BcryptCost)
	if err != nil {
		return domain.NewInternalError("failed to hash seed admin password", err)
	}
	now := s.opts.Now()
	admin := &domain.User{
		ID:           util.NewULID(),
		Name:         seed.Name,
		Email:        seed.Email,
		PasswordHash: digest,
		Role:         domain.RoleProductAdmin,
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	fresh.Users[admin.ID] = admin
	s.data = fresh
	return nil
}

// mutate runs fn under the write lock and persists the result when fn
// succeeds. fn must validate before it changes anything.
func (s *LocalStore) mutate(ctx context.Context, op string, fn func(db *domain.Snapshot) error) error {
	s.mu.Lock()
	if err := fn(s.data); err != nil {
		s.mu.Unlock()
		return err
	}
	s.commitLocked(ctx, op)
	return nil
}

// commitLocked serializes the snapshot and writes it out. It must be called
// with mu held and releases it.
func (s *LocalStore) commitLocked(ctx context.Context, op string) {
	s.data.Metadata.LastUpdated = s.opts.Now()
	blob, err := json.Marshal(s.data)

	s.persistMu.Lock()
	s.mu.Unlock()
	defer s.persistMu.Unlock()

	metrics.StoreMutations.WithLabelValues(op).Inc()
	if err != nil {
		metrics.SnapshotWrites.WithLabelValues("error").Inc()
		s.logger.Error("Failed to serialize snapshot", zap.String("op", op), zap.Error(err))
		return
	}
	// A failed write leaves memory ahead of storage; the next successful
	// write carries the full state again.
	if err := s.persister.Save(ctx, blob); err != nil {
		metrics.SnapshotWrites.WithLabelValues("error").Inc()
		s.logger.Error("Failed to persist snapshot", zap.String("op", op), zap.Error(err))
		return
	}
	metrics.SnapshotWrites.WithLabelValues("ok").Inc()
	metrics.SnapshotBytes.Set(float64(len(blob)))
}

// ExportDatabase returns the full snapshot as indented JSON.
func (s *LocalStore) ExportDatabase(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return nil, domain.NewInternalError("failed to export database", err)
	}
	return blob, nil
}

// ImportDatabase replaces all data with the given export. The blob must carry
// the metadata, users and tenants keys, the current version, and intact
// foreign keys; nothing changes when any check fails.
func (s *LocalStore) ImportDatabase(ctx context.Context, blob []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(blob, &keys); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "import is not valid JSON", err)
	}
	for _, k := range []string{"metadata", "users", "tenants"} {
		if _, ok := keys[k]; !ok {
			return domain.NewInvalidInputError("Invalid database format: missing " + k)
		}
	}

	snap := &domain.Snapshot{}
	if err := json.Unmarshal(blob, snap); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "import does not match the database layout", err)
	}
	if snap.Metadata.Version != s.opts.Version {
		return domain.NewInvalidInputError("Database version mismatch: " + snap.Metadata.Version).
			WithContext("expected", s.opts.Version)
	}
	if err := loadable(snap); err != nil {
		return err
	}

	return s.mutate(ctx, "import", func(db *domain.Snapshot) error {
		s.data = snap
		return nil
	})
}

// ResetDatabase discards everything and reseeds.
func (s *LocalStore) ResetDatabase(ctx context.Context) error {
	return s.mutate(ctx, "reset", func(db *domain.Snapshot) error {
		return s.seedLocked()
	})
}

// loadable normalizes a decoded snapshot and checks it can back the store.
func loadable(snap *domain.Snapshot) error {
	snap.EnsureTables()
	if err := checkIntegrity(snap); err != nil {
		return err
	}
	detachQuestions(snap)
	return nil
}

// detachQuestions clears questions embedded in quiz set rows; the question
// table is authoritative.
func detachQuestions(snap *domain.Snapshot) {
	for _, qs := range snap.QuizSets {
		qs.Questions = nil
	}
}

// checkIntegrity verifies role/tenant rules, email uniqueness and that every
// foreign key resolves.
func checkIntegrity(snap *domain.Snapshot) error {
	emails := make(map[string]string, len(snap.Users))
	for id, u := range snap.Users {
		if u == nil || u.ID != id {
			return domain.NewInvalidInputError("user row key mismatch: " + id)
		}
		if err := domain.ValidateRoleTenant(u.Role, u.TenantID); err != nil {
			return domain.NewInvalidInputError("user " + id + ": " + err.Error())
		}
		if u.TenantID != "" {
			if _, ok := snap.Tenants[u.TenantID]; !ok {
				return domain.NewInvalidInputError("user " + id + " references unknown tenant " + u.TenantID)
			}
		}
		if other, dup := emails[u.Email]; dup {
			return domain.NewInvalidInputError("users " + other + " and " + id + " share an email")
		}
		emails[u.Email] = id
	}
	for id, t := range snap.Tenants {
		if t == nil || t.ID != id {
			return domain.NewInvalidInputError("tenant row key mismatch: " + id)
		}
	}
	for id, qs := range snap.QuizSets {
		if qs == nil || qs.ID != id {
			return domain.NewInvalidInputError("quiz set row key mismatch: " + id)
		}
		if qs.TenantID != "" {
			if _, ok := snap.Tenants[qs.TenantID]; !ok {
				return domain.NewInvalidInputError("quiz set " + id + " references unknown tenant " + qs.TenantID)
			}
		}
	}
	for id, q := range snap.QuizQuestions {
		if q == nil {
			return domain.NewInvalidInputError("empty question row: " + id)
		}
		if _, ok := snap.QuizSets[q.QuizSetID]; !ok {
			return domain.NewInvalidInputError("question " + id + " references unknown quiz set " + q.QuizSetID)
		}
	}
	for id, a := range snap.UserAttempts {
		if a == nil {
			return domain.NewInvalidInputError("empty attempt row: " + id)
		}
		if _, ok := snap.Users[a.UserID]; !ok {
			return domain.NewInvalidInputError("attempt " + id + " references unknown user " + a.UserID)
		}
	}
	for id, ans := range snap.AttemptAnswers {
		if ans == nil {
			return domain.NewInvalidInputError("empty answer row: " + id)
		}
		if _, ok := snap.UserAttempts[ans.AttemptID]; !ok {
			return domain.NewInvalidInputError("answer " + id + " references unknown attempt " + ans.AttemptID)
		}
	}
	for id, sess := range snap.UserSessions {
		if sess == nil {
			return domain.NewInvalidInputError("empty session row: " + id)
		}
		if _, ok := snap.Users[sess.UserID]; !ok {
			return domain.NewInvalidInputError("session " + id + " references unknown user " + sess.UserID)
		}
	}
	return nil
}
