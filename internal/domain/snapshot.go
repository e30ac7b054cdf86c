package domain

import (
	"context"
	"time"
)

// CurrentSchemaVersion is the snapshot layout this build reads and writes.
// A persisted snapshot with any other version is discarded on load.
const CurrentSchemaVersion = "2.0.0"

// Metadata describes a snapshot.
type Metadata struct {
	Version     string    `json:"version"`
	LastUpdated time.Time `json:"last_updated"`
}

// Snapshot is the whole table graph, serialized as one blob.
type Snapshot struct {
	Metadata       Metadata                  `json:"metadata"`
	Tenants        map[string]*Tenant        `json:"tenants"`
	Users          map[string]*User          `json:"users"`
	QuizSets       map[string]*QuizSet       `json:"quiz_sets"`
	QuizQuestions  map[string]*QuizQuestion  `json:"quiz_questions"`
	UserAttempts   map[string]*UserAttempt   `json:"user_attempts"`
	AttemptAnswers map[string]*AttemptAnswer `json:"attempt_answers"`
	UserSessions   map[string]*UserSession   `json:"user_sessions"`
}

// NewSnapshot returns an empty snapshot stamped with version.
func NewSnapshot(version string) *Snapshot {
	return &Snapshot{
		Metadata:       Metadata{Version: version, LastUpdated: time.Now()},
		Tenants:        make(map[string]*Tenant),
		Users:          make(map[string]*User),
		QuizSets:       make(map[string]*QuizSet),
		QuizQuestions:  make(map[string]*QuizQuestion),
		UserAttempts:   make(map[string]*UserAttempt),
		AttemptAnswers: make(map[string]*AttemptAnswer),
		UserSessions:   make(map[string]*UserSession),
	}
}

// EnsureTables replaces nil tables with empty ones.
func (s *Snapshot) EnsureTables() {
	if s.Tenants == nil {
		s.Tenants = make(map[string]*Tenant)
	}
	if s.Users == nil {
		s.Users = make(map[string]*User)
	}
	if s.QuizSets == nil {
		s.QuizSets = make(map[string]*QuizSet)
	}
	if s.QuizQuestions == nil {
		s.QuizQuestions = make(map[string]*QuizQuestion)
	}
	if s.UserAttempts == nil {
		s.UserAttempts = make(map[string]*UserAttempt)
	}
	if s.AttemptAnswers == nil {
		s.AttemptAnswers = make(map[string]*AttemptAnswer)
	}
	if s.UserSessions == nil {
		s.UserSessions = make(map[string]*UserSession)
	}
}

// SnapshotPersister stores the serialized snapshot under a single key.
type SnapshotPersister interface {
	// Load returns the stored blob, or nil and no error when nothing is stored.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored blob.
	Save(ctx context.Context, blob []byte) error
	// Close releases any connection held by the persister.
	Close() error
}

// BackupRepository exports and restores the whole database.
type BackupRepository interface {
	ExportDatabase(ctx context.Context) ([]byte, error)
	ImportDatabase(ctx context.Context, blob []byte) error
	ResetDatabase(ctx context.Context) error
}

// Store is the full relational store used by the services.
type Store interface {
	TenantRepository
	UserRepository
	SessionRepository
	QuizSetRepository
	AttemptRepository
	BackupRepository
}

// RecordStore is the table-level surface shared by the local store and the
// remote database, so callers can work against either one. List methods
// return every row when tenantID is empty.
type RecordStore interface {
	ListTenants(ctx context.Context) ([]*Tenant, error)
	CreateTenant(ctx context.Context, in NewTenant) (*Tenant, error)
	DeleteTenant(ctx context.Context, id string) (bool, error)
	ListUsers(ctx context.Context, tenantID string) ([]*User, error)
	CreateUser(ctx context.Context, in NewUser) (*User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
	ListQuizSets(ctx context.Context, tenantID string) ([]*QuizSet, error)
	CreateQuizSet(ctx context.Context, in NewQuizSet) (*QuizSet, error)
	DeleteQuizSet(ctx context.Context, id string) (bool, error)
	ListTestResults(ctx context.Context, tenantID string) ([]*UserAttempt, error)
	SaveTestResult(ctx context.Context, in TestResult) (*UserAttempt, error)
}
