package remotedb

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"quiz-hub/internal/config"
	"quiz-hub/internal/domain"
	"quiz-hub/internal/metrics"

	"go.uber.org/zap"
)

// Endpoints of the MySQL-backed API the client stands in for.
const (
	PathTestConnection   = "/api/db/test-connection"
	PathInitializeSchema = "/api/db/initialize-schema"
	PathMigrateData      = "/api/db/migrate-data"
	PathHealth           = "/api/db/health"
	PathTenants          = "/api/tenants"
	PathUsers            = "/api/users"
	PathQuizSets         = "/api/quiz-sets"
	PathTestResults      = "/api/test-results"
)

// Tables created by InitializeSchema, in dependency order.
var Tables = []string{
	"tenants",
	"users",
	"quiz_sets",
	"quiz_questions",
	"user_attempts",
	"attempt_answers",
	"user_sessions",
}

// ConnectionInfo describes a successful connection test.
type ConnectionInfo struct {
	Host          string    `json:"host"`
	Port          int       `json:"port"`
	Database      string    `json:"database"`
	ServerVersion string    `json:"server_version"`
	ConnectedAt   time.Time `json:"connected_at"`
}

// SchemaInfo lists the tables the schema initialization created.
type SchemaInfo struct {
	Tables []string `json:"tables"`
}

// MigrationSummary counts the rows a migration would have copied.
type MigrationSummary struct {
	Tenants        int `json:"tenants"`
	Users          int `json:"users"`
	QuizSets       int `json:"quiz_sets"`
	QuizQuestions  int `json:"quiz_questions"`
	UserAttempts   int `json:"user_attempts"`
	AttemptAnswers int `json:"attempt_answers"`
}

// HealthStatus is the remote health report.
type HealthStatus struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	CheckedAt time.Time `json:"checked_at"`
}

// Client simulates the remote database API. Every call waits a random
// latency and answers with canned data; nothing is ever stored.
type Client struct {
	logger *zap.Logger

	mu  sync.RWMutex
	cfg config.RemoteConfig

	now func() time.Time
}

// NewClient creates a remote database client for cfg.
func NewClient(cfg config.RemoteConfig, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger, now: time.Now}
}

// Config returns the current connection settings.
func (c *Client) Config() config.RemoteConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Configure replaces the connection settings. Latency bounds are kept.
func (c *Client) Configure(host string, port int, database, user, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Host = host
	c.cfg.Port = port
	c.cfg.Database = database
	c.cfg.User = user
	c.cfg.Password = password
	c.logger.Info("Remote database configured",
		zap.String("host", host),
		zap.Int("port", port),
		zap.String("database", database))
}

func (c *Client) latency() time.Duration {
	cfg := c.Config()
	if cfg.MaxLatency <= cfg.MinLatency {
		return cfg.MinLatency
	}
	return cfg.MinLatency + rand.N(cfg.MaxLatency-cfg.MinLatency)
}

// wait blocks for the simulated latency or until ctx is done.
func (c *Client) wait(ctx context.Context) error {
	d := c.latency()
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// call runs one simulated request. The returned error is non-nil only when
// the request never completed; API failures travel in the Result.
func call[T any](ctx context.Context, c *Client, op, path string, respond func() Result[T]) (Result[T], error) {
	if err := c.wait(ctx); err != nil {
		metrics.RemoteCalls.WithLabelValues(op, "cancelled").Inc()
		c.logger.Warn("Remote call interrupted", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return Result[T]{}, err
	}
	res := respond()
	outcome := "success"
	if !res.Success {
		outcome = "failure"
	}
	metrics.RemoteCalls.WithLabelValues(op, outcome).Inc()
	c.logger.Debug("Remote call", zap.String("op", op), zap.String("path", path), zap.Bool("success", res.Success))
	return res, nil
}

func (c *Client) validate() error {
	cfg := c.Config()
	if cfg.Host == "" || cfg.Database == "" {
		return domain.NewInvalidInputError("remote database host and database name are required")
	}
	return nil
}

// TestConnection checks the configured connection settings.
func (c *Client) TestConnection(ctx context.Context) (Result[ConnectionInfo], error) {
	if err := c.validate(); err != nil {
		metrics.RemoteCalls.WithLabelValues("test_connection", "invalid").Inc()
		return Result[ConnectionInfo]{}, err
	}
	return call(ctx, c, "test_connection", PathTestConnection, func() Result[ConnectionInfo] {
		cfg := c.Config()
		return OK(ConnectionInfo{
			Host:          cfg.Host,
			Port:          cfg.Port,
			Database:      cfg.Database,
			ServerVersion: "8.0.35",
			ConnectedAt:   c.now(),
		})
	})
}

// InitializeSchema creates the remote tables.
func (c *Client) InitializeSchema(ctx context.Context) (Result[SchemaInfo], error) {
	if err := c.validate(); err != nil {
		return Result[SchemaInfo]{}, err
	}
	return call(ctx, c, "initialize_schema", PathInitializeSchema, func() Result[SchemaInfo] {
		return OK(SchemaInfo{Tables: append([]string(nil), Tables...)})
	})
}

// MigrateData uploads a local snapshot. The summary reports what would have
// been copied.
func (c *Client) MigrateData(ctx context.Context, snap *domain.Snapshot) (Result[MigrationSummary], error) {
	if err := c.validate(); err != nil {
		return Result[MigrationSummary]{}, err
	}
	if snap == nil {
		return Result[MigrationSummary]{}, domain.NewInvalidInputError("nothing to migrate")
	}
	return call(ctx, c, "migrate_data", PathMigrateData, func() Result[MigrationSummary] {
		return OK(MigrationSummary{
			Tenants:        len(snap.Tenants),
			Users:          len(snap.Users),
			QuizSets:       len(snap.QuizSets),
			QuizQuestions:  len(snap.QuizQuestions),
			UserAttempts:   len(snap.UserAttempts),
			AttemptAnswers: len(snap.AttemptAnswers),
		})
	})
}

// Health reports the remote status. An unconfigured client is reported as
// a failed result rather than an error.
func (c *Client) Health(ctx context.Context) (Result[HealthStatus], error) {
	return call(ctx, c, "health", PathHealth, func() Result[HealthStatus] {
		cfg := c.Config()
		if cfg.Host == "" {
			return Fail[HealthStatus]("remote database is not configured")
		}
		return OK(HealthStatus{
			Status:    "healthy",
			Database:  fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database),
			CheckedAt: c.now(),
		})
	})
}
