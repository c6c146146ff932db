// Package storage persists ingested activity snapshots. The engine itself
// never touches storage; the REST surface resolves usernames to snapshots
// here before scoring.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/socialsentrix/sentrix/internal/setup/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a username.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotPayload is the stored form of an ingested profile.
type SnapshotPayload struct {
	Activity []*reputation.ActivityItem `json:"activity"`
	Account  reputation.AccountMetadata `json:"account"`
}

// Snapshot is one ingested activity snapshot row.
type Snapshot struct {
	bun.BaseModel `bun:"table:snapshots,alias:s"`

	ID        uuid.UUID `bun:",pk,type:uuid"`
	Platform  string    `bun:",notnull"`
	Username  string    `bun:",notnull"`
	Payload   []byte    `bun:"type:jsonb,notnull"`
	CreatedAt time.Time `bun:",notnull"`
}

// Client defines snapshot persistence operations.
type Client interface {
	// SaveSnapshot stores a new snapshot for a platform/username pair.
	SaveSnapshot(ctx context.Context, platform, username string, payload *SnapshotPayload) (uuid.UUID, error)
	// GetSnapshot returns the most recent snapshot for a platform/username pair.
	GetSnapshot(ctx context.Context, platform, username string) (*SnapshotPayload, error)
	// Close gracefully shuts down the database connection.
	Close() error
}

type clientImpl struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewConnection establishes a database connection and ensures the snapshot
// table exists.
func NewConnection(ctx context.Context, cfg *config.PostgreSQL, logger *zap.Logger) (Client, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithAddr(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.DBName),
		pgdriver.WithInsecure(true),
		pgdriver.WithApplicationName("sentrix"),
	))

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)

	db := bun.NewDB(sqldb, pgdialect.New())

	if _, err := db.NewCreateTable().Model((*Snapshot)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	logger.Named("storage").Debug("Connected to database",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName))

	return &clientImpl{
		db:     db,
		logger: logger.Named("storage"),
	}, nil
}

func (c *clientImpl) SaveSnapshot(
	ctx context.Context, platform, username string, payload *SnapshotPayload,
) (uuid.UUID, error) {
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode snapshot payload: %w", err)
	}

	snapshot := &Snapshot{
		ID:        uuid.New(),
		Platform:  strings.ToLower(platform),
		Username:  strings.ToLower(username),
		Payload:   encoded,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := c.db.NewInsert().Model(snapshot).Exec(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	c.logger.Debug("Saved snapshot",
		zap.String("platform", snapshot.Platform),
		zap.String("username", snapshot.Username),
		zap.Int("activity", len(payload.Activity)))

	return snapshot.ID, nil
}

func (c *clientImpl) GetSnapshot(ctx context.Context, platform, username string) (*SnapshotPayload, error) {
	snapshot := new(Snapshot)

	err := c.db.NewSelect().
		Model(snapshot).
		Where("platform = ?", strings.ToLower(platform)).
		Where("username = ?", strings.ToLower(username)).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}

		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var payload SnapshotPayload
	if err := sonic.Unmarshal(snapshot.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot payload: %w", err)
	}

	return &payload, nil
}

func (c *clientImpl) Close() error {
	return c.db.Close()
}
