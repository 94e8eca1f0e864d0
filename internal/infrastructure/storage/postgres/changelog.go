package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "posledger/internal/core/context"
	"posledger/internal/core/id"
	"posledger/pkg/logger"
)

// ChangeAction is the mutation recorded by the changelog.
type ChangeAction string

const (
	ChangeSave   ChangeAction = "save"
	ChangeDelete ChangeAction = "delete"
)

// CompressionAlgo specifies how a snapshot is stored.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// ChangeEntry is one recorded mutation with the post-change snapshot.
// Delete entries carry no snapshot.
type ChangeEntry struct {
	ID                 string          `db:"id" json:"id"`
	Collection         string          `db:"collection" json:"collection"`
	EntityID           string          `db:"entity_id" json:"entityId"`
	Action             ChangeAction    `db:"action" json:"action"`
	Snapshot           json.RawMessage `db:"snapshot" json:"snapshot,omitempty"`
	SnapshotCompressed []byte          `db:"snapshot_compressed" json:"-"`
	CompressionAlgo    CompressionAlgo `db:"compression_algo" json:"-"`
	UserID             string          `db:"user_id" json:"userId"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
}

// Changelog records every document mutation with a full snapshot. Stock is
// derived, so the changelog is the only place a deleted document's history
// survives. Large snapshots are zstd-compressed at rest.
type Changelog struct {
	pool              *Pool
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewChangelog creates a changelog writer.
func NewChangelog(pool *Pool) (*Changelog, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Changelog{
		pool:              pool,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 4 * 1024,
	}, nil
}

// Record writes one entry. Failures are logged, never propagated; losing a
// changelog row must not fail the mutation it describes.
func (c *Changelog) Record(ctx context.Context, collection, entityID string, action ChangeAction, snapshot []byte) {
	entry := ChangeEntry{
		ID:              id.NewString(),
		Collection:      collection,
		EntityID:        entityID,
		Action:          action,
		Snapshot:        snapshot,
		CompressionAlgo: CompressionNone,
		UserID:          appctx.GetUserID(ctx),
		CreatedAt:       time.Now().UTC(),
	}

	if len(entry.Snapshot) > c.compressThreshold {
		entry.SnapshotCompressed = c.encoder.EncodeAll(entry.Snapshot, nil)
		entry.Snapshot = nil
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO pos_changelog (
			id, collection, entity_id, action,
			snapshot, snapshot_compressed, compression_algo,
			user_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := c.pool.Exec(ctx, sql,
		entry.ID, entry.Collection, entry.EntityID, entry.Action,
		entry.Snapshot, entry.SnapshotCompressed, entry.CompressionAlgo,
		entry.UserID, entry.CreatedAt,
	)
	if err != nil {
		logger.Warn(ctx, "changelog write failed",
			"collection", collection, "entity_id", entityID, "error", err)
	}
}

// History returns entries for one entity, oldest first, snapshots
// decompressed.
func (c *Changelog) History(ctx context.Context, collection, entityID string) ([]ChangeEntry, error) {
	sql := `
		SELECT id, collection, entity_id, action,
		       snapshot, snapshot_compressed, compression_algo,
		       user_id, created_at
		FROM pos_changelog
		WHERE collection = $1 AND entity_id = $2
		ORDER BY created_at ASC
	`
	rows, err := c.pool.Query(ctx, sql, collection, entityID)
	if err != nil {
		return nil, fmt.Errorf("select changelog: %w", err)
	}
	defer rows.Close()

	var entries []ChangeEntry
	for rows.Next() {
		var e ChangeEntry
		if err := rows.Scan(
			&e.ID, &e.Collection, &e.EntityID, &e.Action,
			&e.Snapshot, &e.SnapshotCompressed, &e.CompressionAlgo,
			&e.UserID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan changelog: %w", err)
		}
		if e.CompressionAlgo == CompressionZstd {
			decoded, err := c.decoder.DecodeAll(e.SnapshotCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress snapshot %s: %w", e.ID, err)
			}
			e.Snapshot = decoded
			e.SnapshotCompressed = nil
			e.CompressionAlgo = CompressionNone
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
