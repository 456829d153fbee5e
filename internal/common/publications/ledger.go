// Package publications records every post written through the service.
package publications

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Operation names stored in the ledger.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS post_publications (
	id             BIGSERIAL PRIMARY KEY,
	post_id        BIGINT      NOT NULL,
	site_url       TEXT        NOT NULL,
	operation      TEXT        NOT NULL,
	title          TEXT        NOT NULL DEFAULT '',
	status         TEXT        NOT NULL DEFAULT '',
	featured_media BIGINT      NOT NULL DEFAULT 0,
	images_total   INTEGER     NOT NULL DEFAULT 0,
	images_failed  INTEGER     NOT NULL DEFAULT 0,
	recorded_at    TIMESTAMPTZ NOT NULL
)`

const insertSQL = `INSERT INTO post_publications
	(post_id, site_url, operation, title, status, featured_media, images_total, images_failed, recorded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const recentSQL = `SELECT post_id, site_url, operation, title, status, featured_media, images_total, images_failed, recorded_at
	FROM post_publications
	WHERE site_url = $1
	ORDER BY recorded_at DESC
	LIMIT $2`

type Record struct {
	PostID        int64
	SiteURL       string
	Operation     string
	Title         string
	Status        string
	FeaturedMedia int64
	ImagesTotal   int
	ImagesFailed  int
	RecordedAt    time.Time
}

// Recorder is what the create/update services depend on.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// EnsureSchema creates the ledger table when it is missing.
func (l *Ledger) EnsureSchema(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create post_publications: %w", err)
	}
	return nil
}

func (l *Ledger) Record(ctx context.Context, rec Record) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = l.now().UTC()
	}
	_, err := l.db.ExecContext(ctx, insertSQL,
		rec.PostID, rec.SiteURL, rec.Operation, rec.Title, rec.Status,
		rec.FeaturedMedia, rec.ImagesTotal, rec.ImagesFailed, rec.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s of post %d: %w", rec.Operation, rec.PostID, err)
	}
	return nil
}

// Recent returns the latest records for a site, newest first.
func (l *Ledger) Recent(ctx context.Context, siteURL string, limit int) ([]Record, error) {
	rows, err := l.db.QueryContext(ctx, recentSQL, siteURL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query post_publications: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.PostID, &r.SiteURL, &r.Operation, &r.Title, &r.Status,
			&r.FeaturedMedia, &r.ImagesTotal, &r.ImagesFailed, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan publication: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
