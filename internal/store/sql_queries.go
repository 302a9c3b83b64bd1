package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-attendance-sync/models"
)

const (
	offsetsTable = "sync_offsets"

	columnDataset     = "dataset"
	columnSyncedLines = "synced_lines"
	columnUpdatedAt   = "updated_at"

	upsertOffsetSuffix = "ON CONFLICT(dataset) DO UPDATE SET synced_lines = excluded.synced_lines, updated_at = excluded.updated_at"
)

func buildGetOffsetQuery(d models.Dataset) (string, []any, error) {
	return sq.Select(columnSyncedLines).
		From(offsetsTable).
		Where(sq.Eq{columnDataset: d.OffsetKey()}).
		ToSql()
}

func buildSetOffsetQuery(d models.Dataset, offset models.SyncOffset, now time.Time) (string, []any, error) {
	return sq.Insert(offsetsTable).
		Columns(columnDataset, columnSyncedLines, columnUpdatedAt).
		Values(d.OffsetKey(), int64(offset), now.UTC()).
		Suffix(upsertOffsetSuffix).
		ToSql()
}

func buildClearOffsetsQuery() (string, []any, error) {
	return sq.Delete(offsetsTable).ToSql()
}
