// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-attendance-sync/models"
)

func Test_buildGetOffsetQuery(t *testing.T) {
	query, args, err := buildGetOffsetQuery(models.ActivityLog)
	require.NoError(t, err)

	require.Equal(t, []any{"activity_log"}, args)
	q := strings.ToLower(query)
	require.Contains(t, q, "select synced_lines")
	require.Contains(t, q, "from sync_offsets")
	require.Contains(t, q, "where dataset = ?")
}

func Test_buildSetOffsetQuery(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 7200))

	query, args, err := buildSetOffsetQuery(models.PendingList, 65535, now)
	require.NoError(t, err)

	require.Len(t, args, 3)
	require.Equal(t, "pending_list", args[0])
	require.Equal(t, int64(65535), args[1])
	require.Equal(t, now.UTC(), args[2])

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into sync_offsets")
	require.Contains(t, q, "on conflict(dataset) do update")
}

func Test_buildClearOffsetsQuery(t *testing.T) {
	query, args, err := buildClearOffsetsQuery()
	require.NoError(t, err)

	require.Empty(t, args)
	require.Equal(t, "delete from sync_offsets", strings.ToLower(query))
}
