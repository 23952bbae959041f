// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/blendexport/pkg/types"
)

func testJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "journal")
	j, err := Open(dir)
	require.NoError(t, err)
	defer j.Close()

	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err, "database file should exist")
}

func TestRecordAndUpToDate(t *testing.T) {
	j := testJournal(t)
	modTime := time.Date(2026, 3, 14, 9, 26, 53, 590000000, time.UTC)

	require.NoError(t, j.Record(types.ExportRecord{
		BlendPath:     "scenes/player.blend",
		OutputPath:    "assets/player.glb",
		SourceModTime: modTime,
		OutputSize:    4096,
		Status:        types.ExportDone,
	}))

	assert.True(t, j.UpToDate("scenes/player.blend", modTime))
	assert.False(t, j.UpToDate("scenes/player.blend", modTime.Add(time.Second)),
		"a changed source must not read as up to date")
	assert.False(t, j.UpToDate("scenes/other.blend", modTime),
		"an unseen scene must not read as up to date")
}

func TestFailedRunDoesNotUpdateStatus(t *testing.T) {
	j := testJournal(t)
	modTime := time.Now().UTC()

	require.NoError(t, j.Record(types.ExportRecord{
		BlendPath:     "scenes/fire.blend",
		OutputPath:    "assets/fire.glb",
		SourceModTime: modTime,
		Status:        types.ExportFailed,
	}))

	assert.False(t, j.UpToDate("scenes/fire.blend", modTime),
		"failed runs must leave the scene stale")
}

func TestSuccessAfterSourceChange(t *testing.T) {
	j := testJournal(t)
	first := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	for _, mt := range []time.Time{first, second} {
		require.NoError(t, j.Record(types.ExportRecord{
			BlendPath:     "scenes/vine.blend",
			OutputPath:    "assets/vine.glb",
			SourceModTime: mt,
			Status:        types.ExportDone,
		}))
	}

	assert.False(t, j.UpToDate("scenes/vine.blend", first))
	assert.True(t, j.UpToDate("scenes/vine.blend", second))
}

func TestList(t *testing.T) {
	j := testJournal(t)
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	scenes := []string{"a.blend", "b.blend", "a.blend"}
	for i, blend := range scenes {
		require.NoError(t, j.Record(types.ExportRecord{
			BlendPath:     blend,
			OutputPath:    "out.glb",
			SourceModTime: base,
			Status:        types.ExportDone,
			ExportedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	records, err := j.List(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a.blend", records[0].BlendPath, "newest run first")
	assert.NotEmpty(t, records[0].RunID, "RunID should be assigned")
	assert.True(t, records[0].ExportedAt.After(records[2].ExportedAt))

	filtered, err := j.List(context.Background(), "b.blend", 0)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "b.blend", filtered[0].BlendPath)

	limited, err := j.List(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
