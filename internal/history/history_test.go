package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapscope/internal/testutil"
)

func writeSnapshot(t *testing.T, dir, name, payload string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "old.json",
		`{"title": "Old", "timestamp": 1000, "columns": ["x"], "rows": [["a"]]}`)
	writeSnapshot(t, dir, "new.json",
		`{"title": "New", "timestamp": 3000, "chart_type": "line", "columns": ["x"], "rows": [["a"], ["b"]]}`)
	writeSnapshot(t, dir, "mid.json",
		`{"title": "Mid", "timestamp": 2000, "columns": ["x"], "rows": []}`)
	writeSnapshot(t, dir, "broken.json", `{"title": `)
	writeSnapshot(t, dir, "notes.txt", `not a snapshot`)

	s := NewStore(Config{Dir: dir, Logger: testutil.NewTestLogger(t)})
	entries, err := s.List()
	require.NoError(t, err)

	require.Len(t, entries, 3, "malformed and non-json files are skipped")
	assert.Equal(t, []string{"New", "Mid", "Old"},
		[]string{entries[0].Title, entries[1].Title, entries[2].Title})
	assert.Equal(t, 2, entries[0].RowCount)
	assert.Equal(t, "line", entries[0].ChartType)
}

func TestStore_ListAppliesLimit(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 25; i++ {
		writeSnapshot(t, dir, fmt.Sprintf("snap%02d.json", i),
			fmt.Sprintf(`{"title": "t%d", "timestamp": %d}`, i, 1000+i))
	}

	s := NewStore(Config{Dir: dir, Logger: testutil.NewTestLogger(t)})
	entries, err := s.List()
	require.NoError(t, err)
	assert.Len(t, entries, DefaultLimit)
	assert.Equal(t, "t24", entries[0].Title, "newest snapshot first")
}

func TestStore_ListMissingDir(t *testing.T) {
	s := NewStore(Config{Dir: filepath.Join(t.TempDir(), "nope"), Logger: testutil.NewTestLogger(t)})
	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, "snap.json",
		`{"title": "Big", "timestamp": 5, "columns": ["x"], "rows": [`+
			`["r0"],["r1"],["r2"],["r3"],["r4"],["r5"]]}`)

	s := NewStore(Config{Dir: dir, MaxRows: 4, Logger: testutil.NewTestLogger(t)})
	d, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Big", d.Title)
	assert.Len(t, d.Rows, 4)
	assert.Equal(t, 6, d.TruncatedFrom)

	_, err = s.Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestStore_Delete(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, "snap.json", `{"title": "t"}`)

	s := NewStore(Config{Dir: dir, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, s.Delete(path))
	assert.NoFileExists(t, path)
	assert.NoError(t, s.Delete(path), "deleting twice is fine")
}

func TestStore_Clear(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "a.json", `{"title": "a"}`)
	writeSnapshot(t, dir, "b.json", `{"title": "b"}`)
	keep := writeSnapshot(t, dir, "keep.txt", `unrelated`)

	s := NewStore(Config{Dir: dir, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, s.Clear())

	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.FileExists(t, keep, "only snapshots are removed")
}
