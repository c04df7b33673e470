package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []string{"widgets"}, nil, nil)
	require.NoError(t, err)
	require.True(t, store.FirstRun())

	saved := []record{{ID: "w-1", Name: "first"}, {ID: "w-2", Name: "second"}}
	require.NoError(t, store.Write("widgets", saved))

	var loaded []record
	require.NoError(t, store.ReadInto("widgets", &loaded))
	require.Equal(t, saved, loaded)
}

func TestReopenIsNotFirstRun(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(dir, []string{"widgets"}, nil, nil)
	require.NoError(t, err)

	reopened, err := Open(dir, []string{"widgets"}, nil, nil)
	require.NoError(t, err)
	require.False(t, reopened.FirstRun())
}

func TestAbsentCollectionReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []string{"widgets"}, nil, nil)
	require.NoError(t, err)

	var loaded []record
	require.NoError(t, store.ReadInto("widgets", &loaded))
	require.Empty(t, loaded)
}

func TestCorruptCollectionReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []string{"widgets"}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.Write("widgets", []record{{ID: "w-1"}}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widgets.json"), []byte("{not json"), 0o644))

	var loaded []record
	require.NoError(t, store.ReadInto("widgets", &loaded))
	require.Empty(t, loaded)
}

func TestFailedWriteRestoresPreviousState(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []string{"widgets"}, nil, nil)
	require.NoError(t, err)

	saved := []record{{ID: "w-1", Name: "survivor"}}
	require.NoError(t, store.Write("widgets", saved))

	// Channels are not serializable, which forces the write to fail
	// after the snapshot was taken.
	err = store.Write("widgets", map[string]any{"bad": make(chan int)})
	require.ErrorIs(t, err, ErrStorageFailure)

	var loaded []record
	require.NoError(t, store.ReadInto("widgets", &loaded))
	require.Equal(t, saved, loaded)
}

func TestWriteManyIsAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []string{"widgets", "gears"}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.Write("widgets", []record{{ID: "w-1"}}))
	require.NoError(t, store.Write("gears", []record{{ID: "g-1"}}))

	err = store.WriteMany(map[string]any{
		"widgets": []record{{ID: "w-2"}},
		"gears":   map[string]any{"bad": make(chan int)},
	})
	require.ErrorIs(t, err, ErrStorageFailure)

	var widgets []record
	require.NoError(t, store.ReadInto("widgets", &widgets))
	require.Equal(t, []record{{ID: "w-1"}}, widgets)
	var gears []record
	require.NoError(t, store.ReadInto("gears", &gears))
	require.Equal(t, []record{{ID: "g-1"}}, gears)
}

func TestValidateRestoresFromBackup(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []string{"widgets"}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.Write("widgets", []record{{ID: "w-1"}}))
	require.NoError(t, store.Write("widgets", []record{{ID: "w-1"}, {ID: "w-2"}}))

	// Corrupt the collection on disk; the backup holds the state taken
	// before the last write.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widgets.json"), []byte("{broken"), 0o644))
	require.True(t, store.Validate())

	var loaded []record
	require.NoError(t, store.ReadInto("widgets", &loaded))
	require.Equal(t, []record{{ID: "w-1"}}, loaded)
}

func TestValidateWipesWhenBackupIsUnusable(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, []string{"widgets"}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.Write("widgets", []record{{ID: "w-1"}}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "widgets.json"), []byte("{broken"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backup.json"), []byte("{also broken"), 0o644))
	require.False(t, store.Validate())

	var loaded []record
	require.NoError(t, store.ReadInto("widgets", &loaded))
	require.Empty(t, loaded)
}

func TestLegacyAliasMigration(t *testing.T) {
	dir := t.TempDir()
	legacy := []byte(`{"version":1,"records":[{"id":"w-1","name":"migrated"}]}`)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old_widgets.json"), legacy, 0o644))

	store, err := Open(dir, []string{"widgets"}, map[string][]string{
		"widgets": {"old_widgets"},
	}, nil)
	require.NoError(t, err)

	var loaded []record
	require.NoError(t, store.ReadInto("widgets", &loaded))
	require.Equal(t, []record{{ID: "w-1", Name: "migrated"}}, loaded)

	_, statErr := os.Stat(filepath.Join(dir, "old_widgets.json"))
	require.True(t, os.IsNotExist(statErr))
}

func TestCanonicalDataWinsOverAlias(t *testing.T) {
	dir := t.TempDir()
	canonical := []byte(`{"version":1,"records":[{"id":"w-keep"}]}`)
	legacy := []byte(`{"version":1,"records":[{"id":"w-stale"}]}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widgets.json"), canonical, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old_widgets.json"), legacy, 0o644))

	store, err := Open(dir, []string{"widgets"}, map[string][]string{
		"widgets": {"old_widgets"},
	}, nil)
	require.NoError(t, err)

	var loaded []record
	require.NoError(t, store.ReadInto("widgets", &loaded))
	require.Equal(t, []record{{ID: "w-keep"}}, loaded)

	_, statErr := os.Stat(filepath.Join(dir, "old_widgets.json"))
	require.True(t, os.IsNotExist(statErr))
}
