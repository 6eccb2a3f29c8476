package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlots(t *testing.T) map[string]Slot {
	t.Helper()
	file, err := NewFileSlot(t.TempDir())
	require.NoError(t, err)
	return map[string]Slot{
		"file":   file,
		"memory": NewMemorySlot(),
	}
}

func TestSlot_ReadWriteDelete(t *testing.T) {
	for kind, slot := range testSlots(t) {
		t.Run(kind, func(t *testing.T) {
			_, err := slot.Read("missing")
			assert.ErrorIs(t, err, ErrSlotNotFound)

			require.NoError(t, slot.Write("watch_store", []byte(`{"a":1}`)))

			data, err := slot.Read("watch_store")
			require.NoError(t, err)
			assert.Equal(t, `{"a":1}`, string(data))

			size, err := slot.Size("watch_store")
			require.NoError(t, err)
			assert.Equal(t, int64(7), size)

			require.NoError(t, slot.Write("watch_store", []byte(`{}`)))
			data, err = slot.Read("watch_store")
			require.NoError(t, err)
			assert.Equal(t, `{}`, string(data), "write replaces prior content")

			require.NoError(t, slot.Delete("watch_store"))
			_, err = slot.Read("watch_store")
			assert.ErrorIs(t, err, ErrSlotNotFound)

			assert.NoError(t, slot.Delete("watch_store"), "deleting a missing slot is not an error")
		})
	}
}

func TestSlot_ListIsSortedAndPrefixed(t *testing.T) {
	for kind, slot := range testSlots(t) {
		t.Run(kind, func(t *testing.T) {
			require.NoError(t, slot.Write("ws_backup_2026-01-02", []byte("b")))
			require.NoError(t, slot.Write("ws_backup_2026-01-01", []byte("a")))
			require.NoError(t, slot.Write("ws", []byte("base")))
			require.NoError(t, slot.Write("other", []byte("x")))

			names, err := slot.List("ws_backup_")
			require.NoError(t, err)
			assert.Equal(t, []string{"ws_backup_2026-01-01", "ws_backup_2026-01-02"}, names)
		})
	}
}

func TestFileSlot_Layout(t *testing.T) {
	dir := t.TempDir()
	slot, err := NewFileSlot(filepath.Join(dir, "data"))
	require.NoError(t, err)

	require.NoError(t, slot.Write("watch_store", []byte("{}")))
	assert.FileExists(t, filepath.Join(dir, "data", "watch_store.json"))

	t.Run("no temp files are left behind", func(t *testing.T) {
		entries, err := os.ReadDir(slot.Dir())
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestMemorySlot_ReadReturnsCopy(t *testing.T) {
	slot := NewMemorySlot()
	require.NoError(t, slot.Write("k", []byte("abc")))

	data, err := slot.Read("k")
	require.NoError(t, err)
	data[0] = 'X'

	again, err := slot.Read("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
