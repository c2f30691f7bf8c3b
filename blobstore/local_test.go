package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"local":  NewLocalStore(filepath.Join(t.TempDir(), "artifacts")),
		"memory": NewMemoryStore(),
	}
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			data := []byte("hello world, this is a pi report")
			require.NoError(t, store.Put(ctx, "pi/report.json", data))

			blob, err := store.Open(ctx, "pi/report.json")
			require.NoError(t, err)
			require.Equal(t, int64(len(data)), blob.Size())

			buf := make([]byte, 5)
			n, err := blob.ReadAt(ctx, buf, 6)
			require.NoError(t, err)
			assert.Equal(t, 5, n)
			assert.Equal(t, "world", string(buf))

			// Short read at the tail.
			buf = make([]byte, 10)
			n, err = blob.ReadAt(ctx, buf, int64(len(data)-3))
			assert.ErrorIs(t, err, io.EOF)
			assert.Equal(t, 3, n)
			require.NoError(t, blob.Close())

			all, err := ReadAll(ctx, store, "pi/report.json")
			require.NoError(t, err)
			assert.Equal(t, data, all)

			// Overwrite.
			require.NoError(t, store.Put(ctx, "pi/report.json", []byte("v2")))
			all, err = ReadAll(ctx, store, "pi/report.json")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(all))

			require.NoError(t, store.Put(ctx, "pi/scatter.png", []byte{0x89}))
			require.NoError(t, store.Put(ctx, "fib/lines.png", nil))

			names, err := store.List(ctx, "pi/")
			require.NoError(t, err)
			assert.Equal(t, []string{"pi/report.json", "pi/scatter.png"}, names)

			names, err = store.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, names, 3)

			empty, err := ReadAll(ctx, store, "fib/lines.png")
			require.NoError(t, err)
			assert.Empty(t, empty)

			require.NoError(t, store.Delete(ctx, "pi/report.json"))
			require.NoError(t, store.Delete(ctx, "pi/report.json"))

			_, err = store.Open(ctx, "pi/report.json")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLocalStore_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalStore(root)

	require.NoError(t, store.Put(ctx, "a.json", []byte("{}")))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.json", entries[0].Name())
	assert.Equal(t, root, store.Root())
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, store := range stores(t) {
		err := store.Put(ctx, "x", []byte("x"))
		assert.ErrorIs(t, err, context.Canceled, name)
	}
}

func TestPutAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	blobs := map[string][]byte{
		"report.json": []byte("{}"),
		"scatter.png": {1, 2, 3},
		"speed.png":   {4, 5},
	}
	require.NoError(t, PutAll(ctx, store, blobs, 2))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"report.json", "scatter.png", "speed.png"}, names)
}

type failingStore struct {
	*MemoryStore
	puts atomic.Int32
}

func (f *failingStore) Put(ctx context.Context, name string, data []byte) error {
	f.puts.Add(1)
	if name == "bad" {
		return errors.New("disk full")
	}
	return f.MemoryStore.Put(ctx, name, data)
}

func TestPutAll_Error(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore()}

	err := PutAll(context.Background(), store, map[string][]byte{"bad": nil}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put bad")
	assert.EqualValues(t, 1, store.puts.Load())
}
