package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inovacc/kollect/internal/kinto"
)

const testCollection = "default/items"

func strPtr(s string) *string {
	return &s
}

func openBackends(t *testing.T) map[string]Store {
	t.Helper()

	dir := t.TempDir()
	backends := make(map[string]Store)

	for _, backend := range []Backend{BackendBolt, BackendSQLite} {
		s, err := Open(backend, filepath.Join(dir, "store."+string(backend)))
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = s.Close()
		})

		backends[string(backend)] = s
	}

	return backends
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("etcd", filepath.Join(t.TempDir(), "store.db"))
	require.Error(t, err)
}

func TestStorePing(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Ping())
		})
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			rec := kinto.Record{
				ID:           "a",
				Title:        strPtr("one"),
				Description:  strPtr("first"),
				LastModified: 100,
			}

			require.NoError(t, s.SaveRecord(testCollection, rec))

			got, err := s.GetRecord(testCollection, "a")
			require.NoError(t, err)
			require.Equal(t, rec, got)
		})
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SaveRecord(testCollection, kinto.Record{
				ID:           "a",
				Title:        strPtr("one"),
				LastModified: 100,
			}))
			require.NoError(t, s.SaveRecord(testCollection, kinto.Record{
				ID:           "a",
				Title:        strPtr("edited"),
				LastModified: 101,
			}))

			got, err := s.GetRecord(testCollection, "a")
			require.NoError(t, err)
			require.Equal(t, "edited", *got.Title)
			require.EqualValues(t, 101, got.LastModified)

			records, err := s.ListRecords(testCollection)
			require.NoError(t, err)
			require.Len(t, records, 1)
		})
	}
}

func TestStoreNilFieldsRoundTrip(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SaveRecord(testCollection, kinto.Record{ID: "bare", LastModified: 50}))

			got, err := s.GetRecord(testCollection, "bare")
			require.NoError(t, err)
			require.Nil(t, got.Title)
			require.Nil(t, got.Description)
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.GetRecord(testCollection, "missing")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			rec := kinto.Record{ID: "a", Title: strPtr("one"), LastModified: 100}
			require.NoError(t, s.SaveRecord(testCollection, rec))

			deleted, err := s.DeleteRecord(testCollection, "a")
			require.NoError(t, err)
			require.Equal(t, rec, deleted)

			_, err = s.GetRecord(testCollection, "a")
			require.ErrorIs(t, err, ErrNotFound)

			_, err = s.DeleteRecord(testCollection, "a")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreListIsolatesCollections(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SaveRecord("default/items", kinto.Record{ID: "a", LastModified: 1}))
			require.NoError(t, s.SaveRecord("default/items", kinto.Record{ID: "b", LastModified: 2}))
			require.NoError(t, s.SaveRecord("team/tasks", kinto.Record{ID: "c", LastModified: 3}))

			records, err := s.ListRecords("default/items")
			require.NoError(t, err)
			require.Len(t, records, 2)

			records, err = s.ListRecords("team/tasks")
			require.NoError(t, err)
			require.Len(t, records, 1)

			records, err = s.ListRecords("empty/none")
			require.NoError(t, err)
			require.Empty(t, records)
		})
	}
}
