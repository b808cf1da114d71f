package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswatch/pkg/config"
	"newswatch/pkg/domain"
)

func TestFileStore_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent_news.csv")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	assert.Empty(t, s.Load(ctx), "fresh store starts empty")

	require.NoError(t, s.Append(ctx, domain.Record{URL: "https://a.example/1", Title: "first"}))
	require.NoError(t, s.Append(ctx, domain.Record{URL: "https://a.example/2", Title: "제목에 쉼표, 들어감"}))

	keys := s.Load(ctx)
	assert.Len(t, keys, 2)
	assert.True(t, keys["https://a.example/1"])
	assert.True(t, keys["https://a.example/2"])
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent_news.csv")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(ctx, domain.Record{URL: "https://a.example/1", Title: "first"}))
	require.NoError(t, s.Close())

	s2, err := NewFileStore(path)
	require.NoError(t, err)
	defer s2.Close()

	keys := s2.Load(ctx)
	assert.True(t, keys["https://a.example/1"])

	// append after reopen must not clobber existing records
	require.NoError(t, s2.Append(ctx, domain.Record{URL: "https://a.example/2", Title: "second"}))
	assert.Len(t, s2.Load(ctx), 2)
}

func TestFileStore_LoadWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent_news.csv")
	legacy := append([]byte{0xEF, 0xBB, 0xBF}, []byte("https://a.example/1,legacy title\n")...)
	require.NoError(t, os.WriteFile(path, legacy, 0o600))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	defer s.Close()

	keys := s.Load(context.Background())
	assert.True(t, keys["https://a.example/1"])
}

func TestFileStore_MissingFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent_news.csv")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	defer s.Close()

	// remove the backing file behind the store's back
	require.NoError(t, os.Remove(path))
	assert.Empty(t, s.Load(context.Background()))
}

func TestNew_Factory(t *testing.T) {
	ctx := context.Background()

	fileStore, err := New(ctx, config.StoreConfig{Type: "file", Path: filepath.Join(t.TempDir(), "h.csv")})
	require.NoError(t, err)
	defer fileStore.Close()
	assert.IsType(t, &FileStore{}, fileStore)

	sqliteStore, err := New(ctx, config.StoreConfig{Type: "sqlite", DSN: "file:" + filepath.Join(t.TempDir(), "h.db")})
	require.NoError(t, err)
	defer sqliteStore.Close()
	assert.IsType(t, &SQLiteStore{}, sqliteStore)

	_, err = New(ctx, config.StoreConfig{Type: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store type")
}
