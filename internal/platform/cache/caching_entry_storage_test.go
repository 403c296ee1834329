package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction_backend/internal/feature/encyclopedia/usecase"
)

// mockEntryStorage is a function-field mock of usecase.EntryStorage.
type mockEntryStorage struct {
	listFn   func(ctx context.Context, dir string) ([]string, error)
	readFn   func(ctx context.Context, p string) ([]byte, error)
	createFn func(ctx context.Context, p string, data []byte) error
	writeFn  func(ctx context.Context, p string, data []byte) error
}

func (m *mockEntryStorage) ListFiles(ctx context.Context, dir string) ([]string, error) {
	if m.listFn != nil {
		return m.listFn(ctx, dir)
	}
	return nil, nil
}

func (m *mockEntryStorage) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if m.readFn != nil {
		return m.readFn(ctx, p)
	}
	return nil, usecase.ErrFileNotFound
}

func (m *mockEntryStorage) CreateFile(ctx context.Context, p string, data []byte) error {
	if m.createFn != nil {
		return m.createFn(ctx, p, data)
	}
	return nil
}

func (m *mockEntryStorage) WriteFile(ctx context.Context, p string, data []byte) error {
	if m.writeFn != nil {
		return m.writeFn(ctx, p, data)
	}
	return nil
}

const (
	testTTL   = time.Minute
	goKey     = "wiki:file:entries%2FGo.md"
	goGen     = "wiki:gen:file:entries%2FGo.md"
	entryList = "wiki:list:entries"
	listGen   = "wiki:gen:list:entries"
)

func TestNewCachingEntryStorage_Defaults(t *testing.T) {
	t.Parallel()

	s := NewCachingEntryStorage(nil, 0, &mockEntryStorage{}, "")

	assert.Equal(t, 5*time.Minute, s.ttl)
	assert.Equal(t, "entries", s.namespace)
}

func TestCachingEntryStorage_ReadFile(t *testing.T) {
	t.Parallel()

	t.Run("hit skips the inner store", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		inner := &mockEntryStorage{readFn: func(context.Context, string) ([]byte, error) {
			t.Fatal("inner store must not be called on a hit")
			return nil, nil
		}}
		s := NewCachingEntryStorage(rdb, testTTL, inner, "wiki")

		mock.ExpectGet(goKey).SetVal("cached")

		data, err := s.ReadFile(context.Background(), "entries/Go.md")

		require.NoError(t, err)
		assert.Equal(t, "cached", string(data))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss populates the cache", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		inner := &mockEntryStorage{readFn: func(context.Context, string) ([]byte, error) { return []byte("fresh"), nil }}
		s := NewCachingEntryStorage(rdb, testTTL, inner, "wiki")

		mock.ExpectGet(goKey).RedisNil()
		mock.ExpectGet(goGen).RedisNil()
		mock.ExpectEvalSha(populate.Hash(), []string{goGen, goKey}, "0", []byte("fresh"), testTTL.Milliseconds()).SetVal(int64(1))

		data, err := s.ReadFile(context.Background(), "entries/Go.md")

		require.NoError(t, err)
		assert.Equal(t, "fresh", string(data))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found is not cached", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		s := NewCachingEntryStorage(rdb, testTTL, &mockEntryStorage{}, "wiki")

		mock.ExpectGet(goKey).RedisNil()
		mock.ExpectGet(goGen).RedisNil()

		_, err := s.ReadFile(context.Background(), "entries/Go.md")

		assert.ErrorIs(t, err, usecase.ErrFileNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure falls through", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		inner := &mockEntryStorage{readFn: func(context.Context, string) ([]byte, error) { return []byte("fresh"), nil }}
		s := NewCachingEntryStorage(rdb, testTTL, inner, "wiki")

		mock.ExpectGet(goKey).SetErr(errors.New("connection refused"))
		mock.ExpectGet(goGen).SetErr(errors.New("connection refused"))

		data, err := s.ReadFile(context.Background(), "entries/Go.md")

		require.NoError(t, err)
		assert.Equal(t, "fresh", string(data))
	})
}

func TestCachingEntryStorage_ListFiles(t *testing.T) {
	t.Parallel()

	names := []string{"A.md", "B.md"}
	encoded, err := json.Marshal(names)
	require.NoError(t, err)

	t.Run("hit", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		s := NewCachingEntryStorage(rdb, testTTL, &mockEntryStorage{}, "wiki")

		mock.ExpectGet(entryList).SetVal(string(encoded))

		got, err := s.ListFiles(context.Background(), "entries")

		require.NoError(t, err)
		assert.Equal(t, names, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupted entry is dropped and reloaded", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		inner := &mockEntryStorage{listFn: func(context.Context, string) ([]string, error) { return names, nil }}
		s := NewCachingEntryStorage(rdb, testTTL, inner, "wiki")

		mock.ExpectGet(entryList).SetVal("{not json")
		mock.ExpectDel(entryList).SetVal(1)
		mock.ExpectGet(listGen).SetVal("3")
		mock.ExpectEvalSha(populate.Hash(), []string{listGen, entryList}, "3", encoded, testTTL.Milliseconds()).SetVal(int64(1))

		got, err := s.ListFiles(context.Background(), "entries")

		require.NoError(t, err)
		assert.Equal(t, names, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCachingEntryStorage_WritesInvalidate(t *testing.T) {
	t.Parallel()

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		s := NewCachingEntryStorage(rdb, testTTL, &mockEntryStorage{}, "wiki")

		mock.ExpectIncr(goGen).SetVal(1)
		mock.ExpectIncr(listGen).SetVal(1)
		mock.ExpectDel(goKey, entryList).SetVal(2)

		require.NoError(t, s.CreateFile(context.Background(), "entries/Go.md", []byte("x")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed create leaves the cache alone", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		inner := &mockEntryStorage{createFn: func(context.Context, string, []byte) error { return usecase.ErrFileExists }}
		s := NewCachingEntryStorage(rdb, testTTL, inner, "wiki")

		err := s.CreateFile(context.Background(), "entries/Go.md", []byte("x"))

		assert.ErrorIs(t, err, usecase.ErrFileExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		s := NewCachingEntryStorage(rdb, testTTL, &mockEntryStorage{}, "wiki")

		mock.ExpectIncr(goGen).SetErr(errors.New("redis down"))
		mock.ExpectIncr(listGen).SetErr(errors.New("redis down"))
		mock.ExpectDel(goKey, entryList).SetErr(errors.New("redis down"))

		assert.NoError(t, s.WriteFile(context.Background(), "entries/Go.md", []byte("x")), "invalidation is best effort")
	})
}

func TestCachingEntryStorage_Purge(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	s := NewCachingEntryStorage(rdb, testTTL, &mockEntryStorage{}, "wiki")

	mock.ExpectScan(0, "wiki:*", 200).SetVal([]string{goKey}, 42)
	mock.ExpectDel(goKey).SetVal(1)
	mock.ExpectScan(42, "wiki:*", 200).SetVal([]string{entryList}, 0)
	mock.ExpectDel(entryList).SetVal(1)

	require.NoError(t, s.Purge(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingEntryStorage_NilRedisBypasses(t *testing.T) {
	t.Parallel()

	inner := &mockEntryStorage{readFn: func(context.Context, string) ([]byte, error) { return []byte("direct"), nil }}
	s := NewCachingEntryStorage(nil, testTTL, inner, "wiki")

	data, err := s.ReadFile(context.Background(), "entries/Go.md")
	require.NoError(t, err)
	assert.Equal(t, "direct", string(data))
	require.NoError(t, s.WriteFile(context.Background(), "entries/Go.md", nil))
	assert.NoError(t, s.Purge(context.Background()))
}

// memoryEntries is an in-memory EntryStorage whose next ReadFile can be
// paused after it has read the body.
type memoryEntries struct {
	mu        sync.Mutex
	files     map[string][]byte
	pause     chan struct{}
	paused    chan struct{}
	pauseOnce sync.Once
}

func (m *memoryEntries) ListFiles(context.Context, string) ([]string, error) { return nil, nil }

func (m *memoryEntries) ReadFile(_ context.Context, p string) ([]byte, error) {
	m.mu.Lock()
	data, ok := m.files[p]
	m.mu.Unlock()
	if !ok {
		return nil, usecase.ErrFileNotFound
	}
	m.pauseOnce.Do(func() {
		close(m.paused)
		<-m.pause
	})
	return data, nil
}

func (m *memoryEntries) CreateFile(ctx context.Context, p string, data []byte) error {
	return m.WriteFile(ctx, p, data)
}

func (m *memoryEntries) WriteFile(_ context.Context, p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = data
	return nil
}

func TestCachingEntryStorage_SlowReaderDoesNotRestoreReplacedBody(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &memoryEntries{
		files:  map[string][]byte{"entries/Go.md": []byte("old")},
		pause:  make(chan struct{}),
		paused: make(chan struct{}),
	}
	s := NewCachingEntryStorage(rdb, testTTL, inner, "wiki")
	ctx := context.Background()

	read := make(chan []byte, 1)
	go func() {
		data, err := s.ReadFile(ctx, "entries/Go.md")
		assert.NoError(t, err)
		read <- data
	}()

	<-inner.paused
	require.NoError(t, s.WriteFile(ctx, "entries/Go.md", []byte("new")))
	close(inner.pause)
	assert.Equal(t, "old", string(<-read), "the slow reader saw the body it started with")

	data, err := s.ReadFile(ctx, "entries/Go.md")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	cached, err := mr.Get(goKey)
	require.NoError(t, err)
	assert.Equal(t, "new", cached)
}
