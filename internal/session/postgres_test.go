package session

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/ai-invoice-import/internal/database"
)

// newTestPostgresStore connects to the database named by SESSION_TEST_DATABASE_URL.
// The import_sessions migration must have been applied.
func newTestPostgresStore(t *testing.T, params string, ttl time.Duration) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("SESSION_TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("SESSION_TEST_DATABASE_URL not set")
	}
	if params != "" {
		sep := "?"
		if strings.Contains(dbURL, "?") {
			sep = "&"
		}
		dbURL += sep + params
	}

	db, err := database.NewPostgresDB(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db.GetPool(), ttl)
}

func TestPostgresStore(t *testing.T) {
	store := newTestPostgresStore(t, "", time.Minute)
	ctx := context.Background()
	id := uuid.NewString()

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, id, []byte(`{"id":"a"}`)))
	require.NoError(t, store.Save(ctx, id, []byte(`{"id":"b"}`)))

	data, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"b"}`, string(data))

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresStoreExpiry(t *testing.T) {
	store := newTestPostgresStore(t, "", time.Millisecond)
	ctx := context.Background()
	id := uuid.NewString()

	require.NoError(t, store.Save(ctx, id, []byte(`{}`)))
	time.Sleep(20 * time.Millisecond)

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))
}

func TestPostgresStoreWithLockSerializesSession(t *testing.T) {
	store := newTestPostgresStore(t, "", time.Minute)
	ctx := context.Background()
	id := uuid.NewString()

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = store.WithLock(ctx, id, func(Store) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	acquired := make(chan struct{})
	go func() {
		err := store.WithLock(ctx, id, func(Store) error {
			close(acquired)
			return nil
		})
		assert.NoError(t, err)
	}()

	select {
	case <-acquired:
		t.Fatal("second update ran while the first held the lock")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatal("second update did not run after the first finished")
	}
}

func TestPostgresStoreWithLockMoreUpdatesThanConnections(t *testing.T) {
	store := newTestPostgresStore(t, "pool_max_conns=2", time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	const updates = 8
	var wg sync.WaitGroup
	errs := make(chan error, updates)
	for i := 0; i < updates; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.NewString()
			errs <- store.WithLock(ctx, id, func(tx Store) error {
				if _, err := tx.Get(ctx, id); !errors.Is(err, ErrNotFound) {
					return err
				}
				time.Sleep(20 * time.Millisecond)
				return tx.Save(ctx, id, []byte(`{}`))
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func TestPostgresStoreWithLockCommitsOnFnError(t *testing.T) {
	store := newTestPostgresStore(t, "", time.Minute)
	ctx := context.Background()
	id := uuid.NewString()
	require.NoError(t, store.Save(ctx, id, []byte(`{"v":1}`)))

	failure := errors.New("not allowed")
	err := store.WithLock(ctx, id, func(tx Store) error {
		if err := tx.Delete(ctx, id); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
