package journal

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/cupcraft/internal/order"
)

func setupTestStore(t *testing.T) *Store {
	dbPath := filepath.Join(t.TempDir(), "nested", "orders.db")

	store, err := Open(Options{Path: dbPath})
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func entry(at time.Time) Entry {
	return Entry{
		Ticket: order.Ticket{
			ID:          uuid.NewString(),
			Bean:        order.ItemRef{ID: "arabica-1", Name: "Arabica"},
			Grind:       order.ItemRef{ID: "medium", Name: "Medium"},
			Preparation: order.ItemRef{ID: "pourover", Name: "Pour Over"},
			Size:        order.SizeMedium,
			Temperature: order.TemperatureHot,
			Total:       order.BasePrice,
		},
		ReceivedAt: at,
		Counter:    "front",
		RemoteAddr: "203.0.113.50:4242",
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	e := entry(time.Now().Truncate(time.Millisecond))

	require.NoError(t, store.Save(e))

	got, err := store.Get(e.Ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e.Ticket.ID, got.Ticket.ID)
	assert.Equal(t, "front", got.Counter)
	assert.Equal(t, e.RemoteAddr, got.RemoteAddr)
	assert.True(t, e.ReceivedAt.Equal(got.ReceivedAt))
}

func TestStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)

	got, err := store.Get("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)
}

func TestStore_SaveDuplicate(t *testing.T) {
	store := setupTestStore(t)
	e := entry(time.Now())

	require.NoError(t, store.Save(e))
	assert.ErrorIs(t, store.Save(e), ErrDuplicate)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_SaveRequiresID(t *testing.T) {
	store := setupTestStore(t)
	assert.Error(t, store.Save(Entry{}))
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := setupTestStore(t)
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 5; i++ {
		e := entry(base.Add(time.Duration(i) * time.Minute))
		ids = append(ids, e.Ticket.ID)
		require.NoError(t, store.Save(e))
	}

	all, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, ids[4], all[0].Ticket.ID)
	assert.Equal(t, ids[0], all[4].Ticket.ID)

	latest, err := store.List(2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, ids[3], latest[1].Ticket.ID)
}

func TestStore_ConcurrentSaves(t *testing.T) {
	store := setupTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Save(entry(time.Now())))
		}()
	}
	wg.Wait()

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	store, err := Open(Options{Path: path})
	require.NoError(t, err)
	e := entry(time.Now())
	require.NoError(t, store.Save(e))
	require.NoError(t, store.Close())

	store, err = Open(Options{Path: path})
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get(e.Ticket.ID)
	assert.NoError(t, err)
}
