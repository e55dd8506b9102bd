package store

import (
    "context"
    "fmt"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestMemoryStoreGetAfterPut(t *testing.T) {
    ctx := context.Background()
    s := NewMemoryStore()

    err := s.PutIfAbsent(ctx, Reservations, Item{PartitionKey: "p", SortKey: "a", Value: []byte("v")})
    require.NoError(t, err)

    item, err := s.Get(ctx, Reservations, "p", "a")
    require.NoError(t, err)
    assert.Equal(t, []byte("v"), item.Value)

    _, err = s.Get(ctx, Reservations, "p", "missing")
    assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMemoryStorePutIfAbsentConflict(t *testing.T) {
    ctx := context.Background()
    s := NewMemoryStore()

    require.NoError(t, s.PutIfAbsent(ctx, Reservations, Item{PartitionKey: "p", SortKey: "a", Value: []byte("first")}))
    err := s.PutIfAbsent(ctx, Reservations, Item{PartitionKey: "p", SortKey: "a", Value: []byte("second")})
    assert.ErrorIs(t, err, ErrKeyExists)

    // The losing write must not clobber the stored value.
    item, err := s.Get(ctx, Reservations, "p", "a")
    require.NoError(t, err)
    assert.Equal(t, []byte("first"), item.Value)
}

func TestMemoryStoreCollectionsAreIndependent(t *testing.T) {
    ctx := context.Background()
    s := NewMemoryStore()

    require.NoError(t, s.PutIfAbsent(ctx, Reservations, Item{PartitionKey: "p", SortKey: "a", Value: []byte("r")}))
    require.NoError(t, s.PutIfAbsent(ctx, Tables, Item{PartitionKey: "p", SortKey: "a", Value: []byte("t")}))

    item, err := s.Get(ctx, Tables, "p", "a")
    require.NoError(t, err)
    assert.Equal(t, []byte("t"), item.Value)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
    ctx := context.Background()
    s := NewMemoryStore()

    require.NoError(t, s.PutIfAbsent(ctx, Reservations, Item{PartitionKey: "p", SortKey: "a", Value: []byte("v")}))
    require.NoError(t, s.Delete(ctx, Reservations, "p", "a"))
    require.NoError(t, s.Delete(ctx, Reservations, "p", "a"))

    _, err := s.Get(ctx, Reservations, "p", "a")
    assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMemoryStoreQueryPrefixSortedAndFiltered(t *testing.T) {
    ctx := context.Background()
    s := NewMemoryStore()

    for _, sk := range []string{"2025-06-01T20:00:00#B", "2025-06-01T20:00:00#A", "2025-06-01T21:00:00#A", "2025-06-02T20:00:00#A"} {
        require.NoError(t, s.PutIfAbsent(ctx, Reservations, Item{PartitionKey: "p", SortKey: sk, Value: []byte("v")}))
    }

    items, err := s.QueryPrefix(ctx, Reservations, "p", "2025-06-01T20:00:00#")
    require.NoError(t, err)
    require.Len(t, items, 2)
    assert.Equal(t, "2025-06-01T20:00:00#A", items[0].SortKey)
    assert.Equal(t, "2025-06-01T20:00:00#B", items[1].SortKey)

    day, err := s.QueryPrefix(ctx, Reservations, "p", "2025-06-01")
    require.NoError(t, err)
    assert.Len(t, day, 3)

    all, err := s.QueryPrefix(ctx, Reservations, "p", "")
    require.NoError(t, err)
    assert.Len(t, all, 4)

    none, err := s.QueryPrefix(ctx, Reservations, "other", "")
    require.NoError(t, err)
    assert.Empty(t, none)
}

func TestMemoryStoreConcurrentPutSingleWinner(t *testing.T) {
    ctx := context.Background()
    s := NewMemoryStore()

    const writers = 32
    var wg sync.WaitGroup
    results := make([]error, writers)
    for i := 0; i < writers; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            results[i] = s.PutIfAbsent(ctx, Reservations, Item{
                PartitionKey: "p",
                SortKey:      "contested",
                Value:        []byte(fmt.Sprintf("writer-%d", i)),
            })
        }(i)
    }
    wg.Wait()

    wins := 0
    for _, err := range results {
        if err == nil {
            wins++
        } else {
            assert.ErrorIs(t, err, ErrKeyExists)
        }
    }
    assert.Equal(t, 1, wins)
}
