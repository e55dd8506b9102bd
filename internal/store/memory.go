package store

import (
    "context"
    "sort"
    "strings"
    "sync"
)

// MemoryStore is a mutex-guarded in-process KeyedStore used by tests and
// local development. It honors the same per-key conditional-write contract
// as the durable drivers, so races exercised against it are decided the same
// way they would be in production.
type MemoryStore struct {
    mu    sync.Mutex
    items map[string]map[string][]byte // collection/pk -> sk -> value
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
    return &MemoryStore{items: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, collection, pk, sk string) (Item, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    value, ok := s.items[partition(collection, pk)][sk]
    if !ok {
        return Item{}, ErrItemNotFound
    }
    cp := make([]byte, len(value))
    copy(cp, value)
    return Item{PartitionKey: pk, SortKey: sk, Value: cp}, nil
}

func (s *MemoryStore) PutIfAbsent(_ context.Context, collection string, item Item) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    p := partition(collection, item.PartitionKey)
    if s.items[p] == nil {
        s.items[p] = make(map[string][]byte)
    }
    if _, exists := s.items[p][item.SortKey]; exists {
        return ErrKeyExists
    }
    cp := make([]byte, len(item.Value))
    copy(cp, item.Value)
    s.items[p][item.SortKey] = cp
    return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, pk, sk string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.items[partition(collection, pk)], sk)
    return nil
}

func (s *MemoryStore) QueryPrefix(_ context.Context, collection, pk, skPrefix string) ([]Item, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    var items []Item
    for sk, value := range s.items[partition(collection, pk)] {
        if !strings.HasPrefix(sk, skPrefix) {
            continue
        }
        cp := make([]byte, len(value))
        copy(cp, value)
        items = append(items, Item{PartitionKey: pk, SortKey: sk, Value: cp})
    }
    sort.Slice(items, func(i, j int) bool { return items[i].SortKey < items[j].SortKey })
    return items, nil
}

func partition(collection, pk string) string {
    return collection + "\x00" + pk
}
