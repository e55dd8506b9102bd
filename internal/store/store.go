// Package store defines the keyed-store abstraction the reservation service
// persists through, together with its MySQL, Redis and in-memory drivers.
// The contract is deliberately narrow: point reads, single-item conditional
// writes, idempotent deletes and sorted prefix scans. The conditional write
// is the only atomicity primitive the rest of the service relies on.
package store

import (
    "context"
    "errors"
)

// Collection names. Each collection is an independent keyed namespace; the
// relational driver maps them to tables, the redis driver to key prefixes.
const (
    Restaurants      = "restaurants"
    Tables           = "tables"
    Reservations     = "reservations"
    UserReservations = "user_reservations"
)

var (
    // ErrKeyExists is returned by PutIfAbsent when an item with the same
    // (pk, sk) already exists. It is an expected outcome under contention,
    // not a failure of the store.
    ErrKeyExists = errors.New("key already exists")
    // ErrItemNotFound is returned by Get when no item matches the key.
    ErrItemNotFound = errors.New("item not found")
)

// Item is a single keyed record. Value is an opaque payload; the repository
// layer encodes and decodes it as JSON.
type Item struct {
    PartitionKey string
    SortKey      string
    Value        []byte
}

// KeyedStore is the persistence contract of the service. Implementations
// must guarantee that PutIfAbsent is atomic per key: of any number of
// concurrent calls with the same (pk, sk), exactly one succeeds and the rest
// return ErrKeyExists. No other operation needs to be atomic.
type KeyedStore interface {
    // Get returns the item stored under (pk, sk), or ErrItemNotFound.
    Get(ctx context.Context, collection, pk, sk string) (Item, error)
    // PutIfAbsent stores the item only if no item exists under its key.
    PutIfAbsent(ctx context.Context, collection string, item Item) error
    // Delete removes the item under (pk, sk). Deleting an absent key is not
    // an error, which keeps cancellation retries idempotent.
    Delete(ctx context.Context, collection, pk, sk string) error
    // QueryPrefix returns all items in the partition whose sort key begins
    // with skPrefix, ordered by sort key. An empty prefix scans the whole
    // partition.
    QueryPrefix(ctx context.Context, collection, pk, skPrefix string) ([]Item, error)
}
