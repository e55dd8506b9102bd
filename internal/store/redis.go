package store

import (
    "context"
    "errors"
    "fmt"

    "github.com/redis/go-redis/v9"
)

// RedisStore implements KeyedStore on top of Redis. Items live under
// "<collection>:<pk>:<sk>" string keys written with SET NX, which is the
// conditional write. A per-partition sorted set tracks the sort keys of the
// partition (all scores zero) so prefix queries come back in lexicographic
// sort-key order via ZRANGEBYLEX.
//
// The item write and the index update are two commands, so the index can
// briefly trail the items; conditional-write atomicity, the only property
// callers depend on, is carried entirely by SET NX on the item key.
type RedisStore struct {
    rdb *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

// Get returns the item stored under (pk, sk).
func (s *RedisStore) Get(ctx context.Context, collection, pk, sk string) (Item, error) {
    value, err := s.rdb.Get(ctx, itemKey(collection, pk, sk)).Bytes()
    if err != nil {
        if errors.Is(err, redis.Nil) {
            return Item{}, ErrItemNotFound
        }
        return Item{}, fmt.Errorf("redis get %s: %w", collection, err)
    }
    return Item{PartitionKey: pk, SortKey: sk, Value: value}, nil
}

// PutIfAbsent stores the item with SET NX and indexes its sort key on
// success.
func (s *RedisStore) PutIfAbsent(ctx context.Context, collection string, item Item) error {
    ok, err := s.rdb.SetNX(ctx, itemKey(collection, item.PartitionKey, item.SortKey), item.Value, 0).Result()
    if err != nil {
        return fmt.Errorf("redis put %s: %w", collection, err)
    }
    if !ok {
        return ErrKeyExists
    }
    if err := s.rdb.ZAdd(ctx, indexKey(collection, item.PartitionKey), redis.Z{Score: 0, Member: item.SortKey}).Err(); err != nil {
        return fmt.Errorf("redis index %s: %w", collection, err)
    }
    return nil
}

// Delete removes the item and its index entry. Absent keys are ignored.
func (s *RedisStore) Delete(ctx context.Context, collection, pk, sk string) error {
    if err := s.rdb.Del(ctx, itemKey(collection, pk, sk)).Err(); err != nil {
        return fmt.Errorf("redis delete %s: %w", collection, err)
    }
    if err := s.rdb.ZRem(ctx, indexKey(collection, pk), sk).Err(); err != nil {
        return fmt.Errorf("redis unindex %s: %w", collection, err)
    }
    return nil
}

// QueryPrefix walks the partition index in lexicographic order and fetches
// each matching item. Sort keys whose item vanished between the index read
// and the fetch are skipped rather than reported.
func (s *RedisStore) QueryPrefix(ctx context.Context, collection, pk, skPrefix string) ([]Item, error) {
    rng := &redis.ZRangeBy{Min: "-", Max: "+"}
    if skPrefix != "" {
        rng = &redis.ZRangeBy{Min: "[" + skPrefix, Max: "(" + skPrefix + "\xff"}
    }
    sortKeys, err := s.rdb.ZRangeByLex(ctx, indexKey(collection, pk), rng).Result()
    if err != nil {
        return nil, fmt.Errorf("redis query %s: %w", collection, err)
    }
    var items []Item
    for _, sk := range sortKeys {
        it, err := s.Get(ctx, collection, pk, sk)
        if errors.Is(err, ErrItemNotFound) {
            continue
        }
        if err != nil {
            return nil, err
        }
        items = append(items, it)
    }
    return items, nil
}

func itemKey(collection, pk, sk string) string {
    return "ks:" + collection + ":" + pk + ":" + sk
}

func indexKey(collection, pk string) string {
    return "ksidx:" + collection + ":" + pk
}
