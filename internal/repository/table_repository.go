package repository

import (
    "context"
    "encoding/json"
    "fmt"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/store"
)

// TableRepo reads the table catalog of a restaurant. Like restaurants,
// tables are maintained externally and read-only here.
type TableRepo struct {
    store store.KeyedStore
}

// NewTableRepo returns a TableRepo bound to the given store.
func NewTableRepo(s store.KeyedStore) *TableRepo { return &TableRepo{store: s} }

// ListByRestaurant returns every table of the restaurant identified by the
// composite key, in the store's sort-key order. That order is deliberately
// preserved: it is the tie-break the first-fit selector depends on. An empty
// slice means the restaurant has no tables.
func (r *TableRepo) ListByRestaurant(ctx context.Context, restaurantKey string) ([]model.Table, error) {
    items, err := r.store.QueryPrefix(ctx, store.Tables, restaurantKey, "")
    if err != nil {
        return nil, fmt.Errorf("list tables: %w", err)
    }
    tables := make([]model.Table, 0, len(items))
    for _, item := range items {
        var t model.Table
        if err := json.Unmarshal(item.Value, &t); err != nil {
            return nil, fmt.Errorf("decode table %s/%s: %w", restaurantKey, item.SortKey, err)
        }
        if t.ID == "" {
            t.ID = item.SortKey
        }
        tables = append(tables, t)
    }
    return tables, nil
}
