package repository

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"

    "github.com/iliyamo/restaurant-table-reservation/internal/keys"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/store"
)

// RestaurantRepo reads the restaurant catalog. Restaurants are written by an
// external admin flow; this service never creates, updates or deletes them.
type RestaurantRepo struct {
    store store.KeyedStore
}

// NewRestaurantRepo returns a RestaurantRepo bound to the given store.
func NewRestaurantRepo(s store.KeyedStore) *RestaurantRepo { return &RestaurantRepo{store: s} }

// Get looks up a restaurant by its identity tuple. It returns
// ErrRestaurantNotFound when no such restaurant exists.
func (r *RestaurantRepo) Get(ctx context.Context, locality, category, name string) (*model.Restaurant, error) {
    sk, err := keys.RestaurantSortKey(category, name)
    if err != nil {
        return nil, err
    }
    item, err := r.store.Get(ctx, store.Restaurants, locality, sk)
    if err != nil {
        if errors.Is(err, store.ErrItemNotFound) {
            return nil, ErrRestaurantNotFound
        }
        return nil, fmt.Errorf("load restaurant: %w", err)
    }
    var rest model.Restaurant
    if err := json.Unmarshal(item.Value, &rest); err != nil {
        return nil, fmt.Errorf("decode restaurant %s/%s: %w", locality, sk, err)
    }
    return &rest, nil
}
