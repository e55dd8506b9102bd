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

// ReservationRepo owns the authoritative reservation records. Commit is the
// single enforcement point of "at most one reservation per table per slot":
// it performs the conditional write and nothing else in the system may
// create a reservation any other way.
type ReservationRepo struct {
    store store.KeyedStore
}

// NewReservationRepo returns a ReservationRepo bound to the given store.
func NewReservationRepo(s store.KeyedStore) *ReservationRepo { return &ReservationRepo{store: s} }

// OccupiedTables returns the ids of tables already reserved under the given
// restaurant whose reservation sort key begins with slotPrefix. Passing a
// full local timestamp plus separator narrows the scan to one slot; passing
// a local date covers a whole day. The result is advisory input to table
// selection, never the enforcement of uniqueness.
func (r *ReservationRepo) OccupiedTables(ctx context.Context, restaurantKey, slotPrefix string) (map[string]struct{}, error) {
    items, err := r.store.QueryPrefix(ctx, store.Reservations, restaurantKey, slotPrefix)
    if err != nil {
        return nil, fmt.Errorf("scan occupancy: %w", err)
    }
    occupied := make(map[string]struct{}, len(items))
    for _, item := range items {
        _, tableID, err := keys.ParseReservationSortKey(item.SortKey)
        if err != nil {
            return nil, err
        }
        occupied[tableID] = struct{}{}
    }
    return occupied, nil
}

// Commit writes the reservation if and only if no reservation exists for the
// same table and slot. ErrSlotTaken reports a lost race; any other error is
// a store failure.
func (r *ReservationRepo) Commit(ctx context.Context, restaurantKey string, res *model.Reservation) error {
    sk, err := keys.ReservationSortKey(res.LocalTimestamp, res.TableID)
    if err != nil {
        return err
    }
    value, err := json.Marshal(res)
    if err != nil {
        return fmt.Errorf("encode reservation: %w", err)
    }
    err = r.store.PutIfAbsent(ctx, store.Reservations, store.Item{
        PartitionKey: restaurantKey,
        SortKey:      sk,
        Value:        value,
    })
    if err != nil {
        if errors.Is(err, store.ErrKeyExists) {
            return ErrSlotTaken
        }
        return fmt.Errorf("commit reservation: %w", err)
    }
    return nil
}

// Delete removes the reservation for the given table and slot. Deleting a
// reservation that no longer exists is not an error, so a partially failed
// cancellation can be retried.
func (r *ReservationRepo) Delete(ctx context.Context, restaurantKey, localTimestamp, tableID string) error {
    sk, err := keys.ReservationSortKey(localTimestamp, tableID)
    if err != nil {
        return err
    }
    if err := r.store.Delete(ctx, store.Reservations, restaurantKey, sk); err != nil {
        return fmt.Errorf("delete reservation: %w", err)
    }
    return nil
}
