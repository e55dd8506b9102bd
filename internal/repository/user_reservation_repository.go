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

// UserReservationRepo maintains the per-user reservation index. The index
// entry is a denormalized snapshot of a committed reservation keyed by
// (user, instant); its conditional write enforces that a user never holds
// two reservations at the same instant.
type UserReservationRepo struct {
    store store.KeyedStore
}

// NewUserReservationRepo returns a UserReservationRepo bound to the given
// store.
func NewUserReservationRepo(s store.KeyedStore) *UserReservationRepo {
    return &UserReservationRepo{store: s}
}

// Record writes the index entry if and only if the user has no entry at the
// same instant. ErrUserSlotTaken reports a lost race.
func (r *UserReservationRepo) Record(ctx context.Context, ur *model.UserReservation) error {
    value, err := json.Marshal(ur)
    if err != nil {
        return fmt.Errorf("encode user reservation: %w", err)
    }
    err = r.store.PutIfAbsent(ctx, store.UserReservations, store.Item{
        PartitionKey: ur.UserID,
        SortKey:      keys.UserInstantSortKey(ur.Epoch),
        Value:        value,
    })
    if err != nil {
        if errors.Is(err, store.ErrKeyExists) {
            return ErrUserSlotTaken
        }
        return fmt.Errorf("record user reservation: %w", err)
    }
    return nil
}

// Lookup returns the index entry for (userID, epoch), or
// ErrUserReservationNotFound.
func (r *UserReservationRepo) Lookup(ctx context.Context, userID string, epoch int64) (*model.UserReservation, error) {
    item, err := r.store.Get(ctx, store.UserReservations, userID, keys.UserInstantSortKey(epoch))
    if err != nil {
        if errors.Is(err, store.ErrItemNotFound) {
            return nil, ErrUserReservationNotFound
        }
        return nil, fmt.Errorf("load user reservation: %w", err)
    }
    var ur model.UserReservation
    if err := json.Unmarshal(item.Value, &ur); err != nil {
        return nil, fmt.Errorf("decode user reservation %s/%d: %w", userID, epoch, err)
    }
    return &ur, nil
}

// Delete removes the index entry for (userID, epoch). Deleting an absent
// entry is not an error.
func (r *UserReservationRepo) Delete(ctx context.Context, userID string, epoch int64) error {
    if err := r.store.Delete(ctx, store.UserReservations, userID, keys.UserInstantSortKey(epoch)); err != nil {
        return fmt.Errorf("delete user reservation: %w", err)
    }
    return nil
}

// ListFrom returns the user's index entries whose instant is at or after
// fromEpoch, ordered by instant. The sort keys are zero-padded, so the store
// already returns them in numeric order and only the cutoff is applied here.
func (r *UserReservationRepo) ListFrom(ctx context.Context, userID string, fromEpoch int64) ([]model.UserReservation, error) {
    items, err := r.store.QueryPrefix(ctx, store.UserReservations, userID, "")
    if err != nil {
        return nil, fmt.Errorf("list user reservations: %w", err)
    }
    entries := make([]model.UserReservation, 0, len(items))
    for _, item := range items {
        var ur model.UserReservation
        if err := json.Unmarshal(item.Value, &ur); err != nil {
            return nil, fmt.Errorf("decode user reservation %s/%s: %w", userID, item.SortKey, err)
        }
        if ur.Epoch < fromEpoch {
            continue
        }
        entries = append(entries, ur)
    }
    return entries, nil
}
