// Package keys builds and parses the composite partition and sort keys used
// by every collection in the keyed store. Keys are plain strings whose fields
// are joined with a reserved separator, so a field containing the separator
// can never be encoded unambiguously and is rejected up front.
package keys

import (
    "errors"
    "fmt"
    "strings"
)

// Separator joins the logical fields of a composite key. It matches the
// layout of the persisted data, so it must never change once records exist.
const Separator = "#"

// ErrMalformedKey is returned when a key component is empty, contains the
// separator, or a stored key does not split into the expected fields.
// Callers should treat it as a validation failure, not a store failure.
var ErrMalformedKey = errors.New("malformed key")

// Restaurant builds the composite restaurant key
// "locality#category#name". All three components are required.
func Restaurant(locality, category, name string) (string, error) {
    if err := checkComponents(locality, category, name); err != nil {
        return "", err
    }
    return locality + Separator + category + Separator + name, nil
}

// ParseRestaurant splits a restaurant key back into its components.
func ParseRestaurant(key string) (locality, category, name string, err error) {
    parts := strings.Split(key, Separator)
    if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
        return "", "", "", fmt.Errorf("%w: restaurant key %q", ErrMalformedKey, key)
    }
    return parts[0], parts[1], parts[2], nil
}

// RestaurantSortKey builds the "category#name" sort key used within a
// locality partition of the restaurants collection.
func RestaurantSortKey(category, name string) (string, error) {
    if err := checkComponents(category, name); err != nil {
        return "", err
    }
    return category + Separator + name, nil
}

// ReservationSortKey builds the "localTimestamp#tableID" sort key of a
// reservation record. The timestamp prefix keeps all reservations for a slot
// adjacent, so occupancy scans are prefix queries.
func ReservationSortKey(localTimestamp, tableID string) (string, error) {
    if err := checkComponents(localTimestamp, tableID); err != nil {
        return "", err
    }
    return localTimestamp + Separator + tableID, nil
}

// ParseReservationSortKey splits a reservation sort key into the local
// timestamp and table id.
func ParseReservationSortKey(key string) (localTimestamp, tableID string, err error) {
    parts := strings.SplitN(key, Separator, 2)
    if len(parts) != 2 || parts[0] == "" || parts[1] == "" || strings.Contains(parts[1], Separator) {
        return "", "", fmt.Errorf("%w: reservation sort key %q", ErrMalformedKey, key)
    }
    return parts[0], parts[1], nil
}

// UserInstantSortKey renders an epoch instant as the sort key of the user
// reservation index. The value is zero-padded to ten digits so that
// lexicographic ordering of sort keys equals numeric ordering of instants.
func UserInstantSortKey(epochSeconds int64) string {
    return fmt.Sprintf("%010d", epochSeconds)
}

func checkComponents(components ...string) error {
    for _, c := range components {
        if c == "" {
            return fmt.Errorf("%w: empty component", ErrMalformedKey)
        }
        if strings.Contains(c, Separator) {
            return fmt.Errorf("%w: component %q contains separator", ErrMalformedKey, c)
        }
    }
    return nil
}
