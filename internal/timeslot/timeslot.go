// Package timeslot converts the timestamps received from clients into the
// canonical forms the store keys are built from. A slot is normalized once at
// the edge and passed through the rest of the flow unchanged, so the same
// input always produces the same keys regardless of when the request runs.
package timeslot

import (
    "errors"
    "fmt"
    "strconv"
    "time"
)

// localTimestampLayout renders the restaurant-local wall-clock time used as
// the reservation sort-key prefix. It deliberately carries no zone suffix:
// the offset is already applied and the string only needs to sort correctly.
const localTimestampLayout = "2006-01-02T15:04:05"

// localDateLayout renders the restaurant-local calendar date used for
// whole-day occupancy scans.
const localDateLayout = "2006-01-02"

// ErrInvalidTimestamp is returned when the input is neither an RFC 3339
// timestamp nor an integer epoch-second value.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Slot is a canonical reservation instant together with the restaurant-local
// renderings derived from it.
type Slot struct {
    Instant        time.Time // canonical instant, always UTC
    Epoch          int64     // Instant as epoch seconds (user index sort key)
    LocalDate      string    // YYYY-MM-DD in the restaurant's fixed offset
    LocalTimestamp string    // YYYY-MM-DDTHH:MM:SS in the restaurant's fixed offset
}

// Normalize parses raw as an RFC 3339 timestamp or an epoch-second integer
// and derives the local date and timestamp strings using the given fixed UTC
// offset (in seconds east of UTC). A full timezone database is intentionally
// not supported; restaurants carry a fixed offset.
func Normalize(raw string, offsetSeconds int) (Slot, error) {
    instant, err := parseInstant(raw)
    if err != nil {
        return Slot{}, err
    }
    local := instant.In(time.FixedZone("", offsetSeconds))
    return Slot{
        Instant:        instant.UTC(),
        Epoch:          instant.Unix(),
        LocalDate:      local.Format(localDateLayout),
        LocalTimestamp: local.Format(localTimestampLayout),
    }, nil
}

func parseInstant(raw string) (time.Time, error) {
    if raw == "" {
        return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidTimestamp)
    }
    if t, err := time.Parse(time.RFC3339, raw); err == nil {
        return t, nil
    }
    if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
        if secs < 0 {
            return time.Time{}, fmt.Errorf("%w: negative epoch %d", ErrInvalidTimestamp, secs)
        }
        return time.Unix(secs, 0), nil
    }
    return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
}
