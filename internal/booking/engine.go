package booking

import (
    "context"
    "fmt"
    "strings"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/keys"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/repository"
    "github.com/iliyamo/restaurant-table-reservation/internal/timeslot"
)

// defaultMaxAttempts bounds the commit retry loop. Each attempt re-reads
// occupancy, so a handful of attempts is enough to walk past tables lost to
// concurrent writers without risking unbounded latency under contention.
const defaultMaxAttempts = 3

// Config tunes an Engine.
//
// Fields:
//  MaxAttempts      – commit attempts per request before giving up with
//                     ErrNoTableAvailable. Zero or negative selects the
//                     default of 3.
//  UTCOffsetSeconds – fixed offset of the restaurants' local timezone, in
//                     seconds east of UTC.
//  Now              – clock used only by ListUpcoming; nil selects
//                     time.Now. Booking and cancellation never read it.
type Config struct {
    MaxAttempts      int
    UTCOffsetSeconds int
    Now              func() time.Time
}

// Engine coordinates the reservation flow across the four collections. It is
// stateless per request: every dependency is injected once at construction
// and shared read-only, so any number of requests may run concurrently. All
// races are resolved by the conditional writes in the repositories, never by
// locking inside the engine.
type Engine struct {
    restaurants *repository.RestaurantRepo
    tables      *repository.TableRepo
    resv        *repository.ReservationRepo
    users       *repository.UserReservationRepo

    maxAttempts int
    utcOffset   int
    now         func() time.Time
}

// NewEngine constructs an Engine. All repositories must be non-nil.
func NewEngine(restaurants *repository.RestaurantRepo, tables *repository.TableRepo, resv *repository.ReservationRepo, users *repository.UserReservationRepo, cfg Config) *Engine {
    if restaurants == nil || tables == nil || resv == nil || users == nil {
        panic("nil repository passed to NewEngine")
    }
    e := &Engine{
        restaurants: restaurants,
        tables:      tables,
        resv:        resv,
        users:       users,
        maxAttempts: cfg.MaxAttempts,
        utcOffset:   cfg.UTCOffsetSeconds,
        now:         cfg.Now,
    }
    if e.maxAttempts <= 0 {
        e.maxAttempts = defaultMaxAttempts
    }
    if e.now == nil {
        e.now = time.Now
    }
    return e
}

// CreateRequest carries a booking request. Every field is required.
//
// Fields:
//  Locality, Category, RestaurantName – identity of the restaurant.
//  Datetime  – RFC 3339 timestamp or epoch seconds of the requested slot.
//  PartySize – number of guests, at least 1.
//  UserID, UserName, UserEmail – identity and contact of the holder, already
//  authenticated upstream.
type CreateRequest struct {
    Locality       string
    Category       string
    RestaurantName string
    Datetime       string
    PartySize      int
    UserID         string
    UserName       string
    UserEmail      string
}

// CreateReservation allocates and commits a table for the request. On
// success it returns the recorded user-index snapshot, whose TableID names
// the allocated table. Failure modes, in the order they are detected:
// ErrValidation, ErrUserAlreadyBooked, repository.ErrRestaurantNotFound,
// ErrNoTableAvailable, or a wrapped store failure.
//
// The occupancy scan is advisory. The only enforcement of table uniqueness
// is the conditional write inside resv.Commit; when that write loses, the
// loop re-reads occupancy, which now includes the winner, and tries the next
// candidate until the attempt bound is spent.
func (e *Engine) CreateReservation(ctx context.Context, req CreateRequest) (*model.UserReservation, error) {
    if err := req.validate(); err != nil {
        return nil, err
    }
    slot, err := timeslot.Normalize(req.Datetime, e.utcOffset)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrValidation, err)
    }

    // Fast-fail when the user already holds a reservation at this instant.
    // Advisory only; the conditional index write below re-checks at commit
    // time.
    _, err = e.users.Lookup(ctx, req.UserID, slot.Epoch)
    if err == nil {
        return nil, ErrUserAlreadyBooked
    }
    if err != repository.ErrUserReservationNotFound {
        return nil, err
    }

    if _, err := e.ValidateRestaurant(ctx, req.Locality, req.Category, req.RestaurantName, ""); err != nil {
        return nil, err
    }
    restaurantKey, err := keys.Restaurant(req.Locality, req.Category, req.RestaurantName)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrValidation, err)
    }

    tables, err := e.tables.ListByRestaurant(ctx, restaurantKey)
    if err != nil {
        return nil, err
    }

    res := &model.Reservation{
        LocalTimestamp: slot.LocalTimestamp,
        LocalDate:      slot.LocalDate,
        PartySize:      req.PartySize,
        UserName:       req.UserName,
        UserEmail:      req.UserEmail,
    }
    slotPrefix := slot.LocalTimestamp + keys.Separator
    committed := false
    for attempt := 0; attempt < e.maxAttempts && !committed; attempt++ {
        occupied, err := e.resv.OccupiedTables(ctx, restaurantKey, slotPrefix)
        if err != nil {
            return nil, err
        }
        tableID, ok := selectTable(tables, occupied, req.PartySize)
        if !ok {
            return nil, ErrNoTableAvailable
        }
        res.TableID = tableID
        switch err := e.resv.Commit(ctx, restaurantKey, res); err {
        case nil:
            committed = true
        case repository.ErrSlotTaken:
            // Lost the race for this table; rescan and reselect.
        default:
            return nil, err
        }
    }
    if !committed {
        return nil, ErrNoTableAvailable
    }

    ur := &model.UserReservation{
        UserID:         req.UserID,
        Epoch:          slot.Epoch,
        Locality:       req.Locality,
        Category:       req.Category,
        RestaurantName: req.RestaurantName,
        LocalTimestamp: slot.LocalTimestamp,
        TableID:        res.TableID,
        PartySize:      req.PartySize,
        UserName:       req.UserName,
        UserEmail:      req.UserEmail,
    }
    if err := e.users.Record(ctx, ur); err != nil {
        if err == repository.ErrUserSlotTaken {
            // The user won a table here but lost the per-user race to a
            // concurrent booking elsewhere. Release the table again; the
            // index entry that beat us stays authoritative for the user.
            if delErr := e.resv.Delete(ctx, restaurantKey, res.LocalTimestamp, res.TableID); delErr != nil {
                return nil, delErr
            }
            return nil, ErrUserAlreadyBooked
        }
        // A store failure leaves the committed reservation in place: the
        // reservation record is authoritative and the index is reconciled
        // out of band rather than rolled back here.
        return nil, err
    }
    return ur, nil
}

// CancelReservation removes the reservation the user holds at the given
// instant. It returns the cancelled snapshot, or
// repository.ErrUserReservationNotFound when the user holds none. The
// reservation record is deleted before the index entry: if the process dies
// between the two deletes, the leftover index entry merely makes the cancel
// retryable, whereas a leftover reservation would occupy the table with no
// way left to find it.
func (e *Engine) CancelReservation(ctx context.Context, userID, datetime string) (*model.UserReservation, error) {
    if userID == "" {
        return nil, fmt.Errorf("%w: missing field user_id", ErrValidation)
    }
    slot, err := timeslot.Normalize(datetime, e.utcOffset)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrValidation, err)
    }
    ur, err := e.users.Lookup(ctx, userID, slot.Epoch)
    if err != nil {
        return nil, err
    }
    restaurantKey, err := keys.Restaurant(ur.Locality, ur.Category, ur.RestaurantName)
    if err != nil {
        return nil, err
    }
    if err := e.resv.Delete(ctx, restaurantKey, ur.LocalTimestamp, ur.TableID); err != nil {
        return nil, err
    }
    if err := e.users.Delete(ctx, userID, ur.Epoch); err != nil {
        return nil, err
    }
    return ur, nil
}

// ValidateRestaurant confirms the restaurant exists and, when ownerID is
// non-empty, that it is owned by that user. An ownership mismatch reports
// repository.ErrRestaurantNotFound rather than a distinct forbidden error,
// so callers cannot probe for the existence of restaurants they do not own.
func (e *Engine) ValidateRestaurant(ctx context.Context, locality, category, name, ownerID string) (*model.Restaurant, error) {
    rest, err := e.restaurants.Get(ctx, locality, category, name)
    if err != nil {
        return nil, err
    }
    if ownerID != "" && rest.OwnerID != ownerID {
        return nil, repository.ErrRestaurantNotFound
    }
    return rest, nil
}

// ListUpcoming returns the user's reservations at or after the engine's
// current time, soonest first. This is the one operation that reads the
// clock; booking and cancellation derive everything from their inputs.
func (e *Engine) ListUpcoming(ctx context.Context, userID string) ([]model.UserReservation, error) {
    if userID == "" {
        return nil, fmt.Errorf("%w: missing field user_id", ErrValidation)
    }
    return e.users.ListFrom(ctx, userID, e.now().Unix())
}

// validate enforces the enumerated required-field list before any store
// access.
func (r CreateRequest) validate() error {
    required := []struct {
        name  string
        value string
    }{
        {"locality", r.Locality},
        {"category", r.Category},
        {"restaurant_name", r.RestaurantName},
        {"datetime", r.Datetime},
        {"user_id", r.UserID},
        {"user_name", r.UserName},
        {"user_email", r.UserEmail},
    }
    for _, f := range required {
        if f.value == "" {
            return fmt.Errorf("%w: missing field %s", ErrValidation, f.name)
        }
    }
    // Locality, category and restaurant name become components of composite
    // keys, so the key separator is not allowed inside them.
    for _, f := range required[:3] {
        if strings.Contains(f.value, keys.Separator) {
            return fmt.Errorf("%w: field %s must not contain %q", ErrValidation, f.name, keys.Separator)
        }
    }
    if r.PartySize < 1 {
        return fmt.Errorf("%w: party_size must be at least 1", ErrValidation)
    }
    return nil
}
