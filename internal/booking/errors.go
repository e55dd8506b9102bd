// Package booking implements the allocation core of the service: it decides
// whether a reservation request can be satisfied, commits the winning table
// through the store's conditional write, and keeps the per-user index in
// step with the authoritative reservation records.
package booking

import "errors"

// ErrValidation is returned when a request is missing or carries malformed
// fields. Validation runs before any store access.
var ErrValidation = errors.New("invalid request")

// ErrUserAlreadyBooked is returned when the requesting user already holds a
// reservation at the requested instant, at any restaurant.
var ErrUserAlreadyBooked = errors.New("user already booked at this time")

// ErrNoTableAvailable is returned when no free table with sufficient
// capacity exists for the slot, including the case where every candidate was
// lost to concurrent bookings within the attempt bound.
var ErrNoTableAvailable = errors.New("no table available")
