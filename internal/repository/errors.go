// Package repository provides one repository per keyed collection. Each
// repository owns the key construction and JSON encoding for its records and
// translates store-level outcomes into the sentinel errors below, so the
// booking engine and handlers can branch with errors.Is instead of
// inspecting store internals.
package repository

import "errors"

// ErrRestaurantNotFound is returned when no restaurant exists under the
// requested (locality, category, name) key.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrSlotTaken is returned when the conditional write of a reservation loses
// to an existing record for the same table and slot. It is an expected
// outcome under contention and the engine reacts by reselecting a table.
var ErrSlotTaken = errors.New("slot already taken")

// ErrUserSlotTaken is returned when the conditional write of a user index
// entry loses to an existing entry for the same user and instant.
var ErrUserSlotTaken = errors.New("user already has a reservation at this instant")

// ErrUserReservationNotFound is returned when no index entry exists for the
// requested user and instant.
var ErrUserReservationNotFound = errors.New("user reservation not found")
