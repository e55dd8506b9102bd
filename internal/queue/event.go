// Package queue defines message payloads exchanged over the message broker.
package queue

// Event actions carried by ReservationEvent.
const (
    ActionCreated   = "created"
    ActionCancelled = "cancelled"
)

// ReservationEvent is published after a reservation is committed or
// cancelled. It is the operator-facing audit feed: the consumer appends it
// to the reservation log, and a reconciliation sweep can replay it to detect
// reservation records and user-index entries that drifted apart. It carries
// the full snapshot so consumers never query the primary store.
type ReservationEvent struct {
    Action         string `json:"action"`
    UserID         string `json:"user_id"`
    UserName       string `json:"user_name"`
    Locality       string `json:"locality"`
    Category       string `json:"category"`
    RestaurantName string `json:"restaurant_name"`
    TableID        string `json:"table_id"`
    LocalTimestamp string `json:"local_timestamp"`
    Epoch          int64  `json:"epoch"`
    PartySize      int    `json:"party_size"`
    EmittedAt      string `json:"emitted_at"`
}
