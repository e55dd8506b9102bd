package model

// UserReservation is the per-user index entry written alongside a
// Reservation. It carries a full denormalized snapshot of the booking so
// that cancellation can locate the reservation record without re-deriving
// anything from the request.
//
// The store keys an entry under pk = user id, sk = zero-padded epoch seconds
// of the slot instant, which enforces "at most one reservation per user per
// instant" through the same conditional-write discipline as reservations.
// The entry is derived data: the Reservation record stays authoritative and
// this index must tolerate a transient dangling entry after a partial
// cancellation failure.
//
// Fields:
//  UserID         – holder of the reservation.
//  Epoch          – slot instant as epoch seconds.
//  Locality       – restaurant locality, part of the snapshot.
//  Category       – restaurant category, part of the snapshot.
//  RestaurantName – restaurant name, part of the snapshot.
//  LocalTimestamp – restaurant-local slot time, used to rebuild the
//                   reservation sort key on cancel.
//  TableID        – table held by the reservation.
//  PartySize      – number of guests.
//  UserName       – name of the holder.
//  UserEmail      – contact address of the holder.
type UserReservation struct {
    UserID         string `json:"user_id"`
    Epoch          int64  `json:"epoch"`
    Locality       string `json:"locality"`
    Category       string `json:"category"`
    RestaurantName string `json:"restaurant_name"`
    LocalTimestamp string `json:"local_timestamp"`
    TableID        string `json:"table_id"`
    PartySize      int    `json:"party_size"`
    UserName       string `json:"user_name"`
    UserEmail      string `json:"user_email"`
}
