package model

// Reservation records a committed booking of one table for one slot. It is
// the authoritative record of occupancy: the conditional write that creates
// it is the only enforcement of "at most one reservation per table per slot".
//
// The store keys a reservation under pk = restaurant composite key,
// sk = "localTimestamp#tableID". A reservation is never updated in place;
// changes are expressed as cancel followed by a fresh booking.
//
// Fields:
//  LocalTimestamp – restaurant-local wall-clock time of the slot.
//  LocalDate      – restaurant-local calendar date, for whole-day scans.
//  TableID        – table the reservation occupies.
//  PartySize      – number of guests.
//  UserName       – name of the holder.
//  UserEmail      – contact address of the holder.
type Reservation struct {
    LocalTimestamp string `json:"local_timestamp"`
    LocalDate      string `json:"local_date"`
    TableID        string `json:"table_id"`
    PartySize      int    `json:"party_size"`
    UserName       string `json:"user_name"`
    UserEmail      string `json:"user_email"`
}
