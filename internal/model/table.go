package model

// Table is a physical table belonging to a restaurant. Tables are created by
// an external admin flow and are read-only to this service; the booking
// engine only filters them by capacity when selecting a candidate.
//
// The store keys a table under pk = restaurant composite key, sk = table id,
// so listing a restaurant's tables is a partition scan whose order is the
// store's natural sort-key order. That order is also the first-fit tie-break.
//
// Fields:
//  ID       – table identifier, unique within the restaurant.
//  Capacity – number of seats.
type Table struct {
    ID       string `json:"id"`
    Capacity int    `json:"capacity"`
}
