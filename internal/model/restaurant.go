package model

// Restaurant represents a venue that accepts reservations. Restaurants are
// created by an external admin flow and are read-only to this service: the
// booking engine only ever looks one up to confirm it exists and, when an
// owner id is supplied, that it belongs to the caller.
//
// Identity is the (locality, category, name) tuple; the store keys a
// restaurant under pk = locality, sk = "category#name".
//
// Fields:
//  Locality – city or neighbourhood the restaurant is listed under.
//  Category – cuisine category (e.g. "Sushi").
//  Name     – restaurant name, unique within (locality, category).
//  OwnerID  – user id of the owning account.
type Restaurant struct {
    Locality string `json:"locality"`
    Category string `json:"category"`
    Name     string `json:"name"`
    OwnerID  string `json:"owner_id"`
}
