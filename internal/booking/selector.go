package booking

import "github.com/iliyamo/restaurant-table-reservation/internal/model"

// selectTable picks the first table in scan order whose capacity fits the
// party and whose id is not in the occupied set. First fit over the store's
// natural order is the allocation policy: deterministic, not
// capacity-optimal, and no attempt is made to prefer exact-capacity matches.
// The second return value is false when no table qualifies.
func selectTable(tables []model.Table, occupied map[string]struct{}, partySize int) (string, bool) {
    for _, t := range tables {
        if t.Capacity < partySize {
            continue
        }
        if _, taken := occupied[t.ID]; taken {
            continue
        }
        return t.ID, true
    }
    return "", false
}
