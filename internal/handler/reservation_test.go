package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/keys"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/repository"
    "github.com/iliyamo/restaurant-table-reservation/internal/store"
)

func newTestHandler(t *testing.T) (*ReservationHandler, store.KeyedStore) {
    t.Helper()
    s := store.NewMemoryStore()
    engine := booking.NewEngine(
        repository.NewRestaurantRepo(s),
        repository.NewTableRepo(s),
        repository.NewReservationRepo(s),
        repository.NewUserReservationRepo(s),
        booking.Config{},
    )
    return NewReservationHandler(engine), s
}

func seedSakura(t *testing.T, s store.KeyedStore) {
    t.Helper()
    ctx := context.Background()

    sk, err := keys.RestaurantSortKey("Sushi", "Sakura")
    require.NoError(t, err)
    value, err := json.Marshal(model.Restaurant{Locality: "Palermo", Category: "Sushi", Name: "Sakura", OwnerID: "owner-1"})
    require.NoError(t, err)
    require.NoError(t, s.PutIfAbsent(ctx, store.Restaurants, store.Item{PartitionKey: "Palermo", SortKey: sk, Value: value}))

    restaurantKey, err := keys.Restaurant("Palermo", "Sushi", "Sakura")
    require.NoError(t, err)
    for _, table := range []model.Table{{ID: "A", Capacity: 2}, {ID: "B", Capacity: 4}} {
        value, err := json.Marshal(table)
        require.NoError(t, err)
        require.NoError(t, s.PutIfAbsent(ctx, store.Tables, store.Item{PartitionKey: restaurantKey, SortKey: table.ID, Value: value}))
    }
}

func doJSON(h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    _ = h(c)
    return rec
}

const createBody = `{
    "locality": "Palermo",
    "category": "Sushi",
    "restaurant_name": "Sakura",
    "datetime": "2025-06-01T20:00:00Z",
    "party_size": 3,
    "user_id": "user-1",
    "user_name": "Ada",
    "user_email": "ada@example.com"
}`

func TestCreateReturnsTableID(t *testing.T) {
    h, s := newTestHandler(t)
    seedSakura(t, s)

    rec := doJSON(h.Create, http.MethodPost, "/v1/reservations", createBody)
    assert.Equal(t, http.StatusCreated, rec.Code)

    var resp map[string]string
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, "B", resp["table_id"])
}

func TestCreateStatusMapping(t *testing.T) {
    h, s := newTestHandler(t)
    seedSakura(t, s)

    // Missing fields reject with 400 before any store access.
    rec := doJSON(h.Create, http.MethodPost, "/v1/reservations", `{"locality": "Palermo"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    // Unknown restaurant maps to 404.
    rec = doJSON(h.Create, http.MethodPost, "/v1/reservations",
        strings.Replace(createBody, "Sakura", "Nowhere", 1))
    assert.Equal(t, http.StatusNotFound, rec.Code)

    // First booking wins...
    rec = doJSON(h.Create, http.MethodPost, "/v1/reservations", createBody)
    require.Equal(t, http.StatusCreated, rec.Code)

    // ...the same user again at the same instant conflicts.
    rec = doJSON(h.Create, http.MethodPost, "/v1/reservations", createBody)
    assert.Equal(t, http.StatusConflict, rec.Code)

    // A party no table can seat conflicts as well.
    rec = doJSON(h.Create, http.MethodPost, "/v1/reservations",
        strings.Replace(strings.Replace(createBody, `"party_size": 3`, `"party_size": 6`, 1), "user-1", "user-2", 1))
    assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelStatusMapping(t *testing.T) {
    h, s := newTestHandler(t)
    seedSakura(t, s)

    rec := doJSON(h.Create, http.MethodPost, "/v1/reservations", createBody)
    require.Equal(t, http.StatusCreated, rec.Code)

    cancelBody := `{"user_id": "user-1", "datetime": "2025-06-01T20:00:00Z"}`
    rec = doJSON(h.Cancel, http.MethodDelete, "/v1/reservations", cancelBody)
    assert.Equal(t, http.StatusNoContent, rec.Code)

    // Cancelling again finds nothing.
    rec = doJSON(h.Cancel, http.MethodDelete, "/v1/reservations", cancelBody)
    assert.Equal(t, http.StatusNotFound, rec.Code)

    rec = doJSON(h.Cancel, http.MethodDelete, "/v1/reservations", `{"datetime": "2025-06-01T20:00:00Z"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUpcomingReturnsItems(t *testing.T) {
    h, s := newTestHandler(t)
    seedSakura(t, s)

    rec := doJSON(h.Create, http.MethodPost, "/v1/reservations", createBody)
    require.Equal(t, http.StatusCreated, rec.Code)

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/users/user-1/reservations", nil)
    out := httptest.NewRecorder()
    c := e.NewContext(req, out)
    c.SetParamNames("id")
    c.SetParamValues("user-1")
    require.NoError(t, h.ListUpcoming(c))
    assert.Equal(t, http.StatusOK, out.Code)

    var resp struct {
        Items []model.UserReservation `json:"items"`
    }
    require.NoError(t, json.Unmarshal(out.Body.Bytes(), &resp))
    // The fixed slot is in the past relative to the real clock, so the
    // upcoming list may legitimately be empty; the endpoint still returns
    // 200 with an items array.
    assert.NotNil(t, resp.Items)
}
