package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/queue"
    "github.com/iliyamo/restaurant-table-reservation/internal/repository"
    queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// ReservationHandler exposes the booking engine over HTTP. It is pure
// plumbing: bind the body, call the engine, translate sentinel errors to
// status codes, and emit the audit event. Identity arrives validated in the
// request body; authentication is handled upstream of this service.
type ReservationHandler struct {
    Engine *booking.Engine
}

// NewReservationHandler constructs a ReservationHandler. The engine must be
// non-nil.
func NewReservationHandler(engine *booking.Engine) *ReservationHandler {
    if engine == nil {
        panic("nil engine passed to NewReservationHandler")
    }
    return &ReservationHandler{Engine: engine}
}

// createReservationRequest is the JSON body of POST /v1/reservations.
type createReservationRequest struct {
    Locality       string `json:"locality"`
    Category       string `json:"category"`
    RestaurantName string `json:"restaurant_name"`
    Datetime       string `json:"datetime"`
    PartySize      int    `json:"party_size"`
    UserID         string `json:"user_id"`
    UserName       string `json:"user_name"`
    UserEmail      string `json:"user_email"`
}

// cancelReservationRequest is the JSON body of DELETE /v1/reservations.
type cancelReservationRequest struct {
    UserID   string `json:"user_id"`
    Datetime string `json:"datetime"`
}

// Create handles POST /v1/reservations. On success it returns 201 with the
// allocated table id. Validation failures map to 400, an unknown restaurant
// to 404, a user or table conflict to 409, and store failures to 500.
func (h *ReservationHandler) Create(c echo.Context) error {
    var body createReservationRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    ctx := c.Request().Context()
    ur, err := h.Engine.CreateReservation(ctx, booking.CreateRequest{
        Locality:       body.Locality,
        Category:       body.Category,
        RestaurantName: body.RestaurantName,
        Datetime:       body.Datetime,
        PartySize:      body.PartySize,
        UserID:         body.UserID,
        UserName:       body.UserName,
        UserEmail:      body.UserEmail,
    })
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrValidation):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        case errors.Is(err, repository.ErrRestaurantNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        case errors.Is(err, booking.ErrUserAlreadyBooked):
            return c.JSON(http.StatusConflict, echo.Map{"error": "user already has a reservation at this time"})
        case errors.Is(err, booking.ErrNoTableAvailable):
            return c.JSON(http.StatusConflict, echo.Map{"error": "no table available for the requested slot"})
        default:
            c.Logger().Errorf("create reservation: %v", err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
        }
    }
    publishEvent(queue.ActionCreated, ur)
    return c.JSON(http.StatusCreated, echo.Map{
        "table_id":        ur.TableID,
        "local_timestamp": ur.LocalTimestamp,
    })
}

// Cancel handles DELETE /v1/reservations. It returns 204 on success and 404
// when the user holds no reservation at the given time. Cancelling twice is
// safe: the second call simply finds nothing.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    var body cancelReservationRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    ctx := c.Request().Context()
    ur, err := h.Engine.CancelReservation(ctx, body.UserID, body.Datetime)
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrValidation):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        case errors.Is(err, repository.ErrUserReservationNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        default:
            c.Logger().Errorf("cancel reservation: %v", err)
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
        }
    }
    publishEvent(queue.ActionCancelled, ur)
    return c.NoContent(http.StatusNoContent)
}

// ListUpcoming handles GET /v1/users/:id/reservations. It returns the
// user's reservations from now onward; an empty list is a normal response,
// not an error.
func (h *ReservationHandler) ListUpcoming(c echo.Context) error {
    userID := c.Param("id")
    ctx := c.Request().Context()
    items, err := h.Engine.ListUpcoming(ctx, userID)
    if err != nil {
        if errors.Is(err, booking.ErrValidation) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        c.Logger().Errorf("list reservations: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items": items,
    })
}

// publishEvent emits the audit event in the background. Publishing is best
// effort and must never delay or fail the request that triggered it.
func publishEvent(action string, ur *model.UserReservation) {
    ev := queue.ReservationEvent{
        Action:         action,
        UserID:         ur.UserID,
        UserName:       ur.UserName,
        Locality:       ur.Locality,
        Category:       ur.Category,
        RestaurantName: ur.RestaurantName,
        TableID:        ur.TableID,
        LocalTimestamp: ur.LocalTimestamp,
        Epoch:          ur.Epoch,
        PartySize:      ur.PartySize,
        EmittedAt:      time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queue_publisher.PublishReservationEvent(ctx, ev)
    }()
}
