package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/middlewares"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/bookings-service/internal/repository"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/bookings-service/internal/service"
)

type BookingHandler struct {
	svc     *service.BookingSvc
	mfaCode string
}

func NewBookingHandler(svc *service.BookingSvc, mfaCode string) *BookingHandler {
	return &BookingHandler{svc: svc, mfaCode: mfaCode}
}

// Register mounts the booking routes. Availability stays outside the auth
// group: the policy table opens check_availability to everyone, anonymous
// callers included.
func (h *BookingHandler) Register(r *gin.Engine) {
	r.GET("/availability", h.Availability)

	secured := r.Group("", middlewares.JWTAuth())
	{
		secured.GET("/bookings", h.List)
		secured.POST("/bookings", h.Create)
		secured.PUT("/bookings/:id", h.Update)
		secured.DELETE("/bookings/:id", h.Cancel)
		secured.GET("/bookings/user/:user_id", h.UserHistory)
	}
}

// writeError translates the service's outcome values into the HTTP contract:
// 403 denial, 409 conflict, 404 missing, 400 malformed.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrOverlap):
		c.JSON(http.StatusConflict, gin.H{"error": "room is not available in this time slot"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, service.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// GET /bookings
func (h *BookingHandler) List(c *gin.Context) {
	caller := middlewares.CurrentIdentity(c).Context()
	out, err := h.svc.ListAll(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		UserID    string `json:"user_id" binding:"required"`
		RoomID    string `json:"room_id" binding:"required"`
		StartTime string `json:"start_time" binding:"required"`
		EndTime   string `json:"end_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	caller := middlewares.CurrentIdentity(c).Context()
	b, err := h.svc.Create(c.Request.Context(), caller, in.UserID, in.RoomID, in.StartTime, in.EndTime)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PUT /bookings/:id
func (h *BookingHandler) Update(c *gin.Context) {
	var in struct {
		RoomID    *string `json:"room_id"`
		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	caller := middlewares.CurrentIdentity(c).Context()
	b, err := h.svc.Update(c.Request.Context(), caller, c.Param("id"), service.UpdateParams{
		RoomID:   in.RoomID,
		StartISO: in.StartTime,
		EndISO:   in.EndTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /bookings/:id — cancellation keeps the row; it also demands the
// X-MFA-Code second factor on top of the RBAC gate.
func (h *BookingHandler) Cancel(c *gin.Context) {
	if c.GetHeader("X-MFA-Code") != h.mfaCode {
		c.JSON(http.StatusForbidden, gin.H{"error": "MFA required or invalid code"})
		return
	}
	caller := middlewares.CurrentIdentity(c).Context()
	if _, err := h.svc.Cancel(c.Request.Context(), caller, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// GET /availability?room_id=&start_time=&end_time=
func (h *BookingHandler) Availability(c *gin.Context) {
	roomID := c.Query("room_id")
	start := c.Query("start_time")
	end := c.Query("end_time")
	if roomID == "" || start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_id, start_time and end_time are required"})
		return
	}
	caller := middlewares.CurrentIdentity(c).Context()
	free, err := h.svc.Availability(c.Request.Context(), caller, roomID, start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": roomID, "available": free})
}

// GET /bookings/user/:user_id
func (h *BookingHandler) UserHistory(c *gin.Context) {
	caller := middlewares.CurrentIdentity(c).Context()
	out, err := h.svc.UserHistory(c.Request.Context(), caller, c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
