package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/middlewares"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/reviews-service/internal/service"
)

type ReviewHandler struct {
	svc *service.ReviewSvc
}

func NewReviewHandler(svc *service.ReviewSvc) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) Register(r *gin.Engine) {
	secured := r.Group("", middlewares.JWTAuth())
	{
		secured.POST("/reviews", h.Create)
		secured.PUT("/reviews/:id", h.Update)
		secured.DELETE("/reviews/:id", h.Delete)
		secured.GET("/reviews/room/:room_id", h.ListByRoom)
		secured.POST("/reviews/:id/flag", h.Flag)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
	case errors.Is(err, service.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// POST /reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var in struct {
		UserID  string `json:"user_id" binding:"required"`
		RoomID  string `json:"room_id" binding:"required"`
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	caller := middlewares.CurrentIdentity(c).Context()
	rv, err := h.svc.Create(c.Request.Context(), caller, in.UserID, in.RoomID, in.Rating, in.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// PUT /reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	var in struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	caller := middlewares.CurrentIdentity(c).Context()
	rv, err := h.svc.Update(c.Request.Context(), caller, c.Param("id"), service.UpdateParams{
		Rating:  in.Rating,
		Comment: in.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

// DELETE /reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	caller := middlewares.CurrentIdentity(c).Context()
	if err := h.svc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

// GET /reviews/room/:room_id
func (h *ReviewHandler) ListByRoom(c *gin.Context) {
	caller := middlewares.CurrentIdentity(c).Context()
	out, err := h.svc.ListByRoom(c.Request.Context(), caller, c.Param("room_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /reviews/:id/flag
func (h *ReviewHandler) Flag(c *gin.Context) {
	caller := middlewares.CurrentIdentity(c).Context()
	rv, err := h.svc.Flag(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}
